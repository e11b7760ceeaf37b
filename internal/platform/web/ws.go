package web

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const writeWait = 5 * time.Second

// clientMessage is a control sent by a WebSocket client.
type clientMessage struct {
	Type      string  `json:"type"` // direction, acceleration, pointer or restart
	Direction string  `json:"direction,omitempty"`
	On        bool    `json:"on,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Down      bool    `json:"down,omitempty"`
}

// stream pushes a message per tick to the client, starting with the
// current state, and accepts controls on the same socket.
func (s *Server) stream(c *gin.Context, sess *Session) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session", sess.ID, "err", err)
		return
	}
	defer conn.Close()

	msgs, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	first := Message{Type: MessageFrame, State: sess.State()}
	if first.State.GameOver {
		first.Type = MessageGameOver
	}
	if err := writeJSON(conn, first); err != nil {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg clientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			s.handleClientMessage(sess, msg)
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg, ok := <-msgs:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(writeWait))
				return
			}
			if err := writeJSON(conn, msg); err != nil {
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// handleClientMessage applies a socket control; invalid ones are dropped.
func (s *Server) handleClientMessage(sess *Session, msg clientMessage) {
	var err error
	switch msg.Type {
	case "direction":
		d, ok := snake.ParseDirection(msg.Direction)
		if !ok {
			return
		}
		err = sess.SetDirection(d)
	case "acceleration":
		err = sess.SetAcceleration(msg.On)
	case "pointer":
		err = sess.Pointer(msg.X, msg.Y, msg.Down)
	case "restart":
		err = sess.Restart()
	default:
		return
	}
	if err != nil {
		s.logger.Debug("websocket control rejected", "session", sess.ID, "type", msg.Type, "err", err)
	}
}
