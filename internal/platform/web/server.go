package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render/canvas"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	maxThumbnail = 1024
	topScores    = 10
)

// Server exposes a Manager over HTTP.
type Server struct {
	manager  *Manager
	store    *storage.Store
	logger   *log.Logger
	router   *gin.Engine
	upgrader websocket.Upgrader
}

// NewServer builds the router. store may be nil, in which case the scores
// endpoint reports 503.
func NewServer(manager *Manager, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		manager:  manager,
		store:    store,
		logger:   logger,
		router:   gin.New(),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.Group("/api")
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.withSession(s.getState))
	api.DELETE("/sessions/:id", s.deleteSession)
	api.POST("/sessions/:id/direction", s.withSession(s.setDirection))
	api.POST("/sessions/:id/acceleration", s.withSession(s.setAcceleration))
	api.POST("/sessions/:id/pointer", s.withSession(s.pointer))
	api.POST("/sessions/:id/restart", s.withSession(s.restart))
	api.GET("/sessions/:id/frame.png", s.withSession(s.framePNG))
	api.GET("/scores/:game", s.scores)

	s.router.GET("/ws/sessions/:id", s.withSession(s.stream))
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down and
// closes every session.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.manager.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.manager.Close()
	if err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

// withSession resolves the :id parameter or answers 404.
func (s *Server) withSession(h func(*gin.Context, *Session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := s.manager.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h(c, sess)
	}
}

// controlError maps session errors to responses.
func controlError(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrGameOver):
		c.JSON(http.StatusConflict, gin.H{"error": "game is over"})
	case errors.Is(err, ErrClosed):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type createRequest struct {
	Preset     string `json:"preset"`
	Difficulty string `json:"difficulty"`
	Seed       int64  `json:"seed"`
}

func (s *Server) createSession(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	sess, err := s.manager.Create(CreateOptions{
		Preset:     req.Preset,
		Difficulty: req.Difficulty,
		Seed:       req.Seed,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": sess.ID, "state": sess.State()})
}

func (s *Server) getState(c *gin.Context, sess *Session) {
	c.JSON(http.StatusOK, sess.State())
}

func (s *Server) deleteSession(c *gin.Context) {
	if !s.manager.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

type directionRequest struct {
	Direction string `json:"direction" binding:"required"`
}

func (s *Server) setDirection(c *gin.Context, sess *Session) {
	var req directionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction is required"})
		return
	}
	d, ok := snake.ParseDirection(req.Direction)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid direction %q", req.Direction)})
		return
	}
	controlError(c, sess.SetDirection(d))
}

type accelerationRequest struct {
	On *bool `json:"on" binding:"required"`
}

func (s *Server) setAcceleration(c *gin.Context, sess *Session) {
	var req accelerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "on is required"})
		return
	}
	controlError(c, sess.SetAcceleration(*req.On))
}

type pointerRequest struct {
	X    *float64 `json:"x" binding:"required"`
	Y    *float64 `json:"y" binding:"required"`
	Down bool     `json:"down"`
}

func (s *Server) pointer(c *gin.Context, sess *Session) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x and y are required"})
		return
	}
	controlError(c, sess.Pointer(*req.X, *req.Y, req.Down))
}

func (s *Server) restart(c *gin.Context, sess *Session) {
	if err := sess.Restart(); err != nil {
		controlError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "state": sess.State()})
}

func (s *Server) framePNG(c *gin.Context, sess *Session) {
	size := 0
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxThumbnail {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("size must be between 1 and %d", maxThumbnail)})
			return
		}
		size = n
	}

	frame, grid := sess.Frame()
	img := canvas.Thumbnail(canvas.Render(frame, grid, canvas.DefaultTileSize), size)

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) scores(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scores are not available"})
		return
	}
	entries, err := s.store.TopScores(c.Param("game"), topScores)
	if err != nil {
		s.logger.Warn("cannot load scores", "game", c.Param("game"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load scores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": c.Param("game"), "scores": entries})
}
