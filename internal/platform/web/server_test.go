package web

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

type testServer struct {
	srv     *Server
	manager *Manager
	store   *storage.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := openTestStore(t)
	m := NewManager(store, nil, "", "")
	t.Cleanup(m.Close)
	return &testServer{srv: NewServer(m, store, nil), manager: m, store: store}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

// addFast registers a session that finishes within milliseconds.
func (ts *testServer) addFast(t *testing.T) *Session {
	t.Helper()
	s := newFastSession(t, ts.store)
	ts.manager.mu.Lock()
	ts.manager.sessions[s.ID] = s
	ts.manager.mu.Unlock()
	return s
}

type createResponse struct {
	ID    string    `json:"id"`
	State StateView `json:"state"`
}

func (ts *testServer) create(t *testing.T, body string) createResponse {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/sessions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp createResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	return resp
}

func TestCreateAndGetSession(t *testing.T) {
	ts := newTestServer(t)

	created := ts.create(t, `{"seed": 42}`)
	if !storage.ValidSessionID(created.ID) {
		t.Errorf("id %q is not a session id", created.ID)
	}
	if created.State.GridSize != 20 || len(created.State.Segments) != 1 {
		t.Errorf("initial state = %+v", created.State)
	}
	if created.State.Direction != "right" || created.State.IntervalMs != 200 {
		t.Errorf("direction %q interval %d", created.State.Direction, created.State.IntervalMs)
	}
	if created.State.Food == nil || !strings.HasPrefix(created.State.Food.Hex, "#") {
		t.Errorf("food = %+v", created.State.Food)
	}

	rec := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var st StateView
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.ID != created.ID || st.Game != "snake" {
		t.Errorf("state = %+v", st)
	}
}

func TestCreateWithoutBodyAndBadPreset(t *testing.T) {
	ts := newTestServer(t)

	if rec := ts.do(t, http.MethodPost, "/api/sessions", ""); rec.Code != http.StatusCreated {
		t.Errorf("empty body status = %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodPost, "/api/sessions", `{"preset":"turbo"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad preset status = %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodPost, "/api/sessions", `{`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json status = %d", rec.Code)
	}
}

func TestUnknownSession(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/sessions/nope", ""},
		{http.MethodPost, "/api/sessions/nope/direction", `{"direction":"up"}`},
		{http.MethodGet, "/api/sessions/nope/frame.png", ""},
		{http.MethodDelete, "/api/sessions/nope", ""},
	} {
		if rec := ts.do(t, tc.method, tc.path, tc.body); rec.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", tc.method, tc.path, rec.Code)
		}
	}
}

func TestControls(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(t, `{"seed": 1}`).ID
	base := "/api/sessions/" + id

	tests := []struct {
		path, body string
		want       int
	}{
		{"/direction", `{"direction":"up"}`, http.StatusNoContent},
		{"/direction", `{"direction":"sideways"}`, http.StatusBadRequest},
		{"/direction", `{}`, http.StatusBadRequest},
		{"/acceleration", `{"on":true}`, http.StatusNoContent},
		{"/acceleration", `{}`, http.StatusBadRequest},
		{"/pointer", `{"x":10,"y":2,"down":true}`, http.StatusNoContent},
		{"/pointer", `{"x":10}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := ts.do(t, http.MethodPost, base+tt.path, tt.body); rec.Code != tt.want {
			t.Errorf("POST %s %s status = %d, want %d", tt.path, tt.body, rec.Code, tt.want)
		}
	}

	s, _ := ts.manager.Get(id)
	if !s.State().Accelerating {
		t.Error("session should be accelerating")
	}
}

func TestControlsAfterGameOverConflict(t *testing.T) {
	ts := newTestServer(t)
	s := ts.addFast(t)
	waitDone(t, s)

	rec := ts.do(t, http.MethodPost, "/api/sessions/"+s.ID+"/direction", `{"direction":"up"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}

	rec = ts.do(t, http.MethodPost, "/api/sessions/"+s.ID+"/restart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("restart status = %d", rec.Code)
	}
	var resp createResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.State.GameOver {
		t.Errorf("restarted state = %+v", resp.State)
	}
}

func TestFramePNG(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(t, "").ID

	rec := ts.do(t, http.MethodGet, "/api/sessions/"+id+"/frame.png", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("status %d content type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 400 {
		t.Errorf("width = %d, want 400", img.Bounds().Dx())
	}

	rec = ts.do(t, http.MethodGet, "/api/sessions/"+id+"/frame.png?size=100", "")
	img, err = png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("thumbnail width = %d, want 100", img.Bounds().Dx())
	}

	if rec := ts.do(t, http.MethodGet, "/api/sessions/"+id+"/frame.png?size=0", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("size=0 status = %d", rec.Code)
	}
}

func TestDeleteSession(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(t, "").ID

	if rec := ts.do(t, http.MethodDelete, "/api/sessions/"+id, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/api/sessions/"+id, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestScores(t *testing.T) {
	ts := newTestServer(t)
	s := ts.addFast(t)
	waitDone(t, s)

	rec := ts.do(t, http.MethodGet, "/api/scores/snake", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Game   string               `json:"game"`
		Scores []storage.ScoreEntry `json:"scores"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Scores) != 1 || resp.Scores[0].SessionID != s.ID {
		t.Errorf("scores = %+v", resp.Scores)
	}
}

func TestScoresWithoutStore(t *testing.T) {
	srv := NewServer(NewManager(nil, nil, "", ""), nil, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores/snake", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestWebSocketStream(t *testing.T) {
	ts := newTestServer(t)
	s, err := newSession(storage.NewSessionID(), "snake", func() (cfg config.SnakeConfig) {
		cfg = fastConfig()
		cfg.Speed.BaseMs = 30
		cfg.Speed.FloorMs = 30
		return cfg
	}(), 1, ts.store, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	ts.manager.mu.Lock()
	ts.manager.sessions[s.ID] = s
	ts.manager.mu.Unlock()

	hs := httptest.NewServer(ts.srv.Handler())
	defer hs.Close()

	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws/sessions/" + s.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("first message: %v", err)
	}
	if msg.State.ID != s.ID {
		t.Errorf("first message state id = %q", msg.State.ID)
	}

	for msg.Type != MessageGameOver {
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
	}
	if !msg.State.GameOver {
		t.Error("final message should be game over")
	}

	// Restart over the socket and expect frames again.
	if err := conn.WriteJSON(clientMessage{Type: "restart"}); err != nil {
		t.Fatalf("write restart: %v", err)
	}
	for {
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read after restart: %v", err)
		}
		if !msg.State.GameOver {
			break
		}
	}
}
