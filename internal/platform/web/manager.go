package web

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// presetGames maps config presets to the game ids scores are filed under.
var presetGames = map[string]string{
	"classic": "snake",
	"legacy":  "snake_legacy",
}

// CreateOptions describes a new session. Zero values pick the classic
// preset, the manager's difficulty and a time-based seed.
type CreateOptions struct {
	Preset     string
	Difficulty string
	Seed       int64
}

// Manager owns the live sessions.
type Manager struct {
	store      *storage.Store
	logger     *log.Logger
	configPath string
	difficulty string

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty manager. configPath and difficulty apply to
// every session unless overridden per request; store may be nil.
func NewManager(store *storage.Store, logger *log.Logger, configPath, difficulty string) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		store:      store,
		logger:     logger,
		configPath: configPath,
		difficulty: difficulty,
		sessions:   make(map[string]*Session),
	}
}

// Create starts a new session.
func (m *Manager) Create(opts CreateOptions) (*Session, error) {
	preset := opts.Preset
	if preset == "" {
		preset = "classic"
	}
	gameID, ok := presetGames[preset]
	if !ok {
		return nil, fmt.Errorf("web: unknown preset %q", preset)
	}

	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = m.difficulty
	}
	cfg, err := config.Resolve(m.configPath, preset, difficulty)
	if err != nil {
		return nil, fmt.Errorf("web: cannot load config: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := storage.NewSessionID()
	s, err := newSession(id, gameID, cfg, seed, m.store, m.logger)
	if err != nil {
		return nil, fmt.Errorf("web: cannot start session: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("session created", "session", id, "preset", preset, "seed", seed)
	return s, nil
}

// Get looks up a session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete stops and forgets a session. It reports whether it existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.Close()
	m.logger.Info("session closed", "session", id)
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
