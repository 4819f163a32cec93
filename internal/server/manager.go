// Package server exposes games over an HTTP JSON API. Each session holds
// its own game; requests against one session are serialised.
package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
	"github.com/lgbarn/ascii-chess-go/internal/game"
	"github.com/lgbarn/ascii-chess-go/internal/output"
	"github.com/lgbarn/ascii-chess-go/internal/storage"
)

var (
	// ErrSessionNotFound is returned for an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManyGames is returned when the session cap is reached.
	ErrTooManyGames = errors.New("too many games in progress")

	// ErrNoArchive is returned by archive operations when no archive is
	// configured.
	ErrNoArchive = errors.New("no archive configured")
)

// watchBuffer is how many snapshots a watcher may fall behind before it
// starts missing updates.
const watchBuffer = 8

type session struct {
	mu        sync.Mutex
	game      *game.Game
	archiveID string
	watchers  map[chan *output.JSONGame]struct{}
	closed    bool
}

// publish sends snap to every watcher without blocking.
func (s *session) publish(snap *output.JSONGame) {
	for ch := range s.watchers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Manager owns the sessions in progress. It is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	maxGames int
	cfg      *config.Config
	store    *storage.Storage
}

// NewManager creates a manager. maxGames of 0 means no limit; store may be
// nil when no archive is configured.
func NewManager(cfg *config.Config, maxGames int, store *storage.Storage) *Manager {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Manager{
		sessions: make(map[string]*session),
		maxGames: maxGames,
		cfg:      cfg,
		store:    store,
	}
}

// Create starts a session from fen, or from the standard position when fen
// is empty.
func (m *Manager) Create(fen string) (*output.JSONGame, error) {
	g := game.New(m.cfg)
	if fen != "" {
		var err error
		if g, err = game.NewFromFEN(fen, m.cfg); err != nil {
			return nil, err
		}
	}
	return m.add(g, "")
}

// Restore starts a session by replaying the archived game id.
func (m *Manager) Restore(id string) (*output.JSONGame, error) {
	if m.store == nil {
		return nil, ErrNoArchive
	}
	rec, err := m.store.LoadGame(id)
	if err != nil {
		return nil, err
	}
	g, err := rec.Game(m.cfg)
	if err != nil {
		return nil, err
	}
	return m.add(g, rec.ID)
}

func (m *Manager) add(g *game.Game, archiveID string) (*output.JSONGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxGames > 0 && len(m.sessions) >= m.maxGames {
		return nil, ErrTooManyGames
	}
	id := uuid.New().String()
	m.sessions[id] = &session{game: g, archiveID: archiveID}
	m.cfg.Logf(config.Chatty, "session %s created", id)

	return snapshot(id, g), nil
}

func snapshot(id string, g *game.Game) *output.JSONGame {
	jg := output.GameToJSON(g)
	jg.ID = id
	return jg
}

func (m *Manager) lookup(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "session %s", id)
	}
	return s, nil
}

// Get returns a snapshot of session id.
func (m *Manager) Get(id string) (*output.JSONGame, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(id, s.game), nil
}

// Play plays one move in session id. A rejected move leaves the session
// untouched.
func (m *Manager) Play(id, text string) (*output.JSONGame, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.game.Play(text); err != nil {
		return nil, err
	}
	snap := snapshot(id, s.game)
	s.publish(snap)
	return snap, nil
}

// Watch subscribes to session id. The channel receives the current
// snapshot, then one after every accepted move, and is closed when the
// session is deleted or stop is called. A watcher that falls behind misses
// updates rather than holding up play.
func (m *Manager) Watch(id string) (updates <-chan *output.JSONGame, stop func(), err error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, errors.Wrapf(ErrSessionNotFound, "session %s", id)
	}

	ch := make(chan *output.JSONGame, watchBuffer)
	ch <- snapshot(id, s.game)
	if s.watchers == nil {
		s.watchers = make(map[chan *output.JSONGame]struct{})
	}
	s.watchers[ch] = struct{}{}

	stop = func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
	}
	return ch, stop, nil
}

// Archive stores session id in the archive and returns the archive ID.
// Archiving the same session again updates the stored game.
func (m *Manager) Archive(id string) (string, error) {
	if m.store == nil {
		return "", ErrNoArchive
	}
	s, err := m.lookup(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := storage.RecordFromGame(s.game)
	rec.ID = s.archiveID
	if err := m.store.SaveGame(rec); err != nil {
		return "", err
	}
	s.archiveID = rec.ID
	return rec.ID, nil
}

// Archived lists the archived games, newest first.
func (m *Manager) Archived() ([]*storage.GameRecord, error) {
	if m.store == nil {
		return nil, ErrNoArchive
	}
	return m.store.ListGames()
}

// DeleteArchived removes the archived game id.
func (m *Manager) DeleteArchived(id string) error {
	if m.store == nil {
		return ErrNoArchive
	}
	return m.store.DeleteGame(id)
}

// Delete ends session id and closes its watchers.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return errors.Wrapf(ErrSessionNotFound, "session %s", id)
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	s.mu.Lock()
	s.closed = true
	for ch := range s.watchers {
		close(ch)
	}
	s.watchers = nil
	s.mu.Unlock()

	m.cfg.Logf(config.Chatty, "session %s deleted", id)
	return nil
}
