// Package storage archives games in a BadgerDB key-value store. Each game is
// kept as JSON under "game/<id>"; a stored game can be restored by
// replaying its moves from its starting position.
package storage

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
	"github.com/lgbarn/ascii-chess-go/internal/game"
)

const keyPrefix = "game/"

// ErrGameNotFound is returned when no game is stored under the given ID.
var ErrGameNotFound = errors.New("game not found")

// GameRecord is an archived game.
type GameRecord struct {
	ID        string    `json:"id"`
	StartFEN  string    `json:"start_fen,omitempty"`
	Moves     []string  `json:"moves"`
	FEN       string    `json:"fen"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordFromGame captures g for archiving. The ID is left for SaveGame to
// fill in.
func RecordFromGame(g *game.Game) *GameRecord {
	return &GameRecord{
		StartFEN: g.StartFEN(),
		Moves:    g.Moves(),
		FEN:      g.FEN(),
	}
}

// Game rebuilds the archived game by replaying its moves.
func (r *GameRecord) Game(cfg *config.Config) (*game.Game, error) {
	g := game.New(cfg)
	if r.StartFEN != "" {
		var err error
		if g, err = game.NewFromFEN(r.StartFEN, cfg); err != nil {
			return nil, errors.Wrapf(err, "restoring game %s", r.ID)
		}
	}
	if err := g.Replay(r.Moves); err != nil {
		return nil, errors.Wrapf(err, "restoring game %s", r.ID)
	}
	return g, nil
}

// Options selects where the archive lives.
type Options struct {
	Dir        string
	InMemory   bool
	SyncWrites bool
}

// OptionsFromConfig converts the archive configuration.
func OptionsFromConfig(cfg *config.StorageConfig) Options {
	return Options{Dir: cfg.Dir, InMemory: cfg.InMemory, SyncWrites: cfg.SyncWrites}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens (creating if needed) the archive described by opts.
func Open(opts Options) (*Storage, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts = bopts.WithSyncWrites(opts.SyncWrites)
	bopts.Logger = nil // Disable logging

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening archive %q", opts.Dir)
	}

	return &Storage{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(keyPrefix + id)
}

// SaveGame stores rec. A record without an ID gets a fresh one; saving a
// record with a known ID replaces the stored game but keeps its creation
// time.
func (s *Storage) SaveGame(rec *GameRecord) error {
	now := s.now()
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	return s.db.Update(func(txn *badger.Txn) error {
		if existing, err := getRecord(txn, rec.ID); err == nil {
			rec.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, ErrGameNotFound) {
			return err
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(gameKey(rec.ID), data)
	})
}

// LoadGame returns the game stored under id.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	var rec *GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, id)
		return err
	})
	return rec, err
}

func getRecord(txn *badger.Txn, id string) (*GameRecord, error) {
	item, err := txn.Get(gameKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrapf(ErrGameNotFound, "game %s", id)
	}
	if err != nil {
		return nil, err
	}

	rec := &GameRecord{}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, rec)
	})
	return rec, err
}

// ListGames returns every archived game, most recently updated first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var games []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &GameRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(games, func(a, b *GameRecord) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return games, nil
}

// DeleteGame removes the game stored under id.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.Wrapf(ErrGameNotFound, "game %s", id)
			}
			return err
		}
		return txn.Delete(gameKey(id))
	})
}
