package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyResults    = "results"
	gameKeyPrefix = "game:"
)

// GameRecord is a finished game: the moves in coordinate notation, the
// result, and when it was played.
type GameRecord struct {
	ID       string    `json:"id"`
	Moves    []string  `json:"moves"`
	Result   string    `json:"result"`
	PlayedAt time.Time `json:"played_at"`
}

// Results tallies finished games by outcome.
type Results struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Draws       int `json:"draws"`
}

// Storage wraps BadgerDB for persistent game records.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) a store in the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own logging is noise here

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// OpenDefault opens the store in the platform database directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame stores a finished game record under its ID and folds its result
// into the aggregate tallies.
func (s *Storage) SaveGame(rec GameRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("game record needs an ID")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	results, err := s.LoadResults()
	if err != nil {
		return err
	}
	results.GamesPlayed++
	switch rec.Result {
	case "1-0":
		results.WhiteWins++
	case "0-1":
		results.BlackWins++
	case "1/2-1/2":
		results.Draws++
	}

	resultsData, err := json.Marshal(results)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(gameKeyPrefix+rec.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyResults), resultsData)
	})
}

// LoadGame loads a game record by ID.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	var rec GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gameKeyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// ListGameIDs returns the IDs of all stored games.
func (s *Storage) ListGameIDs() ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})

	return ids, err
}

// LoadResults loads the aggregate tallies, empty if none are stored yet.
func (s *Storage) LoadResults() (*Results, error) {
	results := &Results{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyResults))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, results)
		})
	})

	return results, err
}
