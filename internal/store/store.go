package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avdmeer/woordlicht/internal/timeline"
)

// Store caches transcribed timelines keyed by a content hash of the media
// file. Re-running on unchanged media reuses the cached timeline; editing
// the media changes the key, so stale timelines can never be picked up
// silently. Invalidation is always explicit.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS timelines (
		media_hash TEXT PRIMARY KEY,
		media_path TEXT NOT NULL,
		language TEXT,
		words TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores (or replaces) the timeline for a media hash.
func (s *Store) Put(mediaHash, mediaPath, language string, words timeline.Timeline) error {
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO timelines (media_hash, media_path, language, words, created_at)
	VALUES (?, ?, ?, ?, ?)
	`

	if _, err := s.db.Exec(query, mediaHash, mediaPath, language, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to store timeline: %w", err)
	}

	return nil
}

// Get returns the cached timeline for a media hash, or ok=false when the
// hash is unknown.
func (s *Store) Get(mediaHash string) (timeline.Timeline, bool, error) {
	var data string
	err := s.db.QueryRow(`SELECT words FROM timelines WHERE media_hash = ?`, mediaHash).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query timeline: %w", err)
	}

	var words timeline.Timeline
	if err := json.Unmarshal([]byte(data), &words); err != nil {
		return nil, false, fmt.Errorf("corrupt cached timeline: %w", err)
	}

	return words, true, nil
}

// Invalidate removes the cached timeline for a media hash.
func (s *Store) Invalidate(mediaHash string) error {
	if _, err := s.db.Exec(`DELETE FROM timelines WHERE media_hash = ?`, mediaHash); err != nil {
		return fmt.Errorf("failed to invalidate timeline: %w", err)
	}
	return nil
}

// HashFile computes the cache key for a media file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
