package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"agentview/internal/display"
	"agentview/pkg/db"
)

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	id         TEXT PRIMARY KEY,
	prompt     TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS panels (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	turn_id  TEXT NOT NULL REFERENCES turns(id),
	seq      INTEGER NOT NULL,
	style    TEXT NOT NULL,
	title    TEXT NOT NULL,
	subtitle TEXT NOT NULL,
	content  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_panels_turn ON panels(turn_id, seq);
`

// Store persists finalized panels to SQLite. It implements display.Sink as a
// write-only side channel: live updates are ignored and write failures are
// recorded, never surfaced mid-turn.
type Store struct {
	db *db.DB

	mu      sync.Mutex
	turnID  string
	seq     int
	lastErr error
}

func Open(path string) (*Store, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	if _, err := database.Write().Exec(schema); err != nil {
		database.Close()
		return nil, fmt.Errorf("create transcript schema: %w", err)
	}
	return &Store{db: database}, nil
}

// BeginTurn records a new turn and scopes subsequent panels to it.
func (s *Store) BeginTurn(prompt string) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.turnID = id
	s.seq = 0
	s.mu.Unlock()

	err := s.db.WithTx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO turns (id, prompt, started_at) VALUES (?, ?, ?)",
			id, prompt, time.Now().UTC(),
		)
		return err
	})
	s.record(err)
	return id
}

func (s *Store) UpdateLive(content, title, subtitle string) {}

func (s *Store) ClearLive() {}

func (s *Store) FinalizePanel(p display.Panel) {
	s.mu.Lock()
	turnID := s.turnID
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if turnID == "" {
		return
	}

	err := s.db.WithTx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO panels (turn_id, seq, style, title, subtitle, content) VALUES (?, ?, ?, ?, ?, ?)",
			turnID, seq, string(p.Style), p.Title, p.Subtitle, p.Content,
		)
		return err
	})
	s.record(err)
}

// Err returns the most recent write failure, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) record(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Store) Close() error {
	return s.db.Close()
}
