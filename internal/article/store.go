// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/article-engine/pkg/types"
)

const defaultDBPath = "articles.db"

// ErrNotFound reports that no article is stored under a session identifier.
var ErrNotFound = errors.New("article not found")

// Store persists articles keyed by session identifier in SQLite.
type Store struct {
	db *sql.DB
}

// SessionInfo summarizes one stored article.
type SessionInfo struct {
	SessionID string
	Topic     string
	UpdatedAt time.Time
}

// NewStore opens or creates the article database at cfg.Path and ensures
// the schema exists.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultDBPath
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS articles (
		session_id TEXT PRIMARY KEY,
		topic      TEXT NOT NULL,
		sections   TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Save upserts the article under sessionID. Sections are stored as ordered
// JSON so key order survives the round trip.
func (s *Store) Save(ctx context.Context, sessionID string, art *types.Article) error {
	sectionsJSON, err := json.Marshal(art.Sections)
	if err != nil {
		return fmt.Errorf("encoding sections: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO articles (session_id, topic, sections, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			topic=excluded.topic, sections=excluded.sections, updated_at=excluded.updated_at`,
		sessionID, art.Topic, string(sectionsJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving article %s: %w", sessionID, err)
	}
	return nil
}

// Load returns the article stored under sessionID, or ErrNotFound.
func (s *Store) Load(ctx context.Context, sessionID string) (*types.Article, error) {
	var topic, sectionsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT topic, sections FROM articles WHERE session_id = ?`, sessionID,
	).Scan(&topic, &sectionsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading article %s: %w", sessionID, err)
	}

	sections := types.NewSections()
	if err := json.Unmarshal([]byte(sectionsJSON), sections); err != nil {
		return nil, fmt.Errorf("decoding sections for %s: %w", sessionID, err)
	}
	return &types.Article{Topic: topic, Sections: sections}, nil
}

// Delete removes the article stored under sessionID. Deleting a missing
// session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM articles WHERE session_id = ?`, sessionID,
	); err != nil {
		return fmt.Errorf("deleting article %s: %w", sessionID, err)
	}
	return nil
}

// List returns a summary of all stored articles, most recently updated
// first.
func (s *Store) List(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, topic, updated_at FROM articles ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var updated string
		if err := rows.Scan(&info.SessionID, &info.Topic, &updated); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, info)
	}
	return out, rows.Err()
}
