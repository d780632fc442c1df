// Package sqlite persists finished-game results to a local SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"pagoda/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id TEXT PRIMARY KEY,
	game TEXT NOT NULL,
	score INTEGER NOT NULL DEFAULT 0,
	moves INTEGER NOT NULL DEFAULT 0,
	won INTEGER NOT NULL DEFAULT 0,
	detail TEXT NOT NULL DEFAULT '',
	played_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scores_game ON scores(game, played_at DESC);
`

// ErrNotFound is returned when no score matches a query.
var ErrNotFound = errors.New("score not found")

// Result is one finished game.
type Result struct {
	ID       string
	Game     string // "merge" or "hanoi"
	Score    int
	Moves    int
	Won      bool
	Detail   string // free-form: board size, tile count, solver name
	PlayedAt time.Time
}

// Store provides access to the score history.
type Store struct {
	db *sql.DB
}

// Open opens the score database at path, creating the file and schema as
// needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating score directory: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening score database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing score schema: %w", err)
	}
	log.Debug(log.CatDB, "score database opened", "path", path)
	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store. Used by tests and --no-save runs.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening score database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing score schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a result. A missing ID or timestamp is filled in.
func (s *Store) Save(r Result) (Result, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}

	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO scores (id, game, score, moves, won, detail, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Game, r.Score, r.Moves, won, r.Detail, r.PlayedAt.Unix(),
	)
	if err != nil {
		return Result{}, fmt.Errorf("saving score: %w", err)
	}
	log.Debug(log.CatDB, "score saved", "game", r.Game, "score", r.Score)
	return r, nil
}

// scanResult scans a row into a Result.
func scanResult(scanner interface{ Scan(...any) error }) (Result, error) {
	var (
		r        Result
		won      int
		playedAt int64
	)
	err := scanner.Scan(&r.ID, &r.Game, &r.Score, &r.Moves, &won, &r.Detail, &playedAt)
	if err != nil {
		return Result{}, err
	}
	r.Won = won != 0
	r.PlayedAt = time.Unix(playedAt, 0)
	return r, nil
}

const resultColumns = `id, game, score, moves, won, detail, played_at`

// List returns results for a game, newest first. An empty game returns
// everything. limit <= 0 means no limit.
func (s *Store) List(game string, limit int) ([]Result, error) {
	query := `SELECT ` + resultColumns + ` FROM scores`
	args := []any{}
	if game != "" {
		query += ` WHERE game = ?`
		args = append(args, game)
	}
	query += ` ORDER BY played_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning score row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating score rows: %w", err)
	}
	return results, nil
}

// Best returns the highest-scoring result for a game.
func (s *Store) Best(game string) (Result, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+` FROM scores WHERE game = ?
		 ORDER BY score DESC, played_at DESC LIMIT 1`,
		game,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("finding best score: %w", err)
	}
	return r, nil
}
