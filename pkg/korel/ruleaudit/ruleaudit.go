// Package ruleaudit is an optional, SQLite-backed audit trail of rule
// firings and fact assertions. It implements engine.Recorder: the core
// engine's semantics are identical whether or not one is attached. This is
// the "persistence" the engine's specification places out of scope (§1) as
// an external collaborator.
package ruleaudit

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	_ "modernc.org/sqlite"

	"github.com/cognicore/korel-rules/pkg/korel/engine"
)

// Store persists fired rules and newly asserted facts to a SQLite database.
type Store struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Open opens (creating if necessary) a SQLite database at path with WAL
// mode enabled and the audit schema created, mirroring the teacher's
// OpenSQLite (pragma + schema-on-open).
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS rule_firings (
	id TEXT PRIMARY KEY,
	conclusion_symbol TEXT NOT NULL,
	conclusion_value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fact_assertions (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	value TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *Store) nextID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// RuleFired implements engine.Recorder by inserting a row describing the
// conclusion a rule produced. Insert errors are discarded rather than
// propagated or logged, matching the engine's contract that a Recorder's
// presence never changes inference outcomes.
func (s *Store) RuleFired(rule engine.Rule, conclusion engine.Fact) {
	_, _ = s.db.Exec(
		"INSERT OR IGNORE INTO rule_firings (id, conclusion_symbol, conclusion_value) VALUES (?, ?, ?)",
		s.nextID(), conclusion.Symbol.Name, conclusion.Value.String(),
	)
}

// FactAsserted implements engine.Recorder by inserting a row for every
// fact added to the knowledge base, whether via AssertFact directly or via
// a rule firing.
func (s *Store) FactAsserted(fact engine.Fact) {
	_, _ = s.db.Exec(
		"INSERT OR IGNORE INTO fact_assertions (id, symbol, value) VALUES (?, ?, ?)",
		s.nextID(), fact.Symbol.Name, fact.Value.String(),
	)
}

// CountFactAssertions returns the number of fact-assertion rows recorded,
// for tests and diagnostics.
func (s *Store) CountFactAssertions(ctx context.Context) (int, error) {
	var n int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fact_assertions")
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("ruleaudit: count fact assertions: %w", err)
	}
	return n, nil
}
