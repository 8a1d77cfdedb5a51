package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ciphernaut/acma-bandplan-db/model"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS allocations(
		frequency_range TEXT PRIMARY KEY,
		unit TEXT,
		region1 TEXT,
		region2 TEXT,
		region3 TEXT,
		australian_table_of_allocations TEXT,
		common TEXT,
		footnote_ref TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS australian_footnotes(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ref TEXT UNIQUE,
		text TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS international_footnotes(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ref TEXT UNIQUE,
		text TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS extraction_runs(
		run_id TEXT PRIMARY KEY,
		source TEXT,
		started_at TEXT,
		finished_at TEXT,
		allocations INTEGER,
		footnotes INTEGER
	)`,
}

var tables = []string{"allocations", "australian_footnotes", "international_footnotes"}

// footnoteTable maps a taxonomy to its table
func footnoteTable(tax model.Taxonomy) (string, error) {
	switch tax {
	case model.Domestic:
		return "australian_footnotes", nil
	case model.International:
		return "international_footnotes", nil
	}
	return "", fmt.Errorf("unknown footnote taxonomy %d", tax)
}

// SQLite is a Sink backed by a SQLite database.
type SQLite struct {
	Db *sql.DB
}

var _ Sink = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at path and makes sure
// the schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database %s: %w", path, err)
	}

	s := &SQLite{Db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// EnsureSchema creates missing tables
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.Db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}
	return nil
}

// Reset drops the record tables and recreates them empty. Run history is
// kept.
func (s *SQLite) Reset(ctx context.Context) error {
	for _, t := range tables {
		if _, err := s.Db.ExecContext(ctx, "DROP TABLE IF EXISTS "+t); err != nil {
			return fmt.Errorf("error dropping %s: %w", t, err)
		}
	}
	return s.EnsureSchema(ctx)
}

// PutAllocations inserts records in a single transaction, ignoring ones
// whose frequency range already exists.
func (s *SQLite) PutAllocations(ctx context.Context, recs []model.AllocationRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO allocations (
			frequency_range, unit, region1, region2, region3,
			australian_table_of_allocations, common, footnote_ref
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing allocation insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range recs {
		res, err := stmt.ExecContext(ctx,
			r.FrequencyRange,
			string(r.Unit),
			r.Region1,
			r.Region2,
			r.Region3,
			r.Description,
			r.Common,
			nullable(r.FootnoteRefList()),
		)
		if err != nil {
			return 0, fmt.Errorf("error inserting allocation %q: %w", r.FrequencyRange, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}
	return inserted, nil
}

// PutFootnotes inserts records of one taxonomy in a single transaction,
// ignoring references that already exist.
func (s *SQLite) PutFootnotes(ctx context.Context, tax model.Taxonomy, recs []model.FootnoteRecord) (int, error) {
	table, err := footnoteTable(tax)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}

	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO `+table+`(ref, text) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing footnote insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range recs {
		res, err := stmt.ExecContext(ctx, r.Reference, r.Text)
		if err != nil {
			return 0, fmt.Errorf("error inserting footnote %q: %w", r.Reference, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}
	return inserted, nil
}

// Allocations returns stored allocations in insertion order
func (s *SQLite) Allocations(ctx context.Context) ([]model.AllocationRecord, error) {
	rows, err := s.Db.QueryContext(ctx,
		`SELECT frequency_range, unit, region1, region2, region3,
			australian_table_of_allocations, common, footnote_ref
		FROM allocations ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("error querying allocations: %w", err)
	}
	defer rows.Close()

	var out []model.AllocationRecord
	for rows.Next() {
		var (
			r    model.AllocationRecord
			unit string
			refs sql.NullString
		)
		if err := rows.Scan(&r.FrequencyRange, &unit, &r.Region1, &r.Region2, &r.Region3,
			&r.Description, &r.Common, &refs); err != nil {
			return nil, fmt.Errorf("error scanning allocation: %w", err)
		}
		r.Unit = model.Unit(unit)
		if refs.Valid && refs.String != "" {
			r.FootnoteRefs = strings.Split(refs.String, ",")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Footnotes returns stored footnotes of a taxonomy in insertion order
func (s *SQLite) Footnotes(ctx context.Context, tax model.Taxonomy) ([]model.FootnoteRecord, error) {
	table, err := footnoteTable(tax)
	if err != nil {
		return nil, err
	}
	rows, err := s.Db.QueryContext(ctx, `SELECT ref, text FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", table, err)
	}
	defer rows.Close()

	var out []model.FootnoteRecord
	for rows.Next() {
		var r model.FootnoteRecord
		if err := rows.Scan(&r.Reference, &r.Text); err != nil {
			return nil, fmt.Errorf("error scanning footnote: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run is one recorded extraction
type Run struct {
	ID          string
	Source      string
	StartedAt   time.Time
	FinishedAt  time.Time
	Allocations int
	Footnotes   int
}

// BeginRun records the start of an extraction and returns its id
func (s *SQLite) BeginRun(ctx context.Context, source string) (string, error) {
	id := uuid.New().String()
	_, err := s.Db.ExecContext(ctx,
		`INSERT INTO extraction_runs(run_id, source, started_at) VALUES (?, ?, ?)`,
		id, source, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("error recording run: %w", err)
	}
	return id, nil
}

// FinishRun records the end of an extraction
func (s *SQLite) FinishRun(ctx context.Context, id string, allocations, footnotes int) error {
	res, err := s.Db.ExecContext(ctx,
		`UPDATE extraction_runs SET finished_at = ?, allocations = ?, footnotes = ? WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), allocations, footnotes, id)
	if err != nil {
		return fmt.Errorf("error finishing run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("error finishing run: unknown run %s", id)
	}
	return nil
}

// Runs returns the recorded extractions, oldest first
func (s *SQLite) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.Db.QueryContext(ctx,
		`SELECT run_id, source, started_at, finished_at, allocations, footnotes
		FROM extraction_runs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("error querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished sql.NullString
			allocs, notes     sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Source, &started, &finished, &allocs, &notes); err != nil {
			return nil, fmt.Errorf("error scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started.String)
		if finished.Valid {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished.String)
		}
		r.Allocations = int(allocs.Int64)
		r.Footnotes = int(notes.Int64)
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
