// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists intake submissions in a local SQLite database
// and provides full-text search over their titles and abstracts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/patent-intake/pkg/types"
)

const dbFile = "intake.db"

// Store manages the submission SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the submission database at
// dataDir/intake.db. It creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			patent_number TEXT,
			title_native TEXT,
			title_translated TEXT,
			abstract_native TEXT,
			abstract_translated TEXT,
			applicants TEXT,
			inventors TEXT,
			application_date TEXT,
			publication_date TEXT,
			classification_codes TEXT,
			record_source TEXT,
			retrieved_at TEXT,
			source_file TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_patent_number
			ON submissions(patent_number)`,
		`CREATE TABLE IF NOT EXISTS translations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			submission_id TEXT NOT NULL REFERENCES submissions(id),
			field TEXT NOT NULL,
			text TEXT NOT NULL,
			source TEXT NOT NULL,
			quality REAL NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_translations_submission_id
			ON translations(submission_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='submissions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE submissions_fts USING fts5(
				patent_number, title_native, abstract_native,
				content=submissions, content_rowid=rowid)`,
			`CREATE TRIGGER submissions_ai AFTER INSERT ON submissions BEGIN
				INSERT INTO submissions_fts(rowid, patent_number, title_native, abstract_native)
				VALUES (new.rowid, new.patent_number, new.title_native, new.abstract_native);
			END`,
			`CREATE TRIGGER submissions_ad AFTER DELETE ON submissions BEGIN
				INSERT INTO submissions_fts(submissions_fts, rowid, patent_number, title_native, abstract_native)
				VALUES('delete', old.rowid, old.patent_number, old.title_native, old.abstract_native);
			END`,
			`CREATE TRIGGER submissions_au AFTER UPDATE ON submissions BEGIN
				INSERT INTO submissions_fts(submissions_fts, rowid, patent_number, title_native, abstract_native)
				VALUES('delete', old.rowid, old.patent_number, old.title_native, old.abstract_native);
				INSERT INTO submissions_fts(rowid, patent_number, title_native, abstract_native)
				VALUES (new.rowid, new.patent_number, new.title_native, new.abstract_native);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save persists a record as a new submission and returns it with its
// generated ID and creation time filled in.
func (s *Store) Save(ctx context.Context, rec types.PatentRecord, sourceFile string) (types.Submission, error) {
	sub := types.Submission{
		ID:         uuid.NewString(),
		Record:     rec,
		SourceFile: sourceFile,
		CreatedAt:  time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Submission{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	applicantsJSON, _ := json.Marshal(rec.Applicants)
	inventorsJSON, _ := json.Marshal(rec.Inventors)
	codesJSON, _ := json.Marshal(rec.ClassificationCodes)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO submissions (
			id, patent_number, title_native, title_translated,
			abstract_native, abstract_translated, applicants, inventors,
			application_date, publication_date, classification_codes,
			record_source, retrieved_at, source_file, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, rec.PatentNumber, rec.TitleNative, rec.TitleTranslated,
		rec.AbstractNative, rec.AbstractTranslated,
		string(applicantsJSON), string(inventorsJSON),
		dateString(rec.ApplicationDate), dateString(rec.PublicationDate),
		string(codesJSON), string(rec.Source),
		dateTimeString(rec.RetrievedAt), sourceFile,
		sub.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.Submission{}, fmt.Errorf("inserting submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Submission{}, fmt.Errorf("committing submission: %w", err)
	}
	return sub, nil
}

// SaveTranslation attaches a translation of one field to an existing
// submission.
func (s *Store) SaveTranslation(ctx context.Context, submissionID, field string, tr types.TranslationResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translations (submission_id, field, text, source, quality, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		submissionID, field, tr.Text, string(tr.Source), tr.Quality,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting translation: %w", err)
	}
	return nil
}

// dateString renders a date column value. The zero time stores as the
// empty string so absence round-trips.
func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func dateTimeString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
