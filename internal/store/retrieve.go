// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdiddy/patent-intake/internal/apperr"
	"github.com/pdiddy/patent-intake/pkg/types"
)

// Get returns one submission with its translations. A missing ID yields
// apperr.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.Submission, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM submissions WHERE id = ?`, id)

	sub, err := scanSubmission(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Submission{}, fmt.Errorf("%w: submission %s", apperr.ErrNotFound, id)
		}
		return types.Submission{}, fmt.Errorf("looking up submission: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT field, text, source, quality FROM translations
		 WHERE submission_id = ? ORDER BY rowid`, id)
	if err != nil {
		return types.Submission{}, fmt.Errorf("querying translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ft     types.FieldTranslation
			source string
		)
		if err := rows.Scan(&ft.Field, &ft.Text, &source, &ft.Quality); err != nil {
			return types.Submission{}, fmt.Errorf("scanning translation: %w", err)
		}
		ft.Source = types.TranslationSource(source)
		sub.Translations = append(sub.Translations, ft)
	}
	return sub, rows.Err()
}

// List returns submissions newest first, without their translations.
// limit zero uses the store default.
func (s *Store) List(ctx context.Context, limit int) ([]types.Submission, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` FROM submissions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

// Search runs an FTS5 query over patent number, native title, and native
// abstract, ranked by relevance.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Submission, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` FROM submissions_fts
		 JOIN submissions ON submissions.rowid = submissions_fts.rowid
		 WHERE submissions_fts MATCH ?
		 ORDER BY submissions_fts.rank LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching submissions: %w", err)
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

const selectColumns = `SELECT submissions.id, submissions.patent_number, submissions.title_native, title_translated,
	submissions.abstract_native, abstract_translated, applicants, inventors,
	application_date, publication_date, classification_codes,
	record_source, retrieved_at, source_file, created_at`

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (types.Submission, error) {
	var (
		sub          types.Submission
		applicants   sql.NullString
		inventors    sql.NullString
		appDate      string
		pubDate      string
		codes        sql.NullString
		recordSource string
		retrievedAt  string
		createdAt    string
	)

	err := row.Scan(
		&sub.ID, &sub.Record.PatentNumber,
		&sub.Record.TitleNative, &sub.Record.TitleTranslated,
		&sub.Record.AbstractNative, &sub.Record.AbstractTranslated,
		&applicants, &inventors, &appDate, &pubDate, &codes,
		&recordSource, &retrievedAt, &sub.SourceFile, &createdAt,
	)
	if err != nil {
		return types.Submission{}, err
	}

	if applicants.Valid {
		json.Unmarshal([]byte(applicants.String), &sub.Record.Applicants)
	}
	if inventors.Valid {
		json.Unmarshal([]byte(inventors.String), &sub.Record.Inventors)
	}
	if codes.Valid {
		json.Unmarshal([]byte(codes.String), &sub.Record.ClassificationCodes)
	}

	sub.Record.Source = types.RecordSource(recordSource)
	sub.Record.ApplicationDate = parseDate(appDate)
	sub.Record.PublicationDate = parseDate(pubDate)
	sub.Record.RetrievedAt = parseDateTime(retrievedAt)
	sub.CreatedAt = parseDateTime(createdAt)

	return sub, nil
}

func collectSubmissions(rows *sql.Rows) ([]types.Submission, error) {
	var subs []types.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseDateTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
