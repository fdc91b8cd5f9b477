package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_title_store.go -package=mocks paperqa/internal/storage TitleStore

import (
	"context"
	"database/sql"
	"fmt"
)

// TitleStore defines the interface for the title cache. The ingestion
// pipeline reads the whole cache once per run and writes back new records
// after the sweep, so there is no per-filename lookup.
type TitleStore interface {
	// LoadAll returns the whole cache as a map keyed by filename.
	LoadAll(ctx context.Context) (map[string]TitleRecord, error)
	// UpsertAll writes a batch of records in a single transaction.
	UpsertAll(ctx context.Context, records []TitleRecord) error
}

// TitleRepo provides methods for title cache operations.
// It implements the TitleStore interface.
type TitleRepo struct {
	db *sql.DB
}

// NewTitleRepo creates a new TitleRepo.
func NewTitleRepo(db *sql.DB) *TitleRepo {
	return &TitleRepo{db: db}
}

// LoadAll returns the whole title cache keyed by filename.
// Returns an empty map when the cache is empty (not an error).
func (r *TitleRepo) LoadAll(ctx context.Context) (map[string]TitleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT filename, title, provenance, needs_manual_review FROM paper_titles",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query title records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make(map[string]TitleRecord)
	for rows.Next() {
		var record TitleRecord
		if err := rows.Scan(&record.Filename, &record.Title, &record.Provenance, &record.NeedsManualReview); err != nil {
			return nil, fmt.Errorf("failed to scan title record: %w", err)
		}
		records[record.Filename] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate title records: %w", err)
	}
	return records, nil
}

// UpsertAll writes a batch of records in a single transaction, replacing any
// existing rows for the same filenames.
func (r *TitleRepo) UpsertAll(ctx context.Context, records []TitleRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO paper_titles (filename, title, provenance, needs_manual_review)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(filename) DO UPDATE SET
			title = excluded.title,
			provenance = excluded.provenance,
			needs_manual_review = excluded.needs_manual_review`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, record.Filename, record.Title, record.Provenance, record.NeedsManualReview); err != nil {
			return fmt.Errorf("failed to upsert title for %s: %w", record.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit title upserts: %w", err)
	}
	return nil
}
