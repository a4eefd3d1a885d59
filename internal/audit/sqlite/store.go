// Package sqlite is the SQLite implementation of the audit store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"codescope/internal/audit"
)

// Store is a SQLite implementation of audit.Store.
type Store struct {
	db *sql.DB
}

var _ audit.Store = (*Store)(nil)

// New creates a new SQLite audit store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			request_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			source_bucket TEXT,
			source_key TEXT,
			file_type TEXT,
			output_location TEXT,
			prompt_tokens INTEGER,
			duration_ns INTEGER,
			error_message TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_request ON analyses(request_id)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_status ON analyses(status)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

func (s *Store) SaveAnalysis(ctx context.Context, entry *audit.Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `INSERT INTO analyses (id, request_id, kind, status, source_bucket, source_key,
	          file_type, output_location, prompt_tokens, duration_ns, error_message, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.RequestID, entry.Kind, entry.Status,
		entry.SourceBucket, entry.SourceKey, entry.FileType, entry.OutputLocation,
		entry.PromptTokens, entry.Duration.Nanoseconds(), entry.ErrorMessage, entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]*audit.Entry, error) {
	if limit == 0 {
		limit = 100
	}

	query := `SELECT id, request_id, kind, status, source_bucket, source_key,
	          file_type, output_location, prompt_tokens, duration_ns, error_message, created_at
	          FROM analyses ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		var entry audit.Entry
		var sourceBucket, sourceKey, fileType, outputLocation, errorMessage sql.NullString
		var durationNs int64

		if err := rows.Scan(&entry.ID, &entry.RequestID, &entry.Kind, &entry.Status,
			&sourceBucket, &sourceKey, &fileType, &outputLocation,
			&entry.PromptTokens, &durationNs, &errorMessage, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}

		entry.SourceBucket = sourceBucket.String
		entry.SourceKey = sourceKey.String
		entry.FileType = fileType.String
		entry.OutputLocation = outputLocation.String
		entry.ErrorMessage = errorMessage.String
		entry.Duration = time.Duration(durationNs)

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
