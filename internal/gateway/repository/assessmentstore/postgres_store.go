package assessmentstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS assessments (
    id SERIAL PRIMARY KEY,
    fingerprint TEXT NOT NULL UNIQUE,
    input JSONB NOT NULL,
    results JSONB NOT NULL DEFAULT '{}'::jsonb,
    report JSONB NOT NULL,
    formatted TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_assessments_fingerprint ON assessments(fingerprint);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Find(ctx context.Context, fingerprint string) (*Record, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, fmt.Errorf("fingerprint is required")
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	var (
		rec     Record
		input   []byte
		results []byte
		report  []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT fingerprint, input, results, report, formatted, created_at, updated_at FROM assessments WHERE fingerprint=$1`,
		fingerprint,
	).Scan(&rec.Fingerprint, &input, &results, &report, &rec.Formatted, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(input, &rec.Input); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &rec.Results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
	}
	if err := json.Unmarshal(report, &rec.Report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) Save(ctx context.Context, rec *Record) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	fingerprint := strings.TrimSpace(rec.Fingerprint)
	if fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	if err := s.ensureSchema(); err != nil {
		return err
	}
	input, err := json.Marshal(rec.Input)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	results, err := json.Marshal(rec.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	report, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO assessments (fingerprint, input, results, report, formatted, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (fingerprint)
DO UPDATE SET input=EXCLUDED.input, results=EXCLUDED.results, report=EXCLUDED.report, formatted=EXCLUDED.formatted, updated_at=EXCLUDED.updated_at
`, fingerprint, input, results, report, rec.Formatted, time.Now())
	return err
}
