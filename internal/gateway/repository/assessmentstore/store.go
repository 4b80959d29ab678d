package assessmentstore

import (
	"context"
	"errors"
	"time"

	"readiness/internal/assessment"
)

// Record is one cached assessment run keyed by input fingerprint. Saving an
// existing fingerprint supersedes the previous record.
type Record struct {
	Fingerprint string                                `json:"fingerprint"`
	Input       assessment.AssessmentInput            `json:"input"`
	Results     map[string]assessment.SpecialistResult `json:"results"`
	Report      assessment.Report                     `json:"report"`
	Formatted   string                                `json:"formatted"`
	CreatedAt   time.Time                             `json:"createdAt"`
	UpdatedAt   time.Time                             `json:"updatedAt"`
}

// ErrNotFound marks a fingerprint with no stored record.
var ErrNotFound = errors.New("assessment record not found")

// Store persists assessment records by fingerprint.
type Store interface {
	Find(ctx context.Context, fingerprint string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
}
