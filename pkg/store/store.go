// Package store persists parse results so they can be fetched again by ID.
//
// Three backends implement [Store]:
//   - [MemoryStore]: process-local, for tests and the default API server
//   - [FileStore]: one JSON file per result, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared API deployments
//
// Usage:
//
//	res := store.NewResult("requirements.txt", reqs, unrecognized)
//	if err := s.Save(ctx, res); err != nil {
//	    return err
//	}
//	again, err := s.Get(ctx, res.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pipreq/pkg/requirement"
)

// ErrNotFound is returned by Get when no result has the requested ID.
var ErrNotFound = errors.New("result not found")

// Result is one stored parse.
type Result struct {
	ID           string                    `json:"id" bson:"_id"`
	Source       string                    `json:"source" bson:"source"`
	Requirements []requirement.Requirement `json:"requirements" bson:"requirements"`
	Unrecognized []int                     `json:"unrecognized,omitempty" bson:"unrecognized,omitempty"`
	CreatedAt    time.Time                 `json:"created_at" bson:"created_at"`
}

// NewResult stamps a new random ID and the current time.
func NewResult(source string, reqs []requirement.Requirement, unrecognized []int) *Result {
	return &Result{
		ID:           uuid.NewString(),
		Source:       source,
		Requirements: reqs,
		Unrecognized: unrecognized,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Store is the interface for result storage backends.
type Store interface {
	// Save stores r, replacing any result with the same ID.
	Save(ctx context.Context, r *Result) error

	// Get retrieves a result by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Result, error)

	// Delete removes a result. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}
