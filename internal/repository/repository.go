// Package repository defines the storage interface for form sessions.
//
// The service layer depends on this interface, never on a concrete store.
// Today the only implementation is the in-memory one (submissions are
// deliberately not persisted — a session's record is replaced on every
// submission and vanishes on restart), but the interface keeps the
// service testable with a hand-written mock.
package repository

import (
	"context"
	"time"

	"github.com/sakif/signup-form/internal/form"
)

type SessionRepository interface {
	// Get returns the session with the given ID, or apperror.ErrNotFound.
	Get(ctx context.Context, id string) (*form.State, error)

	// Save creates or replaces the session keyed by state.ID.
	Save(ctx context.Context, state *form.State) error

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// PurgeIdle drops sessions not touched since the cutoff and reports
	// how many were removed.
	PurgeIdle(ctx context.Context, cutoff time.Time) (int, error)
}
