// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → runs the form lifecycle and validation
//	Repository (Data layer)  → holds per-session form state
//
// The service knows nothing about HTTP: its methods take primitives and a
// context, return domain types and domain errors, and could be called
// just as well from a CLI. The handler translates both directions.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/signup-form/internal/form"
	"github.com/sakif/signup-form/internal/model"
	"github.com/sakif/signup-form/internal/repository"
)

// SignupService owns the signup form lifecycle: session creation, row
// mutation, and submission (validate → normalize → store latest record).
//
// Both fields are injected — the caller decides which repository
// implementation to use (in-memory in production, a mock in tests).
type SignupService struct {
	sessions repository.SessionRepository
	schema   *form.Schema
	logger   *slog.Logger
}

func NewSignupService(sessions repository.SessionRepository, logger *slog.Logger) *SignupService {
	return &SignupService{
		sessions: sessions,
		schema:   form.NewSchema(),
		logger:   logger,
	}
}

// StartSession creates a fresh form session (idle, one empty row) and
// stores it. Starting over is how the frontend resets the form, so there
// is no separate "reset" operation.
func (s *SignupService) StartSession(ctx context.Context) (*form.State, error) {
	state := form.NewState()
	if err := s.sessions.Save(ctx, state); err != nil {
		s.logger.Error("failed to save new form session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("starting session: %w", err)
	}

	s.logger.Info("form session started", slog.String("id", state.ID))
	return state, nil
}

// GetSession returns the current state of a session.
// Returns apperror.ErrNotFound for unknown or expired IDs.
func (s *SignupService) GetSession(ctx context.Context, id string) (*form.State, error) {
	return s.sessions.Get(ctx, id)
}

// AddTechRow appends an empty technology row to the session and returns
// the updated state. The new row's synthetic key is generated here, on
// the server, so it stays stable no matter how the frontend re-renders.
func (s *SignupService) AddTechRow(ctx context.Context, id string) (*form.State, error) {
	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	row := state.AddRow()
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("adding tech row: %w", err)
	}

	s.logger.Debug("tech row added",
		slog.String("session", id),
		slog.String("key", row.Key),
		slog.Int("rows", len(state.Rows)),
	)
	return state, nil
}

// RemoveTechRow deletes the row at index and returns the updated state.
// An out-of-bounds index is a no-op, not an error — the frontend and the
// server can briefly disagree about the row count (double-click on the
// remove button), and the response re-syncs them either way.
func (s *SignupService) RemoveTechRow(ctx context.Context, id string, index int) (*form.State, error) {
	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !state.RemoveRow(index) {
		s.logger.Debug("remove ignored, index out of bounds",
			slog.String("session", id),
			slog.Int("index", index),
			slog.Int("rows", len(state.Rows)),
		)
		return state, nil
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("removing tech row: %w", err)
	}
	return state, nil
}

// Submit validates a submission for the given session.
//
// On success the normalized record is returned and stored as the
// session's latest record, replacing any previous one; the session moves
// to the submitted phase. On validation failure the field errors are
// returned and the session drops back to idle — the form stays editable
// and resubmittable, there is no terminal state.
//
// The non-nil error return is reserved for infrastructure problems
// (unknown session, store failure); validation failures are data, not
// errors, so handlers can render them per field.
func (s *SignupService) Submit(ctx context.Context, id string, input *model.SignupInput) (*model.UserRecord, form.FieldErrors, error) {
	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	state.BeginValidation()

	record, ferrs := s.schema.Validate(input)
	if ferrs != nil {
		state.Fail()
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, nil, fmt.Errorf("saving failed submission: %w", err)
		}

		s.logger.Info("submission rejected",
			slog.String("session", id),
			slog.Int("fieldErrors", len(ferrs)),
		)
		return nil, ferrs, nil
	}

	state.Complete(record)
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, nil, fmt.Errorf("saving submission: %w", err)
	}

	// Never log the password — the email is enough to trace a submission.
	s.logger.Info("submission accepted",
		slog.String("session", id),
		slog.String("email", record.Email),
		slog.Int("techs", len(record.Techs)),
	)
	return record, nil, nil
}
