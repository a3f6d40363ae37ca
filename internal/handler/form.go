package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/signup-form/internal/apperror"
	"github.com/sakif/signup-form/internal/form"
	"github.com/sakif/signup-form/internal/model"
	"github.com/sakif/signup-form/internal/service"
)

// sessionCookie carries the form session ID between requests. The row
// list lives server-side, so every row mutation and the final submit need
// to find the same session again.
const sessionCookie = "form_session"

// FormHandler exposes the signup form's JSON API.
//
// ENDPOINTS:
//   - POST   /api/form                → start (or restart) a session
//   - GET    /api/form                → current session state
//   - POST   /api/form/techs          → add a technology row
//   - DELETE /api/form/techs/{index}  → remove a row (out of bounds = no-op)
//   - POST   /api/form/submit         → validate; record or field errors
//   - POST   /api/password/strength   → advisory strength check
type FormHandler struct {
	signup *service.SignupService
	logger *slog.Logger
}

func NewFormHandler(signup *service.SignupService, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		signup: signup,
		logger: logger,
	}
}

// HandleStart creates a new form session and sets the session cookie.
// Calling it again abandons the old session, which is how the frontend
// resets the form — the janitor eventually purges the abandoned one.
//
// HTTP: POST /api/form
func (h *FormHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	state, err := h.signup.StartSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    state.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusCreated, state)
}

// HandleGet returns the current session state (rows, phase, last record).
//
// HTTP: GET /api/form
func (h *FormHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	state, err := h.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleAddTech appends an empty technology row and returns the updated
// session state, including the new row's synthetic key.
//
// HTTP: POST /api/form/techs
func (h *FormHandler) HandleAddTech(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := h.signup.AddTechRow(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleRemoveTech deletes the row at {index}. An out-of-bounds index is
// a no-op; either way the response is the current row list, so the
// frontend re-syncs to whatever the server holds.
//
// HTTP: DELETE /api/form/techs/{index}
func (h *FormHandler) HandleRemoveTech(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// A non-numeric index is a malformed request, not an out-of-bounds one.
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "row index must be an integer",
		})
		return
	}

	state, err := h.signup.RemoveTechRow(r.Context(), id, index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleSubmit validates the posted form.
//
// HTTP: POST /api/form/submit
// REQUEST BODY: {"name":"...", "email":"...", "password":"...", "techs":[{"key":"...","title":"..."}]}
//
// RESPONSES:
//
//	200 — the normalized record, pretty-printed
//	422 — {"error":"validation_failed","errors":{"techs[0].title":"...", ...}}
func (h *FormHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var input model.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid submit JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid JSON body",
		})
		return
	}

	record, ferrs, err := h.signup.Submit(r.Context(), id, &input)
	if err != nil {
		writeError(w, err)
		return
	}
	if ferrs != nil {
		writeFieldErrors(w, ferrs)
		return
	}

	// Pretty-printed on purpose: the page shows this body verbatim as
	// the "here is your validated record" output.
	writeIndentedJSON(w, http.StatusOK, record)
}

// strengthRequest / strengthResponse are the strength endpoint's wire
// types. The endpoint is called on every keystroke, is purely advisory,
// and never blocks submission — a weak password still submits.
type strengthRequest struct {
	Password string `json:"password"`
}

type strengthResponse struct {
	Strong bool                `json:"strong"`
	Checks form.StrengthChecks `json:"checks"`
}

// HandleStrength evaluates the advisory password strength criteria.
//
// HTTP: POST /api/password/strength
//
// Stateless and pure, so it bypasses the service layer and calls the
// form package directly.
func (h *FormHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req strengthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid JSON body",
		})
		return
	}

	checks := form.CheckStrength(req.Password)
	writeJSON(w, http.StatusOK, strengthResponse{
		Strong: checks.Strong(),
		Checks: checks,
	})
}

// sessionID extracts the form session ID from the request cookie.
func (h *FormHandler) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return "", apperror.NotFound("form session", "(no cookie)")
	}
	return cookie.Value, nil
}

// session resolves the request's cookie to its stored form state.
func (h *FormHandler) session(r *http.Request) (*form.State, error) {
	id, err := h.sessionID(r)
	if err != nil {
		return nil, err
	}
	state, err := h.signup.GetSession(r.Context(), id)
	if err != nil && errors.Is(err, apperror.ErrNotFound) {
		h.logger.Debug("stale session cookie", slog.String("id", id))
	}
	return state, err
}
