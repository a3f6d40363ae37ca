package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/signup-form/internal/form"
	"github.com/sakif/signup-form/internal/handler"
	"github.com/sakif/signup-form/internal/model"
	"github.com/sakif/signup-form/internal/repository/memory"
	"github.com/sakif/signup-form/internal/service"
)

// newTestRouter wires a FormHandler onto a chi router exactly like the
// server package does, backed by the real in-memory store. Handler tests
// go through the router so URL params and cookies behave as in production.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := service.NewSignupService(memory.New(), logger)
	h := handler.NewFormHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/form", h.HandleStart)
		r.Get("/form", h.HandleGet)
		r.Post("/form/techs", h.HandleAddTech)
		r.Delete("/form/techs/{index}", h.HandleRemoveTech)
		r.Post("/form/submit", h.HandleSubmit)
		r.Post("/password/strength", h.HandleStrength)
	})
	return r
}

// startSession POSTs /api/form and returns the session cookie to attach
// to follow-up requests.
func startSession(t *testing.T, router *chi.Mux) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/form", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	for _, c := range rr.Result().Cookies() {
		if c.Name == "form_session" {
			return c
		}
	}
	t.Fatal("no form_session cookie set")
	return nil
}

func TestHandleStart(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/form", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var state form.State
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, form.PhaseIdle, state.Phase)
	assert.Len(t, state.Rows, 1, "a new form starts with one empty row")
}

func TestHandleAddAndRemoveTech(t *testing.T) {
	router := newTestRouter(t)
	cookie := startSession(t, router)

	t.Run("add row", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/form/techs", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var state form.State
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
		assert.Len(t, state.Rows, 2)
		assert.NotEqual(t, state.Rows[0].Key, state.Rows[1].Key)
	})

	t.Run("remove row", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/form/techs/1", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var state form.State
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
		assert.Len(t, state.Rows, 1)
	})

	t.Run("remove out of bounds is a no-op", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/form/techs/42", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		// Still 200 — the response carries the unchanged row list.
		assert.Equal(t, http.StatusOK, rr.Code)

		var state form.State
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
		assert.Len(t, state.Rows, 1)
	})

	t.Run("non-numeric index", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/form/techs/abc", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleSubmit_Valid(t *testing.T) {
	router := newTestRouter(t)
	cookie := startSession(t, router)

	body := `{"name":"john doe","email":"JOHN@EXAMPLE.COM","password":"secret1","techs":[{"title":"Go"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/form/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var record model.UserRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, "John Doe", record.Name)
	assert.Equal(t, "john@example.com", record.Email)
	assert.Equal(t, "secret1", record.Password)
	require.Len(t, record.Techs, 1)
	assert.Equal(t, "Go", record.Techs[0].Title)

	// The success body is pretty-printed for display.
	assert.Contains(t, rr.Body.String(), "\n  \"name\": \"John Doe\"")
}

func TestHandleSubmit_ValidationFailure(t *testing.T) {
	router := newTestRouter(t)
	cookie := startSession(t, router)

	body := `{"name":"","email":"not-an-email","password":"abc","techs":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/form/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp handler.FieldErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "validation_failed", resp.Error)
	assert.Contains(t, resp.Errors, "name")
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "password")
	assert.Contains(t, resp.Errors, "techs")
}

func TestHandleSubmit_BlankRowTitleUsesIndexedPath(t *testing.T) {
	router := newTestRouter(t)
	cookie := startSession(t, router)

	body := `{"name":"ann","email":"ann@example.com","password":"secret1","techs":[{"title":"Go"},{"title":""}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/form/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp handler.FieldErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp.Errors, "techs[1].title")
}

func TestHandleSubmit_NoSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	body := `{"name":"ann","email":"ann@example.com","password":"secret1","techs":[{"title":"Go"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/form/submit", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleSubmit_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)
	cookie := startSession(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/form/submit", strings.NewReader(`{"name":`))
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleStrength(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		password   string
		wantStrong bool
	}{
		{"strong password", "Abcdef1!", true},
		{"weak password", "abcdef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]string{"password": tt.password})
			req := httptest.NewRequest(http.MethodPost, "/api/password/strength", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)

			var resp struct {
				Strong bool                `json:"strong"`
				Checks form.StrengthChecks `json:"checks"`
			}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantStrong, resp.Strong)
		})
	}
}

func TestHandleGet_RoundTripsState(t *testing.T) {
	router := newTestRouter(t)
	cookie := startSession(t, router)

	// Submit, then fetch the session — the stored record must come back.
	body := `{"name":"john doe","email":"JOHN@EXAMPLE.COM","password":"secret1","techs":[{"title":"Go"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/form/submit", strings.NewReader(body))
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/form", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var state form.State
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.Equal(t, form.PhaseSubmitted, state.Phase)
	require.NotNil(t, state.Record)
	assert.Equal(t, "john@example.com", state.Record.Email)
}
