// Package handler contains the HTTP request handlers: one page handler
// that renders the signup form, and the JSON API the form script talks to.
//
// Handlers are the glue between HTTP and the service layer. They parse
// requests, call the service, and write responses — no business logic.
package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

// PageHandler renders the signup form page. Templates are parsed once at
// startup and reused for every request.
type PageHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewPageHandler parses the HTML templates. base.html defines the page
// shell with a {{template "content" .}} placeholder; signup.html fills it
// with {{define "content"}} — Go's template composition model.
func NewPageHandler(templateDir string, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, "signup.html"),
	)
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// HandleSignupPage serves the form page.
//
// HTTP: GET /
func (h *PageHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "Signup — Developer Signup Form",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
