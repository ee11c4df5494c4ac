package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/myrjola/casegen/internal/errors"
)

type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "failed to encode response", errors.SlogError(err))
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		errors.SlogError(err),
		slog.String("method", r.Method),
		slog.String("uri", r.URL.RequestURI()),
	)

	app.writeJSON(w, r, http.StatusInternalServerError, errorEnvelope{
		Error:   "internal server error",
		Details: err.Error(),
	})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, err error) {
	app.writeJSON(w, r, status, errorEnvelope{
		Error:   http.StatusText(status),
		Details: err.Error(),
	})
}
