package main

import (
	"encoding/json"
	"net/http"

	"github.com/myrjola/casegen/internal/casegen"
	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/models"
)

func (app *application) generateCase(w http.ResponseWriter, r *http.Request) {
	var cfg models.CaseConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		app.clientError(w, r, http.StatusBadRequest, errors.Wrap(err, "decode case configuration"))
		return
	}

	if cfg.Difficulty == "" {
		cfg.Difficulty = "medium"
	}
	if cfg.EntityCount == 0 {
		cfg.EntityCount = 4
	}

	doc, err := app.pipeline.GenerateCase(r.Context(), cfg)
	switch {
	case errors.Is(err, casegen.ErrInvalidConfig):
		app.clientError(w, r, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, doc)
}
