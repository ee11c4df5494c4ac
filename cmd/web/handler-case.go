package main

import (
	"net/http"

	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/repositories"
)

func (app *application) caseByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("caseID")

	doc, err := app.cases.Get(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrCaseNotFound):
		app.clientError(w, r, http.StatusNotFound, err)
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, doc)
}
