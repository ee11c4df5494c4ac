package main

import (
	"github.com/justinas/alice"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	api := alice.New(jsonResponses)

	mux.Handle("GET /api/healthy", api.ThenFunc(app.healthy))
	mux.Handle("POST /api/cases", api.ThenFunc(app.generateCase))
	mux.Handle("GET /api/cases/{caseID}", api.ThenFunc(app.caseByID))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
