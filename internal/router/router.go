package router

import (
	"net/http"

	"github.com/BerylCAtieno/file-query-client/internal/handlers"
	"github.com/BerylCAtieno/file-query-client/internal/middleware"
	"github.com/BerylCAtieno/file-query-client/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(formHandler *handlers.FormHandler, submissionHandler *handlers.SubmissionHandler, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	// Form page
	r.HandleFunc("/", formHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/select", formHandler.Select).Methods(http.MethodPost)
	r.HandleFunc("/submit", formHandler.Submit).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	api.HandleFunc("/form", formHandler.State).Methods(http.MethodGet)

	api.HandleFunc("/submissions", submissionHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/submissions/{id}", submissionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/submissions/{id}/file", submissionHandler.File).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests reach it before route matching.
	return middleware.CORS()(r)
}
