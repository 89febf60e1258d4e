package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/BerylCAtieno/file-query-client/internal/services"
	"github.com/BerylCAtieno/file-query-client/internal/utils"
	"github.com/gorilla/mux"
)

type SubmissionHandler struct {
	service services.QueryService
	logger  *utils.Logger
}

func NewSubmissionHandler(service services.QueryService, logger *utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger,
	}
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, h.logger, utils.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	subs, err := h.service.ListSubmissions(r.Context(), limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, subs)
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := h.service.GetSubmission(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, sub)
}

func (h *SubmissionHandler) File(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	file, err := h.service.GetSubmissionFile(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Content)
}
