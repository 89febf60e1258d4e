package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/file-query-client/internal/form"
	"github.com/BerylCAtieno/file-query-client/internal/models"
	"github.com/BerylCAtieno/file-query-client/internal/session"
	"github.com/BerylCAtieno/file-query-client/internal/utils"
	"github.com/BerylCAtieno/file-query-client/internal/web"
)

type FormHandler struct {
	sessions    *session.Manager
	renderer    *web.Renderer
	logger      *utils.Logger
	maxFileSize int64
	cookieTTL   time.Duration
}

func NewFormHandler(sessions *session.Manager, renderer *web.Renderer, logger *utils.Logger, maxFileSize int64, cookieTTL time.Duration) *FormHandler {
	return &FormHandler{
		sessions:    sessions,
		renderer:    renderer,
		logger:      logger,
		maxFileSize: maxFileSize,
		cookieTTL:   cookieTTL,
	}
}

// form resolves the caller's session, refreshing the cookie.
func (h *FormHandler) form(w http.ResponseWriter, r *http.Request) *form.Form {
	var id string
	if c, err := r.Cookie(session.CookieName); err == nil {
		id = c.Value
	}

	id, f := h.sessions.Get(id)

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return f
}

func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	f := h.form(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, f.View()); err != nil {
		h.logger.Error("Failed to render page", "error", err)
	}
}

// Select updates the file type and, when one is attached, the selected file.
func (h *FormHandler) Select(w http.ResponseWriter, r *http.Request) {
	f := h.form(w, r)

	if r.ContentLength > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds limit"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, utils.NewBadRequestError("File size exceeds limit"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	if values, ok := r.MultipartForm.Value["file_type"]; ok && len(values) > 0 {
		f.SetFileType(models.FileType(strings.TrimSpace(values[0])))
	}

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		h.respondError(w, utils.NewBadRequestError("Invalid file"))
		return
	default:
		defer file.Close()

		selected, err := readFile(file, header, h.maxFileSize)
		if err != nil {
			h.respondError(w, err)
			return
		}

		if selected != nil {
			h.logger.Info("File selected",
				"filename", selected.Name,
				"content_type", selected.ContentType,
				"size", selected.Size())
			f.SelectFile(selected)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Submit starts the submission in the background and sends the browser back
// to the page, which refreshes while the form is loading.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	f := h.form(w, r)

	if err := r.ParseForm(); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	f.SetQuery(r.PostFormValue("query"))

	if !f.CanSubmit() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	go func() {
		// Errors are logged by the form; the page keeps the previous result.
		_ = f.Submit(ctx)
	}()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *FormHandler) State(w http.ResponseWriter, r *http.Request) {
	f := h.form(w, r)
	respondJSON(w, h.logger, http.StatusOK, f.View())
}

func readFile(file multipart.File, header *multipart.FileHeader, maxSize int64) (*models.File, error) {
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, utils.NewInternalError("Failed to read file")
	}

	if int64(len(data)) > maxSize {
		return nil, utils.NewBadRequestError("File size exceeds limit")
	}

	// A browser submits an empty part when no file was picked.
	if header.Filename == "" && len(data) == 0 {
		return nil, nil
	}

	return &models.File{
		Name:        header.Filename,
		ContentType: determineContentType(header.Filename, header.Header.Get("Content-Type")),
		Content:     data,
	}, nil
}

// determineContentType prefers the extension over the reported header.
func determineContentType(filename, headerContentType string) string {
	if t := models.FileTypeFromName(filename); t != "" {
		return t.ContentType()
	}
	return headerContentType
}

func (h *FormHandler) respondError(w http.ResponseWriter, err error) {
	respondError(w, h.logger, err)
}

func respondJSON(w http.ResponseWriter, logger *utils.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, logger *utils.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
	}

	logger.Error("Request error", "status", status, "error", message)
	respondJSON(w, logger, status, map[string]string{"error": message})
}
