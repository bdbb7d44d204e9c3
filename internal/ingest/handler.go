package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"studykit/internal/generation"
	"studykit/internal/storage"
	"studykit/pkg/handlers"
	"studykit/pkg/routes"
)

// Handler provides the HTTP endpoints for study-aid generation.
type Handler struct {
	sys           System
	storage       storage.System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a generation handler with the specified configuration.
func NewHandler(sys System, store storage.System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		storage:       store,
		logger:        logger.With("handler", "ingest"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the generation endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Description: "Summary and flashcard generation",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/generate-from-text", Handler: h.GenerateFromText},
			{Method: "POST", Pattern: "/generate-from-upload", Handler: h.GenerateFromUpload},
		},
	}
}

type textRequest struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type generateResponse struct {
	Result string `json:"result"`
}

func (h *Handler) GenerateFromText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Run(r.Context(), Submission{
		Text:      req.Text,
		CardCount: req.Count,
	})
	if err != nil {
		h.respondPipelineError(w, err, "AI generation failed")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, generateResponse{Result: result})
}

func (h *Handler) GenerateFromUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file exceeds maximum upload size"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}

	count, _ := strconv.Atoi(r.FormValue("count"))

	// Stage the upload under a unique per-request key. Ownership passes to
	// the pipeline, which releases it on every exit path.
	key := uploadKey(header.Filename)
	if err := h.storage.Store(r.Context(), key, data); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	result, err := h.sys.Run(r.Context(), Submission{
		Artifact: &Artifact{
			MediaType:  detectMediaType(header.Header.Get("Content-Type"), data),
			StorageKey: key,
			SizeBytes:  header.Size,
		},
		CardCount: count,
	})
	if err != nil {
		h.respondPipelineError(w, err, "Processing failed")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, generateResponse{Result: result})
}

// respondPipelineError maps pipeline failures onto the HTTP contract.
// Client-side problems return their own message; extraction and backend
// failures return the route's failure message with details attached.
func (h *Handler) respondPipelineError(w http.ResponseWriter, err error, failureMessage string) {
	status := MapHTTPStatus(err)
	if status == http.StatusInternalServerError &&
		(errors.Is(err, ErrExtraction) || errors.Is(err, generation.ErrBackend)) {
		handlers.RespondErrorDetails(w, h.logger, status, failureMessage, err)
		return
	}
	handlers.RespondError(w, h.logger, status, err)
}

func uploadKey(filename string) string {
	return fmt.Sprintf("uploads/%s/%s", uuid.New().String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}

func detectMediaType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
