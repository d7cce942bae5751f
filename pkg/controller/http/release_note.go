package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/interfaces"
	"github.com/m-mizutani/relnote/pkg/domain/types"
)

// maxRequestBody bounds the trigger payload, which is three short strings
const maxRequestBody = 64 * 1024

// ReleaseNoteHandler serves release note generation and read-back
type ReleaseNoteHandler struct {
	releaseNoteUC interfaces.ReleaseNoteUseCase
	validator     *requestValidator
}

// NewReleaseNoteHandler creates a new ReleaseNoteHandler
func NewReleaseNoteHandler(ctx context.Context, releaseNoteUC interfaces.ReleaseNoteUseCase) (*ReleaseNoteHandler, error) {
	validator, err := newRequestValidator(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request validator")
	}

	return &ReleaseNoteHandler{
		releaseNoteUC: releaseNoteUC,
		validator:     validator,
	}, nil
}

// Generate handles the trigger. Every failure is answered with 400 and the
// error text as body; success returns the written object name.
func (h *ReleaseNoteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeText(w, goerr.Wrap(err, "failed to read request body").Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req, err := h.validator.decodeGenerateRequest(body)
	if err != nil {
		logger.Warn("Invalid release note request", "error", err)
		writeText(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.releaseNoteUC.Generate(ctx, req)
	if err != nil {
		logger.Error("Failed to generate release notes", "error", err)
		if !goerr.HasTag(err, types.ErrTagInvalidRequest) {
			captureError(ctx, err)
		}
		writeText(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("X-Generation-ID", result.ID)
	w.Header().Set("X-Skipped-Keys", strconv.Itoa(len(result.SkippedKeys)))
	writeText(w, result.BlobName, http.StatusOK)
}

// Fetch returns a published release note
func (h *ReleaseNoteHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	content, err := h.releaseNoteUC.Fetch(ctx, name)
	if err != nil {
		if goerr.HasTag(err, types.ErrTagNotFound) {
			writeError(w, err, http.StatusNotFound)
			return
		}
		ctxlog.From(ctx).Error("Failed to fetch release notes", "error", err, "name", name)
		captureError(ctx, err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeText(w, content, http.StatusOK)
}

// Generation returns a generation audit record as JSON
func (h *ReleaseNoteHandler) Generation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)
	id := chi.URLParam(r, "id")

	record, err := h.releaseNoteUC.Generation(ctx, id)
	if err != nil {
		if goerr.HasTag(err, types.ErrTagNotFound) {
			writeError(w, err, http.StatusNotFound)
			return
		}
		logger.Error("Failed to get generation record", "error", err, "id", id)
		captureError(ctx, err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		logger.Error("Failed to encode generation record", "error", err)
	}
}
