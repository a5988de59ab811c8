// Package handler exposes the scan endpoints over JSON.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hqtran/billscan/internal/domain/common"
	"github.com/hqtran/billscan/internal/domain/scan/ocr"
	"github.com/hqtran/billscan/internal/domain/scan/service"
)

// maxUploadBytes caps the multipart body before it reaches the OCR client,
// which enforces the tighter provider limit itself.
const maxUploadBytes = 10 << 20

// ScanService is implemented by service.Service.
type ScanService interface {
	ScanBill(ctx context.Context, image []byte) (*service.ScanResult, error)
	Reanalyze(ctx context.Context, text string) (*service.ScanResult, error)
}

type Handler struct {
	svc    ScanService
	logger *slog.Logger
}

func NewHandler(svc ScanService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Scan handles POST /v1/scan: a multipart upload with an "image" part.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "expected multipart form with an image part")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "missing image part")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unreadable image part")
		return
	}

	result, err := h.svc.ScanBill(r.Context(), image)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Analyze handles POST /v1/analyze: re-run the engine over edited text.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Reanalyze(r.Context(), req.Text)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNoText):
		h.writeError(w, http.StatusUnprocessableEntity, "no text could be read from the input")
	case errors.Is(err, ocr.ErrImageTooLarge):
		h.writeError(w, http.StatusRequestEntityTooLarge, "image exceeds the size limit")
	case errors.Is(err, ocr.ErrUnreadableImage):
		h.writeError(w, http.StatusUnprocessableEntity, "image could not be read")
	case errors.Is(err, common.ErrBadRequest):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "scan request failed", slog.Any("error", err))
		h.writeError(w, http.StatusBadGateway, "scan provider unavailable")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
