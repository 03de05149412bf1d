package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/loan-landing-api/internal/infrastructure/sheets"
	"go.uber.org/zap"
)

// SheetsChecker proves the spreadsheet credentials work.
type SheetsChecker interface {
	CheckAccess(ctx context.Context) (*sheets.AccessInfo, error)
}

// HealthHandler handles health-check endpoints.
type HealthHandler struct {
	sheets SheetsChecker
	logger *zap.Logger
}

// NewHealthHandler builds the handler. sheets may be nil when the
// spreadsheet mirror is disabled.
func NewHealthHandler(sheets SheetsChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{sheets: sheets, logger: logger}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	if action == "ping" {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
		return
	}
	writeError(w, http.StatusBadRequest, msgUnknownAction)
}

// Sheets reports which spreadsheet the service account reaches.
func (h *HealthHandler) Sheets(w http.ResponseWriter, r *http.Request) {
	if h.sheets == nil {
		writeError(w, http.StatusServiceUnavailable, msgSheetsDisabled)
		return
	}
	info, err := h.sheets.CheckAccess(r.Context())
	if err != nil {
		h.logger.Warn("sheets access check failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}
