package handler

import (
	"encoding/json"
	"net/http"

	"github.com/loan-landing-api/internal/application/lead"
	"github.com/loan-landing-api/internal/domain"
	"go.uber.org/zap"
)

// LeadHandler accepts consultation requests from the landing page.
type LeadHandler struct {
	svc    lead.Service
	logger *zap.Logger
}

func NewLeadHandler(svc lead.Service, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{svc: svc, logger: logger}
}

func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	l, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.Error("submit lead", zap.Error(err))
		}
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SuccessEnvelope{Success: true, ID: l.LeadID})
}
