package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/loan-landing-api/internal/application/admin"
	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/validate"
	"go.uber.org/zap"
)

// AdminLeadHandler serves the dashboard's lead list, edits and exports.
type AdminLeadHandler struct {
	svc    admin.LeadService
	logger *zap.Logger
	now    func() time.Time
}

func NewAdminLeadHandler(svc admin.LeadService, logger *zap.Logger) *AdminLeadHandler {
	return &AdminLeadHandler{svc: svc, logger: logger, now: time.Now}
}

func (h *AdminLeadHandler) List(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	leads, err := h.svc.List(r.Context(), rng)
	if err != nil {
		h.fail(w, "list leads", err)
		return
	}
	writeJSON(w, http.StatusOK, LeadsEnvelope{
		From:  rng.From.Format(time.RFC3339),
		To:    rng.To.Format(time.RFC3339),
		Label: rng.Label,
		Count: len(leads),
		Data:  leads,
	})
}

func (h *AdminLeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}
	l, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(w, "update lead status", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *AdminLeadHandler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateLeadMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}
	l, err := h.svc.UpdateMemo(r.Context(), chi.URLParam(r, "id"), req.Memo)
	if err != nil {
		h.fail(w, "update lead memo", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Export streams the filtered leads as an xlsx attachment.
func (h *AdminLeadHandler) Export(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	exp, err := h.svc.Export(r.Context(), rng)
	if err != nil {
		h.fail(w, "export leads", err)
		return
	}
	w.Header().Set("Content-Type", admin.XLSXContentType)
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(exp.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(exp.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exp.Data)
}

// Archive stores the export in object storage and returns a download link.
func (h *AdminLeadHandler) Archive(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	link, name, err := h.svc.Archive(r.Context(), rng)
	if err != nil {
		h.fail(w, "archive leads", err)
		return
	}
	writeJSON(w, http.StatusOK, ArchiveEnvelope{URL: link, Filename: name})
}

func (h *AdminLeadHandler) rangeFrom(w http.ResponseWriter, r *http.Request) (admin.Range, bool) {
	q := r.URL.Query()
	rng, err := admin.ResolveRange(q.Get("preset"), q.Get("from"), q.Get("to"), h.now())
	if err != nil {
		httpError(w, err)
		return admin.Range{}, false
	}
	return rng, true
}

func (h *AdminLeadHandler) fail(w http.ResponseWriter, op string, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		h.logger.Error(op, zap.Error(err))
	}
	httpError(w, err)
}
