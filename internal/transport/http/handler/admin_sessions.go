package handler

import (
	"encoding/json"
	"net/http"

	"github.com/loan-landing-api/internal/application/admin"
	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/validate"
	"github.com/loan-landing-api/internal/transport/http/middleware"
)

// AdminSessionHandler issues dashboard session tokens.
type AdminSessionHandler struct {
	svc admin.AuthService
}

func NewAdminSessionHandler(svc admin.AuthService) *AdminSessionHandler {
	return &AdminSessionHandler{svc: svc}
}

func (h *AdminSessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}
	token, err := h.svc.Login(r.Context(), middleware.ClientIP(r), req.Password)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{Bearer: token})
}

func (h *AdminSessionHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminGoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}
	token, err := h.svc.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{Bearer: token})
}
