package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loan-landing-api/internal/application/otp"
	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/phone"
	"github.com/loan-landing-api/internal/pkg/validate"
	"go.uber.org/zap"
)

const (
	msgPhoneRequired = "전화번호가 필요합니다."
	msgInvalidPhone  = "올바른 전화번호 형식이 아닙니다"
	msgSendFailed    = "문자 발송 실패"
	msgMissingFields = "필수 값 누락"
	msgVerifyFailed  = "인증 실패"
	msgTooManyTries  = "인증 시도 횟수를 초과했습니다. 인증번호를 다시 요청해주세요"
)

// TicketSigner issues proof of a verified phone.
type TicketSigner interface {
	SignTicket(phone string) (string, error)
}

// VerificationHandler handles SMS code issue and check.
type VerificationHandler struct {
	svc     otp.Service
	tickets TicketSigner
	logger  *zap.Logger
}

func NewVerificationHandler(svc otp.Service, tickets TicketSigner, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{svc: svc, tickets: tickets, logger: logger}
}

// Request issues a code and texts it to the phone.
func (h *VerificationHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req domain.RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Phone == "" {
		writeError(w, http.StatusBadRequest, msgPhoneRequired)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidPhone)
		return
	}
	err := h.svc.SendCode(r.Context(), req.Phone)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true})
	case errors.Is(err, domain.ErrInvalidPhoneFormat):
		writeError(w, http.StatusBadRequest, msgInvalidPhone)
	case errors.Is(err, domain.ErrDeliveryFailed):
		writeError(w, http.StatusInternalServerError, msgSendFailed)
	default:
		h.logger.Error("issue verification code", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}

// Verify checks a code and, on success, returns a verification ticket.
// Unknown, expired and wrong codes all answer "인증 실패".
func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Phone == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	err := h.svc.Verify(r.Context(), req.Phone, req.Code)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, msgTooManyTries)
		return
	case errors.Is(err, domain.ErrCodeNotFound),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrCodeMismatch):
		h.logger.Info("verification rejected", zap.String("phone", phone.Mask(req.Phone)), zap.Error(err))
		writeError(w, http.StatusBadRequest, msgVerifyFailed)
		return
	default:
		h.logger.Error("verify code", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	ticket, err := h.tickets.SignTicket(req.Phone)
	if err != nil {
		h.logger.Error("sign verification ticket", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, VerificationToken: ticket})
}
