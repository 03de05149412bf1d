package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loan-landing-api/internal/domain"
)

const (
	msgServerError    = "서버 오류"
	msgInvalidBody    = "요청 형식이 올바르지 않습니다"
	msgInvalidInput   = "입력값이 올바르지 않습니다"
	msgUnknownAction  = "알 수 없는 요청입니다"
	msgSheetsDisabled = "구글 시트 연동이 설정되지 않았습니다"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuccessEnvelope is returned by the landing-page endpoints.
type SuccessEnvelope struct {
	Success           bool   `json:"success"`
	ID                string `json:"id,omitempty"`
	VerificationToken string `json:"verification_token,omitempty"`
}

// TokenEnvelope wraps admin login responses.
type TokenEnvelope struct {
	Bearer string `json:"Bearer"`
}

// LeadsEnvelope wraps the admin lead list.
type LeadsEnvelope struct {
	From  string        `json:"from"`
	To    string        `json:"to"`
	Label string        `json:"label"`
	Count int           `json:"count"`
	Data  []domain.Lead `json:"data"`
}

// ArchiveEnvelope carries a presigned export link.
type ArchiveEnvelope struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps a service error onto a status code. Messages carried by a
// domain.MessageError are shown as-is; internal failures are not exposed.
func httpError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	var me *domain.MessageError
	switch {
	case errors.As(err, &me):
		writeError(w, status, me.Msg)
	case status == http.StatusInternalServerError:
		writeError(w, status, msgServerError)
	default:
		writeError(w, status, err.Error())
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
