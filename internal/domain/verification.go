package domain

import "time"

// VerificationRecord is the pending one-time code for a phone number.
// At most one record exists per phone; issuing again overwrites it.
type VerificationRecord struct {
	Phone    string    `json:"phone"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
	Attempts int       `json:"attempts"`
}

// Expired reports whether the record is outside the validity window at now.
func (v *VerificationRecord) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(v.IssuedAt) >= window
}

type RequestCodeRequest struct {
	Phone string `json:"phone" validate:"required,kphone"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}
