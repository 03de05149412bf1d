package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationRecord_Expired(t *testing.T) {
	issued := time.Date(2025, 5, 18, 12, 0, 0, 0, time.UTC)
	v := &VerificationRecord{IssuedAt: issued}

	assert.False(t, v.Expired(issued.Add(4*time.Minute+59*time.Second), 5*time.Minute))
	assert.True(t, v.Expired(issued.Add(5*time.Minute), 5*time.Minute))
	assert.True(t, v.Expired(issued.Add(301*time.Second), 5*time.Minute))
}

func TestLeadStatus_LabelAndValid(t *testing.T) {
	assert.Equal(t, "연락완료", StatusContacted.Label())
	assert.Equal(t, "대기중", LeadStatus("").Label())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, LeadStatus("archived").Valid())
}

func TestOTPErrors_WrapGenericSentinels(t *testing.T) {
	assert.True(t, errors.Is(ErrInvalidPhoneFormat, ErrBadRequest))
	assert.True(t, errors.Is(ErrCodeNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrCodeExpired, ErrUnauthorized))
	assert.True(t, errors.Is(ErrCodeMismatch, ErrUnauthorized))
	assert.True(t, errors.Is(ErrTooManyAttempts, ErrTooManyRequests))
	assert.True(t, errors.Is(ErrDeliveryFailed, ErrUnavailable))
	assert.False(t, errors.Is(ErrCodeExpired, ErrCodeMismatch))
}

func TestInvalid(t *testing.T) {
	err := Invalid("나이는 18세 이상이어야 합니다")
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "나이는 18세 이상이어야 합니다", err.Error())

	var me *MessageError
	assert.True(t, errors.As(fmt.Errorf("submit: %w", err), &me))
}
