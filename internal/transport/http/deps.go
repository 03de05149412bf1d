package http

import (
	"context"
	"io"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/infrastructure/google"
	jwtinfra "github.com/loan-landing-api/internal/infrastructure/jwt"
	"github.com/loan-landing-api/internal/infrastructure/sheets"
)

// LeadRepository is the minimal interface the router requires from a lead store.
type LeadRepository interface {
	Put(ctx context.Context, l *domain.Lead) error
	// QueryRange returns leads created within [from, to], newest first,
	// via the kind-created_at GSI.
	QueryRange(ctx context.Context, from, to time.Time) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, leadID string, status domain.LeadStatus) (*domain.Lead, error)
	UpdateMemo(ctx context.Context, leadID, memo string) (*domain.Lead, error)
}

// VerificationStore is the minimal interface the router requires from an OTP store.
type VerificationStore interface {
	Put(ctx context.Context, rec *domain.VerificationRecord) error
	Get(ctx context.Context, phone string) (*domain.VerificationRecord, error)
	CompareAndDelete(ctx context.Context, rec *domain.VerificationRecord) (bool, error)
	IncrementAttempts(ctx context.Context, rec *domain.VerificationRecord) (int, error)
}

// SMSSender delivers verification codes.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// TokenProvider signs and checks both admin sessions and verification tickets.
type TokenProvider interface {
	SignAdmin(subject, role string) (string, error)
	VerifyAdmin(token string) (*jwtinfra.Claims, error)
	SignTicket(phone string) (string, error)
	VerifyTicket(token string) (string, error)
}

// SheetsMirror appends leads to the staff spreadsheet.
type SheetsMirror interface {
	AppendLead(ctx context.Context, l *domain.Lead) error
	CheckAccess(ctx context.Context) (*sheets.AccessInfo, error)
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Mailer sends staff notifications.
type Mailer interface {
	SendEmail(to []string, subject, body string) error
}

// GoogleVerifier checks Google ID tokens for dashboard sign-in.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}
