package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/phone"
	"github.com/loan-landing-api/internal/pkg/validate"
	"go.uber.org/zap"
)

// DefaultWindow is how long an issued code stays valid.
const DefaultWindow = 5 * time.Minute

var codeSpace = big.NewInt(1_000_000)

// Store keeps at most one pending record per phone number.
// Implementations must make each method atomic for a given phone.
type Store interface {
	Put(ctx context.Context, rec *domain.VerificationRecord) error
	// Get returns an error wrapping domain.ErrNotFound when no record exists.
	Get(ctx context.Context, phone string) (*domain.VerificationRecord, error)
	// CompareAndDelete removes the record for rec.Phone only if it still holds
	// rec's code and issue time. It reports whether a record was removed.
	CompareAndDelete(ctx context.Context, rec *domain.VerificationRecord) (bool, error)
	// IncrementAttempts bumps the mismatch counter of the record matching rec
	// and returns the new count, or 0 when the stored record has changed.
	IncrementAttempts(ctx context.Context, rec *domain.VerificationRecord) (int, error)
}

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type Service interface {
	// RequestCode issues and stores a fresh code for phone and returns it.
	// It does not send anything.
	RequestCode(ctx context.Context, phone string) (string, error)
	// SendCode issues a code and delivers it by SMS.
	SendCode(ctx context.Context, phone string) error
	// Verify checks code against the pending record and consumes it on success.
	Verify(ctx context.Context, phone, code string) error
}

type Option func(*service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithMaxAttempts discards a record after n mismatched codes. n <= 0 disables the limit.
func WithMaxAttempts(n int) Option {
	return func(s *service) { s.maxAttempts = n }
}

type service struct {
	store       Store
	sms         SMSSender
	window      time.Duration
	maxAttempts int
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(store Store, sms SMSSender, window time.Duration, logger *zap.Logger, opts ...Option) Service {
	if window <= 0 {
		window = DefaultWindow
	}
	s := &service{
		store:  store,
		sms:    sms,
		window: window,
		now:    time.Now,
		logger: logger,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) RequestCode(ctx context.Context, p string) (string, error) {
	if !validate.Phone(p) {
		return "", domain.ErrInvalidPhoneFormat
	}
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	rec := &domain.VerificationRecord{
		Phone:    p,
		Code:     code,
		IssuedAt: s.now(),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}
	s.logger.Info("verification code issued", zap.String("phone", phone.Mask(p)))
	return code, nil
}

func (s *service) SendCode(ctx context.Context, p string) error {
	code, err := s.RequestCode(ctx, p)
	if err != nil {
		return err
	}
	// The stored code is left in place on failure; requesting again overwrites it.
	if err := s.sms.SendSMS(ctx, p, Message(code)); err != nil {
		s.logger.Error("verification sms failed", zap.String("phone", phone.Mask(p)), zap.Error(err))
		return domain.ErrDeliveryFailed
	}
	return nil
}

func (s *service) Verify(ctx context.Context, p, code string) error {
	rec, err := s.store.Get(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCodeNotFound
		}
		return fmt.Errorf("load verification code: %w", err)
	}
	log := s.logger.With(zap.String("phone", phone.Mask(p)))

	if rec.Expired(s.now(), s.window) {
		if _, err := s.store.CompareAndDelete(ctx, rec); err != nil {
			log.Warn("failed to purge expired verification code", zap.Error(err))
		}
		log.Info("verification code expired")
		return domain.ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		n, err := s.store.IncrementAttempts(ctx, rec)
		if err != nil {
			log.Warn("failed to count verification attempt", zap.Error(err))
		}
		if s.maxAttempts > 0 && n >= s.maxAttempts {
			if _, err := s.store.CompareAndDelete(ctx, rec); err != nil {
				log.Warn("failed to discard verification code", zap.Error(err))
			}
			log.Info("verification attempts exhausted", zap.Int("attempts", n))
			return domain.ErrTooManyAttempts
		}
		log.Info("verification code mismatch", zap.Int("attempts", n))
		return domain.ErrCodeMismatch
	}

	ok, err := s.store.CompareAndDelete(ctx, rec)
	if err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	if !ok {
		// Consumed or replaced by a concurrent request.
		return domain.ErrCodeNotFound
	}
	log.Info("phone verified")
	return nil
}

// Message is the SMS body carrying code.
func Message(code string) string {
	return "인증번호는 [" + code + "] 입니다."
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
