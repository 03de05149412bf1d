package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/infrastructure/google"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errBadPassword = &domain.MessageError{Msg: "비밀번호가 올바르지 않습니다", Kind: domain.ErrUnauthorized}

type TokenSigner interface {
	SignAdmin(subject, role string) (string, error)
}

type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type AuthDeps struct {
	Signer         TokenSigner
	GoogleVerifier GoogleVerifier // optional

	// PasswordHash is a bcrypt hash. When empty, Password is hashed at construction.
	PasswordHash  string
	Password      string
	AllowedEmails []string
	MaxFailures   int
	Lockout       time.Duration
	Logger        *zap.Logger
	Now           func() time.Time
}

type AuthService interface {
	// Login checks the shared dashboard password for the caller at ip.
	Login(ctx context.Context, ip, password string) (string, error)
	// GoogleLogin accepts a Google ID token from an allow-listed staff account.
	GoogleLogin(ctx context.Context, idToken string) (string, error)
}

type authService struct {
	signer  TokenSigner
	google  GoogleVerifier
	hash    []byte
	allowed map[string]struct{}
	lockout *lockout
	logger  *zap.Logger
}

func NewAuthService(deps AuthDeps) (AuthService, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	hash := []byte(deps.PasswordHash)
	if len(hash) == 0 && deps.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(deps.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = h
	}
	allowed := make(map[string]struct{}, len(deps.AllowedEmails))
	for _, e := range deps.AllowedEmails {
		allowed[strings.ToLower(e)] = struct{}{}
	}
	return &authService{
		signer:  deps.Signer,
		google:  deps.GoogleVerifier,
		hash:    hash,
		allowed: allowed,
		lockout: newLockout(deps.MaxFailures, deps.Lockout, deps.Now),
		logger:  deps.Logger,
	}, nil
}

func (s *authService) Login(_ context.Context, ip, password string) (string, error) {
	if len(s.hash) == 0 {
		return "", fmt.Errorf("password login not configured: %w", domain.ErrUnavailable)
	}
	if s.lockout.locked(ip) {
		s.logger.Warn("admin login while locked out", zap.String("ip", ip))
		return "", &domain.MessageError{Msg: "로그인 시도 횟수를 초과했습니다. 잠시 후 다시 시도해주세요", Kind: domain.ErrTooManyRequests}
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		n := s.lockout.fail(ip)
		s.logger.Warn("admin login failed", zap.String("ip", ip), zap.Int("failures", n))
		return "", errBadPassword
	}
	s.lockout.reset(ip)
	s.logger.Info("admin login", zap.String("ip", ip), zap.String("method", "password"))
	return s.signer.SignAdmin("password", domain.RoleAdmin)
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	if s.google == nil {
		return "", fmt.Errorf("google login not configured: %w", domain.ErrUnavailable)
	}
	p, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", err
	}
	if !p.EmailVerified {
		return "", fmt.Errorf("google email not verified: %w", domain.ErrUnauthorized)
	}
	if _, ok := s.allowed[strings.ToLower(p.Email)]; !ok {
		s.logger.Warn("admin google login rejected", zap.String("email", p.Email))
		return "", fmt.Errorf("%s is not an admin: %w", p.Email, domain.ErrForbidden)
	}
	s.logger.Info("admin login", zap.String("email", p.Email), zap.String("method", "google"))
	return s.signer.SignAdmin(p.Email, domain.RoleAdmin)
}

// lockout counts failed logins per client and blocks a client for the
// lockout period once it reaches max failures inside that period.
type lockout struct {
	mu        sync.Mutex
	max       int
	period    time.Duration
	now       func() time.Time
	clients   map[string]*failures
	nextSweep time.Time
}

type failures struct {
	count       int
	first       time.Time
	lockedUntil time.Time
}

func newLockout(max int, period time.Duration, now func() time.Time) *lockout {
	return &lockout{max: max, period: period, now: now, clients: make(map[string]*failures)}
}

func (l *lockout) locked(key string) bool {
	if l.max <= 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.clients[key]
	if !ok {
		return false
	}
	now := l.now()
	if !f.lockedUntil.IsZero() && now.Before(f.lockedUntil) {
		return true
	}
	if f.stale(now, l.period) {
		delete(l.clients, key)
	}
	return false
}

// fail records a failure and returns the count in the current period.
func (l *lockout) fail(key string) int {
	if l.max <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if !now.Before(l.nextSweep) {
		l.sweep(now)
		l.nextSweep = now.Add(l.period)
	}
	f, ok := l.clients[key]
	if !ok || now.Sub(f.first) >= l.period {
		f = &failures{first: now}
		l.clients[key] = f
	}
	f.count++
	if f.count >= l.max {
		f.lockedUntil = now.Add(l.period)
	}
	return f.count
}

// sweep drops clients whose counting period and lock have both run out.
// Callers hold l.mu.
func (l *lockout) sweep(now time.Time) {
	for key, f := range l.clients {
		if f.stale(now, l.period) {
			delete(l.clients, key)
		}
	}
}

func (f *failures) stale(now time.Time, period time.Duration) bool {
	if !f.lockedUntil.IsZero() {
		return !now.Before(f.lockedUntil)
	}
	return now.Sub(f.first) >= period
}

func (l *lockout) reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.clients, key)
}
