package admin

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/infrastructure/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockSigner struct{ mock.Mock }

func (m *mockSigner) SignAdmin(subject, role string) (string, error) {
	args := m.Called(subject, role)
	return args.String(0), args.Error(1)
}

type mockGoogleVerifier struct{ mock.Mock }

func (m *mockGoogleVerifier) Verify(ctx context.Context, token string) (*google.Payload, error) {
	args := m.Called(ctx, token)
	if p, _ := args.Get(0).(*google.Payload); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// --- helpers ---

func newAuth(t *testing.T, signer *mockSigner, gv GoogleVerifier, clock *testClock) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	svc, err := NewAuthService(AuthDeps{
		Signer:         signer,
		GoogleVerifier: gv,
		PasswordHash:   string(hash),
		AllowedEmails:  []string{"Staff@Example.com"},
		MaxFailures:    3,
		Lockout:        15 * time.Minute,
		Now:            clock.Now,
	})
	require.NoError(t, err)
	return svc
}

// --- tests ---

func TestLogin_Success(t *testing.T) {
	signer := new(mockSigner)
	signer.On("SignAdmin", "password", domain.RoleAdmin).Return("jwt", nil)
	svc := newAuth(t, signer, nil, &testClock{now: wednesday})

	tok, err := svc.Login(context.Background(), "1.2.3.4", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuth(t, new(mockSigner), nil, &testClock{now: wednesday})
	_, err := svc.Login(context.Background(), "1.2.3.4", "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_PlainPasswordIsHashed(t *testing.T) {
	signer := new(mockSigner)
	signer.On("SignAdmin", "password", domain.RoleAdmin).Return("jwt", nil)
	svc, err := NewAuthService(AuthDeps{Signer: signer, Password: "plain"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ip", "plain")
	assert.NoError(t, err)
}

func TestLogin_NotConfigured(t *testing.T) {
	svc, err := NewAuthService(AuthDeps{Signer: new(mockSigner)})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "ip", "x")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestLogin_LocksOutAfterMaxFailures(t *testing.T) {
	signer := new(mockSigner)
	signer.On("SignAdmin", "password", domain.RoleAdmin).Return("jwt", nil)
	clock := &testClock{now: wednesday}
	svc := newAuth(t, signer, nil, clock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, "1.2.3.4", "bad")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	}

	// Even the right password is refused while locked.
	_, err := svc.Login(ctx, "1.2.3.4", "s3cret")
	assert.ErrorIs(t, err, domain.ErrTooManyRequests)

	// Other clients are unaffected.
	_, err = svc.Login(ctx, "5.6.7.8", "s3cret")
	assert.NoError(t, err)

	clock.Advance(15 * time.Minute)
	_, err = svc.Login(ctx, "1.2.3.4", "s3cret")
	assert.NoError(t, err)
}

func TestLogin_FailuresOutsidePeriodDoNotAccumulate(t *testing.T) {
	clock := &testClock{now: wednesday}
	svc := newAuth(t, new(mockSigner), nil, clock)
	ctx := context.Background()

	_, _ = svc.Login(ctx, "ip", "bad")
	_, _ = svc.Login(ctx, "ip", "bad")
	clock.Advance(16 * time.Minute)
	_, err := svc.Login(ctx, "ip", "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Login(ctx, "ip", "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_SuccessResetsCounter(t *testing.T) {
	signer := new(mockSigner)
	signer.On("SignAdmin", "password", domain.RoleAdmin).Return("jwt", nil)
	svc := newAuth(t, signer, nil, &testClock{now: wednesday})
	ctx := context.Background()

	_, _ = svc.Login(ctx, "ip", "bad")
	_, _ = svc.Login(ctx, "ip", "bad")
	_, err := svc.Login(ctx, "ip", "s3cret")
	require.NoError(t, err)
	_, _ = svc.Login(ctx, "ip", "bad")
	_, _ = svc.Login(ctx, "ip", "bad")
	_, err = svc.Login(ctx, "ip", "s3cret")
	assert.NoError(t, err)
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		payload *google.Payload
		verErr  error
		wantErr error
	}{
		{"allowed", &google.Payload{Email: "staff@example.com", EmailVerified: true}, nil, nil},
		{"unverified", &google.Payload{Email: "staff@example.com"}, nil, domain.ErrUnauthorized},
		{"not listed", &google.Payload{Email: "other@example.com", EmailVerified: true}, nil, domain.ErrForbidden},
		{"bad token", nil, domain.ErrUnauthorized, domain.ErrUnauthorized},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			signer := new(mockSigner)
			signer.On("SignAdmin", "staff@example.com", domain.RoleAdmin).Return("jwt", nil)
			gv := new(mockGoogleVerifier)
			gv.On("Verify", ctx, "id-token").Return(c.payload, c.verErr)
			svc := newAuth(t, signer, gv, &testClock{now: wednesday})

			tok, err := svc.GoogleLogin(ctx, "id-token")
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "jwt", tok)
		})
	}
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	svc := newAuth(t, new(mockSigner), nil, &testClock{now: wednesday})
	_, err := svc.GoogleLogin(context.Background(), "id-token")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestLockout_SweepsClientsThatNeverReturn(t *testing.T) {
	clock := &testClock{now: wednesday}
	l := newLockout(5, 15*time.Minute, clock.Now)

	for i := 0; i < 100; i++ {
		l.fail(fmt.Sprintf("203.0.113.%d", i))
	}
	for i := 0; i < 5; i++ {
		l.fail("198.51.100.7")
	}
	require.True(t, l.locked("198.51.100.7"))
	assert.Len(t, l.clients, 101)

	// Inside the period nothing is dropped.
	clock.Advance(10 * time.Minute)
	l.fail("192.0.2.1")
	assert.Len(t, l.clients, 102)

	// Once the period has passed, the next failure clears the old entries.
	clock.Advance(6 * time.Minute)
	l.fail("192.0.2.2")
	assert.Len(t, l.clients, 2)
	assert.Contains(t, l.clients, "192.0.2.1")
	assert.Contains(t, l.clients, "192.0.2.2")
}
