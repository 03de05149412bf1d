package google

import (
	"context"
	"errors"
	"testing"

	"github.com/loan-landing-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestVerify_ExtractsClaims(t *testing.T) {
	v := NewVerifier("client-123")
	v.validate = func(_ context.Context, token, aud string) (*idtoken.Payload, error) {
		assert.Equal(t, "tok", token)
		assert.Equal(t, "client-123", aud)
		return &idtoken.Payload{Subject: "sub-1", Claims: map[string]interface{}{
			"email":          "staff@example.com",
			"email_verified": true,
			"name":           "Staff",
		}}, nil
	}

	p, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", p.Sub)
	assert.Equal(t, "staff@example.com", p.Email)
	assert.True(t, p.EmailVerified)
}

func TestVerify_InvalidToken(t *testing.T) {
	v := NewVerifier("client-123")
	v.validate = func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("bad signature")
	}
	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_NotConfigured(t *testing.T) {
	_, err := NewVerifier("").Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestPayloadFrom_NormalizesClaims(t *testing.T) {
	p := payloadFrom(&idtoken.Payload{Subject: "s", Claims: map[string]interface{}{
		"email":          " Staff@Example.COM ",
		"email_verified": "true",
		"hd":             "example.com",
	}})
	assert.Equal(t, "staff@example.com", p.Email)
	assert.True(t, p.EmailVerified)
	assert.Equal(t, "example.com", p.HostedDomain)
}

func TestPayloadFrom_UnverifiedByDefault(t *testing.T) {
	p := payloadFrom(&idtoken.Payload{Claims: map[string]interface{}{"email": "a@b.c"}})
	assert.False(t, p.EmailVerified)
}
