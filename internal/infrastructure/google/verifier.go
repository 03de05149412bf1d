// Package google checks Google ID tokens for dashboard sign-in.
package google

import (
	"context"
	"fmt"
	"strings"

	"github.com/loan-landing-api/internal/domain"
	"google.golang.org/api/idtoken"
)

// Payload is the part of a Google ID token the dashboard cares about.
type Payload struct {
	Sub           string
	Email         string // lower-cased
	EmailVerified bool
	Name          string
	HostedDomain  string // Workspace domain, empty for consumer accounts
}

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// Verifier checks ID tokens issued for one OAuth client.
type Verifier struct {
	clientID string
	validate validateFunc
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify validates token against the client ID. A bad token wraps
// domain.ErrUnauthorized; a missing client ID wraps domain.ErrUnavailable.
func (v *Verifier) Verify(ctx context.Context, token string) (*Payload, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("google sign-in not configured: %w", domain.ErrUnavailable)
	}
	p, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", domain.ErrUnauthorized)
	}
	return payloadFrom(p), nil
}

func payloadFrom(p *idtoken.Payload) *Payload {
	str := func(k string) string {
		s, _ := p.Claims[k].(string)
		return s
	}
	out := &Payload{
		Sub:          p.Subject,
		Email:        strings.ToLower(strings.TrimSpace(str("email"))),
		Name:         str("name"),
		HostedDomain: str("hd"),
	}
	// Some issuers send email_verified as a string.
	switch ev := p.Claims["email_verified"].(type) {
	case bool:
		out.EmailVerified = ev
	case string:
		out.EmailVerified = ev == "true"
	}
	return out
}
