package jwtinfra

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/loan-landing-api/internal/config"
)

// Token types carried in the "typ" claim.
const (
	TypeAdmin             = "admin"
	TypePhoneVerification = "phone_verification"
)

// Claims holds the JWT payload fields.
type Claims struct {
	Type  string `json:"typ"`
	Role  string `json:"role,omitempty"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// Provider signs and verifies RS256 JWTs.
type Provider struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	adminTTL   time.Duration
	ticketTTL  time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	privBytes, err := os.ReadFile(cfg.JWTPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubBytes, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &Provider{
		privateKey: privKey,
		publicKey:  pubKey,
		adminTTL:   cfg.AdminTokenTTL,
		ticketTTL:  cfg.TicketTTL,
	}, nil
}

// SignAdmin issues a dashboard session token for subject (a login method or email).
func (p *Provider) SignAdmin(subject, role string) (string, error) {
	return p.sign(Claims{Type: TypeAdmin, Role: role}, subject, p.adminTTL)
}

// SignTicket issues proof that phone passed SMS verification.
func (p *Provider) SignTicket(phone string) (string, error) {
	return p.sign(Claims{Type: TypePhoneVerification, Phone: phone}, phone, p.ticketTTL)
}

// VerifyAdmin parses an admin session token.
func (p *Provider) VerifyAdmin(tokenStr string) (*Claims, error) {
	return p.verify(tokenStr, TypeAdmin)
}

// VerifyTicket parses a verification ticket and returns the verified phone.
func (p *Provider) VerifyTicket(tokenStr string) (string, error) {
	c, err := p.verify(tokenStr, TypePhoneVerification)
	if err != nil {
		return "", err
	}
	return c.Phone, nil
}

func (p *Provider) sign(claims Claims, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(p.privateKey)
}

func (p *Provider) verify(tokenStr, typ string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.publicKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("unexpected token type %q", claims.Type)
	}
	return claims, nil
}
