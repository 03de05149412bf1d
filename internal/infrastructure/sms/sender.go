package sms

import (
	"context"
	"fmt"

	"github.com/loan-landing-api/internal/config"
	"go.uber.org/zap"
)

// Sender delivers a text message to a domestic phone number.
type Sender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// NewSender builds the sender selected by cfg.SMSProvider. The log sender
// only exists outside production.
func NewSender(cfg *config.Config, logger *zap.Logger) (Sender, error) {
	switch cfg.SMSProvider {
	case "solapi":
		return NewSolapiClient(cfg.SolapiBaseURL, cfg.SolapiAPIKey, cfg.SolapiAPISecret, cfg.SolapiSender)
	case "sns":
		return NewSNSSender(cfg)
	case "log", "":
		if !cfg.IsTestMode() {
			return nil, fmt.Errorf("sms provider %q cannot be used in %s", cfg.SMSProvider, cfg.AppEnv)
		}
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.SMSProvider)
	}
}
