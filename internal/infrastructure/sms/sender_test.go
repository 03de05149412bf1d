package sms

import (
	"context"
	"testing"

	"github.com/loan-landing-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewSender_Selects(t *testing.T) {
	s, err := NewSender(&config.Config{AppEnv: "development", SMSProvider: "log"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	_, err = NewSender(&config.Config{SMSProvider: "solapi"}, zap.NewNop())
	assert.Error(t, err, "missing credentials")

	_, err = NewSender(&config.Config{SMSProvider: "pigeon"}, zap.NewNop())
	assert.ErrorContains(t, err, "unknown sms provider")
}

func TestNewSender_NoLogSenderInProduction(t *testing.T) {
	for _, provider := range []string{"log", ""} {
		s, err := NewSender(&config.Config{AppEnv: "production", SMSProvider: provider}, zap.NewNop())
		assert.Error(t, err, "provider %q", provider)
		assert.Nil(t, s)
	}
}

func TestNewSender_ProductionDefaultNeedsSolapiCredentials(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SMS_PROVIDER", "")
	t.Setenv("SOLAPI_API_KEY", "")
	cfg := config.Load()

	assert.Equal(t, "solapi", cfg.SMSProvider)
	_, err := NewSender(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "solapi")
}

func TestLogSender_MasksPhone(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, NewLogSender(zap.New(core)).SendSMS(context.Background(), "01012345678", "hi"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "*******5678", entries[0].ContextMap()["to"])
}
