package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SMS_PROVIDER", "")
	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsTestMode())
	assert.Equal(t, "loanbrothers_test", cfg.DynamoTables.Leads)
	assert.Equal(t, 5*time.Minute, cfg.OTPWindow)
	assert.Equal(t, 0, cfg.OTPMaxAttempts)
	assert.Equal(t, "Sheet1", cfg.SheetName())
	assert.Equal(t, "log", cfg.SMSProvider)
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("GOOGLE_SHEETS_ID", "prod-sheet")
	t.Setenv("GOOGLE_SHEETS_ID_TEST", "test-sheet")
	t.Setenv("SMS_PROVIDER", "")
	cfg := Load()

	assert.False(t, cfg.IsTestMode())
	assert.Equal(t, "loanbrothers", cfg.DynamoTables.Leads)
	assert.Equal(t, "prod-sheet", cfg.SpreadsheetID())
	assert.Equal(t, "시트1", cfg.SheetName())
	assert.Equal(t, "solapi", cfg.SMSProvider)
}

func TestLoad_ParsesDurationsAndLists(t *testing.T) {
	t.Setenv("OTP_WINDOW", "90s")
	t.Setenv("ADMIN_GOOGLE_EMAILS", " a@x.com, ,b@x.com ")
	t.Setenv("GOOGLE_PRIVATE_KEY", `line1\nline2`)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.1")
	cfg := Load()

	assert.Equal(t, 90*time.Second, cfg.OTPWindow)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.AdminGoogleEmails)
	assert.Equal(t, "line1\nline2", cfg.GooglePrivateKey)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.TrustedProxies)
}

func TestGetEnvDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("SOME_DURATION", time.Minute))
}
