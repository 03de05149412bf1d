package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	AdminTokenTTL     time.Duration
	TicketTTL         time.Duration // lifetime of the phone verification ticket

	OTPWindow      time.Duration
	OTPMaxAttempts int    // 0 = unlimited
	OTPStore       string // "memory" | "redis"
	RedisAddr      string
	RedisPassword  string

	SMSProvider     string // "solapi" | "sns" | "log"
	SolapiAPIKey    string
	SolapiAPISecret string
	SolapiSender    string
	SolapiBaseURL   string
	SNSRegion       string

	GoogleServiceAccountEmail string
	GooglePrivateKey          string
	GoogleClientID            string
	SheetsID                  string
	SheetsIDTest              string

	AdminPassword        string
	AdminPasswordHash    string
	AdminGoogleEmails    []string
	AdminMaxFailedLogins int
	AdminLockout         time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	NotifyEmails []string

	AllowedOrigins []string // CORS allowed origins
	TrustedProxies []string // IPs or CIDRs whose forwarding headers are honoured
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Leads string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	env := getEnv("APP_ENV", "development")
	leadsTable := getEnv("DYNAMO_TABLE_LEADS", "loanbrothers")
	smsProvider := getEnv("SMS_PROVIDER", "solapi")
	if env != "production" {
		leadsTable = getEnv("DYNAMO_TABLE_LEADS_TEST", "loanbrothers_test")
		smsProvider = getEnv("SMS_PROVIDER", "log")
	}
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  env,

		AWSRegion:      getEnv("AWS_REGION", "ap-northeast-2"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Leads: leadsTable,
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "loan-landing-exports"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		AdminTokenTTL:     getEnvDuration("ADMIN_TOKEN_TTL", 24*time.Hour),
		TicketTTL:         getEnvDuration("VERIFICATION_TICKET_TTL", 30*time.Minute),

		OTPWindow:      getEnvDuration("OTP_WINDOW", 5*time.Minute),
		OTPMaxAttempts: getEnvInt("OTP_MAX_ATTEMPTS", 0),
		OTPStore:       getEnv("OTP_STORE", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),

		SMSProvider:     smsProvider,
		SolapiAPIKey:    getEnv("SOLAPI_API_KEY", ""),
		SolapiAPISecret: getEnv("SOLAPI_API_SECRET", ""),
		SolapiSender:    getEnv("SOLAPI_SENDER", ""),
		SolapiBaseURL:   getEnv("SOLAPI_BASE_URL", "https://api.solapi.com"),
		SNSRegion:       getEnv("SNS_REGION", "ap-northeast-1"),

		GoogleServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		// Keys pasted into env files usually carry escaped newlines.
		GooglePrivateKey: strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),
		GoogleClientID:   getEnv("GOOGLE_CLIENT_ID", ""),
		SheetsID:         getEnv("GOOGLE_SHEETS_ID", ""),
		SheetsIDTest:     getEnv("GOOGLE_SHEETS_ID_TEST", ""),

		AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash:    getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminGoogleEmails:    getEnvList("ADMIN_GOOGLE_EMAILS"),
		AdminMaxFailedLogins: getEnvInt("ADMIN_MAX_FAILED_LOGINS", 5),
		AdminLockout:         getEnvDuration("ADMIN_LOCKOUT", 15*time.Minute),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		NotifyEmails: getEnvList("NOTIFY_EMAILS"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),
	}
}

// IsTestMode reports whether the process writes to the test table and spreadsheet.
func (c *Config) IsTestMode() bool {
	return c.AppEnv != "production"
}

// SpreadsheetID returns the spreadsheet matching the current environment.
func (c *Config) SpreadsheetID() string {
	if c.IsTestMode() {
		return c.SheetsIDTest
	}
	return c.SheetsID
}

// SheetName returns the tab leads are appended to.
func (c *Config) SheetName() string {
	if c.IsTestMode() {
		return "Sheet1"
	}
	return "시트1"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
