package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/loan-landing-api/internal/config"
	"github.com/loan-landing-api/internal/infrastructure/dynamo"
	"github.com/loan-landing-api/internal/infrastructure/google"
	jwtinfra "github.com/loan-landing-api/internal/infrastructure/jwt"
	"github.com/loan-landing-api/internal/infrastructure/memory"
	redisinfra "github.com/loan-landing-api/internal/infrastructure/redis"
	s3infra "github.com/loan-landing-api/internal/infrastructure/s3"
	"github.com/loan-landing-api/internal/infrastructure/sheets"
	"github.com/loan-landing-api/internal/infrastructure/sms"
	"github.com/loan-landing-api/internal/infrastructure/smtp"
	transporthttp "github.com/loan-landing-api/internal/transport/http"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Info("no .env file found, reading from environment")
	}

	ctx := context.Background()

	awsCfg, err := dynamo.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("aws config", zap.Error(err))
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, logger)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		logger.Fatal("jwt provider", zap.Error(err))
	}

	smsSender, err := sms.NewSender(cfg, logger)
	if err != nil {
		logger.Fatal("sms sender", zap.Error(err))
	}

	deps := &transporthttp.Deps{
		Leads:   dynamo.NewLeadRepo(dynamoClient, cfg.DynamoTables.Leads),
		SMS:     smsSender,
		Tokens:  jwtProvider,
		Objects: s3infra.NewStore(s3infra.NewClient(awsCfg, cfg), cfg.S3BucketName),
		Mailer:  smtp.NewMailer(cfg),
		Logger:  logger,
	}

	switch cfg.OTPStore {
	case "redis":
		client, err := redisinfra.NewClient(cfg)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer client.Close()
		deps.Verifications = redisinfra.NewVerificationStore(client, cfg.OTPWindow)
	default:
		deps.Verifications = memory.NewVerificationStore()
	}

	// Leads are still stored when the spreadsheet mirror is unavailable.
	if svc, err := sheets.NewService(ctx, cfg); err == nil {
		deps.Sheets = sheets.NewAppender(svc, cfg)
	} else {
		logger.Warn("google sheets not available", zap.Error(err))
	}

	if cfg.GoogleClientID != "" {
		deps.Google = google.NewVerifier(cfg.GoogleClientID)
	}

	router, err := transporthttp.NewRouter(cfg, deps)
	if err != nil {
		logger.Fatal("router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv),
			zap.String("otp_store", cfg.OTPStore), zap.String("sms_provider", cfg.SMSProvider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
