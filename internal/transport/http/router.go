package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/loan-landing-api/internal/application/admin"
	"github.com/loan-landing-api/internal/application/lead"
	"github.com/loan-landing-api/internal/application/otp"
	"github.com/loan-landing-api/internal/config"
	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/transport/http/handler"
	appmiddleware "github.com/loan-landing-api/internal/transport/http/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
// Sheets, Objects, Mailer and Google are optional.
type Deps struct {
	Leads         LeadRepository
	Verifications VerificationStore
	SMS           SMSSender
	Tokens        TokenProvider
	Sheets        SheetsMirror
	Objects       ObjectStore
	Mailer        Mailer
	Google        GoogleVerifier
	Logger        *zap.Logger
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	proxies, err := appmiddleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.TrustedRealIP(proxies))
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, per client IP.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)
	// SMS costs money; one code every 10 seconds with a small burst.
	smsRL := appmiddleware.NewRateLimiter(rate.Limit(0.1), 3)

	otpSvc := otp.NewService(deps.Verifications, deps.SMS, cfg.OTPWindow, logger,
		otp.WithMaxAttempts(cfg.OTPMaxAttempts))

	leadDeps := lead.ServiceDeps{
		Repo:         deps.Leads,
		Tickets:      deps.Tokens,
		NotifyEmails: cfg.NotifyEmails,
		Logger:       logger,
	}
	if deps.Sheets != nil {
		leadDeps.Sheets = deps.Sheets
	}
	if deps.Mailer != nil {
		leadDeps.Mailer = deps.Mailer
	}
	leadSvc := lead.NewService(leadDeps)

	authDeps := admin.AuthDeps{
		Signer:        deps.Tokens,
		PasswordHash:  cfg.AdminPasswordHash,
		Password:      cfg.AdminPassword,
		AllowedEmails: cfg.AdminGoogleEmails,
		MaxFailures:   cfg.AdminMaxFailedLogins,
		Lockout:       cfg.AdminLockout,
		Logger:        logger,
	}
	if deps.Google != nil {
		authDeps.GoogleVerifier = deps.Google
	}
	authSvc, err := admin.NewAuthService(authDeps)
	if err != nil {
		return nil, fmt.Errorf("admin auth: %w", err)
	}

	var objects admin.ObjectStore
	if deps.Objects != nil {
		objects = deps.Objects
	}
	adminLeadSvc := admin.NewLeadService(deps.Leads, objects, logger)

	var sheetsChecker handler.SheetsChecker
	if deps.Sheets != nil {
		sheetsChecker = deps.Sheets
	}
	healthH := handler.NewHealthHandler(sheetsChecker, logger)
	verifyH := handler.NewVerificationHandler(otpSvc, deps.Tokens, logger)
	leadH := handler.NewLeadHandler(leadSvc, logger)
	sessionH := handler.NewAdminSessionHandler(authSvc)
	adminLeadH := handler.NewAdminLeadHandler(adminLeadSvc, logger)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(smsRL.Limit).Post("/verification-codes", verifyH.Request)
		r.With(sensitiveRL.Limit).Put("/verification-codes", verifyH.Verify)
		r.With(sensitiveRL.Limit).Post("/leads", leadH.Submit)
		r.With(sensitiveRL.Limit).Post("/admin/sessions", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/admin/sessions/google", sessionH.GoogleLogin)

		// ── Admin routes ─────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.Tokens))
			r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

			r.Get("/health-check/sheets", healthH.Sheets)
			r.Get("/admin/leads", adminLeadH.List)
			r.Get("/admin/leads/export", adminLeadH.Export)
			r.Post("/admin/leads/export", adminLeadH.Archive)
			r.Put("/admin/leads/{id}/status", adminLeadH.UpdateStatus)
			r.Put("/admin/leads/{id}/memo", adminLeadH.UpdateMemo)
		})
	})

	return r, nil
}
