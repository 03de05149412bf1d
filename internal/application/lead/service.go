package lead

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/id"
	"github.com/loan-landing-api/internal/pkg/kst"
	"github.com/loan-landing-api/internal/pkg/phone"
	"github.com/loan-landing-api/internal/pkg/validate"
	"go.uber.org/zap"
)

// Validation messages shown to the applicant.
const (
	MsgAgeTooLow     = "나이는 18세 이상이어야 합니다"
	MsgInvalidPhone  = "올바른 전화번호 형식이 아닙니다"
	MsgAmountTooLow  = "대출 금액은 100만원 이상이어야 합니다"
	MsgMissingFields = "필수 값 누락"
)

const minAge = 18

type Repository interface {
	Put(ctx context.Context, l *domain.Lead) error
}

// TicketVerifier resolves a verification ticket to the phone it proves.
type TicketVerifier interface {
	VerifyTicket(token string) (string, error)
}

type SheetAppender interface {
	AppendLead(ctx context.Context, l *domain.Lead) error
}

type Mailer interface {
	SendEmail(to []string, subject, body string) error
}

type ServiceDeps struct {
	Repo         Repository
	Tickets      TicketVerifier
	Sheets       SheetAppender // optional
	Mailer       Mailer        // optional
	NotifyEmails []string
	Logger       *zap.Logger
	Now          func() time.Time
}

type Service interface {
	// Submit validates and stores a lead, then mirrors it to the spreadsheet
	// and notifies staff. Only the store write can fail the call.
	Submit(ctx context.Context, req domain.CreateLeadRequest) (*domain.Lead, error)
}

type service struct {
	ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{ServiceDeps: deps}
}

func (s *service) Submit(ctx context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	verified, err := s.Tickets.VerifyTicket(req.VerificationToken)
	if err != nil {
		return nil, fmt.Errorf("verification ticket: %w", domain.ErrUnauthorized)
	}
	if verified != req.PhoneNumber {
		return nil, fmt.Errorf("ticket phone does not match lead: %w", domain.ErrUnauthorized)
	}

	now := s.Now().UTC().Truncate(time.Second)
	l := &domain.Lead{
		LeadID:      id.New(),
		Kind:        domain.LeadKind,
		Age:         req.Age,
		PhoneNumber: req.PhoneNumber,
		Location:    strings.TrimSpace(req.Location),
		LoanAmount:  req.LoanAmount,
		Employed:    req.Employed,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Put(ctx, l); err != nil {
		return nil, fmt.Errorf("store lead: %w", err)
	}
	log := s.Logger.With(zap.String("lead_id", l.LeadID), zap.String("phone", phone.Mask(l.PhoneNumber)))
	log.Info("lead submitted")

	if s.Sheets != nil {
		if err := s.Sheets.AppendLead(ctx, l); err != nil {
			log.Error("sheet append failed", zap.Error(err))
		}
	}
	if s.Mailer != nil && len(s.NotifyEmails) > 0 {
		if err := s.Mailer.SendEmail(s.NotifyEmails, "[상담신청] 새 대출 상담 신청", notificationBody(l)); err != nil {
			log.Error("lead notification failed", zap.Error(err))
		}
	}
	return l, nil
}

// Validate applies the landing form rules in the order the form shows them.
func Validate(req domain.CreateLeadRequest) error {
	if strings.TrimSpace(req.Location) == "" || req.PhoneNumber == "" || req.VerificationToken == "" {
		return domain.Invalid(MsgMissingFields)
	}
	if req.Age < minAge {
		return domain.Invalid(MsgAgeTooLow)
	}
	if !validate.Phone(req.PhoneNumber) {
		return domain.Invalid(MsgInvalidPhone)
	}
	if req.LoanAmount < domain.MinLoanAmount {
		return domain.Invalid(MsgAmountTooLow)
	}
	return nil
}

func notificationBody(l *domain.Lead) string {
	employed := "아니오"
	if l.Employed {
		employed = "예"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "신청번호: %s\n", l.LeadID)
	fmt.Fprintf(&b, "나이: %d\n", l.Age)
	fmt.Fprintf(&b, "연락처: %s\n", l.PhoneNumber)
	fmt.Fprintf(&b, "지역: %s\n", l.Location)
	fmt.Fprintf(&b, "대출금액: %d원\n", l.LoanAmount)
	fmt.Fprintf(&b, "재직여부: %s\n", employed)
	fmt.Fprintf(&b, "신청일시: %s\n", kst.LocaleString(l.CreatedAt))
	return b.String()
}
