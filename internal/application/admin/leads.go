package admin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/id"
	"go.uber.org/zap"
)

// ArchiveURLTTL is how long a presigned export link stays usable.
const ArchiveURLTTL = 15 * time.Minute

var errNothingToExport = &domain.MessageError{Msg: "다운로드할 데이터가 없습니다.", Kind: domain.ErrNotFound}

type LeadRepository interface {
	QueryRange(ctx context.Context, from, to time.Time) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, leadID string, status domain.LeadStatus) (*domain.Lead, error)
	UpdateMemo(ctx context.Context, leadID, memo string) (*domain.Lead, error)
}

// ObjectStore keeps archived exports.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Export is a rendered workbook ready to send.
type Export struct {
	Filename string
	Data     []byte
	Count    int
}

type LeadService interface {
	List(ctx context.Context, r Range) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, leadID string, status domain.LeadStatus) (*domain.Lead, error)
	UpdateMemo(ctx context.Context, leadID, memo string) (*domain.Lead, error)
	Export(ctx context.Context, r Range) (*Export, error)
	// Archive uploads the export and returns a short-lived download link.
	Archive(ctx context.Context, r Range) (url, filename string, err error)
}

type leadService struct {
	repo    LeadRepository
	objects ObjectStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewLeadService(repo LeadRepository, objects ObjectStore, logger *zap.Logger) LeadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &leadService{repo: repo, objects: objects, logger: logger, now: time.Now}
}

func (s *leadService) List(ctx context.Context, r Range) ([]domain.Lead, error) {
	leads, err := s.repo.QueryRange(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (s *leadService) UpdateStatus(ctx context.Context, leadID string, status domain.LeadStatus) (*domain.Lead, error) {
	if !status.Valid() {
		return nil, domain.Invalid("알 수 없는 상태입니다")
	}
	l, err := s.repo.UpdateStatus(ctx, leadID, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("lead status changed", zap.String("lead_id", leadID), zap.String("status", string(status)))
	return l, nil
}

func (s *leadService) UpdateMemo(ctx context.Context, leadID, memo string) (*domain.Lead, error) {
	return s.repo.UpdateMemo(ctx, leadID, memo)
}

func (s *leadService) Export(ctx context.Context, r Range) (*Export, error) {
	leads, err := s.List(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, errNothingToExport
	}
	data, err := BuildWorkbook(leads)
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename: ExportFilename(r.Label, s.now()),
		Data:     data,
		Count:    len(leads),
	}, nil
}

func (s *leadService) Archive(ctx context.Context, r Range) (string, string, error) {
	if s.objects == nil {
		return "", "", fmt.Errorf("export archive not configured: %w", domain.ErrUnavailable)
	}
	exp, err := s.Export(ctx, r)
	if err != nil {
		return "", "", err
	}
	key := "exports/" + id.New() + ".xlsx"
	if _, err := s.objects.Upload(ctx, key, bytes.NewReader(exp.Data), XLSXContentType); err != nil {
		return "", "", err
	}
	url, err := s.objects.PresignedURL(ctx, key, ArchiveURLTTL)
	if err != nil {
		return "", "", err
	}
	s.logger.Info("lead export archived", zap.String("key", key), zap.Int("count", exp.Count))
	return url, exp.Filename, nil
}
