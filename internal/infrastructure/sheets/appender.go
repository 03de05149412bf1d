// Package sheets mirrors submitted leads into a Google spreadsheet.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/loan-landing-api/internal/config"
	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/kst"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// AccessInfo describes the spreadsheet the service account can reach.
type AccessInfo struct {
	SpreadsheetTitle string `json:"spreadsheet_title"`
	Environment      string `json:"environment"`
}

// Appender writes one row per lead to the environment's spreadsheet.
type Appender struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetName     string
	testMode      bool
}

// NewService authenticates as the configured service account.
func NewService(ctx context.Context, cfg *config.Config) (*gsheets.Service, error) {
	if cfg.GoogleServiceAccountEmail == "" || cfg.GooglePrivateKey == "" {
		return nil, errors.New("google service account credentials missing")
	}
	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": cfg.GoogleServiceAccountEmail,
		"private_key":  cfg.GooglePrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, err
	}
	return gsheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
}

func NewAppender(svc *gsheets.Service, cfg *config.Config) *Appender {
	return &Appender{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID(),
		sheetName:     cfg.SheetName(),
		testMode:      cfg.IsTestMode(),
	}
}

// AppendLead adds l as a new row under the existing data.
func (a *Appender) AppendLead(ctx context.Context, l *domain.Lead) error {
	if a.spreadsheetID == "" {
		return errors.New("spreadsheet id not configured")
	}
	vr := &gsheets.ValueRange{Values: [][]interface{}{Row(l, a.testMode)}}
	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, a.sheetName+"!A:H", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}

// CheckAccess reads the spreadsheet title to prove the credentials work.
func (a *Appender) CheckAccess(ctx context.Context) (*AccessInfo, error) {
	if a.spreadsheetID == "" {
		return nil, errors.New("spreadsheet id not configured")
	}
	ss, err := a.svc.Spreadsheets.Get(a.spreadsheetID).Fields("properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get: %w", err)
	}
	info := &AccessInfo{Environment: environment(a.testMode)}
	if ss.Properties != nil {
		info.SpreadsheetTitle = ss.Properties.Title
	}
	return info, nil
}

// Row maps a lead onto columns A through H.
func Row(l *domain.Lead, testMode bool) []interface{} {
	employed := "X"
	if l.Employed {
		employed = "O"
	}
	marker := "실제"
	if testMode {
		marker = "테스트"
	}
	return []interface{}{
		l.LeadID,
		strconv.Itoa(l.Age),
		l.PhoneNumber,
		l.Location,
		strconv.FormatInt(l.LoanAmount, 10),
		employed,
		kst.LocaleString(l.CreatedAt),
		marker,
	}
}

func environment(testMode bool) string {
	if testMode {
		return "테스트"
	}
	return "프로덕션"
}
