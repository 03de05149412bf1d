package admin

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/kst"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet       = "신청목록"
	XLSXContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilePrefix  = "대출신청목록"
	exportStampLayout = "2006-01-02_1504"
)

var exportColumns = []struct {
	header string
	width  float64
}{
	{"나이", 8},
	{"연락처", 15},
	{"지역", 20},
	{"대출금액", 15},
	{"취업상태", 10},
	{"신청일시", 20},
	{"상태", 10},
}

// BuildWorkbook renders leads as a single-sheet xlsx file.
func BuildWorkbook(leads []domain.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportColumns))
	for i, c := range exportColumns {
		header[i] = c.header
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, col, col, c.width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(&leads[i])
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename names a download after its filter label and the Korean
// local time it was generated.
func ExportFilename(label string, now time.Time) string {
	label = strings.ReplaceAll(label, "/", "-")
	return exportFilePrefix + "_" + label + "_" + now.In(kst.Location).Format(exportStampLayout) + ".xlsx"
}

func exportRow(l *domain.Lead) []interface{} {
	employed := "미취업"
	if l.Employed {
		employed = "재직중"
	}
	return []interface{}{
		strconv.Itoa(l.Age) + "세",
		l.PhoneNumber,
		l.Location,
		FormatWon(l.LoanAmount),
		employed,
		kst.LocaleString(l.CreatedAt),
		l.Status.Label(),
	}
}

// FormatWon formats n as Korean currency, e.g. "₩5,000,000".
func FormatWon(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b bytes.Buffer
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "₩" + b.String()
}
