package admin

import (
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/kst"
)

// Date filter presets offered by the dashboard.
const (
	PresetToday     = "today"
	PresetYesterday = "yesterday"
	PresetThisWeek  = "thisWeek"
	PresetLastWeek  = "lastWeek"
	PresetThisMonth = "thisMonth"
	PresetLastMonth = "lastMonth"
	PresetCustom    = "custom"
)

const dateLayout = "2006-01-02"

// Range is an inclusive created_at window and its display label.
type Range struct {
	From  time.Time
	To    time.Time
	Label string
}

// ResolveRange turns a preset (and for custom, from/to dates) into a window
// computed on the Korean calendar. Weeks start on Sunday. An empty preset
// means this week.
func ResolveRange(preset, from, to string, now time.Time) (Range, error) {
	now = now.In(kst.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, kst.Location)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, kst.Location)

	switch preset {
	case PresetToday:
		return span(today, today.AddDate(0, 0, 1), "오늘"), nil
	case PresetYesterday:
		y := today.AddDate(0, 0, -1)
		return span(y, today, "어제"), nil
	case PresetThisWeek, "":
		return span(weekStart, weekStart.AddDate(0, 0, 7), "이번 주"), nil
	case PresetLastWeek:
		return span(weekStart.AddDate(0, 0, -7), weekStart, "지난 주"), nil
	case PresetThisMonth:
		return span(monthStart, monthStart.AddDate(0, 1, 0), "이번 달"), nil
	case PresetLastMonth:
		return span(monthStart.AddDate(0, -1, 0), monthStart, "지난 달"), nil
	case PresetCustom:
		return customRange(from, to)
	default:
		return Range{}, domain.Invalid("지원하지 않는 기간입니다")
	}
}

func customRange(from, to string) (Range, error) {
	if from == "" || to == "" {
		return Range{}, domain.Invalid("시작일과 종료일을 입력해주세요")
	}
	start, err := time.ParseInLocation(dateLayout, from, kst.Location)
	if err != nil {
		return Range{}, domain.Invalid("날짜 형식이 올바르지 않습니다")
	}
	end, err := time.ParseInLocation(dateLayout, to, kst.Location)
	if err != nil {
		return Range{}, domain.Invalid("날짜 형식이 올바르지 않습니다")
	}
	if end.Before(start) {
		return Range{}, domain.Invalid("종료일이 시작일보다 빠릅니다")
	}
	return span(start, end.AddDate(0, 0, 1), start.Format("01/02")+" ~ "+end.Format("01/02")), nil
}

// span closes the half-open [start, next) at the last whole second.
func span(start, next time.Time, label string) Range {
	return Range{From: start, To: next.Add(-time.Second), Label: label}
}
