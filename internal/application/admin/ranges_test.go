package admin

import (
	"testing"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/loan-landing-api/internal/pkg/kst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2024-03-13 10:00 KST.
var wednesday = time.Date(2024, 3, 13, 1, 0, 0, 0, time.UTC)

func kstDate(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, kst.Location)
}

func TestResolveRange_Presets(t *testing.T) {
	cases := []struct {
		preset   string
		from, to time.Time
		label    string
	}{
		{PresetToday, kstDate(2024, 3, 13, 0, 0, 0), kstDate(2024, 3, 13, 23, 59, 59), "오늘"},
		{PresetYesterday, kstDate(2024, 3, 12, 0, 0, 0), kstDate(2024, 3, 12, 23, 59, 59), "어제"},
		{PresetThisWeek, kstDate(2024, 3, 10, 0, 0, 0), kstDate(2024, 3, 16, 23, 59, 59), "이번 주"},
		{"", kstDate(2024, 3, 10, 0, 0, 0), kstDate(2024, 3, 16, 23, 59, 59), "이번 주"},
		{PresetLastWeek, kstDate(2024, 3, 3, 0, 0, 0), kstDate(2024, 3, 9, 23, 59, 59), "지난 주"},
		{PresetThisMonth, kstDate(2024, 3, 1, 0, 0, 0), kstDate(2024, 3, 31, 23, 59, 59), "이번 달"},
		{PresetLastMonth, kstDate(2024, 2, 1, 0, 0, 0), kstDate(2024, 2, 29, 23, 59, 59), "지난 달"},
	}
	for _, c := range cases {
		t.Run(c.preset, func(t *testing.T) {
			r, err := ResolveRange(c.preset, "", "", wednesday)
			require.NoError(t, err)
			assert.True(t, c.from.Equal(r.From), "from %s", r.From)
			assert.True(t, c.to.Equal(r.To), "to %s", r.To)
			assert.Equal(t, c.label, r.Label)
		})
	}
}

func TestResolveRange_UsesKoreanDay(t *testing.T) {
	// 2024-03-12 23:30 UTC is already the 13th in Seoul.
	r, err := ResolveRange(PresetToday, "", "", time.Date(2024, 3, 12, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 13, r.From.Day())
}

func TestResolveRange_SundayStartsWeek(t *testing.T) {
	sunday := time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)
	r, err := ResolveRange(PresetThisWeek, "", "", sunday)
	require.NoError(t, err)
	assert.True(t, kstDate(2024, 3, 10, 0, 0, 0).Equal(r.From))
}

func TestResolveRange_CustomInclusiveEnd(t *testing.T) {
	r, err := ResolveRange(PresetCustom, "2024-03-01", "2024-03-05", wednesday)
	require.NoError(t, err)
	assert.True(t, kstDate(2024, 3, 1, 0, 0, 0).Equal(r.From))
	assert.True(t, kstDate(2024, 3, 5, 23, 59, 59).Equal(r.To))
	assert.Equal(t, "03/01 ~ 03/05", r.Label)
}

func TestResolveRange_Invalid(t *testing.T) {
	for _, c := range []struct{ preset, from, to string }{
		{"fortnight", "", ""},
		{PresetCustom, "", "2024-03-05"},
		{PresetCustom, "2024/03/01", "2024-03-05"},
		{PresetCustom, "2024-03-05", "2024-03-01"},
	} {
		_, err := ResolveRange(c.preset, c.from, c.to, wednesday)
		assert.ErrorIs(t, err, domain.ErrBadRequest, "%+v", c)
	}
}
