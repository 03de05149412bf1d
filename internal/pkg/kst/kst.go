// Package kst formats times for Korean staff.
package kst

import (
	"fmt"
	"time"
)

// Location is Korea Standard Time. Korea observes no daylight saving.
var Location = time.FixedZone("KST", 9*60*60)

// LocaleString renders t the way ko-KR locales print a date-time,
// e.g. "2024. 3. 1. 오후 6:05:09".
func LocaleString(t time.Time) string {
	t = t.In(Location)
	ampm := "오전"
	h := t.Hour()
	if h >= 12 {
		ampm = "오후"
	}
	if h%12 == 0 {
		h = 12
	} else {
		h %= 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), ampm, h, t.Minute(), t.Second())
}
