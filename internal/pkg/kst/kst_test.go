package kst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocaleString(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 1, 9, 5, 9, 0, time.UTC), "2024. 3. 1. 오후 6:05:09"},
		{time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC), "2024. 3. 2. 오전 12:00:00"},
		{time.Date(2024, 12, 31, 3, 30, 0, 0, time.UTC), "2024. 12. 31. 오후 12:30:00"},
		{time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC), "2024. 1. 1. 오전 9:00:01"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LocaleString(c.in))
	}
}
