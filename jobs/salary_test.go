package jobs

import (
	"testing"
	"time"
)

func TestNextAccrualTime(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2025, 3, 15, 10, 0, 0, 0, loc), time.Date(2025, 4, 1, 0, 0, 0, 0, loc)},
		{time.Date(2025, 12, 31, 23, 59, 0, 0, loc), time.Date(2026, 1, 1, 0, 0, 0, 0, loc)},
		// Exactly at the boundary the run has already fired; wait a month.
		{time.Date(2025, 4, 1, 0, 0, 0, 0, loc), time.Date(2025, 5, 1, 0, 0, 0, 0, loc)},
		{time.Date(2025, 4, 1, 0, 0, 1, 0, loc), time.Date(2025, 5, 1, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		if got := nextAccrualTime(tc.now); !got.Equal(tc.want) {
			t.Errorf("nextAccrualTime(%v) = %v, want %v", tc.now, got, tc.want)
		}
	}
}
