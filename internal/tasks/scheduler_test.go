package tasks

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	tests := []struct {
		name string
		now  string
		want string
	}{
		{"wednesday", "2026-08-26T10:00:00Z", "2026-08-31T15:00:00Z"},
		{"monday before 15:00", "2026-08-31T09:00:00Z", "2026-08-31T15:00:00Z"},
		{"monday exactly 15:00", "2026-08-31T15:00:00Z", "2026-09-07T15:00:00Z"},
		{"monday after 15:00", "2026-08-31T16:00:00Z", "2026-09-07T15:00:00Z"},
		{"sunday", "2026-08-30T23:59:00Z", "2026-08-31T15:00:00Z"},
		{"month boundary", "2026-09-29T16:00:00Z", "2026-10-05T15:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse(time.RFC3339, tt.now)
			if err != nil {
				t.Fatalf("Bad test input: %v", err)
			}
			want, _ := time.Parse(time.RFC3339, tt.want)

			got := NextRun(now)
			if !got.Equal(want) {
				t.Errorf("NextRun(%s) = %s, want %s", tt.now, got, tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("NextRun(%s) is a %s, want Monday", tt.now, got.Weekday())
			}
		})
	}
}

func TestNextRunAlwaysInFuture(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		next := NextRun(now)
		if !next.After(now) {
			t.Errorf("NextRun(%s) = %s is not in the future", now, next)
		}
		now = now.AddDate(0, 0, 1)
	}
}
