package warranty

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluate(t *testing.T) {
	now := date(2025, time.June, 15)
	tests := []struct {
		name     string
		expiry   *time.Time
		wantDays int
		wantStat Status
	}{
		{"yesterday", ptr(date(2025, time.June, 14)), -1, StatusExpired},
		{"long expired", ptr(date(2024, time.June, 15)), -365, StatusExpired},
		{"today", ptr(date(2025, time.June, 15)), 0, StatusExpiringSoon},
		{"in 7 days", ptr(date(2025, time.June, 22)), 7, StatusExpiringSoon},
		{"in 8 days", ptr(date(2025, time.June, 23)), 8, StatusExpiringSoon},
		{"in 30 days", ptr(date(2025, time.July, 15)), 30, StatusExpiringSoon},
		{"in 31 days", ptr(date(2025, time.July, 16)), 31, StatusActive},
		{"in 45 days", ptr(date(2025, time.July, 30)), 45, StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.expiry, now)
			if got.Status != tt.wantStat {
				t.Fatalf("status got=%v want=%v", got.Status, tt.wantStat)
			}
			if got.DaysRemaining == nil {
				t.Fatal("days remaining is nil")
			}
			if *got.DaysRemaining != tt.wantDays {
				t.Fatalf("days got=%d want=%d", *got.DaysRemaining, tt.wantDays)
			}
		})
	}
}

func TestEvaluateNoExpiry(t *testing.T) {
	got := Evaluate(nil, date(2025, time.June, 15))
	if got.Status != StatusNoWarranty {
		t.Fatalf("status got=%v want=%v", got.Status, StatusNoWarranty)
	}
	if got.DaysRemaining != nil {
		t.Fatalf("days got=%v want=nil", *got.DaysRemaining)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	// 23:59 today to 00:01 tomorrow is still one whole calendar day.
	from := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 16, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(from, to); got != 1 {
		t.Fatalf("got=%d want=1", got)
	}
	// Same calendar day never classifies as expired.
	sameDay := time.Date(2025, time.June, 15, 0, 30, 0, 0, time.UTC)
	if got := DaysBetween(from, sameDay); got != 0 {
		t.Fatalf("got=%d want=0", got)
	}
}

func TestUrgent(t *testing.T) {
	now := date(2025, time.June, 15)
	if !Evaluate(ptr(date(2025, time.June, 20)), now).Urgent() {
		t.Fatal("5 days out should be urgent")
	}
	if Evaluate(ptr(date(2025, time.June, 30)), now).Urgent() {
		t.Fatal("15 days out should not be urgent")
	}
	if Evaluate(nil, now).Urgent() {
		t.Fatal("no warranty should not be urgent")
	}
}

func TestLabel(t *testing.T) {
	now := date(2025, time.June, 15)
	tests := []struct {
		name   string
		expiry *time.Time
		want   string
	}{
		{"expired", ptr(date(2025, time.June, 1)), "Expired"},
		{"today", ptr(date(2025, time.June, 15)), "Expires today"},
		{"days left", ptr(date(2025, time.June, 18)), "3d left"},
		{"no warranty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.expiry, now).Label(); got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain date", "2025-06-15", false},
		{"rfc3339", "2025-06-15T10:30:00Z", false},
		{"garbage", "not-a-date", true},
		{"empty", "", true},
		{"bad month", "2025-13-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
