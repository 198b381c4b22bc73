package minisite

import (
	"testing"
	"time"
)

func TestParseWhoisDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-05-01T00:00:00Z", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-05-01 00:00:00", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-05-01", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"01-May-2026", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2026.05.01", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := parseWhoisDate(tt.in)
		if err != nil {
			t.Errorf("parseWhoisDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseWhoisDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := parseWhoisDate("next tuesday"); err == nil {
		t.Error("expected error for unparseable date")
	}
}
