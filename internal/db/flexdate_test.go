package db

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexDateUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", `"2024-03-15T10:30:00Z"`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"plain date", `"2024-03-15"`, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"unix seconds", `1710498600`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"unix millis", `1710498600000`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"firestore export", `{"_seconds":1710498600,"_nanoseconds":0}`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"proto shape", `{"seconds":1710498600,"nanos":0}`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexDate
			if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if !f.Time.Equal(tt.want) {
				t.Errorf("got %v, want %v", f.Time, tt.want)
			}
		})
	}
}

func TestFlexDateUnmarshalNull(t *testing.T) {
	var f FlexDate
	if err := json.Unmarshal([]byte(`null`), &f); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !f.Time.IsZero() {
		t.Errorf("expected zero time, got %v", f.Time)
	}
}

func TestFlexDateUnmarshalInvalid(t *testing.T) {
	var f FlexDate
	if err := json.Unmarshal([]byte(`"not-a-date"`), &f); err == nil {
		t.Error("expected error for invalid string")
	}
	if err := json.Unmarshal([]byte(`{"foo":1}`), &f); err == nil {
		t.Error("expected error for unknown object shape")
	}
}

func TestFlexDateRoundTrip(t *testing.T) {
	f := FlexDate{time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back FlexDate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Time.Equal(f.Time) {
		t.Errorf("round trip changed value: %v != %v", back.Time, f.Time)
	}
}
