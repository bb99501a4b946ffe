package books

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAmericanOddsUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"+110"`, "+110"},
		{`"-130"`, "-130"},
		{`"110"`, "+110"},
		{`110`, "+110"},
		{`-130`, "-130"},
		{`"−115"`, "-115"},
		{`"EVEN"`, "EVEN"},
		{`""`, ""},
		{`null`, ""},
	}
	for _, tt := range tests {
		var odds AmericanOdds
		if err := json.Unmarshal([]byte(tt.in), &odds); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.in, err)
			continue
		}
		if odds.String() != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, odds, tt.want)
		}
	}
}

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"abc-123"`, "abc-123"},
		{`42648`, "42648"},
		{`"42648"`, "42648"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id FlexID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.in, err)
			continue
		}
		if id.String() != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, id, tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
		want   time.Time
	}{
		{"2026-01-15T00:30:00Z", true, time.Date(2026, 1, 15, 0, 30, 0, 0, time.UTC)},
		{"2026-01-15T00:30:00.000Z", true, time.Date(2026, 1, 15, 0, 30, 0, 0, time.UTC)},
		// Naive timestamps read as UTC.
		{"2026-01-15T00:30:00", true, time.Date(2026, 1, 15, 0, 30, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"not a time", false, time.Time{}},
	}
	for _, tt := range tests {
		got, ok := ParseTime(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseTime(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTimeInNaiveLocalized(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	// 19:30 EST is 00:30 UTC the next day.
	got, ok := ParseTimeIn("2026-01-15T19:30:00", ny)
	if !ok {
		t.Fatal("ParseTimeIn = !ok")
	}
	if want := time.Date(2026, 1, 16, 0, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseTimeIn = %v, want %v", got, want)
	}
	// Zone-qualified timestamps ignore loc.
	got, ok = ParseTimeIn("2026-01-15T19:30:00Z", ny)
	if !ok || !got.Equal(time.Date(2026, 1, 15, 19, 30, 0, 0, time.UTC)) {
		t.Errorf("ParseTimeIn(zoned) = %v, %v", got, ok)
	}
}
