package books

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// AmericanOdds holds a book-native American odds display string ("+110",
// "-130"). Books disagree on the wire type: DraftKings sends strings (at times
// with a Unicode minus), FanDuel sends bare integers. Both unmarshal into the
// same normalized string. The value is deliberately not validated beyond
// normalization: upstream variants like "EVEN" are real data and must survive.
type AmericanOdds string

func (a *AmericanOdds) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AmericanOdds(normalizeOdds(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = AmericanOdds(normalizeOdds(n.String()))
		return nil
	}
	// Unexpected shape (object, array): leave unset rather than failing the
	// surrounding record.
	*a = ""
	return nil
}

func (a AmericanOdds) String() string { return string(a) }

// Empty reports whether no odds value was present upstream.
func (a AmericanOdds) Empty() bool { return a == "" }

// Ptr returns the odds as an optional string for MarketEvent fields, nil when
// empty.
func (a AmericanOdds) Ptr() *string {
	if a == "" {
		return nil
	}
	s := string(a)
	return &s
}

// normalizeOdds maps the Unicode minus (U+2212) to ASCII and prefixes bare
// positive integers with "+" so "110" and "+110" compare equal downstream.
func normalizeOdds(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "−", "-"))
	if s == "" {
		return ""
	}
	if _, err := strconv.Atoi(s); err == nil && s[0] != '-' && s[0] != '+' {
		return "+" + s
	}
	return s
}

// FlexID is an upstream identifier that may arrive as a JSON string or number.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n.String())
		return nil
	}
	*f = ""
	return nil
}

func (f FlexID) String() string { return string(f) }

// ParseTime parses the start-time formats seen across books: RFC 3339 with or
// without a Z suffix, and naive ISO 8601 (treated as UTC). Returns a zero time
// and false when nothing matches; an unparsable timestamp never fails the
// surrounding event.
func ParseTime(s string) (time.Time, bool) {
	return ParseTimeIn(s, time.UTC)
}

// ParseTimeIn is ParseTime with naive timestamps interpreted in loc instead of
// UTC. Books publish naive start times in the sport's local timezone.
func ParseTimeIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.999Z07:00",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
