package models

import "time"

// MarketEventJSON is the transport-safe form of MarketEvent: timestamps become
// RFC 3339 strings (nil when unset), everything else passes through unchanged.
type MarketEventJSON struct {
	Book      string  `json:"book"`
	Sport     string  `json:"sport"`
	Game      string  `json:"game"`
	GameStart *string `json:"game_start"`
	Away      string  `json:"away"`
	Home      string  `json:"home"`

	Total      *float64 `json:"total"`
	OverPrice  *string  `json:"over_price"`
	UnderPrice *string  `json:"under_price"`

	AwayMoneyline *string `json:"away_moneyline"`
	HomeMoneyline *string `json:"home_moneyline"`

	AwaySpread      *float64 `json:"away_spread"`
	AwaySpreadPrice *string  `json:"away_spread_price"`
	HomeSpread      *float64 `json:"home_spread"`
	HomeSpreadPrice *string  `json:"home_spread_price"`

	RetrievedAt *string `json:"retrieved_at"`
}

// Serialize converts a MarketEvent to its transport form.
func Serialize(e MarketEvent) MarketEventJSON {
	return MarketEventJSON{
		Book:            e.Book,
		Sport:           e.Sport,
		Game:            e.Game,
		GameStart:       formatTime(e.GameStart),
		Away:            e.Away,
		Home:            e.Home,
		Total:           e.Total,
		OverPrice:       e.OverPrice,
		UnderPrice:      e.UnderPrice,
		AwayMoneyline:   e.AwayMoneyline,
		HomeMoneyline:   e.HomeMoneyline,
		AwaySpread:      e.AwaySpread,
		AwaySpreadPrice: e.AwaySpreadPrice,
		HomeSpread:      e.HomeSpread,
		HomeSpreadPrice: e.HomeSpreadPrice,
		RetrievedAt:     formatTime(e.RetrievedAt),
	}
}

// SerializeAll converts a batch of events.
func SerializeAll(events []MarketEvent) []MarketEventJSON {
	out := make([]MarketEventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, Serialize(e))
	}
	return out
}

// Rehydrate converts the transport form back into a MarketEvent. Timestamps
// that fail to parse come back as zero times rather than errors: the transport
// form is produced by Serialize and a bad string means a bad producer, not a
// condition the reader can act on.
func Rehydrate(j MarketEventJSON) MarketEvent {
	return MarketEvent{
		Book:            j.Book,
		Sport:           j.Sport,
		Game:            j.Game,
		GameStart:       parseTime(j.GameStart),
		Away:            j.Away,
		Home:            j.Home,
		Total:           j.Total,
		OverPrice:       j.OverPrice,
		UnderPrice:      j.UnderPrice,
		AwayMoneyline:   j.AwayMoneyline,
		HomeMoneyline:   j.HomeMoneyline,
		AwaySpread:      j.AwaySpread,
		AwaySpreadPrice: j.AwaySpreadPrice,
		HomeSpread:      j.HomeSpread,
		HomeSpreadPrice: j.HomeSpreadPrice,
		RetrievedAt:     parseTime(j.RetrievedAt),
	}
}

func formatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func parseTime(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}
	}
	return t
}
