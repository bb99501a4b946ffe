package models

import (
	"fmt"
	"time"
)

// MarketEvent is one snapshot of one game's odds from one sportsbook.
//
// Every market field is independently optional: a book may publish a moneyline
// without a total, or a spread line without a price. Nil means the book did not
// offer that field at retrieval time. Away/Home are already alias-resolved.
type MarketEvent struct {
	Book      string    `json:"book"`
	Sport     string    `json:"sport"`
	Game      string    `json:"game"`
	GameStart time.Time `json:"game_start"` // zero when the book published no parseable start time
	Away      string    `json:"away"`
	Home      string    `json:"home"`

	Total      *float64 `json:"total"`
	OverPrice  *string  `json:"over_price"`
	UnderPrice *string  `json:"under_price"`

	AwayMoneyline *string `json:"away_moneyline"`
	HomeMoneyline *string `json:"home_moneyline"`

	AwaySpread      *float64 `json:"away_spread"`
	AwaySpreadPrice *string  `json:"away_spread_price"`
	HomeSpread      *float64 `json:"home_spread"`
	HomeSpreadPrice *string  `json:"home_spread_price"`

	RetrievedAt time.Time `json:"retrieved_at"`
}

// HasMarkets reports whether at least one market field is populated.
// Events with zero recognized markets are dropped by the adapters.
func (e *MarketEvent) HasMarkets() bool {
	return e.Total != nil || e.OverPrice != nil || e.UnderPrice != nil ||
		e.AwayMoneyline != nil || e.HomeMoneyline != nil ||
		e.AwaySpread != nil || e.AwaySpreadPrice != nil ||
		e.HomeSpread != nil || e.HomeSpreadPrice != nil
}

// GameLabel builds the canonical "Away @ Home" label.
func GameLabel(away, home string) string {
	return fmt.Sprintf("%s @ %s", away, home)
}

// Float returns a pointer to v. Convenience for building optional fields.
func Float(v float64) *float64 { return &v }

// Str returns a pointer to s.
func Str(s string) *string { return &s }
