package draftkings

// API models for the DraftKings sportsbook API.
// League markets: GET /api/sportscontent/dkusoh/v1/leagues/{leagueId}
// Manifest:       GET /sites/US-OH-SB/api/sportslayout/v1/manifest?format=json
//
// The league response is flat: events, markets (keyed to events by eventId)
// and selections (keyed to markets by marketId) arrive as three parallel
// lists. Older responses nested competitions with bettingOffers under
// eventGroups instead; both shapes are modelled so either decodes.

import "github.com/oddsdesk/marketfeed/internal/books"

type dkPayload struct {
	Events      []dkEvent     `json:"events"`
	EventGroups []dkGroup     `json:"eventGroups"`
	Markets     []dkMarket    `json:"markets"`
	Selections  []dkSelection `json:"selections"`
}

type dkGroup struct {
	Events       []dkEvent `json:"events"`
	Competitions []dkEvent `json:"competitions"`
}

type dkEvent struct {
	ID             books.FlexID    `json:"id"`
	Name           string          `json:"name"`
	StartEventDate string          `json:"startEventDate"`
	StartDate      string          `json:"startDate"`
	StartTime      string          `json:"startTime"`
	Participants   []dkParticipant `json:"participants"`
	AwayTeam       *dkTeam         `json:"awayTeam"`
	HomeTeam       *dkTeam         `json:"homeTeam"`

	// Legacy nested shape only.
	BettingOffers []dkOffer `json:"bettingOffers"`
}

type dkParticipant struct {
	VenueRole string `json:"venueRole"` // "AWAY" | "HOME"
	Name      string `json:"name"`
}

type dkTeam struct {
	Name string `json:"name"`
}

type dkMarket struct {
	ID         books.FlexID  `json:"id"`
	EventID    books.FlexID  `json:"eventId"`
	Name       string        `json:"name"`
	MarketType *dkMarketType `json:"marketType"`
}

func (m dkMarket) displayName() string {
	if m.Name != "" {
		return m.Name
	}
	if m.MarketType != nil {
		return m.MarketType.Name
	}
	return ""
}

type dkMarketType struct {
	Name string `json:"name"`
}

type dkSelection struct {
	MarketID    books.FlexID      `json:"marketId"`
	Label       string            `json:"label"`
	OutcomeType string            `json:"outcomeType"` // "over"/"under" on totals
	Points      *float64          `json:"points"`
	DisplayOdds dkDisplayOdds     `json:"displayOdds"`
	Price       *dkSelectionPrice `json:"price"`
}

type dkDisplayOdds struct {
	American books.AmericanOdds `json:"american"`
}

type dkSelectionPrice struct {
	American books.AmericanOdds `json:"american"`
}

// odds returns the American price, whichever field carried it.
func (s dkSelection) odds() books.AmericanOdds {
	if !s.DisplayOdds.American.Empty() {
		return s.DisplayOdds.American
	}
	if s.Price != nil {
		return s.Price.American
	}
	return ""
}

// Legacy nested market shape.
type dkOffer struct {
	MarketType *dkMarketType `json:"marketType"`
	Label      string        `json:"label"`
	Line       *float64      `json:"line"`
	Outcomes   []dkOutcome   `json:"outcomes"`
}

func (o dkOffer) displayName() string {
	if o.MarketType != nil && o.MarketType.Name != "" {
		return o.MarketType.Name
	}
	return o.Label
}

type dkOutcome struct {
	Name  string           `json:"name"`
	Line  *float64         `json:"line"`
	Price dkSelectionPrice `json:"price"`
}
