package fanduel

// API models for the FanDuel content-managed-page endpoint. The response has
// shipped in several shapes: an attachments envelope with events and markets
// keyed by ID, a content.sbEvents list nesting markets under each event, and
// occasionally a bare top-level object mapping market IDs straight to
// markets. All three are modelled.

import "github.com/oddsdesk/marketfeed/internal/books"

type fdPayload struct {
	Attachments *fdAttachments `json:"attachments"`
	Content     *fdContent     `json:"content"`
}

type fdAttachments struct {
	Events  map[string]fdEvent  `json:"events"`
	Markets map[string]fdMarket `json:"markets"`
}

type fdContent struct {
	SBEvents []fdSBEvent `json:"sbEvents"`
}

type fdSBEvent struct {
	fdEvent
	Markets []fdMarket `json:"markets"`
}

type fdEvent struct {
	EventID   books.FlexID `json:"eventId"`
	Name      string       `json:"name"`
	OpenDate  string       `json:"openDate"`
	StartTime string       `json:"startTime"`
	AwayTeam  *fdTeam      `json:"awayTeam"`
	HomeTeam  *fdTeam      `json:"homeTeam"`
}

type fdTeam struct {
	Name string `json:"name"`
}

type fdMarket struct {
	MarketID   books.FlexID `json:"marketId"`
	EventID    books.FlexID `json:"eventId"`
	MarketName string       `json:"marketName"`
	MarketType string       `json:"marketType"`
	MarketTime string       `json:"marketTime"`
	Runners    []fdRunner   `json:"runners"`
}

type fdRunner struct {
	RunnerName    string        `json:"runnerName"`
	Handicap      *float64      `json:"handicap"`
	Result        *fdResult     `json:"result"`
	WinRunnerOdds *fdRunnerOdds `json:"winRunnerOdds"`
}

type fdResult struct {
	Type string `json:"type"` // "HOME" | "AWAY"
}

// side maps the runner's result type to a builder side hint. Over/under
// runners carry no result and are matched by name instead.
func (r fdRunner) side() string {
	if r.Result == nil {
		return ""
	}
	switch r.Result.Type {
	case "HOME":
		return "home"
	case "AWAY":
		return "away"
	}
	return ""
}

func (r fdRunner) odds() books.AmericanOdds {
	if r.WinRunnerOdds == nil {
		return ""
	}
	return r.WinRunnerOdds.AmericanDisplayOdds.AmericanOdds
}

type fdRunnerOdds struct {
	AmericanDisplayOdds fdAmericanDisplay `json:"americanDisplayOdds"`
}

type fdAmericanDisplay struct {
	AmericanOdds books.AmericanOdds `json:"americanOdds"`
}
