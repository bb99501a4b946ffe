package books

import (
	"strings"
	"time"

	"github.com/oddsdesk/marketfeed/internal/pkg/models"
	"github.com/oddsdesk/marketfeed/internal/pkg/sports"
)

// MarketKind is one of the three market types the normalization layer
// recognizes. Everything else in an upstream payload is ignored.
type MarketKind int

const (
	KindUnknown MarketKind = iota
	KindMoneyline
	KindSpread
	KindTotal
)

// ClassifyMarket matches a market name or type label against known keywords,
// case-insensitively. Unmatched names come back KindUnknown; the caller may
// then fall back to inference from the outcomes themselves.
func ClassifyMarket(name string) MarketKind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "money"):
		return KindMoneyline
	case strings.Contains(n, "spread"), strings.Contains(n, "handicap"):
		return KindSpread
	case strings.Contains(n, "total"), strings.Contains(n, "over"), strings.Contains(n, "under"):
		return KindTotal
	default:
		return KindUnknown
	}
}

// InferKind guesses a market's type from its outcomes when the upstream
// market carries no usable name: over/under outcomes mean a total, outcomes
// publishing their own line mean a spread, anything else with outcomes is
// treated as a moneyline.
func InferKind(outcomes []Outcome) MarketKind {
	hasLine := false
	for _, o := range outcomes {
		if isOver(o) || isUnder(o) {
			return KindTotal
		}
		if o.Line != nil {
			hasLine = true
		}
	}
	switch {
	case hasLine:
		return KindSpread
	case len(outcomes) > 0:
		return KindMoneyline
	default:
		return KindUnknown
	}
}

// Outcome is one selection/runner of an upstream market, reduced to the
// fields the builder needs. Side is an explicit hint from the payload
// ("away", "home", "over", "under"); when empty the builder matches Label
// against the event's team names instead.
type Outcome struct {
	Label string
	Side  string
	Line  *float64
	Price AmericanOdds
}

// Market is one upstream market in book-independent form. Kind may be left
// KindUnknown; the builder then classifies by Name and finally by outcome
// inference.
type Market struct {
	Name     string
	Kind     MarketKind
	Line     *float64
	Outcomes []Outcome
}

// EventInput is everything an adapter extracted for one upstream game.
type EventInput struct {
	Book        string
	Sport       string
	AwayRaw     string
	HomeRaw     string
	Away        string
	Home        string
	Start       time.Time
	Markets     []Market
	RetrievedAt time.Time
}

// BuildEvent flattens the recognized markets of one game into a single
// MarketEvent. Fields are first-match-wins: when a book publishes several
// spread markets, the earliest one in payload order sticks. Each side's line
// is read from that side's own published value, never derived by negating the
// opposite side. Returns false when no recognized market contributed a field.
func BuildEvent(in EventInput) (models.MarketEvent, bool) {
	me := models.MarketEvent{
		Book:        in.Book,
		Sport:       in.Sport,
		Game:        models.GameLabel(in.Away, in.Home),
		GameStart:   in.Start,
		Away:        in.Away,
		Home:        in.Home,
		RetrievedAt: in.RetrievedAt,
	}
	for _, m := range in.Markets {
		kind := m.Kind
		if kind == KindUnknown {
			kind = ClassifyMarket(m.Name)
		}
		if kind == KindUnknown {
			kind = InferKind(m.Outcomes)
		}
		switch kind {
		case KindMoneyline:
			applyMoneyline(&me, in, m)
		case KindSpread:
			applySpread(&me, in, m)
		case KindTotal:
			applyTotal(&me, in, m)
		}
	}
	return me, me.HasMarkets()
}

func applyMoneyline(me *models.MarketEvent, in EventInput, m Market) {
	for _, o := range m.Outcomes {
		if o.Price.Empty() {
			continue
		}
		switch teamSide(o, in) {
		case "away":
			if me.AwayMoneyline == nil {
				me.AwayMoneyline = o.Price.Ptr()
			}
		case "home":
			if me.HomeMoneyline == nil {
				me.HomeMoneyline = o.Price.Ptr()
			}
		}
	}
}

func applySpread(me *models.MarketEvent, in EventInput, m Market) {
	for _, o := range m.Outcomes {
		line := o.Line
		if line == nil {
			line = m.Line
		}
		switch teamSide(o, in) {
		case "away":
			if me.AwaySpread == nil && line != nil {
				v := *line
				me.AwaySpread = &v
			}
			if me.AwaySpreadPrice == nil && !o.Price.Empty() {
				me.AwaySpreadPrice = o.Price.Ptr()
			}
		case "home":
			if me.HomeSpread == nil && line != nil {
				v := *line
				me.HomeSpread = &v
			}
			if me.HomeSpreadPrice == nil && !o.Price.Empty() {
				me.HomeSpreadPrice = o.Price.Ptr()
			}
		}
	}
}

func applyTotal(me *models.MarketEvent, in EventInput, m Market) {
	for _, o := range m.Outcomes {
		line := o.Line
		if line == nil {
			line = m.Line
		}
		if me.Total == nil && line != nil {
			v := *line
			me.Total = &v
		}
		switch {
		case isOver(o):
			if me.OverPrice == nil && !o.Price.Empty() {
				me.OverPrice = o.Price.Ptr()
			}
		case isUnder(o):
			if me.UnderPrice == nil && !o.Price.Empty() {
				me.UnderPrice = o.Price.Ptr()
			}
		}
	}
}

// teamSide resolves which side of the game an outcome belongs to: the
// payload's explicit hint first, then the label matched against the raw and
// aliased team names.
func teamSide(o Outcome, in EventInput) string {
	switch strings.ToLower(o.Side) {
	case "away":
		return "away"
	case "home":
		return "home"
	}
	label := sports.Normalize(stripLabelLine(o.Label))
	if label == "" {
		return ""
	}
	switch label {
	case sports.Normalize(in.AwayRaw), sports.Normalize(in.Away):
		return "away"
	case sports.Normalize(in.HomeRaw), sports.Normalize(in.Home):
		return "home"
	}
	return ""
}

// stripLabelLine drops a trailing line from labels like "Team A -3.5" so the
// remainder compares against team names.
func stripLabelLine(label string) string {
	label = strings.TrimSpace(label)
	if i := strings.LastIndexAny(label, " "); i > 0 {
		tail := label[i+1:]
		if strings.IndexAny(tail, "0123456789") >= 0 && strings.IndexAny(tail, "+-") == 0 {
			return strings.TrimSpace(label[:i])
		}
	}
	return label
}

func isOver(o Outcome) bool {
	return strings.EqualFold(o.Side, "over") || strings.HasPrefix(strings.ToLower(strings.TrimSpace(o.Label)), "over")
}

func isUnder(o Outcome) bool {
	return strings.EqualFold(o.Side, "under") || strings.HasPrefix(strings.ToLower(strings.TrimSpace(o.Label)), "under")
}
