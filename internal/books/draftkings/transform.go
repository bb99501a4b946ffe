package draftkings

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oddsdesk/marketfeed/internal/books"
	"github.com/oddsdesk/marketfeed/internal/pkg/models"
)

// Transform converts a raw league payload into canonical events. Records the
// payload carries in an unusable form are dropped and reported as skips; the
// function itself never fails.
func (a *Adapter) Transform(payload []byte) ([]models.MarketEvent, []books.Skip) {
	var p dkPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, []books.Skip{{Reason: fmt.Sprintf("payload does not match any known shape: %v", err)}}
	}

	events := collectEvents(p)
	if len(events) == 0 {
		return nil, []books.Skip{{Reason: "no events in payload"}}
	}

	marketsByEvent := indexMarkets(p)
	loc := a.Sport.Location()
	now := time.Now().UTC()

	var (
		out   []models.MarketEvent
		skips []books.Skip
	)
	for _, ev := range events {
		awayRaw, homeRaw, ok := eventTeams(ev)
		if !ok {
			skips = append(skips, books.Skip{EventID: ev.ID.String(), Reason: "cannot determine away/home teams"})
			continue
		}
		markets := eventMarkets(ev, marketsByEvent)
		if len(markets) == 0 {
			skips = append(skips, books.Skip{EventID: ev.ID.String(), Reason: "no markets for event"})
			continue
		}
		me, ok := books.BuildEvent(books.EventInput{
			Book:        Name,
			Sport:       a.SportKey,
			AwayRaw:     awayRaw,
			HomeRaw:     homeRaw,
			Away:        a.AliasTeam(awayRaw),
			Home:        a.AliasTeam(homeRaw),
			Start:       eventStart(ev, loc),
			Markets:     markets,
			RetrievedAt: now,
		})
		if !ok {
			skips = append(skips, books.Skip{EventID: ev.ID.String(), Reason: "no recognized markets"})
			continue
		}
		out = append(out, me)
	}
	return out, skips
}

// collectEvents returns the payload's event list, trying the flat shape first
// and falling back to flattening the legacy eventGroups nesting.
func collectEvents(p dkPayload) []dkEvent {
	if len(p.Events) > 0 {
		return p.Events
	}
	var out []dkEvent
	for _, g := range p.EventGroups {
		out = append(out, g.Events...)
		out = append(out, g.Competitions...)
	}
	return out
}

// eventTeams resolves the away and home team names, in order of preference:
// participants with venue roles, dedicated team objects, and finally the
// event name split on " @ " (away listed first, US convention).
func eventTeams(ev dkEvent) (away, home string, ok bool) {
	for _, part := range ev.Participants {
		switch strings.ToUpper(part.VenueRole) {
		case "AWAY":
			away = part.Name
		case "HOME":
			home = part.Name
		}
	}
	if away != "" && home != "" {
		return away, home, true
	}
	if ev.AwayTeam != nil && ev.HomeTeam != nil && ev.AwayTeam.Name != "" && ev.HomeTeam.Name != "" {
		return ev.AwayTeam.Name, ev.HomeTeam.Name, true
	}
	if parts := strings.Split(ev.Name, " @ "); len(parts) == 2 {
		away = strings.TrimSpace(parts[0])
		home = strings.TrimSpace(parts[1])
		if away != "" && home != "" {
			return away, home, true
		}
	}
	return "", "", false
}

// eventStart picks the first parseable of the timestamp fields the API has
// used over time, reading naive ones in the sport's timezone. Zero time
// means unknown.
func eventStart(ev dkEvent, loc *time.Location) time.Time {
	for _, raw := range []string{ev.StartEventDate, ev.StartDate, ev.StartTime} {
		if t, ok := books.ParseTimeIn(raw, loc); ok {
			return t
		}
	}
	return time.Time{}
}

// indexMarkets joins the flat markets and selections lists by their foreign
// keys, grouping fully assembled markets per event ID.
func indexMarkets(p dkPayload) map[string][]books.Market {
	selections := map[string][]dkSelection{}
	for _, s := range p.Selections {
		selections[s.MarketID.String()] = append(selections[s.MarketID.String()], s)
	}
	out := map[string][]books.Market{}
	for _, m := range p.Markets {
		sels := selections[m.ID.String()]
		if len(sels) == 0 {
			continue
		}
		market := books.Market{Name: m.displayName()}
		for _, s := range sels {
			market.Outcomes = append(market.Outcomes, books.Outcome{
				Label: s.Label,
				Side:  s.OutcomeType,
				Line:  s.Points,
				Price: s.odds(),
			})
		}
		eventID := m.EventID.String()
		out[eventID] = append(out[eventID], market)
	}
	return out
}

// eventMarkets returns the event's markets: the flat-payload index when it
// has them, otherwise the legacy bettingOffers embedded in the event itself.
func eventMarkets(ev dkEvent, indexed map[string][]books.Market) []books.Market {
	if markets := indexed[ev.ID.String()]; len(markets) > 0 {
		return markets
	}
	var out []books.Market
	for _, offer := range ev.BettingOffers {
		if len(offer.Outcomes) == 0 {
			continue
		}
		market := books.Market{Name: offer.displayName(), Line: offer.Line}
		for _, oc := range offer.Outcomes {
			market.Outcomes = append(market.Outcomes, books.Outcome{
				Label: oc.Name,
				Line:  oc.Line,
				Price: oc.Price.American,
			})
		}
		out = append(out, market)
	}
	return out
}
