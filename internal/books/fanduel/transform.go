package fanduel

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oddsdesk/marketfeed/internal/books"
	"github.com/oddsdesk/marketfeed/internal/pkg/models"
)

// Transform converts a raw page payload into canonical events. Records the
// payload carries in an unusable form are dropped and reported as skips; the
// function itself never fails.
func (a *Adapter) Transform(payload []byte) ([]models.MarketEvent, []books.Skip) {
	events, markets, err := decodePayload(payload)
	if err != nil {
		return nil, []books.Skip{{Reason: err.Error()}}
	}
	if len(markets) == 0 {
		return nil, []books.Skip{{Reason: "no markets in payload"}}
	}

	grouped := map[string][]fdMarket{}
	var skips []books.Skip
	for _, m := range markets {
		id := m.EventID.String()
		if id == "" {
			skips = append(skips, books.Skip{Reason: fmt.Sprintf("market %s has no event reference", m.MarketID)})
			continue
		}
		grouped[id] = append(grouped[id], m)
	}

	eventIDs := make([]string, 0, len(grouped))
	for id := range grouped {
		eventIDs = append(eventIDs, id)
	}
	sort.Strings(eventIDs)

	loc := a.Sport.Location()
	now := time.Now().UTC()
	var out []models.MarketEvent
	for _, id := range eventIDs {
		group := grouped[id]
		awayRaw, homeRaw, ok := resolveTeams(events[id], group)
		if !ok {
			skips = append(skips, books.Skip{EventID: id, Reason: "cannot determine away/home teams"})
			continue
		}
		me, ok := books.BuildEvent(books.EventInput{
			Book:        Name,
			Sport:       a.SportKey,
			AwayRaw:     awayRaw,
			HomeRaw:     homeRaw,
			Away:        a.AliasTeam(awayRaw),
			Home:        a.AliasTeam(homeRaw),
			Start:       resolveStart(events[id], group, loc),
			Markets:     convertMarkets(group),
			RetrievedAt: now,
		})
		if !ok {
			skips = append(skips, books.Skip{EventID: id, Reason: "no recognized markets"})
			continue
		}
		out = append(out, me)
	}
	return out, skips
}

// decodePayload extracts the event index and market list, trying the known
// response shapes in order: attachments envelope, content.sbEvents nesting,
// and finally a bare market map.
func decodePayload(payload []byte) (map[string]fdEvent, []fdMarket, error) {
	var p fdPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, nil, fmt.Errorf("payload does not match any known shape: %v", err)
	}

	events := map[string]fdEvent{}
	var markets []fdMarket

	if p.Attachments != nil {
		for _, ev := range p.Attachments.Events {
			events[ev.EventID.String()] = ev
		}
		ids := make([]string, 0, len(p.Attachments.Markets))
		for id := range p.Attachments.Markets {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			m := p.Attachments.Markets[id]
			if m.MarketID.String() == "" {
				m.MarketID = books.FlexID(id)
			}
			markets = append(markets, m)
		}
	}
	if p.Content != nil {
		for _, sb := range p.Content.SBEvents {
			events[sb.EventID.String()] = sb.fdEvent
			for _, m := range sb.Markets {
				if m.EventID.String() == "" {
					m.EventID = sb.EventID
				}
				markets = append(markets, m)
			}
		}
	}
	if len(markets) > 0 {
		return events, markets, nil
	}

	// Bare shape: the top-level object maps market IDs to markets directly.
	var bare map[string]fdMarket
	if err := json.Unmarshal(payload, &bare); err != nil {
		return events, nil, nil
	}
	ids := make([]string, 0, len(bare))
	for id := range bare {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		m := bare[id]
		if len(m.Runners) == 0 {
			continue
		}
		if m.MarketID.String() == "" {
			m.MarketID = books.FlexID(id)
		}
		markets = append(markets, m)
	}
	return events, markets, nil
}

// resolveTeams names the away and home sides, in order of preference: the
// event's dedicated team objects, the event name split on " @ " (away listed
// first, US convention), and finally the runner result types of the event's
// markets.
func resolveTeams(ev fdEvent, group []fdMarket) (away, home string, ok bool) {
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
	for _, m := range group {
		for _, r := range m.Runners {
			name := strings.TrimSpace(r.RunnerName)
			if name == "" {
				continue
			}
			switch r.side() {
			case "away":
				if away == "" {
					away = name
				}
			case "home":
				if home == "" {
					home = name
				}
			}
		}
		if away != "" && home != "" {
			return away, home, true
		}
	}
	return "", "", false
}

// resolveStart picks the event's open date or start time, falling back to
// the earliest parseable market time. Naive timestamps read in the sport's
// timezone; zero time means unknown.
func resolveStart(ev fdEvent, group []fdMarket, loc *time.Location) time.Time {
	for _, raw := range []string{ev.OpenDate, ev.StartTime} {
		if t, ok := books.ParseTimeIn(raw, loc); ok {
			return t
		}
	}
	var earliest time.Time
	for _, m := range group {
		if t, ok := books.ParseTimeIn(m.MarketTime, loc); ok {
			if earliest.IsZero() || t.Before(earliest) {
				earliest = t
			}
		}
	}
	return earliest
}

func convertMarkets(group []fdMarket) []books.Market {
	out := make([]books.Market, 0, len(group))
	for _, m := range group {
		kind := books.ClassifyMarket(m.MarketType)
		if kind == books.KindUnknown {
			kind = books.ClassifyMarket(m.MarketName)
		}
		market := books.Market{Name: m.MarketName, Kind: kind}
		for _, r := range m.Runners {
			market.Outcomes = append(market.Outcomes, books.Outcome{
				Label: r.RunnerName,
				Side:  r.side(),
				Line:  r.Handicap,
				Price: r.odds(),
			})
		}
		out = append(out, market)
	}
	return out
}
