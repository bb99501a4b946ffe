package sports

import (
	"log/slog"
	"sort"
	"strings"
	"time"
)

// BookConfig carries the per-book routing options for one sport. Option values
// are opaque strings interpreted only by the matching adapter (a league_id for
// DraftKings, a custom_page_id for FanDuel).
type BookConfig struct {
	Name    string
	Options map[string]string
}

// Option returns the named option, "" when absent.
func (c BookConfig) Option(key string) string {
	return c.Options[key]
}

// SportConfig describes one sport: display name, timezone, team alias table
// and the books configured for it. Immutable once built; alias keys are
// normalized at construction so lookups are case- and punctuation-insensitive.
type SportConfig struct {
	Key      string
	Name     string
	Timezone string
	Books    map[string]BookConfig

	aliases map[string]string
	loc     *time.Location
}

func newSportConfig(key, name, timezone string, teamAliases map[string]string, books map[string]BookConfig) SportConfig {
	aliases := make(map[string]string, len(teamAliases))
	for raw, code := range teamAliases {
		aliases[Normalize(raw)] = code
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		slog.Warn("Unknown timezone for sport, falling back to UTC", "sport", key, "timezone", timezone)
		loc = time.UTC
	}
	return SportConfig{
		Key:      key,
		Name:     name,
		Timezone: timezone,
		Books:    books,
		aliases:  aliases,
		loc:      loc,
	}
}

// AliasTeam resolves a raw upstream team name to its canonical code. Unlisted
// names pass through unchanged, so aliasing never fails.
func (c SportConfig) AliasTeam(raw string) string {
	if code, ok := c.aliases[Normalize(raw)]; ok {
		return code
	}
	return raw
}

// Location returns the sport's timezone location (UTC when the configured
// timezone was unknown).
func (c SportConfig) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Book returns the config for one book of this sport.
func (c SportConfig) Book(name string) (BookConfig, bool) {
	b, ok := c.Books[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}

// BookNames returns the configured book names, sorted.
func (c SportConfig) BookNames() []string {
	out := make([]string, 0, len(c.Books))
	for name := range c.Books {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Get returns the configuration for a sport key.
func Get(key string) (SportConfig, bool) {
	c, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return c, ok
}

// Keys returns all configured sport keys, sorted.
func Keys() []string {
	out := make([]string, 0, len(catalogue))
	for k := range catalogue {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func dkBook(leagueID string) BookConfig {
	return BookConfig{Name: "DraftKings", Options: map[string]string{"league_id": leagueID}}
}

// dkBookRotating marks the league as tournament-scoped: the adapter consults
// dynamic discovery at fetch time and uses the configured ID as a fallback.
func dkBookRotating(leagueID string) BookConfig {
	return BookConfig{Name: "DraftKings", Options: map[string]string{
		"league_id":      leagueID,
		"dynamic_league": "true",
	}}
}

func fdBook(customPageID string) BookConfig {
	return BookConfig{Name: "FanDuel", Options: map[string]string{"custom_page_id": customPageID}}
}

const eastern = "America/New_York"

var catalogue = map[string]SportConfig{
	"nba": newSportConfig("nba", "NBA", eastern, nbaTeamAliases, map[string]BookConfig{
		"draftkings": dkBook("42648"),
		"fanduel":    fdBook("nba"),
	}),
	"nfl": newSportConfig("nfl", "NFL", eastern, nflTeamAliases, map[string]BookConfig{
		"draftkings": dkBook("88808"),
		"fanduel":    fdBook("nfl"),
	}),
	"ncaaf": newSportConfig("ncaaf", "NCAA Football", eastern, nil, map[string]BookConfig{
		"draftkings": dkBook("87637"),
		"fanduel":    fdBook("college-football"),
	}),
	"ncaab": newSportConfig("ncaab", "NCAA Basketball", eastern, nil, map[string]BookConfig{
		"draftkings": dkBook("92483"),
		"fanduel":    fdBook("college-basketball"),
	}),
	"mlb": newSportConfig("mlb", "MLB", eastern, nil, map[string]BookConfig{
		"draftkings": dkBook("84240"),
		"fanduel":    fdBook("mlb"),
	}),
	"nhl": newSportConfig("nhl", "NHL", eastern, nil, map[string]BookConfig{
		"draftkings": dkBook("42133"),
		"fanduel":    fdBook("nhl"),
	}),
	"epl": newSportConfig("epl", "English Premier League", "Europe/London", nil, map[string]BookConfig{
		"draftkings": dkBook("40685"),
		"fanduel":    fdBook("epl"),
	}),
	// League IDs for the sports below rotate per tournament; the configured
	// value is a fallback when dynamic discovery yields nothing.
	"tennis": newSportConfig("tennis", "Tennis", eastern, nil, map[string]BookConfig{
		"draftkings": dkBookRotating("72778"),
		"fanduel":    fdBook("tennis"),
	}),
	"golf": newSportConfig("golf", "PGA Tour", eastern, nil, map[string]BookConfig{
		"draftkings": dkBookRotating("16936"),
		"fanduel":    fdBook("pga"),
	}),
	"mma": newSportConfig("mma", "MMA", eastern, nil, map[string]BookConfig{
		"draftkings": dkBookRotating("9034"),
		"fanduel":    fdBook("mma"),
	}),
	"boxing": newSportConfig("boxing", "Boxing", eastern, nil, map[string]BookConfig{
		"draftkings": dkBookRotating("3655d966"),
		"fanduel":    fdBook("boxing"),
	}),
	"motorsports": newSportConfig("motorsports", "NASCAR", eastern, nil, map[string]BookConfig{
		"draftkings": dkBookRotating("57253"),
		"fanduel":    fdBook("nascar"),
	}),
	"wnba": newSportConfig("wnba", "WNBA", eastern, nil, map[string]BookConfig{
		"draftkings": dkBook("94682"),
		"fanduel":    fdBook("wnba"),
	}),
}
