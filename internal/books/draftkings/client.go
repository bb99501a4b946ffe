// Package draftkings implements the DraftKings sportsbook adapter.
package draftkings

import (
	"context"
	"fmt"

	"github.com/oddsdesk/marketfeed/internal/books"
)

const (
	// Name is the registry key and the Book field on emitted events.
	Name = "DraftKings"

	leagueURL   = "https://sportsbook-nash.draftkings.com/api/sportscontent/dkusoh/v1/leagues/%s"
	siteOrigin  = "https://sportsbook.draftkings.com"
	siteReferer = "https://sportsbook.draftkings.com/"
)

func init() {
	books.Register(Name, New)
}

// Adapter fetches league markets from the DraftKings API and transforms them
// into canonical events.
type Adapter struct {
	books.Base

	leagueID string
	dynamic  bool
	resolver books.LeagueResolver
}

// New builds the DraftKings adapter for one sport. The league ID comes from
// the sport's static book options; sports flagged with dynamic_league also
// consult the resolver at fetch time.
func New(deps books.Deps) (books.Adapter, error) {
	a := &Adapter{
		Base:     books.NewBase(deps),
		leagueID: deps.Options["league_id"],
		dynamic:  deps.Options["dynamic_league"] == "true",
		resolver: deps.Resolver,
	}
	if a.leagueID == "" && !(a.dynamic && a.resolver != nil) {
		return nil, &books.ConfigError{
			Sport:  deps.SportKey,
			Book:   Name,
			Reason: "missing league_id option and no league resolver",
		}
	}
	return a, nil
}

func (a *Adapter) Name() string { return Name }

// Fetch retrieves the league payload. Only rotating-tournament sports pay for
// a discovery lookup; a resolver-supplied league ID then takes precedence
// over the static fallback. Static leagues use the configured ID directly.
func (a *Adapter) Fetch(ctx context.Context) ([]byte, error) {
	leagueID := a.leagueID
	if a.dynamic && a.resolver != nil {
		if id, ok := a.resolver.LeagueID(ctx, a.SportKey); ok {
			leagueID = id
		}
	}
	if leagueID == "" {
		return nil, &books.ConfigError{
			Sport:  a.SportKey,
			Book:   Name,
			Reason: "no league_id resolved",
		}
	}
	url := fmt.Sprintf(leagueURL, leagueID)
	return a.Get(ctx, Name, url, map[string]string{
		"Referer":           siteReferer,
		"Origin":            siteOrigin,
		"X-Client-Feature":  "sportsbook",
		"X-Client-Page":     "league",
		"X-Client-Platform": "web",
	})
}
