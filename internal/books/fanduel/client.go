// Package fanduel implements the FanDuel sportsbook adapter.
package fanduel

import (
	"context"
	"fmt"

	"github.com/oddsdesk/marketfeed/internal/books"
)

const (
	// Name is the registry key and the Book field on emitted events.
	Name = "FanDuel"

	pageURL     = "https://sbapi.oh.sportsbook.fanduel.com/api/content-managed-page?page=CUSTOM&customPageId=%s"
	siteReferer = "https://sportsbook.fanduel.com/"
)

func init() {
	books.Register(Name, New)
}

// Adapter fetches a content-managed page from the FanDuel API and transforms
// it into canonical events.
type Adapter struct {
	books.Base

	customPageID string
}

// New builds the FanDuel adapter for one sport. The custom page ID is
// required; FanDuel has no rotating-league lookup.
func New(deps books.Deps) (books.Adapter, error) {
	id := deps.Options["custom_page_id"]
	if id == "" {
		return nil, &books.ConfigError{
			Sport:  deps.SportKey,
			Book:   Name,
			Reason: "missing custom_page_id option",
		}
	}
	return &Adapter{
		Base:         books.NewBase(deps),
		customPageID: id,
	}, nil
}

func (a *Adapter) Name() string { return Name }

// Fetch retrieves the sport's content-managed page.
func (a *Adapter) Fetch(ctx context.Context) ([]byte, error) {
	url := fmt.Sprintf(pageURL, a.customPageID)
	return a.Get(ctx, Name, url, map[string]string{
		"Referer": siteReferer,
		"Origin":  "https://sportsbook.fanduel.com",
	})
}
