// Package discovery resolves league and tournament identifiers for sports
// whose upstream IDs rotate between events (tennis, golf, MMA, boxing). IDs
// are scraped from the DraftKings site manifest and cached; the cache backend
// is injected so production uses Redis while tests use memory.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oddsdesk/marketfeed/internal/books"
)

// Entry is one discovered league.
type Entry struct {
	LeagueID     string    `json:"league_id"`
	Name         string    `json:"name"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// Cache stores discovered entries with a TTL. A Get miss returns ok=false;
// backend failures also read as misses so discovery degrades to re-fetching.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Put(ctx context.Context, key string, e Entry, ttl time.Duration)
}

const (
	manifestURL = "https://sportsbook.draftkings.com/sites/US-OH-SB/api/sportslayout/v1/manifest?format=json"

	// DefaultTTL bounds how stale a discovered league ID may get. Tournament
	// IDs rotate at most daily, so a few hours is safe.
	DefaultTTL = 4 * time.Hour
)

// Manager fetches the manifest on demand and answers LeagueID lookups
// through the cache. Implements the adapter layer's league resolver.
type Manager struct {
	client    *http.Client
	userAgent string
	cache     Cache
	ttl       time.Duration
	url       string
	log       *slog.Logger
}

// NewManager builds a Manager. A nil cache disables caching and every lookup
// refetches the manifest.
func NewManager(client *http.Client, userAgent string, cache Cache) *Manager {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if userAgent == "" {
		userAgent = books.DefaultUserAgent
	}
	return &Manager{
		client:    client,
		userAgent: userAgent,
		cache:     cache,
		ttl:       DefaultTTL,
		url:       manifestURL,
		log:       slog.Default(),
	}
}

// LeagueID returns the current league ID for a sport key, from cache when
// fresh, otherwise from a manifest fetch. Returns false when the sport is not
// present in the manifest or the fetch fails.
func (m *Manager) LeagueID(ctx context.Context, sportKey string) (string, bool) {
	if m.cache != nil {
		if e, ok := m.cache.Get(ctx, cacheKey(sportKey)); ok {
			return e.LeagueID, true
		}
	}

	entries, err := m.fetchManifest(ctx)
	if err != nil {
		m.log.Warn("league discovery failed", "sport", sportKey, "error", err)
		return "", false
	}
	if m.cache != nil {
		for key, e := range entries {
			m.cache.Put(ctx, cacheKey(key), e, m.ttl)
		}
	}

	e, ok := entries[sportKey]
	if !ok {
		return "", false
	}
	return e.LeagueID, true
}

func cacheKey(sportKey string) string {
	return "discovery:league:" + sportKey
}

// fetchManifest downloads the site manifest and extracts one league entry
// per recognizable sport.
func (m *Manager) fetchManifest(ctx context.Context) (map[string]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", m.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, &books.FetchError{Book: "DraftKings", URL: m.url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &books.FetchError{Book: "DraftKings", URL: m.url, Status: resp.StatusCode}
	}

	var doc map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &books.DecodeError{Book: "DraftKings", Err: err}
	}
	sports, err := extractSports(doc)
	if err != nil {
		return nil, &books.DecodeError{Book: "DraftKings", Err: err}
	}

	now := time.Now().UTC()
	entries := map[string]Entry{}
	for _, s := range sports {
		key, ok := sportKeyFor(s.Name)
		if !ok {
			continue
		}
		league, ok := s.primaryLeague()
		if !ok {
			continue
		}
		if _, exists := entries[key]; exists {
			continue
		}
		entries[key] = Entry{
			LeagueID:     league.ID.String(),
			Name:         league.Name,
			DiscoveredAt: now,
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("manifest has no recognizable sports")
	}
	return entries, nil
}

// manifestKeys is the order in which top-level keys are probed for the sport
// list; the manifest has shipped under several of them over time.
var manifestKeys = []string{"sports", "data", "manifest", "content", "categories"}

type manifestSport struct {
	Name       string           `json:"name"`
	ID         books.FlexID     `json:"id"`
	Leagues    []manifestLeague `json:"leagues"`
	Categories []manifestLeague `json:"categories"`
}

// primaryLeague returns the sport's first listed league, whichever field
// carried the list.
func (s manifestSport) primaryLeague() (manifestLeague, bool) {
	lists := [][]manifestLeague{s.Leagues, s.Categories}
	for _, leagues := range lists {
		for _, l := range leagues {
			if l.ID.String() != "" {
				return l, true
			}
		}
	}
	return manifestLeague{}, false
}

type manifestLeague struct {
	Name string       `json:"name"`
	ID   books.FlexID `json:"id"`
}

// extractSports probes the candidate top-level keys in order and returns the
// first that holds a non-empty sport list.
func extractSports(doc map[string]json.RawMessage) ([]manifestSport, error) {
	for _, key := range manifestKeys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		var sports []manifestSport
		if err := json.Unmarshal(raw, &sports); err != nil {
			continue
		}
		if len(sports) > 0 {
			return sports, nil
		}
	}
	return nil, fmt.Errorf("no sport list under keys %v", manifestKeys)
}

// sportKeyFor maps a manifest display name to a catalogue sport key.
func sportKeyFor(name string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tennis":
		return "tennis", true
	case "golf":
		return "golf", true
	case "mma", "ufc":
		return "mma", true
	case "boxing":
		return "boxing", true
	case "motorsports", "nascar":
		return "motorsports", true
	}
	return "", false
}
