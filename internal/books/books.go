// Package books defines the sportsbook adapter contract and the registry
// through which adapters are constructed per sport.
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oddsdesk/marketfeed/internal/pkg/models"
	"github.com/oddsdesk/marketfeed/internal/pkg/sports"
)

// Skip records one event or market inside an otherwise valid payload that
// could not be interpreted. Skips are data, not errors: a transform with skips
// simply yields a shorter event list, and the reasons stay observable.
type Skip struct {
	EventID string
	Reason  string
}

func (s Skip) String() string {
	if s.EventID == "" {
		return s.Reason
	}
	return fmt.Sprintf("event %s: %s", s.EventID, s.Reason)
}

// Adapter is one sportsbook integration for one sport.
type Adapter interface {
	// Name returns the display identifier of the book.
	Name() string

	// Fetch performs the network call for the configured sport and returns
	// the raw JSON body. Fails with *FetchError on transport/HTTP failure and
	// *DecodeError when the body is not JSON.
	Fetch(ctx context.Context) ([]byte, error)

	// Transform is a pure function from a raw payload to canonical events.
	// It never fails: records that cannot be parsed are dropped and reported
	// as skips.
	Transform(payload []byte) ([]models.MarketEvent, []Skip)

	// AliasTeam resolves a raw team name through the sport's alias table,
	// falling back to the raw name unchanged.
	AliasTeam(raw string) string
}

// LeagueResolver supplies rotating league/tournament identifiers for sports
// whose upstream IDs change between events (tennis, golf, MMA). Optional: a
// nil resolver means only statically configured IDs are used.
type LeagueResolver interface {
	LeagueID(ctx context.Context, sportKey string) (string, bool)
}

// Deps is everything an adapter factory gets to work with.
type Deps struct {
	SportKey  string
	Sport     sports.SportConfig
	Options   map[string]string
	Client    *http.Client
	UserAgent string
	Resolver  LeagueResolver
}

// Factory builds an adapter for one sport. Returns *ConfigError when a
// required option is missing.
type Factory func(deps Deps) (Adapter, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a factory under a book name. Called from adapter package
// init(); duplicate or empty registrations are programming errors.
func Register(name string, f Factory) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		panic("books: empty name in Register")
	}
	if f == nil {
		panic("books: nil factory in Register for " + n)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("books: duplicate registration for " + n)
	}
	registry[n] = f
}

// FactoryByName looks up a registered factory.
func FactoryByName(name string) (Factory, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[n]
	return f, ok
}

// AvailableNames returns all registered book names, sorted.
func AvailableNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Base carries the state shared by every adapter: sport config, resolved
// alias table and an HTTP client. Embedded by the per-book adapters.
type Base struct {
	SportKey  string
	Sport     sports.SportConfig
	Client    *http.Client
	UserAgent string
}

// NewBase builds the shared adapter state, applying the default client and
// timeout when the deps leave them unset.
func NewBase(deps Deps) Base {
	client := deps.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	ua := deps.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return Base{
		SportKey:  deps.SportKey,
		Sport:     deps.Sport,
		Client:    client,
		UserAgent: ua,
	}
}

// DefaultUserAgent identifies the collector to the book APIs.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:144.0) Gecko/20100101 Firefox/144.0"

// AliasTeam resolves through the sport's alias table; unlisted names pass
// through unchanged.
func (b *Base) AliasTeam(raw string) string {
	return b.Sport.AliasTeam(raw)
}

// Get issues one GET with the shared content-negotiation headers, returning
// the body bytes. Maps transport failures and non-200 statuses to *FetchError
// and non-JSON bodies to *DecodeError.
func (b *Base) Get(ctx context.Context, book, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Book: book, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", b.UserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Book: book, URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Book: book, URL: url, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Book: book, URL: url, Err: err}
	}
	if !json.Valid(body) {
		return nil, &DecodeError{Book: book, Err: fmt.Errorf("body is not valid JSON (%d bytes)", len(body))}
	}
	return body, nil
}
