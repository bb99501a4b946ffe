package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oddsdesk/marketfeed/internal/pkg/sports"
)

const manifestBody = `{
  "sports": [
    {"name": "Tennis", "id": 6,
     "leagues": [{"name": "Australian Open", "id": "t-9001"}]},
    {"name": "Golf", "id": 7,
     "categories": [{"name": "The Open Championship", "id": 16936}]},
    {"name": "Basketball", "id": 1,
     "leagues": [{"name": "NBA", "id": "42648"}]}
  ]
}`

func newTestManager(t *testing.T, handler http.HandlerFunc, cache Cache) *Manager {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	m := NewManager(srv.Client(), "", cache)
	m.url = srv.URL
	return m
}

func TestLeagueIDFromManifest(t *testing.T) {
	var hits atomic.Int32
	m := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(manifestBody))
	}, NewMemoryCache())

	id, ok := m.LeagueID(context.Background(), "tennis")
	if !ok || id != "t-9001" {
		t.Fatalf("LeagueID(tennis) = (%q, %v), want (t-9001, true)", id, ok)
	}
	// Numeric IDs and the categories field both work.
	id, ok = m.LeagueID(context.Background(), "golf")
	if !ok || id != "16936" {
		t.Fatalf("LeagueID(golf) = (%q, %v), want (16936, true)", id, ok)
	}
	// Second sport was answered from cache, not a refetch.
	if got := hits.Load(); got != 1 {
		t.Fatalf("manifest fetches = %d, want 1", got)
	}
}

func TestLeagueIDUnknownSport(t *testing.T) {
	m := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(manifestBody))
	}, nil)
	if id, ok := m.LeagueID(context.Background(), "curling"); ok {
		t.Fatalf("LeagueID(curling) = (%q, true), want miss", id)
	}
}

func TestLeagueIDFetchFailure(t *testing.T) {
	m := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)
	if id, ok := m.LeagueID(context.Background(), "tennis"); ok {
		t.Fatalf("LeagueID on 502 = (%q, true), want miss", id)
	}
}

func TestExtractSportsProbesKeysInOrder(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string // first sport name, "" means error expected
	}{
		{"sports key", `{"sports": [{"name": "Tennis"}]}`, "Tennis"},
		{"data key", `{"data": [{"name": "Golf"}]}`, "Golf"},
		{"sports wins over data", `{"data": [{"name": "Golf"}], "sports": [{"name": "Tennis"}]}`, "Tennis"},
		{"empty list falls through", `{"sports": [], "content": [{"name": "MMA"}]}`, "MMA"},
		{"wrong shape falls through", `{"sports": {"not": "a list"}, "manifest": [{"name": "Boxing"}]}`, "Boxing"},
		{"nothing usable", `{"other": []}`, ""},
	}
	for _, tt := range tests {
		doc := decodeDoc(t, tt.body)
		sports, err := extractSports(doc)
		if tt.want == "" {
			if err == nil {
				t.Errorf("%s: extractSports = %v, want error", tt.name, sports)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: extractSports: %v", tt.name, err)
			continue
		}
		if sports[0].Name != tt.want {
			t.Errorf("%s: first sport = %q, want %q", tt.name, sports[0].Name, tt.want)
		}
	}
}

// Every manifest name mapping must land on a configured sport; a key outside
// the catalogue would cache entries nothing can look up.
func TestSportKeyForTargetsCatalogue(t *testing.T) {
	for _, name := range []string{"Tennis", "Golf", "MMA", "UFC", "Boxing", "Motorsports", "NASCAR"} {
		key, ok := sportKeyFor(name)
		if !ok {
			t.Errorf("sportKeyFor(%q) = miss", name)
			continue
		}
		if _, ok := sports.Get(key); !ok {
			t.Errorf("sportKeyFor(%q) = %q, not in sport catalogue", name, key)
		}
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	c.Put(ctx, "k", Entry{LeagueID: "1"}, time.Hour)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("fresh entry missing")
	}
	c.Put(ctx, "k", Entry{LeagueID: "1"}, -time.Second)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expired entry returned")
	}
}

func decodeDoc(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return doc
}
