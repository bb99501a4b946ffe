package collector

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/oddsdesk/marketfeed/internal/books"
	_ "github.com/oddsdesk/marketfeed/internal/books/all"
	"github.com/oddsdesk/marketfeed/internal/pkg/models"
)

type fakeAdapter struct {
	name    string
	fetches *atomic.Int32
	err     error
	events  []models.MarketEvent
	skips   []books.Skip
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context) ([]byte, error) {
	if f.fetches != nil {
		f.fetches.Add(1)
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte(`{}`), nil
}

func (f *fakeAdapter) Transform(payload []byte) ([]models.MarketEvent, []books.Skip) {
	return f.events, f.skips
}

func (f *fakeAdapter) AliasTeam(raw string) string { return raw }

func TestAdaptersUnknownSport(t *testing.T) {
	c := New()
	_, err := c.Adapters("underwater-hockey", nil)
	if !books.IsConfigError(err) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestAdaptersUnknownBook(t *testing.T) {
	c := New()
	_, err := c.Adapters("nba", []string{"bovada"})
	if !books.IsConfigError(err) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestAdaptersDefaultsToAllBooks(t *testing.T) {
	c := New()
	adapters, err := c.Adapters("nba", nil)
	if err != nil {
		t.Fatalf("Adapters: %v", err)
	}
	if len(adapters) != 2 {
		t.Fatalf("got %d adapters, want 2", len(adapters))
	}
}

type countingTransport struct {
	calls atomic.Int32
}

func (tr *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	tr.calls.Add(1)
	return nil, errors.New("network disabled in tests")
}

// Configuration errors must surface before any fetch happens.
func TestCollectConfigErrorBeforeNetwork(t *testing.T) {
	tr := &countingTransport{}
	c := New(WithClient(&http.Client{Transport: tr}))

	// One valid book plus an unknown one: Adapters rejects the whole request
	// and the valid adapter never fetches.
	_, err := c.Collect(context.Background(), "nba", []string{"draftkings", "nosuchbook"})
	if !books.IsConfigError(err) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
	if got := tr.calls.Load(); got != 0 {
		t.Fatalf("transport calls = %d, want 0", got)
	}

	// The same collector does hit the transport once configuration is valid,
	// so the zero above is not a dead counter.
	report, err := c.Collect(context.Background(), "nba", nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got := tr.calls.Load(); got == 0 {
		t.Fatal("transport calls = 0 after a valid collect")
	}
	if len(report.Failed()) != len(report.Results) {
		t.Fatalf("want every book to fail with network disabled, got %+v", report.Results)
	}
}

// One failing book must not take down the cycle: the healthy book's events
// still come through and the failure stays visible in the report.
func TestCollectWithPartialFailure(t *testing.T) {
	var fetches atomic.Int32
	good := &fakeAdapter{
		name:    "GoodBook",
		fetches: &fetches,
		events:  []models.MarketEvent{{Book: "GoodBook", Sport: "nba", Game: "A @ B"}},
	}
	bad := &fakeAdapter{
		name:    "BadBook",
		fetches: &fetches,
		err:     &books.FetchError{Book: "BadBook", URL: "http://x", Status: 503},
	}

	c := New(WithWorkers(2))
	report := c.CollectWith(context.Background(), "nba", []books.Adapter{good, bad})

	if got := fetches.Load(); got != 2 {
		t.Fatalf("fetch count = %d, want 2", got)
	}
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	events := report.Events()
	if len(events) != 1 || events[0].Book != "GoodBook" {
		t.Fatalf("Events() = %v, want one GoodBook event", events)
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Book != "BadBook" {
		t.Fatalf("Failed() = %v, want one BadBook failure", failed)
	}
}

func TestCollectWithSkipsRecorded(t *testing.T) {
	a := &fakeAdapter{
		name:   "SkippyBook",
		events: []models.MarketEvent{{Book: "SkippyBook", Game: "A @ B"}},
		skips:  []books.Skip{{EventID: "7", Reason: "cannot determine away/home teams"}},
	}
	c := New()
	report := c.CollectWith(context.Background(), "nba", []books.Adapter{a})
	if len(report.Results[0].Skipped) != 1 {
		t.Fatalf("Skipped = %v, want 1 entry", report.Results[0].Skipped)
	}
	if report.Results[0].Err != nil {
		t.Fatalf("Err = %v, want nil", report.Results[0].Err)
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&books.ConfigError{Reason: "x"}, "config"},
		{&books.FetchError{Book: "b", Status: 500}, "fetch"},
		{&books.DecodeError{Book: "b"}, "decode"},
		{context.Canceled, "other"},
	}
	for _, tt := range tests {
		if got := failureReason(tt.err); got != tt.want {
			t.Errorf("failureReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
