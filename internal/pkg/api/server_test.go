package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/oddsdesk/marketfeed/internal/books/all"
	"github.com/oddsdesk/marketfeed/internal/pkg/collector"
	"github.com/oddsdesk/marketfeed/internal/pkg/models"
)

func newTestRouter() http.Handler {
	return NewHandler(collector.New()).Router()
}

func doGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/ping")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "pong" {
		t.Errorf("message = %q, want pong", body["message"])
	}
}

func TestGetSports(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/sports")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Sports []struct {
			Key   string   `json:"key"`
			Books []string `json:"books"`
		} `json:"sports"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count == 0 || len(body.Sports) != body.Count {
		t.Fatalf("count = %d, sports = %d", body.Count, len(body.Sports))
	}
	found := false
	for _, s := range body.Sports {
		if s.Key == "nba" {
			found = true
			if len(s.Books) != 2 {
				t.Errorf("nba books = %v, want 2 entries", s.Books)
			}
		}
	}
	if !found {
		t.Error("nba missing from sports listing")
	}
}

func TestGetBooks(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/books")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Books []string `json:"books"`
		Count int      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := map[string]bool{"draftkings": false, "fanduel": false}
	for _, b := range body.Books {
		if _, ok := want[b]; ok {
			want[b] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("%s missing from books listing", name)
		}
	}
}

func TestGetMarketsRequiresSport(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/markets")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetMarketsUnknownSport(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/markets?sport=kabaddi")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetMarketsUnknownBook(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/api/v1/markets?sport=nba&books=bovada")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestEnrichDecimal(t *testing.T) {
	events := []models.MarketEvent{
		{
			Book:          "DraftKings",
			Sport:         "basketball",
			Game:          "LAL @ BOS",
			AwayMoneyline: models.Str("+150"),
			HomeMoneyline: models.Str("-170"),
			OverPrice:     models.Str("EVEN"),
			UnderPrice:    models.Str("n/a"),
		},
	}
	out := enrichDecimal(events)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	dec := out[0].Decimal
	if got := dec["away_moneyline"]; got != 2.5 {
		t.Errorf("away_moneyline = %v, want 2.5", got)
	}
	if got := dec["home_moneyline"]; got < 1.58 || got > 1.59 {
		t.Errorf("home_moneyline = %v, want ~1.588", got)
	}
	if got := dec["over_price"]; got != 2.0 {
		t.Errorf("over_price (EVEN) = %v, want 2.0", got)
	}
	if _, ok := dec["under_price"]; ok {
		t.Error("unparseable price should not appear in decimal map")
	}
	if _, ok := dec["away_spread_price"]; ok {
		t.Error("absent price should not appear in decimal map")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
