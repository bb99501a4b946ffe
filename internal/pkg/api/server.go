// Package api serves the collector's HTTP surface: on-demand market
// snapshots, the sport catalogue, health and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oddsdesk/marketfeed/internal/books"
	"github.com/oddsdesk/marketfeed/internal/pkg/collector"
	"github.com/oddsdesk/marketfeed/internal/pkg/config"
	"github.com/oddsdesk/marketfeed/internal/pkg/models"
	"github.com/oddsdesk/marketfeed/internal/pkg/oddsmath"
	"github.com/oddsdesk/marketfeed/internal/pkg/sports"
)

// Handler serves the API routes.
type Handler struct {
	collector *collector.Collector
}

func NewHandler(c *collector.Collector) *Handler {
	return &Handler{collector: c}
}

// Router assembles the chi router with middleware and all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", h.Ping)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sports", h.GetSports)
		r.Get("/books", h.GetBooks)
		r.Get("/markets", h.GetMarkets)
	})

	return r
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "marketfeed",
	})
}

// GetSports lists the configured sports with their books.
func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	type sportInfo struct {
		Key   string   `json:"key"`
		Name  string   `json:"name"`
		Books []string `json:"books"`
	}
	var out []sportInfo
	for _, key := range sports.Keys() {
		s, _ := sports.Get(key)
		out = append(out, sportInfo{Key: key, Name: s.Name, Books: s.BookNames()})
	}
	respondJSON(w, http.StatusOK, map[string]any{"sports": out, "count": len(out)})
}

// GetBooks lists every registered sportsbook adapter.
func (h *Handler) GetBooks(w http.ResponseWriter, r *http.Request) {
	names := books.AvailableNames()
	respondJSON(w, http.StatusOK, map[string]any{"books": names, "count": len(names)})
}

// GetMarkets runs a live collection cycle for the requested sport.
// Query params: sport (required), books (comma-separated, optional),
// enrich=decimal to include decimal-odds conversions alongside each event.
func (h *Handler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	sportKey := r.URL.Query().Get("sport")
	if sportKey == "" {
		respondError(w, http.StatusBadRequest, "sport query parameter is required", nil)
		return
	}
	var bookNames []string
	if raw := r.URL.Query().Get("books"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				bookNames = append(bookNames, name)
			}
		}
	}

	report, err := h.collector.Collect(r.Context(), sportKey, bookNames)
	if err != nil {
		if books.IsConfigError(err) {
			respondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "collection failed", err)
		return
	}

	type bookStatus struct {
		Book    string `json:"book"`
		Events  int    `json:"events"`
		Skipped int    `json:"skipped"`
		Error   string `json:"error,omitempty"`
	}
	statuses := make([]bookStatus, 0, len(report.Results))
	for _, res := range report.Results {
		st := bookStatus{Book: res.Book, Events: len(res.Events), Skipped: len(res.Skipped)}
		if res.Err != nil {
			st.Error = res.Err.Error()
		}
		statuses = append(statuses, st)
	}

	events := report.Events()
	var payload any = models.SerializeAll(events)
	if r.URL.Query().Get("enrich") == "decimal" {
		payload = enrichDecimal(events)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"sport":  report.Sport,
		"books":  statuses,
		"events": payload,
		"count":  len(events),
	})
}

type enrichedEvent struct {
	models.MarketEventJSON
	Decimal map[string]float64 `json:"decimal,omitempty"`
}

// enrichDecimal attaches decimal conversions for every price the event
// carries. Prices that do not parse as American odds are left out of the
// decimal map but stay in the event untouched.
func enrichDecimal(events []models.MarketEvent) []enrichedEvent {
	out := make([]enrichedEvent, 0, len(events))
	for _, e := range events {
		enriched := enrichedEvent{MarketEventJSON: models.Serialize(e)}
		dec := map[string]float64{}
		addDecimal(dec, "over_price", e.OverPrice)
		addDecimal(dec, "under_price", e.UnderPrice)
		addDecimal(dec, "away_moneyline", e.AwayMoneyline)
		addDecimal(dec, "home_moneyline", e.HomeMoneyline)
		addDecimal(dec, "away_spread_price", e.AwaySpreadPrice)
		addDecimal(dec, "home_spread_price", e.HomeSpreadPrice)
		if len(dec) > 0 {
			enriched.Decimal = dec
		}
		out = append(out, enriched)
	}
	return out
}

func addDecimal(dst map[string]float64, key string, price *string) {
	if price == nil {
		return
	}
	american, err := oddsmath.ParseAmerican(*price)
	if err != nil {
		return
	}
	decimal, err := oddsmath.AmericanToDecimal(american)
	if err != nil {
		return
	}
	dst[key] = decimal
}

// Serve runs the HTTP server until the context is cancelled.
func Serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		slog.Error(message, "error", err)
	}
	respondJSON(w, status, map[string]any{
		"error":   http.StatusText(status),
		"message": message,
		"code":    status,
	})
}
