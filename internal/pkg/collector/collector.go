// Package collector fans requests out to the registered book adapters and
// aggregates their canonical events.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/oddsdesk/marketfeed/internal/books"
	"github.com/oddsdesk/marketfeed/internal/pkg/instrumentation"
	"github.com/oddsdesk/marketfeed/internal/pkg/models"
	"github.com/oddsdesk/marketfeed/internal/pkg/sports"
)

// BookResult is the outcome of one book's collection attempt. Exactly one of
// Err or Events/Skipped is meaningful.
type BookResult struct {
	Book    string
	Events  []models.MarketEvent
	Skipped []books.Skip
	Err     error
}

// Report aggregates one collection cycle across books.
type Report struct {
	Sport   string
	Results []BookResult
}

// Events concatenates the successful books' events, in configured book order.
func (r *Report) Events() []models.MarketEvent {
	var out []models.MarketEvent
	for _, res := range r.Results {
		out = append(out, res.Events...)
	}
	return out
}

// Failed returns the results that errored.
func (r *Report) Failed() []BookResult {
	var out []BookResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Collector builds adapters from the registry and runs collection cycles.
type Collector struct {
	client    *http.Client
	userAgent string
	workers   int
	resolver  books.LeagueResolver
	log       *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithClient sets the shared HTTP client.
func WithClient(c *http.Client) Option { return func(col *Collector) { col.client = c } }

// WithUserAgent overrides the User-Agent sent to book APIs.
func WithUserAgent(ua string) Option { return func(col *Collector) { col.userAgent = ua } }

// WithWorkers bounds how many books are fetched concurrently.
func WithWorkers(n int) Option { return func(col *Collector) { col.workers = n } }

// WithResolver plugs in dynamic league discovery for rotating sports.
func WithResolver(r books.LeagueResolver) Option { return func(col *Collector) { col.resolver = r } }

// WithLogger sets the collector's logger.
func WithLogger(l *slog.Logger) Option { return func(col *Collector) { col.log = l } }

// New builds a Collector with defaults suitable for production use.
func New(opts ...Option) *Collector {
	c := &Collector{
		workers: 4,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 1 {
		c.workers = 1
	}
	return c
}

// Adapters constructs adapters for the sport and book names. It fails fast
// with *ConfigError before any network activity: an unknown sport, an unknown
// book, or a missing required option rejects the whole request.
func (c *Collector) Adapters(sportKey string, bookNames []string) ([]books.Adapter, error) {
	sport, ok := sports.Get(sportKey)
	if !ok {
		return nil, &books.ConfigError{Sport: sportKey, Reason: "unknown sport"}
	}
	if len(bookNames) == 0 {
		bookNames = sport.BookNames()
	}
	adapters := make([]books.Adapter, 0, len(bookNames))
	for _, name := range bookNames {
		factory, ok := books.FactoryByName(name)
		if !ok {
			return nil, &books.ConfigError{Sport: sportKey, Book: name, Reason: "no such book adapter"}
		}
		bookCfg, ok := sport.Book(name)
		if !ok {
			return nil, &books.ConfigError{Sport: sportKey, Book: name, Reason: "book not configured for sport"}
		}
		adapter, err := factory(books.Deps{
			SportKey:  sportKey,
			Sport:     sport,
			Options:   bookCfg.Options,
			Client:    c.client,
			UserAgent: c.userAgent,
			Resolver:  c.resolver,
		})
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}

// Collect runs one collection cycle: every adapter fetches and transforms in
// parallel, bounded by the worker count. Individual book failures are
// recorded in the report and logged, never propagated; the returned error is
// non-nil only for configuration problems raised before any fetch.
func (c *Collector) Collect(ctx context.Context, sportKey string, bookNames []string) (*Report, error) {
	adapters, err := c.Adapters(sportKey, bookNames)
	if err != nil {
		return nil, err
	}
	return c.CollectWith(ctx, sportKey, adapters), nil
}

// CollectWith runs one cycle over already-constructed adapters.
func (c *Collector) CollectWith(ctx context.Context, sportKey string, adapters []books.Adapter) *Report {
	report := &Report{
		Sport:   sportKey,
		Results: make([]BookResult, len(adapters)),
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, c.workers)
	for i, adapter := range adapters {
		i, adapter := i, adapter
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			report.Results[i] = c.collectOne(ctx, sportKey, adapter)
		}()
	}
	wg.Wait()

	return report
}

func (c *Collector) collectOne(ctx context.Context, sportKey string, adapter books.Adapter) BookResult {
	book := adapter.Name()
	start := time.Now()

	payload, err := adapter.Fetch(ctx)
	instrumentation.FetchDuration.WithLabelValues(book).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() == nil {
			c.log.Error("book collection failed", "book", book, "sport", sportKey, "error", err)
		}
		instrumentation.BookFailures.WithLabelValues(book, failureReason(err)).Inc()
		return BookResult{Book: book, Err: err}
	}

	events, skipped := adapter.Transform(payload)
	instrumentation.EventsCollected.WithLabelValues(book, sportKey).Add(float64(len(events)))
	instrumentation.RecordsSkipped.WithLabelValues(book, sportKey).Add(float64(len(skipped)))
	for _, skip := range skipped {
		c.log.Debug("record skipped", "book", book, "sport", sportKey, "skip", skip.String())
	}
	c.log.Info("book collected",
		"book", book,
		"sport", sportKey,
		"events", len(events),
		"skipped", len(skipped),
		"duration", time.Since(start))
	return BookResult{Book: book, Events: events, Skipped: skipped}
}

func failureReason(err error) string {
	var fe *books.FetchError
	var de *books.DecodeError
	switch {
	case books.IsConfigError(err):
		return "config"
	case errors.As(err, &fe):
		return "fetch"
	case errors.As(err, &de):
		return "decode"
	}
	return "other"
}
