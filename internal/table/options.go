package table

import (
	"log/slog"
	"time"
)

// Outcome classifies how a fetch resolved.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
	OutcomeStale Outcome = "stale"
)

// Observer receives one notification per resolved fetch.
type Observer interface {
	ObserveFetch(table string, outcome Outcome, elapsed time.Duration)
}

type options struct {
	name     string
	pageSize int
	search   string
	logger   *slog.Logger
	observer Observer
}

// Option configures a Table.
type Option func(*options)

// WithPageSize sets the initial page size. It must be one of PageSizes.
func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

// WithName names the table in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver registers a fetch observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithSearch sets the initial search string.
func WithSearch(search string) Option {
	return func(o *options) { o.search = search }
}
