package ordex

import (
	"log/slog"

	"github.com/hupe1980/ordex/btree"
)

type options struct {
	order            int
	arenaSize        int
	binarySearch     bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Ordex constructor behavior.
//
// All configuration is construction-time only: order and arena size are
// fixed for the lifetime of the instance.
type Option func(*options)

// WithOrder configures the fanout parameter. A node holds at most
// 2*order keys. Must be in [1, btree.MaxOrder].
func WithOrder(order int) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithArenaSize configures the node storage budget in bytes. The backing
// arenas are reserved up front and never grow; once the budget is spent,
// Insert fails with ErrArenaExhausted.
// Default: 64 MiB.
func WithArenaSize(size int) Option {
	return func(o *options) {
		o.arenaSize = size
	}
}

// WithBinarySearch switches the in-node lower-bound scan from the default
// linear pass to a binary search. The linear scan is the default on
// purpose: at small fixed fanouts it is branch-predictable and faster.
// Consider this only for large orders, and benchmark first.
func WithBinarySearch() Option {
	return func(o *options) {
		o.binarySearch = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		order:            btree.DefaultOrder,
		arenaSize:        btree.DefaultArenaSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
