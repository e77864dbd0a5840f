package quadtree

import (
	"io"

	"github.com/sirupsen/logrus"
)

type options struct {
	logger  logrus.FieldLogger
	strict  bool
	metrics MetricsCollector
}

// Option configures a tree at construction. Every node of a tree shares its root's options.
type Option func(*options)

// WithLogger sets the logger used for diagnostics.
// If nil is passed, log output is discarded, which is also the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l == nil {
			l = discardLogger
		}
		o.logger = l
	}
}

// WithStrictBounds makes Insert reject points outside the node's bounding box with an
// *OutOfBoundsError instead of placing them.
//
// Without it, such points are still routed by comparison against the anchors they pass,
// and the containment guarantee that range search relies on no longer holds along their path.
func WithStrictBounds() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithMetricsCollector configures a collector for insert and search metrics.
// Pass nil to disable metrics collection.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

func newOptions(opts []Option) *options {
	o := &options{
		logger:  discardLogger,
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}
