package inplace

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	checked          bool
	offHeap          bool
}

// Option configures a Vector at construction.
type Option func(*options)

// WithLogger sets the logger that reports failed operations.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = noopLogger
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector for failure and relocation counts.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCheckedIterators turns iterator range checks on or off for one vector.
//
// The default is off, or on when the module is built with the
// inplace_checked build tag.
func WithCheckedIterators(enabled bool) Option {
	return func(o *options) {
		o.checked = enabled
	}
}

// WithOffHeap places the element region in an anonymous memory mapping
// outside the Go heap. Only element types without pointers are accepted;
// others make the constructor fail with ErrPointerElements.
//
// An off-heap vector must be closed to release its mapping.
func WithOffHeap() Option {
	return func(o *options) {
		o.offHeap = true
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:           noopLogger,
		metricsCollector: NoopMetricsCollector{},
		checked:          defaultCheckedIterators,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
