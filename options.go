package gridmem

// MemoryAcquirer is an interface for reserving memory against an external
// budget before it is allocated. resource.Controller implements it.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

type options struct {
	logger   *Logger
	metrics  MetricsCollector
	acquirer MemoryAcquirer
}

// Option configures grid construction behavior.
type Option func(*options)

// WithLogger configures the logger used for diagnostics.
//
// If nil is passed, the default text logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NewLogger(nil)
		}
		o.logger = l
	}
}

// WithMetricsCollector configures the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithMemoryAcquirer attaches a memory budget to the grid. Alloc and growing
// Resize reserve the data-buffer bytes from the acquirer and fail with
// ErrOutOfMemory when the reservation is denied; Free and shrinking Resize
// return them.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acquirer
	}
}

func defaultOptions() options {
	return options{
		logger:  NewLogger(nil),
		metrics: NoopMetricsCollector{},
	}
}
