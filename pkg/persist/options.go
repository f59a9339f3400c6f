package persist

import "github.com/statekit/persist/pkg/log"

// componentField tags every log line emitted by this package.
var componentField = log.String("component", "persist")

// defaultLogger is used wherever no per-call logger is supplied. It is noop
// by default so the library stays silent unless configured.
var defaultLogger log.Logger = log.NewNoopLogger()

// SetDefaultLogger installs the logger used by operations that were not
// given one via WithLogger. Call it once during startup; it is not
// synchronized against concurrent persistence operations.
func SetDefaultLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	defaultLogger = logger
}

// Option configures optional behavior of a persistence operation.
type Option func(*options)

type options struct {
	logger    log.Logger
	scheduler Scheduler
	events    EventHandler
}

func defaultOptions() options {
	return options{
		logger:    defaultLogger,
		scheduler: TimerScheduler{},
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets a custom logger for advisory and error output.
// If not provided, the package default logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithScheduler sets the scheduler used for debounced saves. The default
// schedules on runtime timers.
func WithScheduler(scheduler Scheduler) Option {
	return func(o *options) {
		o.scheduler = scheduler
	}
}

// WithEventHandler sets a handler notified after each save, load and clear.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.events = handler
	}
}

// warnIssues reports every configuration fallback through the logger.
func (o options) warnIssues(op string, issues []string) {
	for _, issue := range issues {
		o.logger.Warn("invalid option replaced by default", componentField,
			log.String("op", op), log.String("issue", issue))
	}
}
