package stable

import "go.uber.org/zap"

// Option configures the tables behind a wrapped function.
type Option func(*config)

type config struct {
	logger *zap.Logger
	name   string
}

// WithLogger sets the logger that receives the debug events of a wrapper:
// table creation, reclaimed entries and failed computations.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithName labels every log line of a wrapper.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger: zap.NewNop(),
		name:   "anonymous",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
