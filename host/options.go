package host

// Logf receives debug messages. A nil Logf discards them.
type Logf func(format string, args ...any)

type config struct {
	blockSize int
	logf      Logf
	report    *Report
}

// Option configures the host adapters.
type Option func(*config)

const defaultBlockSize = 512

func applyOptions(opts []Option) config {
	cfg := config{blockSize: defaultBlockSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.logf == nil {
		cfg.logf = func(string, ...any) {}
	}

	return cfg
}

// WithBlockSize sets the maximum block size the processor is prepared with.
func WithBlockSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.blockSize = n
		}
	}
}

// WithLogf routes debug messages to logf.
func WithLogf(logf Logf) Option {
	return func(c *config) {
		c.logf = logf
	}
}

// WithReport makes ProcessWAV fill r with the input and output levels.
func WithReport(r *Report) Option {
	return func(c *config) {
		c.report = r
	}
}
