package eq

import "github.com/cwbudde/algo-eq/dsp/core"

const (
	defaultAnalyzerBlockSize = 512
	defaultFIFOCapacity      = 32
)

type config struct {
	core.ProcessorConfig

	analyzerBlockSize int
	fifoCapacity      int
}

// Option configures a Processor.
type Option func(*config)

func defaultConfig() config {
	return config{
		ProcessorConfig:   core.DefaultProcessorConfig(),
		analyzerBlockSize: defaultAnalyzerBlockSize,
		fifoCapacity:      defaultFIFOCapacity,
	}
}

// WithSampleRate sets the rate the response curve is drawn at before the
// first Prepare.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) {
		core.WithSampleRate(sampleRate)(&c.ProcessorConfig)
	}
}

// WithBlockSize sets the expected maximum block size before the first
// Prepare.
func WithBlockSize(blockSize int) Option {
	return func(c *config) {
		core.WithBlockSize(blockSize)(&c.ProcessorConfig)
	}
}

// WithAnalyzerBlockSize sets the number of samples per analyzer FIFO block.
func WithAnalyzerBlockSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.analyzerBlockSize = n
		}
	}
}

// WithFIFOCapacity sets how many analyzer blocks each channel buffers before
// dropping.
func WithFIFOCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.fifoCapacity = n
		}
	}
}
