package harness

import (
	"time"

	"github.com/go-kit/log"
	"github.com/spf13/afero"
)

// Options configure a Tester
type Options struct {
	verbose    bool
	logger     log.Logger
	fs         afero.Fs
	ratePeriod time.Duration
}

// Option configures a Tester
type Option func(*Options)

// default options
var (
	DefaultRatePeriod = time.Second
)

func newOptions(opts ...Option) *Options {
	opt := &Options{
		verbose: true,
	}
	for _, o := range opts {
		o(opt)
	}

	if opt.logger == nil {
		opt.logger = log.NewNopLogger()
	}
	if opt.fs == nil {
		opt.fs = afero.NewOsFs()
	}
	if opt.ratePeriod <= 0 {
		opt.ratePeriod = DefaultRatePeriod
	}

	return opt
}

// WithVerbose turns diagnostics on or off. Diagnostics never change a result.
func WithVerbose(verbose bool) Option {
	return func(opts *Options) {
		opts.verbose = verbose
	}
}

// WithLogger sets where diagnostics go
func WithLogger(logger log.Logger) Option {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// WithScratchFs sets the filesystem the entropy test writes its scratch files to
func WithScratchFs(fs afero.Fs) Option {
	return func(opts *Options) {
		opts.fs = fs
	}
}

// WithRatePeriod sets how often the draw rate is recomputed for progress reports
func WithRatePeriod(period time.Duration) Option {
	return func(opts *Options) {
		opts.ratePeriod = period
	}
}
