package format

// Options holds per-call reader configuration.
type Options struct {
	// Label overrides the reader's default series label ("simulation"
	// for LTspice, "measurement" for Siglent).
	Label string

	// SkippedRowHandler, when non-nil, switches the reader from the
	// default fail-fast policy to skip-and-warn: rows with unparsable
	// numeric fields or monotonicity violations are dropped and reported
	// to the handler instead of aborting the parse. Structural problems
	// (missing header, wrong column layout) always fail.
	SkippedRowHandler func(RowError)
}

// Option mutates Options.
type Option func(*Options)

// WithLabel sets the series label used in plot legends.
func WithLabel(label string) Option {
	return func(o *Options) {
		if label != "" {
			o.Label = label
		}
	}
}

// WithSkippedRowHandler enables skip-and-warn row handling.
func WithSkippedRowHandler(h func(RowError)) Option {
	return func(o *Options) {
		o.SkippedRowHandler = h
	}
}

// ApplyOptions applies zero or more options to the default configuration.
func ApplyOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
