package inputwatcher

import "github.com/bft-labs/runloop/pkg/runloop"

// WithInputWatcher returns a runloop Option that re-runs sessions when the
// input file changes. It only has an effect on a Runner started with Start.
//
// Usage:
//
//	r, err := runloop.New(cfg,
//	    inputwatcher.WithInputWatcher(inputwatcher.Config{
//	        DebounceDelay: 200 * time.Millisecond,
//	    }),
//	)
func WithInputWatcher(cfg Config) runloop.Option {
	return runloop.WithPlugin(New(cfg))
}

// WithDefaultInputWatcher enables input watching with a 100ms debounce.
func WithDefaultInputWatcher() runloop.Option {
	return WithInputWatcher(DefaultConfig())
}
