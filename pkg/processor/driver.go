package processor

import (
	"context"

	"github.com/bft-labs/runloop/pkg/lifecycle"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/transition"
)

// Stats summarizes a Driver run.
type Stats struct {
	OuterIterations int
	InnerIterations int
	Transitions     int
	Events          int
	ErrorsReported  int
	LastError       error
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithPolicy sets the merge policy handed to every FilesProcessor.
func WithPolicy(policy MergePolicy) DriverOption {
	return func(d *Driver) {
		d.policy = policy
	}
}

// WithLogger sets the driver logger.
func WithLogger(logger log.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// Driver runs a target to completion over a source.
type Driver struct {
	target lifecycle.Target
	source Source
	policy MergePolicy
	logger log.Logger
}

// NewDriver creates a driver. The default policy is Merge.
func NewDriver(target lifecycle.Target, source Source, opts ...DriverOption) *Driver {
	d := &Driver{
		target: target,
		source: source,
		policy: Merge,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes the outer loop until the source has reached the end of its
// input and the underlying stream is exhausted.
//
// Each outer iteration builds a new FilesProcessor and makes passes over
// it until EndOfLoop returns true. A pass that ends on anything other than
// Stop, or with a hook failure, is reported to the target and ends the
// iteration; it never aborts Run.
//
// Cancellation of ctx is checked between outer iterations only; the
// returned error is ctx.Err() in that case and nil otherwise.
func (d *Driver) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.OuterIterations++

		fp := NewFilesProcessor(d.policy, d.logger)
		d.runPasses(fp, &stats)
		stats.Transitions += fp.Transitions()
		stats.Events += fp.Events()

		d.logger.Info("left processing loop",
			log.Int("outer", stats.OuterIterations),
			log.Int("passes", stats.InnerIterations),
		)

		if d.source.AtEnd() && d.source.Exhausted() {
			return stats, nil
		}
	}
}

// runPasses is the inner loop of one outer iteration.
func (d *Driver) runPasses(fp *FilesProcessor, stats *Stats) {
	for first := true; ; first = false {
		if !first {
			d.target.PrepareForNextLoop()
			d.target.RewindInput()
		}
		d.target.StartingNewLoop()
		stats.InnerIterations++

		kind, err := fp.Process(d.target, d.source)
		fp.NormalEnd(d.target)

		if err == nil && kind != transition.Stop {
			err = &UnexpectedTransitionError{Kind: kind}
		}
		if err != nil {
			stats.ErrorsReported++
			stats.LastError = err
			d.logger.Warn("pass ended abnormally",
				log.Stringer("kind", kind),
				log.Bool("transient", lifecycle.IsTransient(err)),
				log.Err(err),
			)
			d.target.ReportError(err)
			return
		}

		if d.target.EndOfLoop() {
			return
		}
		if d.source.AtEnd() {
			// Restarting would only read the terminal stop again.
			d.logger.Warn("restart requested at end of input")
			return
		}
		d.logger.Debug("restarting pass", log.Int("passes", stats.InnerIterations))
	}
}
