package app

import (
	"context"
	"errors"

	"github.com/bft-labs/runloop/pkg/log"
)

// Agent runs a session, then runs it again every time it is triggered,
// until its context is canceled.
type Agent struct {
	session *Session
	logger  log.Logger
	wake    chan struct{}
	backoff *backoff
}

// NewAgent creates an agent around session.
func NewAgent(session *Session, logger log.Logger) *Agent {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Agent{
		session: session,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		backoff: newBackoff(DefaultBackoffInitial, DefaultBackoffMax),
	}
}

// Trigger asks for another session. Triggers that arrive while one is
// already pending are coalesced. It never blocks.
func (a *Agent) Trigger() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// Run executes the session loop. It returns ctx.Err() once ctx is done.
//
// A session whose input cannot be loaded is retried with backoff, or
// sooner if triggered. Any other outcome waits for the next trigger.
func (a *Agent) Run(ctx context.Context) error {
	for {
		_, err := a.session.Run(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if errors.Is(err, ErrLoadInput) {
			a.logger.Warn("input unavailable, retrying",
				log.Duration("backoff", a.backoff.Current()),
				log.Err(err),
			)
			a.backoff.Wait(ctx, a.wake)
			continue
		}
		a.backoff.Reset()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.wake:
			a.logger.Debug("session triggered")
		}
	}
}
