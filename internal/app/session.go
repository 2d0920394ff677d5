package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/runloop/internal/ports"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/mock"
	"github.com/bft-labs/runloop/pkg/processor"
	"github.com/bft-labs/runloop/pkg/report"
)

// ErrLoadInput wraps failures to load a session's script. The agent retries
// them with backoff; every other session error waits for the next trigger.
var ErrLoadInput = errors.New("load input")

// SessionConfig contains configuration for one session.
type SessionConfig struct {
	Policy processor.MergePolicy

	// History is the lineage run ids are reported in. Nil by default.
	History uuid.UUID
}

// SessionEmitter is told about every finished session, failed or not.
type SessionEmitter interface {
	OnSessionComplete(rep report.Report, err error)
}

// Session runs the recording target over a script to completion.
type Session struct {
	config  SessionConfig
	loader  ports.ScriptLoader
	sink    ports.TraceSink
	repo    report.Repository
	logger  log.Logger
	emitter SessionEmitter
}

// NewSession creates a session executor. repo and emitter may be nil.
func NewSession(
	config SessionConfig,
	loader ports.ScriptLoader,
	sink ports.TraceSink,
	repo report.Repository,
	logger log.Logger,
	emitter SessionEmitter,
) *Session {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Session{
		config:  config,
		loader:  loader,
		sink:    sink,
		repo:    repo,
		logger:  logger,
		emitter: emitter,
	}
}

// Run executes one session and returns its report.
//
// Errors reported to the target during processing end up in the report and
// do not fail the session. Run fails only if the script cannot be loaded,
// the trace cannot be written, the report cannot be saved, or ctx is
// canceled.
func (s *Session) Run(ctx context.Context) (rep report.Report, err error) {
	rep = report.New(s.loader.Name(), s.config.Policy.String())
	logger := s.logger.With(log.String("session", rep.SessionID.String()))

	defer func() {
		rep.Finish(time.Now())
		if err != nil {
			logger.Error("session failed", log.Err(err))
		} else {
			logger.Info("session complete",
				log.Int("outer", rep.OuterIterations),
				log.Int("events", rep.Events),
				log.Int("errors", rep.ErrorsReported),
				log.Duration("took", rep.Duration()),
			)
		}
		if s.emitter != nil {
			s.emitter.OnSessionComplete(rep, err)
		}
	}()

	script, err := s.loader.Load(ctx)
	if err != nil {
		return rep, fmt.Errorf("%w: %w", ErrLoadInput, err)
	}

	trace, err := s.sink.Open()
	if err != nil {
		return rep, err
	}
	defer func() {
		if derr := trace.Discard(); derr != nil {
			logger.Warn("discard trace", log.Err(derr))
		}
	}()

	target := mock.NewBytes(script, trace, mock.WithHistory(s.config.History))
	driver := processor.NewDriver(target, target,
		processor.WithPolicy(s.config.Policy),
		processor.WithLogger(logger),
	)
	stats, runErr := driver.Run(ctx)

	rep.OuterIterations = stats.OuterIterations
	rep.InnerIterations = stats.InnerIterations
	rep.Transitions = stats.Transitions
	rep.Events = stats.Events
	rep.ErrorsReported = stats.ErrorsReported
	if stats.LastError != nil {
		rep.LastError = stats.LastError.Error()
	}
	rep.Hooks = target.Counts()

	if runErr != nil {
		return rep, runErr
	}
	if err := target.Err(); err != nil {
		return rep, fmt.Errorf("write trace: %w", err)
	}
	if err := trace.Commit(); err != nil {
		return rep, fmt.Errorf("commit trace: %w", err)
	}

	if s.repo != nil {
		rep.Finish(time.Now())
		if err := s.repo.Save(ctx, rep); err != nil {
			return rep, fmt.Errorf("save report: %w", err)
		}
	}
	return rep, nil
}
