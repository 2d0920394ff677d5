package runloop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bft-labs/runloop/internal/adapters/fs"
	"github.com/bft-labs/runloop/internal/adapters/stream"
	"github.com/bft-labs/runloop/internal/app"
	"github.com/bft-labs/runloop/internal/ports"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/processor"
	"github.com/bft-labs/runloop/pkg/report"
)

// Runner runs processing sessions. Use New to create one, then either
// RunOnce for a single synchronous session or Start and Stop for a
// background worker that re-runs on Trigger.
type Runner struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	session   *app.Session
	agent     *app.Agent
	logger    log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Runner in StateStopped.
// Returns an error wrapping ErrInvalidConfig if cfg is invalid.
func New(cfg Config, opts ...Option) (*Runner, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	lifecycle := app.NewLifecycle(logger, emitter)

	policy := processor.Merge
	if cfg.NoMerge {
		policy = processor.NoMerge
	}

	session := app.NewSession(
		app.SessionConfig{Policy: policy, History: cfg.History},
		newLoader(cfg, o),
		newSink(cfg, o),
		newRepository(cfg, o),
		logger,
		emitter,
	)

	return &Runner{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle,
		session:   session,
		agent:     app.NewAgent(session, logger),
		logger:    logger,
	}, nil
}

func newLoader(cfg Config, o options) ports.ScriptLoader {
	switch {
	case cfg.Data != nil:
		return stream.NewInline(cfg.Data, cfg.inputName())
	case cfg.InputPath == StdinInput:
		in := o.stdin
		if in == nil {
			in = os.Stdin
		}
		return stream.NewReader(in, cfg.inputName())
	default:
		return fs.NewScriptFile(cfg.InputPath)
	}
}

func newSink(cfg Config, o options) ports.TraceSink {
	if cfg.TracePath != "" {
		return fs.NewTraceFile(cfg.TracePath)
	}
	return stream.NewWriter(o.traceWriter)
}

func newRepository(cfg Config, o options) report.Repository {
	if o.reportRepo != nil {
		return o.reportRepo
	}
	if cfg.ReportDir != "" {
		return report.NewFileRepository(cfg.ReportDir)
	}
	return nil
}

// RunOnce runs one session synchronously and returns its report.
// Returns ErrAlreadyRunning if the Runner has been started.
func (r *Runner) RunOnce(ctx context.Context) (report.Report, error) {
	if !r.lifecycle.CanStart() {
		return report.Report{}, ErrAlreadyRunning
	}
	return r.session.Run(ctx)
}

// Start runs a session in the background, then waits for Trigger to run
// another. It returns once plugins are initialized.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	if err := r.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		ReportDir: r.config.ReportDir,
		Logger:    r.logger,
		Trigger:   r.Trigger,
	}
	if r.config.Data == nil && r.config.InputPath != StdinInput {
		pluginCfg.InputPath = r.config.InputPath
	}
	for i, p := range r.opts.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			r.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			cancel()
			r.shutdownPlugins(r.opts.plugins[:i])
			_ = r.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		r.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	r.lifecycle.Go(func() {
		if err := r.lifecycle.TransitionTo(app.StateRunning, "worker started"); err != nil {
			// Stop won the race.
			return
		}
		err := r.agent.Run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("worker error", log.Err(err))
			_ = r.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	})

	return nil
}

// Trigger asks a started Runner for another session. Requests made while
// one is pending, or before Start, are coalesced into a single re-run.
func (r *Runner) Trigger() {
	r.agent.Trigger()
}

// Stop cancels the worker, waits up to Config.ShutdownTimeout for the
// running session to return, then shuts plugins down in reverse order.
// Returns ErrShutdownTimeout if the session did not return in time.
func (r *Runner) Stop() error {
	r.mu.Lock()
	if !r.lifecycle.CanStop() {
		r.mu.Unlock()
		return ErrNotRunning
	}
	if err := r.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		r.mu.Unlock()
		return err
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	err := r.lifecycle.WaitWithTimeout(r.config.ShutdownTimeout)
	r.shutdownPlugins(r.opts.plugins)

	if err != nil {
		_ = r.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = r.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

func (r *Runner) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			r.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			continue
		}
		r.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
	}
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (r *Runner) Status() State {
	return convertState(r.lifecycle.State())
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnSessionComplete(rep report.Report, err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnSessionComplete(SessionEvent{Report: rep, Err: err})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}

// validateModuleVersions checks every sub-module against its minimum
// compatible version.
func validateModuleVersions() error {
	versions := ModuleVersions()
	for name, minVersion := range CompatibilityMatrix() {
		if !isVersionCompatible(versions[name], minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, versions[name], minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports whether version >= minVersion, both in
// "major.minor.patch" form.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
