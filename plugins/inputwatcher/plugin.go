// Package inputwatcher re-runs sessions when the input script changes.
// It watches the script's directory and calls the runner's trigger once
// writes to the script settle.
package inputwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/runloop"
)

// Plugin implements input watching.
type Plugin struct {
	mu sync.Mutex

	debounceDelay time.Duration

	name     string
	logger   log.Logger
	trigger  func()
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	fired    int
}

// Config holds configuration options for the input watcher plugin.
type Config struct {
	// DebounceDelay is how long writes must stop before a session is
	// triggered. Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// New creates a new input watcher plugin.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}
	return &Plugin{debounceDelay: cfg.DebounceDelay}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "inputwatcher"
}

// Initialize starts watching cfg.InputPath. Inline and stdin input have no
// path and leave the plugin idle.
func (p *Plugin) Initialize(ctx context.Context, cfg runloop.PluginConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	p.mu.Lock()
	p.logger = logger
	p.trigger = cfg.Trigger
	p.mu.Unlock()

	if cfg.InputPath == "" || cfg.Trigger == nil {
		logger.Warn("input watcher disabled: no input file")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(cfg.InputPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.name = filepath.Base(cfg.InputPath)
	p.cancel = cancel
	p.mu.Unlock()

	logger.Info("input watcher started",
		log.String("dir", dir),
		log.String("file", p.name),
		log.Duration("debounce", p.debounceDelay),
	)

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)
	return nil
}

// Shutdown stops the watcher and any pending trigger.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	cancel := p.cancel
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
	return nil
}

// Fired returns how many triggers the plugin has sent.
func (p *Plugin) Fired() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fired
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != p.name {
				continue
			}
			// Editors that save by rename show up as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p.debounceTrigger()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("input watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceTrigger() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, p.fire)
}

func (p *Plugin) fire() {
	p.mu.Lock()
	p.fired++
	trigger := p.trigger
	p.mu.Unlock()

	p.logger.Debug("input changed, triggering session")
	trigger()
}
