package runloop

import (
	"context"

	"github.com/bft-labs/runloop/pkg/log"
)

// Plugin extends a Runner started with Start. Plugins are initialized in
// registration order and shut down in reverse order.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin gets to work with.
type PluginConfig struct {
	// InputPath is the script file, empty for inline or stdin input.
	InputPath string

	ReportDir string
	Logger    log.Logger

	// Trigger asks the Runner for another session. It never blocks.
	Trigger func()
}
