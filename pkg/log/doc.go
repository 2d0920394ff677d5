// Package log provides the logging abstraction used by runloop components.
//
// The driver, the runner and the plugins only see the Logger interface.
// A zerolog adapter backs the CLI; the no-op logger is the default for
// embedded use and tests.
//
// # Usage
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	driverLog := logger.With(log.String("component", "driver"))
//	driverLog.Info("left processing loop", log.Int("outer", 2))
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
package log
