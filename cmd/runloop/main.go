package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/runloop/internal/cliconfig"
	"github.com/bft-labs/runloop/internal/metrics"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/runloop"
	"github.com/bft-labs/runloop/plugins/inputwatcher"
)

const longHelp = `Drive a recording lifecycle target through a transition script.

The script is a whitespace-separated list of <tag> <int> pairs:
  r  run               l  lumi             e  event
  f  file boundary     s  stop             x  restart the loop
  t  arm a one-shot fault on the next hook

Each hook call is written to the trace, one line per call. With --watch the
session is re-run whenever the input file changes and metrics are served on
--metrics-addr.`

var exampleUsage = strings.TrimSpace(`
  runloop script.txt
  runloop --data "r 1 l 1 e 1 s 1" --no-merge
  cat script.txt | runloop -
  runloop --watch --metrics-addr :9100 --report-dir /tmp/runloop script.txt
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	logger := cliconfig.Logger("info")
	if err := newRootCommand(os.Stdout, os.Stdin).Execute(); err != nil {
		logger.Error().Err(err).Msg("runloop")
		os.Exit(1)
	}
}

func newRootCommand(stdout io.Writer, stdin io.Reader) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "runloop [input]",
		Short:         "Run a transition script through the processing loop",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if len(args) == 1 {
				cfg.Input = args[0]
				changed["input"] = true
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// RUNLOOP_* override the file, flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zl := cliconfig.Logger(cfg.LogLevel)
			zl.Debug().Interface("config", cfg).Msg("configuration")
			logger := log.NewZerologAdapterWithLogger(zl)

			libCfg := runloop.Config{
				InputPath: cfg.Input,
				NoMerge:   cfg.NoMerge,
				TracePath: cfg.TraceOut,
				ReportDir: cfg.ReportDir,
			}
			if cfg.History {
				libCfg.History = uuid.New()
			}
			if cfg.Data != "" {
				libCfg.Data = []byte(cfg.Data)
			}

			if cfg.Watch {
				return watch(cmd.Context(), cfg, libCfg, logger, stdout)
			}
			return runOnce(cmd.Context(), libCfg, logger, stdout, stdin)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file, .toml or .yaml (default: $HOME/.runloop/config.toml)")
	root.Flags().StringVar(&cfg.Input, "input", cfg.Input, `script file, or "-" for stdin`)
	root.Flags().StringVar(&cfg.Data, "data", cfg.Data, "inline script instead of an input file")
	root.Flags().BoolVar(&cfg.NoMerge, "no-merge", cfg.NoMerge, "end and re-begin recurring runs and lumis instead of merging them")
	root.Flags().BoolVar(&cfg.History, "history", cfg.History, "report run ids under a fresh process history id")
	root.Flags().StringVar(&cfg.TraceOut, "trace-out", cfg.TraceOut, "write the trace atomically to this file instead of stdout")
	root.Flags().StringVar(&cfg.ReportDir, "report-dir", cfg.ReportDir, "directory for report.json (disabled when empty)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run the session whenever the input file changes")
	root.Flags().DurationVar(&cfg.DebounceDelay, "debounce", cfg.DebounceDelay, "how long input writes must settle before a re-run")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address in watch mode")

	return root
}

func runOnce(ctx context.Context, cfg runloop.Config, logger log.Logger, stdout io.Writer, stdin io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, err := runloop.New(cfg,
		runloop.WithLogger(logger),
		runloop.WithTraceWriter(stdout),
		runloop.WithStdin(stdin),
	)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	rep, err := r.RunOnce(ctx)
	if err != nil {
		return err
	}
	if rep.ErrorsReported > 0 {
		logger.Warn("errors reported during processing",
			log.Int("count", rep.ErrorsReported),
			log.String("last", rep.LastError))
	}
	return nil
}

func watch(ctx context.Context, cliCfg cliconfig.Config, cfg runloop.Config, logger log.Logger, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	collector := metrics.NewCollector()
	r, err := runloop.New(cfg,
		runloop.WithLogger(logger),
		runloop.WithTraceWriter(stdout),
		runloop.WithEventHandler(collector),
		inputwatcher.WithInputWatcher(inputwatcher.Config{DebounceDelay: cliCfg.DebounceDelay}),
	)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := r.Start(ctx); err != nil {
		return fmt.Errorf("start runner: %w", err)
	}

	var srv *http.Server
	if cliCfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		srv = &http.Server{
			Addr:              cliCfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if srv != nil {
		g.Go(func() error {
			logger.Info("serving metrics", log.String("addr", cliCfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		select {
		case <-sigCh:
			logger.Info("received signal, stopping")
		case <-gctx.Done():
		}

		stopErr := r.Stop()
		shutdownServer(srv, logger)
		if stopErr != nil {
			return fmt.Errorf("stop runner: %w", stopErr)
		}
		return nil
	})
	return g.Wait()
}

func shutdownServer(srv *http.Server, logger log.Logger) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown failed", log.Err(err))
	}
}
