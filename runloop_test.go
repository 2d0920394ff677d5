package runloop_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bft-labs/runloop"
	lib "github.com/bft-labs/runloop/pkg/runloop"
)

func TestRun(t *testing.T) {
	cfg := runloop.DefaultConfig()
	cfg.Data = []byte("r 1 l 1 e 1 e 2 s 1")

	var trace bytes.Buffer
	rep, err := runloop.Run(context.Background(), cfg, &trace)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Events != 2 {
		t.Errorf("Events = %d, want 2", rep.Events)
	}
	if !strings.Contains(trace.String(), "\tbeginRun 1\n") {
		t.Errorf("trace missing beginRun:\n%s", trace.String())
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	_, err := runloop.Run(context.Background(), runloop.DefaultConfig(), nil)
	if !errors.Is(err, lib.ErrInvalidConfig) {
		t.Errorf("Run() error = %v, want ErrInvalidConfig", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := runloop.DefaultConfig()
	if cfg.ShutdownTimeout <= 0 {
		t.Errorf("ShutdownTimeout = %v, want positive", cfg.ShutdownTimeout)
	}
}
