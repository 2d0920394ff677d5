package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bft-labs/runloop/internal/cliconfig"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/runloop"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCommand(&out, strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_InlineData(t *testing.T) {
	out, err := execute(t, "", "--data", "r 1 l 1 e 1 s 1", "--log-level", "error")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"\tbeginRun 1\n", "\tprocessEvent\n", "\twriteRun 1\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestRoot_Stdin(t *testing.T) {
	out, err := execute(t, "r 7 s 1", "-", "--log-level", "error")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "\tbeginRun 7\n") {
		t.Errorf("trace missing beginRun 7:\n%s", out)
	}
}

func TestRoot_TraceOutAndReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(input, []byte("r 1 l 1 e 1 s 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	traceOut := filepath.Join(dir, "trace.txt")
	reportDir := filepath.Join(dir, "reports")

	out, err := execute(t, "", input, "--trace-out", traceOut, "--report-dir", reportDir, "--log-level", "error")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty when --trace-out is set", out)
	}

	trace, err := os.ReadFile(traceOut)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !strings.Contains(string(trace), "\tbeginLumi 1/1\n") {
		t.Errorf("trace file missing beginLumi:\n%s", trace)
	}
	if _, err := os.Stat(filepath.Join(reportDir, "report.json")); err != nil {
		t.Errorf("report.json not written: %v", err)
	}
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "runloop.yaml")
	content := "data: \"r 3 s 1\"\nno_merge: true\nlog_level: error\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "--config", cfgPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "\tbeginRun 3\n") {
		t.Errorf("trace missing beginRun 3:\n%s", out)
	}
}

func TestRoot_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: nil},
		{name: "input and data", args: []string{"script.txt", "--data", "r 1"}},
		{name: "watch on stdin", args: []string{"-", "--watch"}},
		{name: "too many args", args: []string{"a.txt", "b.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, "", tt.args...); err == nil {
				t.Error("Execute() expected error")
			}
		})
	}
}

func TestRoot_MissingInputFile(t *testing.T) {
	_, err := execute(t, "", filepath.Join(t.TempDir(), "missing.txt"), "--log-level", "error")
	if err == nil {
		t.Fatal("Execute() expected error for a missing input file")
	}
}

func TestWatch_StopsOnContextDone(t *testing.T) {
	input := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(input, []byte("r 1 s 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cliCfg := cliconfig.DefaultConfig()
	cliCfg.Input = input
	cliCfg.Watch = true
	cliCfg.MetricsAddr = "127.0.0.1:0"

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	err := watch(ctx, cliCfg, runloop.Config{InputPath: input}, log.NewNoopLogger(), &out)
	if err != nil {
		t.Fatalf("watch() error = %v", err)
	}
}
