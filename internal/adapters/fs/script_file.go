package fs

import (
	"context"
	"fmt"
	"os"
)

// ScriptFile implements ports.ScriptLoader by reading a file on every Load.
type ScriptFile struct {
	path string
}

// NewScriptFile creates a loader for the script at path.
func NewScriptFile(path string) *ScriptFile {
	return &ScriptFile{path: path}
}

// Load reads the whole file.
func (s *ScriptFile) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", s.path, err)
	}
	return data, nil
}

// Name returns the file path.
func (s *ScriptFile) Name() string {
	return s.path
}
