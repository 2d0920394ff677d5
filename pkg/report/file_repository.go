package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

const reportFileName = "report.json"

// FileRepository implements Repository using a JSON file.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a new FileRepository for the given directory.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Load retrieves the last saved report from disk.
func (r *FileRepository) Load(ctx context.Context) (Report, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, nil
		}
		return Report{}, err
	}

	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("decode %s: %w", reportFileName, err)
	}
	return rep, nil
}

// Save writes the report through a temp file and rename.
func (r *FileRepository) Save(ctx context.Context, rep Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(r.Path(), data, 0o600)
}

// Path returns the full path to the report file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, reportFileName)
}
