package codec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/model"
)

// WriteFile encodes sys and stores it at path. The encoding is completed in
// memory first and the file is replaced by rename, so a failed export leaves
// any previous file untouched and never creates a partial one.
func WriteFile(ctx context.Context, path string, sys *model.System) error {
	data, err := Encode(sys)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary export file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move export file into place: %w", err)
	}

	ctxlog.FromContext(ctx).Info("System model exported.", "path", path, "bytes", len(data))
	return nil
}

// ReadFile loads a model written by WriteFile.
func ReadFile(path string) (*model.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}
	return Decode(data)
}
