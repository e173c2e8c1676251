package output

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/saturnines/polar-sync/pkg/errors"
)

// Marshal renders v as JSON indented with two spaces.
func Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrOutput, "failed to encode output")
	}
	return data, nil
}

// WriteFile overwrites path with data, creating the parent directory.
// The write is not atomic: a crash mid-write leaves a truncated file.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.ErrOutput, "failed to create output directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.ErrOutput, "failed to write "+path)
	}
	return nil
}
