// Package artifact writes converted documents to disk. A file appears only
// once its full contents are on disk.
package artifact

import (
	"os"
	"path/filepath"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

// FileMode is the permission of written artifacts
const FileMode os.FileMode = 0o644

// Write stores data at dir/name using a temp file and rename in dir. It
// returns the final path.
func Write(dir, name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", errors.InvalidArgumentf("invalid artifact name %q", name)
	}
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFoundf("output directory %s not found", dir)
		}
		return "", errors.Wrap(err, "failed to stat output directory")
	}
	if !info.IsDir() {
		return "", errors.InvalidArgumentf("output path %s is not a directory", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", errors.Wrap(err, "failed to sync temp file")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Chmod(tmpPath, FileMode); err != nil {
		cleanup()
		return "", errors.Wrap(err, "failed to set file mode")
	}

	final := filepath.Join(dir, name)
	if err := os.Rename(tmpPath, final); err != nil {
		cleanup()
		return "", errors.Wrap(err, "failed to move artifact into place")
	}

	return final, nil
}
