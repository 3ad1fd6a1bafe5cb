package safe

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// WriteFile writes data to path atomically: it writes a uniquely named
// temporary file in the same directory and renames it over path. Missing
// parent directories are created.
func WriteFile(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create directory",
			goerr.V("path", dir),
			goerr.V("operation", "mkdir"))
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	// #nosec G306 - output documents are meant to be readable by other users
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file",
			goerr.V("path", tmp),
			goerr.V("operation", "create"))
	}

	if _, err := f.Write(data); err != nil {
		Close(ctx, f)
		_ = os.Remove(tmp)
		return goerr.Wrap(err, "failed to write temporary file",
			goerr.V("path", tmp),
			goerr.V("operation", "write"))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return goerr.Wrap(err, "failed to close temporary file",
			goerr.V("path", tmp),
			goerr.V("operation", "close"))
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return goerr.Wrap(err, "failed to replace file",
			goerr.V("path", path),
			goerr.V("operation", "rename"))
	}
	return nil
}
