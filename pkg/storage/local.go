package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Local stores resources as files below a root directory.
// Absolute resource names bypass the root.
type Local struct {
	root   string
	perm   os.FileMode
	logger *slog.Logger
}

// NewLocal creates a Local store rooted at root. An empty root means the
// current working directory.
func NewLocal(root string) *Local {
	if root == "" {
		root = "."
	}
	return &Local{
		root:   root,
		perm:   0o644,
		logger: slog.Default().With("component", "storage.local"),
	}
}

// Root returns the root directory.
func (l *Local) Root() string {
	return l.root
}

// Path resolves a resource name to a filesystem path.
func (l *Local) Path(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(l.root, name)
}

// Read returns the contents of the named file.
func (l *Local) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := l.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("read %q: %w", name, err)
	}

	l.logger.Debug("resource read", "name", name, "path", path, "bytes", len(data))
	return data, nil
}

// Write atomically replaces the named file with data, creating parent
// directories as needed. A failed write never leaves a partial file behind.
func (l *Local) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Name: name, Cause: err}
	}

	path := l.Path(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Name: name, Cause: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Name: name, Cause: err}
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Name: name, Cause: cause}
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(l.perm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Name: name, Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &WriteError{Name: name, Cause: err}
	}

	l.logger.Debug("resource written", "name", name, "path", path, "bytes", len(data))
	return nil
}
