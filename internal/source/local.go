package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Local resolves paths against the operating system's filesystem.
type Local struct{}

// NewLocal returns a filesystem-backed source.
func NewLocal() *Local { return &Local{} }

func (l *Local) Kind() Kind { return KindLocal }

func (l *Local) List(path string) ([]DirEntry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, classifyLocal("list", path, err)
	}
	entries := make([]DirEntry, 0, len(dirents))
	for _, de := range dirents {
		entries = append(entries, DirEntry{Name: de.Name(), IsDir: de.IsDir()})
	}
	SortEntries(entries)
	return entries, nil
}

func (l *Local) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classifyLocal("read", path, err)
	}
	return data, nil
}

// WriteFile writes through a temp file in the target directory and renames
// it into place, so a crash or full disk never leaves a half-written file.
func (l *Local) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return classifyLocal("write", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return classifyLocal("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return classifyLocal("write", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return classifyLocal("write", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return classifyLocal("write", path, err)
	}
	return nil
}

func classifyLocal(op, path string, err error) error {
	kind := ErrTransport
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = ErrPermission
	}
	return &IOError{Kind: kind, Op: op, Path: path, Err: err}
}
