package source

import (
	"errors"
	"path"
	"strings"
)

// Mem is an in-memory Source. It backs the editor test suite so the full
// command surface can be exercised without a filesystem or network, and
// can be told to fail writes to drive the save error paths.
type Mem struct {
	files    map[string][]byte
	dirs     map[string]struct{}
	writeErr error
	kind     Kind
}

// NewMem returns an empty in-memory source reporting KindLocal.
func NewMem() *Mem {
	return &Mem{
		files: make(map[string][]byte),
		dirs:  map[string]struct{}{"/": {}},
	}
}

// AsRemote makes the source report KindRemote for status-display tests.
func (m *Mem) AsRemote() *Mem {
	m.kind = KindRemote
	return m
}

// Put stores a file, creating parent directories implicitly.
func (m *Mem) Put(p string, data []byte) {
	p = path.Clean(p)
	m.files[p] = append([]byte(nil), data...)
	for dir := path.Dir(p); ; dir = path.Dir(dir) {
		m.dirs[dir] = struct{}{}
		if dir == "/" || dir == "." {
			break
		}
	}
}

// Bytes returns the stored content, nil if absent.
func (m *Mem) Bytes(p string) []byte { return m.files[path.Clean(p)] }

// FailWrites makes every subsequent WriteFile return err; nil restores
// normal behavior.
func (m *Mem) FailWrites(err error) { m.writeErr = err }

func (m *Mem) Kind() Kind { return m.kind }

func (m *Mem) List(p string) ([]DirEntry, error) {
	p = path.Clean(p)
	if _, ok := m.dirs[p]; !ok {
		return nil, &IOError{Kind: ErrNotFound, Op: "list", Path: p, Err: errors.New("no such directory")}
	}
	var entries []DirEntry
	seen := map[string]bool{}
	add := func(name string, isDir bool) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		entries = append(entries, DirEntry{Name: name, IsDir: isDir})
	}
	for f := range m.files {
		if path.Dir(f) == p {
			add(path.Base(f), false)
		}
	}
	for d := range m.dirs {
		if d != p && path.Dir(d) == p {
			add(path.Base(d), true)
		}
	}
	SortEntries(entries)
	return entries, nil
}

func (m *Mem) ReadFile(p string) ([]byte, error) {
	p = path.Clean(p)
	data, ok := m.files[p]
	if !ok {
		return nil, &IOError{Kind: ErrNotFound, Op: "read", Path: p, Err: errors.New("no such file")}
	}
	return append([]byte(nil), data...), nil
}

func (m *Mem) WriteFile(p string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if strings.TrimSpace(p) == "" {
		return &IOError{Kind: ErrNotFound, Op: "write", Path: p, Err: errors.New("empty path")}
	}
	m.Put(p, data)
	return nil
}
