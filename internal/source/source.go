// Package source abstracts where document bytes live. The editor depends
// only on the Source contract; local disk, an SFTP session, and the
// in-memory test double are interchangeable behind it.
package source

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags a source for status display.
type Kind int

const (
	KindLocal Kind = iota
	KindRemote
)

func (k Kind) String() string {
	if k == KindRemote {
		return "remote"
	}
	return "local"
}

// DirEntry is one row of a directory listing.
type DirEntry struct {
	Name  string
	IsDir bool
}

// Source is the shared file-access contract. WriteFile is atomic from the
// caller's perspective: either the new content is fully visible or the
// previous content remains.
type Source interface {
	List(path string) ([]DirEntry, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Kind() Kind
}

// ErrKind classifies I/O failures so the UI can render an actionable
// message without inspecting backend internals.
type ErrKind int

const (
	ErrNotFound ErrKind = iota
	ErrPermission
	ErrTransport
	ErrTimeout
	ErrNotReady
)

func (k ErrKind) String() string {
	switch k {
	case ErrNotFound:
		return "not found"
	case ErrPermission:
		return "permission denied"
	case ErrTimeout:
		return "timed out"
	case ErrNotReady:
		return "not ready"
	default:
		return "transport failure"
	}
}

// IOError wraps a failing source operation with its classification.
type IOError struct {
	Kind ErrKind
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IOError) Unwrap() error { return e.Err }

// AuthError reports remote credential rejection, distinct from network
// failure so the connect prompt can tell the user which input to fix.
type AuthError struct {
	User string
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %q: %v", e.User, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// SortEntries orders a listing directories-first, then case-insensitively
// by name, matching what the picker displays.
func SortEntries(entries []DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
