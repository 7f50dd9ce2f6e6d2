package editor

import (
	"github.com/skelde/typesmith/internal/loot"
	"github.com/skelde/typesmith/internal/source"
)

// Read-only accessors for the presentation layer. The editor never reaches
// into presentation state; rendering pulls everything from here.

// State reports whether an edit buffer is live.
func (e *Editor) State() State { return e.state }

// Pane reports which list has focus.
func (e *Editor) Pane() Pane { return e.pane }

// Selection returns the current (type, field) indices; either may be
// NoSelection when its collection is empty.
func (e *Editor) Selection() (typeIdx, fieldIdx int) { return e.selType, e.selField }

// TypeNames lists the document's type names in order.
func (e *Editor) TypeNames() []string {
	names := make([]string, 0, len(e.doc.Types))
	for _, t := range e.doc.Types {
		names = append(names, t.Name)
	}
	return names
}

// Fields returns a copy of the selected type's field list, empty when no
// type is selected.
func (e *Editor) Fields() []loot.Field {
	if e.selType == NoSelection {
		return nil
	}
	t := e.doc.Types[e.selType]
	out := make([]loot.Field, len(t.Fields))
	copy(out, t.Fields)
	return out
}

// CurrentField returns a copy of the selected field, false when none.
func (e *Editor) CurrentField() (loot.Field, bool) {
	f := e.currentField()
	if f == nil {
		return loot.Field{}, false
	}
	return *f, true
}

// Status is the last operation's display message.
func (e *Editor) Status() string { return e.status }

// SetStatus lets the surrounding layer surface its own messages on the
// shared status channel.
func (e *Editor) SetStatus(msg string) { e.status = msg }

// Dirty reports unsaved changes.
func (e *Editor) Dirty() bool { return e.dirty }

// Path is the document's location within its source.
func (e *Editor) Path() string { return e.path }

// SourceKind tags the backing store for the status line.
func (e *Editor) SourceKind() source.Kind { return e.src.Kind() }

// EditText is the live edit buffer's working text, empty when browsing.
func (e *Editor) EditText() string {
	if e.edit == nil {
		return ""
	}
	return string(e.edit.working)
}

// EditTargetKind reports what the live buffer is bound to; only meaningful
// while State() == StateEditing.
func (e *Editor) EditTargetKind() EditTarget {
	if e.edit == nil {
		return EditTypeName
	}
	return e.edit.target
}

// JumpTo moves the type selection directly, used by the jump overlay.
// Out-of-range indices are ignored.
func (e *Editor) JumpTo(typeIdx int) {
	if e.state == StateEditing || typeIdx < 0 || typeIdx >= len(e.doc.Types) {
		return
	}
	e.selType = typeIdx
	e.selField = 0
	e.clampFieldSel()
	e.pane = PaneTypes
}
