package editor

import "github.com/skelde/typesmith/internal/loot"

// Undo works on full document snapshots: edits are operator-scale (one
// field at a time), so copying the type list per mutation is cheap and
// keeps restore trivially correct.

type snapshot struct {
	types    []loot.LootType
	selType  int
	selField int
	pane     Pane
	dirty    bool
}

func (e *Editor) takeSnapshot() snapshot {
	types := make([]loot.LootType, 0, len(e.doc.Types))
	for _, t := range e.doc.Types {
		types = append(types, t.Clone())
	}
	return snapshot{
		types:    types,
		selType:  e.selType,
		selField: e.selField,
		pane:     e.pane,
		dirty:    e.dirty,
	}
}

func (e *Editor) restoreSnapshot(s snapshot) {
	e.doc.Types = s.types
	e.selType = s.selType
	e.selField = s.selField
	e.pane = s.pane
	e.dirty = s.dirty
	e.edit = nil
	e.state = StateBrowsing
}

// pushUndo records the pre-mutation state and invalidates the redo trail.
func (e *Editor) pushUndo() {
	e.undo = append(e.undo, e.takeSnapshot())
	e.redo = nil
}

func (e *Editor) undoOnce() {
	if len(e.undo) == 0 {
		e.status = "Nothing to undo"
		return
	}
	current := e.takeSnapshot()
	last := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, current)
	e.restoreSnapshot(last)
	e.status = "Undid change"
}

func (e *Editor) redoOnce() {
	if len(e.redo) == 0 {
		e.status = "Nothing to redo"
		return
	}
	current := e.takeSnapshot()
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, current)
	e.restoreSnapshot(next)
	e.status = "Redid change"
}
