// Package editor is the command surface between the input layer and the
// document model: pane navigation, the single live edit buffer, structural
// edits, and save routing through the active file source.
package editor

import (
	"fmt"

	"github.com/skelde/typesmith/internal/loot"
	"github.com/skelde/typesmith/internal/source"
)

// NoSelection is the selection sentinel for an empty collection.
const NoSelection = -1

// State is the editor mode: at most one edit buffer exists, so Editing is
// mutually exclusive with every structural command.
type State int

const (
	StateBrowsing State = iota
	StateEditing
)

// Pane identifies which list has focus.
type Pane int

const (
	PaneTypes Pane = iota
	PaneFields
)

// Command is the closed set of operations the input layer may issue.
type Command int

const (
	CmdMoveUp Command = iota
	CmdMoveDown
	CmdPageUp
	CmdPageDown
	CmdPaneLeft
	CmdPaneRight
	CmdEnterEdit
	CmdEnterRename
	CmdApplyEdit
	CmdCancelEdit
	CmdAdd
	CmdCopy
	CmdDelete
	CmdSave
	CmdUndo
	CmdRedo
)

const pageStep = 10

// EditTarget says what the live edit buffer is bound to.
type EditTarget int

const (
	EditTypeName EditTarget = iota
	EditFieldName
	EditFieldValue
)

// editBuffer holds the one in-progress edit: the original value for
// cancel, the working text for commit.
type editBuffer struct {
	target   EditTarget
	original string
	working  []rune
}

// Options are the ambient knobs save cares about.
type Options struct {
	Indent int
	Backup bool
}

// Editor owns the document, the selection, and the single optional edit
// buffer. All access from the presentation layer goes through read-only
// accessors; all mutation goes through Apply and Input.
type Editor struct {
	doc  *loot.Document
	src  source.Source
	path string
	opts Options

	pane     Pane
	state    State
	selType  int
	selField int
	edit     *editBuffer

	status string
	dirty  bool

	undo []snapshot
	redo []snapshot
}

// Open reads and parses the document at path through src. A parse failure
// aborts only the open; the caller's prior state is untouched.
func Open(src source.Source, path string, opts Options) (*Editor, error) {
	data, err := src.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := loot.Parse(data)
	if err != nil {
		return nil, err
	}
	e := &Editor{
		doc:      doc,
		src:      src,
		path:     path,
		opts:     opts,
		selType:  NoSelection,
		selField: NoSelection,
		status:   "Loaded " + path,
	}
	if len(doc.Types) > 0 {
		e.selType = 0
		e.clampFieldSel()
	}
	return e, nil
}

// Apply dispatches one command. Every failure is absorbed into the status
// message; nothing unwinds past this boundary.
func (e *Editor) Apply(cmd Command) {
	if e.state == StateEditing {
		e.applyEditing(cmd)
		return
	}
	switch cmd {
	case CmdMoveUp:
		e.moveSelection(-1, true)
	case CmdMoveDown:
		e.moveSelection(1, true)
	case CmdPageUp:
		e.moveSelection(-pageStep, false)
	case CmdPageDown:
		e.moveSelection(pageStep, false)
	case CmdPaneLeft:
		e.pane = PaneTypes
	case CmdPaneRight:
		if e.selType != NoSelection {
			e.pane = PaneFields
		}
	case CmdEnterEdit:
		e.beginEdit(false)
	case CmdEnterRename:
		e.beginEdit(true)
	case CmdApplyEdit, CmdCancelEdit:
		// No live buffer; nothing to commit or discard.
	case CmdAdd:
		e.add()
	case CmdCopy:
		e.copy()
	case CmdDelete:
		e.delete()
	case CmdSave:
		e.save()
	case CmdUndo:
		e.undoOnce()
	case CmdRedo:
		e.redoOnce()
	}
}

func (e *Editor) applyEditing(cmd Command) {
	switch cmd {
	case CmdApplyEdit:
		e.commitEdit()
	case CmdCancelEdit:
		e.edit = nil
		e.state = StateBrowsing
		e.status = "Edit cancelled"
	case CmdEnterEdit, CmdEnterRename:
		// Only one live edit buffer exists; the open one stays intact.
		e.status = "Already editing (enter applies, esc cancels)"
	case CmdAdd, CmdCopy, CmdDelete, CmdSave, CmdUndo, CmdRedo:
		e.status = "Finish the edit first"
	}
}

// Input appends a rune to the working text of the live edit buffer.
func (e *Editor) Input(r rune) {
	if e.state != StateEditing {
		return
	}
	e.edit.working = append(e.edit.working, r)
}

// Backspace removes the last rune of the working text.
func (e *Editor) Backspace() {
	if e.state != StateEditing || len(e.edit.working) == 0 {
		return
	}
	e.edit.working = e.edit.working[:len(e.edit.working)-1]
}

func (e *Editor) moveSelection(delta int, wrap bool) {
	switch e.pane {
	case PaneTypes:
		n := len(e.doc.Types)
		if n == 0 {
			return
		}
		e.selType = stepIndex(e.selType, delta, n, wrap)
		e.selField = 0
		e.clampFieldSel()
	case PaneFields:
		n := e.fieldCount()
		if n == 0 {
			return
		}
		e.selField = stepIndex(e.selField, delta, n, wrap)
	}
}

// stepIndex wraps single steps past either end and clamps larger jumps,
// matching list navigation elsewhere in the UI.
func stepIndex(cur, delta, n int, wrap bool) int {
	next := cur + delta
	if wrap {
		if cur == n-1 && next >= n {
			return 0
		}
		if cur == 0 && next < 0 {
			return n - 1
		}
	}
	if next < 0 {
		return 0
	}
	if next >= n {
		return n - 1
	}
	return next
}

func (e *Editor) beginEdit(rename bool) {
	switch e.pane {
	case PaneTypes:
		if e.selType == NoSelection {
			e.status = "No type selected"
			return
		}
		e.edit = &editBuffer{
			target:   EditTypeName,
			original: e.doc.Types[e.selType].Name,
			working:  []rune(e.doc.Types[e.selType].Name),
		}
		e.state = StateEditing
		e.status = "Editing type name"
	case PaneFields:
		f := e.currentField()
		if f == nil {
			e.status = "No field selected"
			return
		}
		if rename {
			e.edit = &editBuffer{
				target:   EditFieldName,
				original: f.Name,
				working:  []rune(f.Name),
			}
			e.status = "Editing field name"
		} else {
			val := f.DisplayValue()
			if f.HasAttrs() {
				val = f.Attrs[0].Value
			}
			e.edit = &editBuffer{
				target:   EditFieldValue,
				original: val,
				working:  []rune(val),
			}
			e.status = "Editing field value"
		}
		e.state = StateEditing
	}
}

func (e *Editor) commitEdit() {
	buf := e.edit
	value := string(buf.working)
	e.pushUndo()
	switch buf.target {
	case EditTypeName:
		e.doc.RenameType(e.selType, value)
		e.status = "Type renamed"
	case EditFieldName:
		e.doc.Types[e.selType].SetFieldName(e.selField, value)
		e.status = "Field renamed"
	case EditFieldValue:
		e.doc.Types[e.selType].SetFieldValue(e.selField, value)
		e.status = "Value updated"
	}
	e.dirty = true
	e.edit = nil
	e.state = StateBrowsing
}

func (e *Editor) add() {
	switch e.pane {
	case PaneTypes:
		e.pushUndo()
		i := e.doc.AddType("new_type")
		e.doc.Types[i].Fields = loot.DefaultFields()
		e.selType = i
		e.clampFieldSel()
		e.dirty = true
		e.status = "Added type new_type (enter to rename)"
	case PaneFields:
		if e.selType == NoSelection {
			e.status = "No type selected"
			return
		}
		e.pushUndo()
		e.selField = e.doc.Types[e.selType].AddField("new_field")
		e.dirty = true
		e.status = "Added field new_field (n to rename, enter to set value)"
	}
}

func (e *Editor) copy() {
	switch e.pane {
	case PaneTypes:
		if e.selType == NoSelection {
			e.status = "Nothing to copy"
			return
		}
		e.pushUndo()
		i := e.doc.CopyType(e.selType)
		e.doc.Types[i].Name += "_copy"
		e.selType = i
		e.clampFieldSel()
		e.dirty = true
		e.status = "Type copied"
	case PaneFields:
		if e.currentField() == nil {
			e.status = "Nothing to copy"
			return
		}
		e.pushUndo()
		e.selField = e.doc.Types[e.selType].CopyField(e.selField)
		e.dirty = true
		e.status = "Field copied"
	}
}

func (e *Editor) delete() {
	switch e.pane {
	case PaneTypes:
		if e.selType == NoSelection {
			e.status = "Nothing to delete"
			return
		}
		e.pushUndo()
		e.doc.DeleteType(e.selType)
		if len(e.doc.Types) == 0 {
			e.selType = NoSelection
		} else if e.selType >= len(e.doc.Types) {
			e.selType = len(e.doc.Types) - 1
		}
		e.clampFieldSel()
		e.dirty = true
		e.status = "Type deleted"
	case PaneFields:
		if e.currentField() == nil {
			e.status = "Nothing to delete"
			return
		}
		e.pushUndo()
		t := &e.doc.Types[e.selType]
		t.DeleteField(e.selField)
		if len(t.Fields) == 0 {
			e.selField = NoSelection
		} else if e.selField >= len(t.Fields) {
			e.selField = len(t.Fields) - 1
		}
		e.dirty = true
		e.status = "Field deleted"
	}
}

// save serializes and writes through the active source. A write failure
// leaves the in-memory document and the dirty flag exactly as they were;
// model mutation and persistence are distinct steps.
func (e *Editor) save() {
	data := e.doc.Serialize(e.opts.Indent)
	if e.opts.Backup {
		if prev, err := e.src.ReadFile(e.path); err == nil {
			_ = e.src.WriteFile(e.path+".bak", prev)
		}
	}
	if err := e.src.WriteFile(e.path, data); err != nil {
		e.status = "Save failed: " + err.Error()
		return
	}
	e.dirty = false
	e.status = fmt.Sprintf("Saved %s (%s)", e.path, e.src.Kind())
}

func (e *Editor) currentField() *loot.Field {
	if e.selType == NoSelection || e.selField == NoSelection {
		return nil
	}
	t := &e.doc.Types[e.selType]
	if e.selField >= len(t.Fields) {
		return nil
	}
	return &t.Fields[e.selField]
}

func (e *Editor) fieldCount() int {
	if e.selType == NoSelection {
		return 0
	}
	return len(e.doc.Types[e.selType].Fields)
}

// clampFieldSel resets the field selection after the type selection or the
// field list changed, keeping the invariant that indices are in bounds or
// the none sentinel.
func (e *Editor) clampFieldSel() {
	n := e.fieldCount()
	if n == 0 {
		e.selField = NoSelection
		return
	}
	if e.selField == NoSelection || e.selField >= n {
		e.selField = 0
	}
}
