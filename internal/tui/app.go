// Package tui is the bubbletea presentation layer: a file picker screen, the
// two-pane editor screen, and the modals (help, jump, remote form, quit
// confirm) layered on top. All source I/O runs in commands; the model only
// ever consumes messages.
package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skelde/typesmith/internal/config"
	"github.com/skelde/typesmith/internal/editor"
	"github.com/skelde/typesmith/internal/source"
)

type screen int

const (
	screenPicker screen = iota
	screenEditor
)

type modal int

const (
	modalNone modal = iota
	modalHelp
	modalRemoteForm
	modalJump
	modalConfirmQuit
)

// App ties together the screens and the active file source.
type App struct {
	cfg  config.Config
	keys keyMap

	width  int
	height int

	screen screen
	modal  modal

	local  *source.Local
	remote *source.Remote
	src    source.Source

	picker picker
	form   remoteForm
	ed     *editor.Editor

	jumpInput   textinput.Model
	jumpMatches []editor.Match
	jumpCursor  int

	status     string
	statusErr  bool
	connecting bool
}

// New builds the app rooted at startDir on the local filesystem.
func New(cfg config.Config, startDir string) *App {
	local := source.NewLocal()
	jump := textinput.New()
	jump.Prompt = "/ "
	jump.Placeholder = "type name"
	return &App{
		cfg:       cfg,
		keys:      newKeyMap(),
		width:     80,
		height:    24,
		local:     local,
		src:       local,
		picker:    newPicker(startDir, source.KindLocal),
		jumpInput: jump,
	}
}

func (a *App) Init() tea.Cmd {
	return a.listDirCmd(a.src, a.picker.dir)
}

// ---------------------------------------------------------------------------
// Messages and commands
// ---------------------------------------------------------------------------

type entriesMsg struct {
	dir     string
	entries []source.DirEntry
}

type openedMsg struct{ ed *editor.Editor }

type connectedMsg struct{ remote *source.Remote }

type errMsg struct{ err error }

func (a *App) listDirCmd(src source.Source, dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := src.List(dir)
		if err != nil {
			return errMsg{err}
		}
		return entriesMsg{dir: dir, entries: entries}
	}
}

func (a *App) openCmd(src source.Source, path string) tea.Cmd {
	opts := editor.Options{Indent: a.cfg.Editor.IndentWidth, Backup: a.cfg.Editor.Backup}
	return func() tea.Msg {
		ed, err := editor.Open(src, path, opts)
		if err != nil {
			return errMsg{err}
		}
		return openedMsg{ed: ed}
	}
}

func (a *App) connectCmd(rc source.RemoteConfig) tea.Cmd {
	return func() tea.Msg {
		remote, err := source.Dial(rc)
		if err != nil {
			return errMsg{err}
		}
		return connectedMsg{remote: remote}
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.picker.setSize(m.Width-4, m.Height-6)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)

	case entriesMsg:
		a.picker.setEntries(m.dir, m.entries)
		a.statusErr = false
		a.status = ""
		return a, nil

	case openedMsg:
		a.ed = m.ed
		a.screen = screenEditor
		a.statusErr = false
		a.status = ""
		return a, nil

	case connectedMsg:
		a.remote = m.remote
		a.src = m.remote
		a.connecting = false
		a.modal = modalNone
		a.picker = newPicker(".", source.KindRemote)
		a.picker.setSize(a.width-4, a.height-6)
		a.statusErr = false
		a.status = "Connected to " + a.cfg.Remote.Host
		a.rememberRemote()
		return a, a.listDirCmd(a.src, ".")

	case errMsg:
		a.connecting = false
		a.status = m.err.Error()
		a.statusErr = true
		if a.modal == modalRemoteForm {
			// the cause belongs inside the form the user is looking at
			a.form.errText = m.err.Error()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal != modalNone {
		return a.handleModalKey(m)
	}
	switch a.screen {
	case screenEditor:
		return a.handleEditorKey(m)
	default:
		return a.handlePickerKey(m)
	}
}

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.releaseRemote()
		return a, tea.Quit
	case key.Matches(m, a.keys.Remote):
		if a.remote != nil {
			// toggle back to local
			a.releaseRemote()
			a.src = a.local
			a.picker = newPicker(a.startDir(), source.KindLocal)
			a.picker.setSize(a.width-4, a.height-6)
			a.status = "Disconnected"
			a.statusErr = false
			return a, a.listDirCmd(a.src, a.picker.dir)
		}
		a.form = newRemoteForm(a.cfg.Remote)
		a.modal = modalRemoteForm
		return a, nil
	case key.Matches(m, a.keys.Edit):
		target, isDir, ok := a.picker.selection()
		if !ok {
			return a, nil
		}
		if isDir {
			return a, a.listDirCmd(a.src, target)
		}
		a.status = "Opening " + target
		a.statusErr = false
		return a, a.openCmd(a.src, target)
	case m.String() == "backspace":
		if a.picker.dir != "/" && a.picker.dir != "." {
			return a, a.listDirCmd(a.src, path.Dir(a.picker.dir))
		}
		return a, nil
	}
	return a, a.picker.update(m)
}

func (a *App) handleEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := a.ed
	a.status = ""

	if ed.State() == editor.StateEditing {
		switch m.Type {
		case tea.KeyEnter:
			ed.Apply(editor.CmdApplyEdit)
		case tea.KeyEsc:
			ed.Apply(editor.CmdCancelEdit)
		case tea.KeyBackspace, tea.KeyCtrlH:
			ed.Backspace()
		case tea.KeySpace:
			ed.Input(' ')
		case tea.KeyRunes:
			for _, r := range m.Runes {
				ed.Input(r)
			}
		}
		return a, nil
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		if ed.Dirty() {
			a.modal = modalConfirmQuit
			return a, nil
		}
		a.releaseRemote()
		return a, tea.Quit
	case key.Matches(m, a.keys.Help):
		a.modal = modalHelp
	case key.Matches(m, a.keys.Jump):
		a.openJump()
	case key.Matches(m, a.keys.Up):
		ed.Apply(editor.CmdMoveUp)
	case key.Matches(m, a.keys.Down):
		ed.Apply(editor.CmdMoveDown)
	case key.Matches(m, a.keys.PageUp):
		ed.Apply(editor.CmdPageUp)
	case key.Matches(m, a.keys.PageDown):
		ed.Apply(editor.CmdPageDown)
	case key.Matches(m, a.keys.Left):
		ed.Apply(editor.CmdPaneLeft)
	case key.Matches(m, a.keys.Right):
		ed.Apply(editor.CmdPaneRight)
	case key.Matches(m, a.keys.Edit):
		ed.Apply(editor.CmdEnterEdit)
	case key.Matches(m, a.keys.Rename):
		ed.Apply(editor.CmdEnterRename)
	case key.Matches(m, a.keys.Add):
		ed.Apply(editor.CmdAdd)
	case key.Matches(m, a.keys.Copy):
		ed.Apply(editor.CmdCopy)
	case key.Matches(m, a.keys.Delete):
		ed.Apply(editor.CmdDelete)
	case key.Matches(m, a.keys.Save):
		ed.Apply(editor.CmdSave)
	case key.Matches(m, a.keys.Undo):
		ed.Apply(editor.CmdUndo)
	case key.Matches(m, a.keys.Redo):
		ed.Apply(editor.CmdRedo)
	case m.Type == tea.KeyEsc:
		// back to the picker; the document stays open in memory
		if !ed.Dirty() {
			a.screen = screenPicker
			return a, a.listDirCmd(a.src, a.picker.dir)
		}
		a.status = "Unsaved changes (s to save, q to quit)"
		a.statusErr = true
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalHelp:
		a.modal = modalNone
		return a, nil

	case modalConfirmQuit:
		switch m.String() {
		case "y", "Y":
			a.releaseRemote()
			return a, tea.Quit
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil

	case modalRemoteForm:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			return a, nil
		case "tab", "down":
			a.form.next(1)
			return a, nil
		case "shift+tab", "up":
			a.form.next(-1)
			return a, nil
		case "enter":
			rc, err := a.form.config(a.cfg.Source)
			if err != nil {
				a.form.errText = err.Error()
				return a, nil
			}
			if a.connecting {
				return a, nil
			}
			a.connecting = true
			a.cfg.Remote.Host = rc.Host
			a.cfg.Remote.Port = rc.Port
			a.cfg.Remote.User = rc.User
			a.cfg.Remote.KeyPath = rc.KeyPath
			a.form.errText = fmt.Sprintf("Connecting to %s...", rc.Addr())
			return a, a.connectCmd(rc)
		}
		return a, a.form.update(m)

	case modalJump:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			return a, nil
		case "up", "ctrl+k":
			if a.jumpCursor > 0 {
				a.jumpCursor--
			}
			return a, nil
		case "down", "ctrl+j":
			if a.jumpCursor < len(a.jumpMatches)-1 {
				a.jumpCursor++
			}
			return a, nil
		case "enter":
			if a.jumpCursor < len(a.jumpMatches) {
				a.ed.JumpTo(a.jumpMatches[a.jumpCursor].Index)
			}
			a.modal = modalNone
			return a, nil
		}
		var cmd tea.Cmd
		a.jumpInput, cmd = a.jumpInput.Update(m)
		a.jumpMatches = a.ed.RankTypes(a.jumpInput.Value())
		a.jumpCursor = 0
		return a, cmd
	}
	a.modal = modalNone
	return a, nil
}

func (a *App) openJump() {
	a.jumpInput.SetValue("")
	a.jumpInput.Focus()
	a.jumpMatches = a.ed.RankTypes("")
	a.jumpCursor = 0
	a.modal = modalJump
}

// releaseRemote closes the remote session, if any. Every path that quits
// the program goes through here so the session never leaks past exit.
func (a *App) releaseRemote() {
	if a.remote != nil {
		_ = a.remote.Close()
		a.remote = nil
	}
}

// rememberRemote persists the non-secret connection details so the form is
// prefilled next session. Failures are ignored; this is a convenience.
func (a *App) rememberRemote() {
	_ = config.Save(a.cfg)
}

func (a *App) startDir() string {
	if a.cfg.Source.StartDir != "" {
		return a.cfg.Source.StartDir
	}
	return "."
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	var body string
	switch a.screen {
	case screenEditor:
		body = a.renderEditor(a.width, a.height)
	default:
		body = a.renderPicker()
	}
	switch a.modal {
	case modalHelp:
		body = overlayCenter(body, a.renderHelp(), a.width, a.height)
	case modalRemoteForm:
		body = overlayCenter(body, a.form.view(), a.width, a.height)
	case modalJump:
		body = overlayCenter(body, a.renderJump(), a.width, a.height)
	case modalConfirmQuit:
		confirm := modalStyle.Render(titleStyle.Render("Unsaved changes") +
			"\n\nQuit without saving?\n\n" + mutedStyle.Render("y quit  ·  n stay"))
		body = overlayCenter(body, confirm, a.width, a.height)
	}
	return body
}

func (a *App) renderPicker() string {
	body := a.picker.view(a.width)
	status := a.renderPickerStatus()
	footer := footerStyle.Width(a.width).Render(a.footerHints())
	return body + "\n" + status + "\n" + footer
}

func (a *App) renderPickerStatus() string {
	style := statusStyle
	if a.statusErr {
		style = statusErrStyle
	}
	msg := a.status
	if a.connecting {
		msg = "Connecting..."
	}
	return style.Render(" " + truncate(msg, a.width-2))
}

func (a *App) renderJump() string {
	var b []string
	b = append(b, titleStyle.Render("Jump to type"), "", a.jumpInput.View(), "")
	limit := 10
	for i, m := range a.jumpMatches {
		if i >= limit {
			b = append(b, mutedStyle.Render(fmt.Sprintf("  … %d more", len(a.jumpMatches)-limit)))
			break
		}
		if i == a.jumpCursor {
			b = append(b, selectedRowStyle.Render("> "+m.Name))
		} else {
			b = append(b, "  "+m.Name)
		}
	}
	if len(a.jumpMatches) == 0 {
		b = append(b, mutedStyle.Render("  no matches"))
	}
	b = append(b, "", mutedStyle.Render("enter jump  ·  esc cancel"))
	return modalStyle.Render(strings.Join(b, "\n"))
}
