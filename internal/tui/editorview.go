package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/skelde/typesmith/internal/editor"
	"github.com/skelde/typesmith/internal/source"
)

// renderEditor draws the two-pane editing screen: header, type and field
// panes side by side, the edit prompt or field tip, then status and footer.
func (a *App) renderEditor(width, height int) string {
	header := a.renderEditorHeader(width)
	footer := footerStyle.Width(width).Render(a.footerHints())
	status := a.renderStatus(width)

	chrome := lipgloss.Height(header) + lipgloss.Height(status) + lipgloss.Height(footer) + 1
	paneHeight := height - chrome
	if paneHeight < 4 {
		paneHeight = 4
	}
	// interior rows inside the pane border and title
	rows := paneHeight - 3
	if rows < 1 {
		rows = 1
	}

	typeWidth := width * 2 / 5
	fieldWidth := width - typeWidth - 2
	if typeWidth < 20 {
		typeWidth = 20
	}
	if fieldWidth < 20 {
		fieldWidth = 20
	}

	typesPane := a.renderTypesPane(typeWidth, rows)
	fieldsPane := a.renderFieldsPane(fieldWidth, rows)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, typesPane, fieldsPane)

	prompt := a.renderPromptLine(width)

	return strings.Join([]string{header, panes, prompt, status, footer}, "\n")
}

func (a *App) renderEditorHeader(width int) string {
	badge := localBadgeStyle.Render("LOCAL")
	if a.ed.SourceKind() == source.KindRemote {
		badge = remoteBadgeStyle.Render("SFTP")
	}
	path := a.ed.Path()
	dirty := ""
	if a.ed.Dirty() {
		dirty = dirtyStyle.Render(" [+]")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, badge, " ",
		headerStyle.Render(truncate(path, width-16)), dirty)
	return padRight(left, width)
}

func (a *App) renderTypesPane(width, rows int) string {
	ed := a.ed
	names := ed.TypeNames()
	selType, _ := ed.Selection()
	inner := width - 4

	title := paneTitleStyle.Render(fmt.Sprintf("Types (%d)", len(names)))
	lines := []string{title}
	start := windowStart(selType, len(names), rows)
	for i := start; i < len(names) && i-start < rows; i++ {
		label := truncate(names[i], inner-2)
		switch {
		case i == selType && ed.Pane() == editor.PaneTypes:
			lines = append(lines, selectedRowStyle.Render(padRight("> "+label, inner)))
		case i == selType:
			lines = append(lines, rowStyle.Bold(true).Render(padRight("> "+label, inner)))
		default:
			lines = append(lines, rowStyle.Render("  "+label))
		}
	}
	if len(names) == 0 {
		lines = append(lines, mutedStyle.Render("  (no types, press a to add)"))
	}

	style := paneStyle
	if ed.Pane() == editor.PaneTypes {
		style = paneFocusedStyle
	}
	return style.Width(width).Height(rows + 2).Render(strings.Join(lines, "\n"))
}

func (a *App) renderFieldsPane(width, rows int) string {
	ed := a.ed
	fields := ed.Fields()
	_, selField := ed.Selection()
	inner := width - 4

	title := paneTitleStyle.Render("Fields")
	lines := []string{title}
	start := windowStart(selField, len(fields), rows)
	for i := start; i < len(fields) && i-start < rows; i++ {
		f := fields[i]
		name := f.Label()
		value := fieldValueStyle.Render(f.DisplayValue())
		row := truncate(name, inner/2) + " = " + value
		switch {
		case i == selField && ed.Pane() == editor.PaneFields:
			plain := truncate(name, inner/2) + " = " + f.DisplayValue()
			lines = append(lines, selectedRowStyle.Render(padRight("> "+plain, inner)))
		case i == selField:
			lines = append(lines, rowStyle.Bold(true).Render("> ")+row)
		default:
			lines = append(lines, "  "+row)
		}
	}
	if len(fields) == 0 {
		lines = append(lines, mutedStyle.Render("  (no fields)"))
	}

	style := paneStyle
	if ed.Pane() == editor.PaneFields {
		style = paneFocusedStyle
	}
	return style.Width(width).Height(rows + 2).Render(strings.Join(lines, "\n"))
}

// renderPromptLine shows the live edit buffer while editing, otherwise a tip
// for the selected field when one is known.
func (a *App) renderPromptLine(width int) string {
	ed := a.ed
	if ed.State() == editor.StateEditing {
		var label string
		switch ed.EditTargetKind() {
		case editor.EditTypeName:
			label = "type name"
		case editor.EditFieldName:
			label = "field name"
		default:
			label = "value"
		}
		return editPromptStyle.Render(" edit "+label+": ") +
			truncate(ed.EditText(), width-20) + editPromptStyle.Render("█")
	}
	if f, ok := ed.CurrentField(); ok {
		if tip := fieldTip(f.Name); tip != "" {
			return tipStyle.Render(" " + truncate(tip, width-2))
		}
	}
	return ""
}

func (a *App) renderStatus(width int) string {
	style := statusStyle
	if a.statusErr {
		style = statusErrStyle
	}
	msg := a.status
	if msg == "" {
		msg = a.ed.Status()
	}
	return style.Render(" " + truncate(msg, width-2))
}

func (a *App) footerHints() string {
	if a.ed != nil && a.ed.State() == editor.StateEditing {
		return renderHints(a.keys.editHelp())
	}
	if a.screen == screenPicker {
		return renderHints(a.keys.pickerHelp())
	}
	return renderHints(a.keys.browseHelp())
}

// windowStart picks the first visible row so the selection stays in view.
func windowStart(sel, n, rows int) int {
	if sel < 0 || n <= rows {
		return 0
	}
	start := sel - rows/2
	if start < 0 {
		start = 0
	}
	if start > n-rows {
		start = n - rows
	}
	return start
}

// renderHelp is the full key reference overlay.
func (a *App) renderHelp() string {
	k := a.keys
	groups := []struct {
		title string
		keys  []string
	}{
		{"Navigate", []string{
			hint(k.Up), hint(k.Down), hint(k.PageUp), hint(k.PageDown),
			hint(k.Left), hint(k.Right), hint(k.Jump),
		}},
		{"Edit", []string{
			hint(k.Edit), hint(k.Rename), hint(k.Cancel),
			hint(k.Add), hint(k.Copy), hint(k.Delete),
		}},
		{"Document", []string{
			hint(k.Save), hint(k.Undo), hint(k.Redo),
		}},
		{"Session", []string{
			hint(k.Remote), hint(k.Help), hint(k.Quit),
		}},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Key reference"))
	b.WriteString("\n")
	for _, g := range groups {
		b.WriteString("\n" + paneTitleStyle.Render(g.title) + "\n")
		for _, line := range g.keys {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("press any key to close"))
	return modalStyle.Render(b.String())
}

func hint(b key.Binding) string {
	h := b.Help()
	return padRight(h.Key, 8) + h.Desc
}
