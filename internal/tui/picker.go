package tui

import (
	"fmt"
	"io"
	"path"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skelde/typesmith/internal/source"
)

// fileItem is one picker row: a directory, a file, or the ".." parent link.
type fileItem struct {
	name     string
	isDir    bool
	isParent bool
}

func (i fileItem) FilterValue() string { return i.name }

// fileDelegate renders picker rows with a type marker and selection highlight.
type fileDelegate struct{}

func (fileDelegate) Height() int                             { return 1 }
func (fileDelegate) Spacing() int                            { return 0 }
func (fileDelegate) Update(tea.Msg, *list.Model) tea.Cmd     { return nil }
func (fileDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fi, ok := item.(fileItem)
	if !ok {
		return
	}
	label := fi.name
	switch {
	case fi.isParent:
		label = "../"
	case fi.isDir:
		label += "/"
	}
	marker := "  "
	style := rowStyle
	if fi.isDir || fi.isParent {
		style = paneTitleStyle
	}
	if index == m.Index() {
		marker = "> "
		style = selectedRowStyle
	}
	fmt.Fprint(w, marker+style.Render(label))
}

// picker is the directory browser screen. Listings come in asynchronously
// through entriesMsg; the picker itself never touches the source.
type picker struct {
	list list.Model
	dir  string
	kind source.Kind
}

func newPicker(dir string, kind source.Kind) picker {
	lst := list.New(nil, fileDelegate{}, 40, 16)
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowPagination(false)
	lst.DisableQuitKeybindings()
	return picker{list: lst, dir: dir, kind: kind}
}

// setEntries replaces the listing, prepending a parent link unless at root.
func (p *picker) setEntries(dir string, entries []source.DirEntry) {
	p.dir = dir
	items := make([]list.Item, 0, len(entries)+1)
	if dir != "/" && dir != "." {
		items = append(items, fileItem{name: "..", isParent: true})
	}
	for _, e := range entries {
		items = append(items, fileItem{name: e.Name, isDir: e.IsDir})
	}
	_ = p.list.SetItems(items)
	p.list.ResetSelected()
}

func (p *picker) setSize(width, height int) {
	p.list.SetWidth(width)
	if height < 4 {
		height = 4
	}
	p.list.SetHeight(height)
}

// selection resolves the highlighted row to an absolute path within the
// source, reporting whether it is a directory.
func (p *picker) selection() (target string, isDir, ok bool) {
	it, valid := p.list.SelectedItem().(fileItem)
	if !valid {
		return "", false, false
	}
	if it.isParent {
		return path.Dir(p.dir), true, true
	}
	return path.Join(p.dir, it.name), it.isDir, true
}

func (p *picker) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

func (p *picker) view(width int) string {
	badge := localBadgeStyle.Render("LOCAL")
	if p.kind == source.KindRemote {
		badge = remoteBadgeStyle.Render("SFTP")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		badge, " ", titleStyle.Render("Open types.xml"), "  ",
		mutedStyle.Render(truncate(p.dir, width-24)))
	return header + "\n\n" + p.list.View()
}
