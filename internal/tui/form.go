package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skelde/typesmith/internal/config"
	"github.com/skelde/typesmith/internal/source"
)

// Remote form field order. Password and passphrase are masked and never
// written back to config.
const (
	formHost = iota
	formPort
	formUser
	formPassword
	formKeyPath
	formPassphrase
	formFieldCount
)

var formLabels = [formFieldCount]string{
	"Host", "Port", "User", "Password", "Key path", "Key passphrase",
}

// remoteForm collects SFTP connection details before dialing.
type remoteForm struct {
	inputs  [formFieldCount]textinput.Model
	focused int
	errText string
}

func newRemoteForm(defaults config.RemoteConfig) remoteForm {
	var f remoteForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		f.inputs[i] = in
	}
	f.inputs[formHost].SetValue(defaults.Host)
	f.inputs[formPort].SetValue(strconv.Itoa(defaults.Port))
	f.inputs[formUser].SetValue(defaults.User)
	f.inputs[formKeyPath].SetValue(defaults.KeyPath)
	f.inputs[formPassword].EchoMode = textinput.EchoPassword
	f.inputs[formPassphrase].EchoMode = textinput.EchoPassword
	f.inputs[formHost].Focus()
	return f
}

func (f *remoteForm) next(delta int) {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + delta + formFieldCount) % formFieldCount
	f.inputs[f.focused].Focus()
}

func (f *remoteForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

// config validates the form and assembles the dial parameters.
func (f *remoteForm) config(src config.SourceConfig) (source.RemoteConfig, error) {
	host := strings.TrimSpace(f.inputs[formHost].Value())
	if host == "" {
		return source.RemoteConfig{}, fmt.Errorf("host is required")
	}
	user := strings.TrimSpace(f.inputs[formUser].Value())
	if user == "" {
		return source.RemoteConfig{}, fmt.Errorf("user is required")
	}
	portText := strings.TrimSpace(f.inputs[formPort].Value())
	port := 22
	if portText != "" {
		p, err := strconv.Atoi(portText)
		if err != nil || p < 1 || p > 65535 {
			return source.RemoteConfig{}, fmt.Errorf("port must be 1-65535")
		}
		port = p
	}
	return source.RemoteConfig{
		Host:           host,
		Port:           port,
		User:           user,
		Password:       f.inputs[formPassword].Value(),
		KeyPath:        strings.TrimSpace(f.inputs[formKeyPath].Value()),
		Passphrase:     f.inputs[formPassphrase].Value(),
		ConnectTimeout: src.ConnectTimeout,
		OpTimeout:      src.OpTimeout,
	}, nil
}

func (f *remoteForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Connect to SFTP server"))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := formLabels[i]
		if i == f.focused {
			b.WriteString(editPromptStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(padRight(label+":", 16))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.errText != "" {
		b.WriteString("\n" + statusErrStyle.Render(f.errText))
	}
	b.WriteString("\n" + mutedStyle.Render("tab/shift+tab fields  ·  enter connect  ·  esc cancel"))
	return modalStyle.Render(b.String())
}
