// Package tui is the full-screen keystroke-driven front-end of webterm.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/terminal"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompt precedes the input buffer and every echoed command.
const Prompt = "guest@webterm:~$ "

type changedMsg struct{}

// Model adapts a terminal.Machine to bubbletea.
type Model struct {
	ctx     context.Context
	machine *terminal.Machine
	changes <-chan struct{}
	keys    KeyMap
	theme   Theme

	width  int
	height int
}

// NewModel creates a Model. changes must be signalled whenever the machine
// changes, typically by passing Notifier.Notify to terminal.WithOnChange.
func NewModel(ctx context.Context, m *terminal.Machine, changes <-chan struct{}) Model {
	return Model{
		ctx:     ctx,
		machine: m,
		changes: changes,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return waitForChange(model.changes)
}

// waitForChange blocks until the machine reports a change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case changedMsg:
		if model.machine.Mode() == terminal.ModeReloading {
			model.machine.Reload(model.ctx)
		}
		return model, waitForChange(model.changes)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keystrokes are ignored while the machine rebuilds itself.
	if model.machine.Mode() == terminal.ModeReloading && !key.Matches(message, model.keys.Quit) {
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Submit):
		model.machine.Submit(model.ctx, model.machine.Text())
	case key.Matches(message, model.keys.HistoryUp):
		model.machine.HistoryUp()
	case key.Matches(message, model.keys.HistoryDown):
		model.machine.HistoryDown()
	case key.Matches(message, model.keys.ClearScreen):
		model.machine.ClearScreen()
	case key.Matches(message, model.keys.Backspace):
		model.machine.Backspace()
	case message.Type == tea.KeySpace:
		model.machine.AppendChar(' ')
	case message.Type == tea.KeyRunes:
		for _, r := range message.Runes {
			model.machine.AppendChar(r)
		}
	}
	return model, nil
}

// View implements tea.Model.
func (model Model) View() string {
	var lines []string
	for _, e := range model.machine.Visible() {
		lines = append(lines, model.renderEntry(e)...)
	}
	if n := model.machine.Pending(); n > 0 {
		lines = append(lines, model.theme.Muted.Render(pendingText(n)))
	}
	lines = append(lines, model.theme.Prompt.Render(Prompt)+model.theme.Command.Render(model.machine.Text())+model.theme.Cursor.Render(" "))

	if model.height > 0 && len(lines) > model.height {
		lines = lines[len(lines)-model.height:]
	}
	view := strings.Join(lines, "\n")
	if model.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(model.width).Render(view)
	}
	return view
}

func (model Model) renderEntry(e domain.HistoryEntry) []string {
	var lines []string
	if !e.IsSynthetic() {
		lines = append(lines, model.theme.Prompt.Render(Prompt)+model.theme.Command.Render(e.Command))
	}
	if e.Output == "" {
		return lines
	}
	style := model.theme.Output
	if strings.HasPrefix(e.Output, "Error: ") {
		style = model.theme.Error
	}
	for _, l := range strings.Split(e.Output, "\n") {
		lines = append(lines, style.Render(l))
	}
	return lines
}

func pendingText(n int) string {
	if n == 1 {
		return "running 1 command..."
	}
	return fmt.Sprintf("running %d commands...", n)
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, m *terminal.Machine, n *Notifier) error {
	program := tea.NewProgram(NewModel(ctx, m, n.C()), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
