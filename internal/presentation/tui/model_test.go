package tui

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/webterm/pkg/adapters/memory"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/history"
	"github.com/aretw0/webterm/pkg/router"
	"github.com/aretw0/webterm/pkg/terminal"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okExecutor struct{}

func (okExecutor) Execute(_ context.Context, req domain.CommandRequest) (domain.CommandResult, error) {
	return domain.Success("server says " + req.Command), nil
}

type stubSession struct{}

func (stubSession) Session(context.Context) domain.Session {
	return domain.Session{ID: "session_1_tui"}
}

func newModel(t *testing.T) (Model, *terminal.Machine, *Notifier) {
	t.Helper()
	n := NewNotifier()
	cache := history.NewCache(memory.NewStore())
	cache.Load(context.Background())
	m := terminal.New(cache, router.New(okExecutor{}, stubSession{}), terminal.WithOnChange(n.Notify))
	return NewModel(context.Background(), m, n.C()), m, n
}

func update(t *testing.T, model Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := model.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, model Model, s string) Model {
	t.Helper()
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		model, _ = update(t, model, msg)
	}
	return model
}

func waitChange(t *testing.T, model Model, n *Notifier) Model {
	t.Helper()
	select {
	case <-n.C():
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
	model, _ = update(t, model, changedMsg{})
	return model
}

func TestModel_TypeAndSubmit(t *testing.T) {
	model, m, n := newModel(t)

	model = typeText(t, model, "echo hello world")
	assert.Equal(t, "echo hello world", m.Text())
	assert.Contains(t, model.View(), Prompt+"echo hello world")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.Text(), "buffer cleared on submit")
	model = waitChange(t, model, n)

	view := model.View()
	assert.Contains(t, view, Prompt+"echo hello world")
	assert.Contains(t, view, "hello world")
}

func TestModel_RemoteCommand(t *testing.T) {
	model, m, n := newModel(t)
	model = typeText(t, model, "uptime")
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	require.Eventually(t, func() bool { return len(m.History()) == 1 }, 2*time.Second, 5*time.Millisecond)
	model = waitChange(t, model, n)
	assert.Contains(t, model.View(), "server says uptime")
}

func TestModel_HistoryKeysAndBackspace(t *testing.T) {
	model, m, n := newModel(t)
	for _, cmd := range []string{"echo a", "echo b"} {
		model = typeText(t, model, cmd)
		model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
		model = waitChange(t, model, n)
	}

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "echo b", m.Text())
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "echo a", m.Text())
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "echo b", m.Text())
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "echo ", m.Text())
	_, _ = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.Text())
}

func TestModel_ClearScreen(t *testing.T) {
	model, m, n := newModel(t)
	model = typeText(t, model, "echo marker-xyz")
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model = waitChange(t, model, n)
	require.Contains(t, model.View(), "marker-xyz")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.NotContains(t, model.View(), "marker-xyz")
	assert.Empty(t, m.Visible())
	assert.Len(t, m.History(), 1, "ctrl+l hides entries without deleting them")
}

func TestModel_Reload(t *testing.T) {
	model, m, n := newModel(t)
	model = typeText(t, model, "reload")
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	require.Eventually(t, func() bool { return m.Mode() == terminal.ModeReloading }, 2*time.Second, 5*time.Millisecond)
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Empty(t, m.Text(), "input ignored while reloading")

	_ = waitChange(t, model, n)
	assert.Equal(t, terminal.ModeActive, m.Mode())
}

func TestModel_Quit(t *testing.T) {
	model, _, _ := newModel(t)
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD} {
		_, cmd := update(t, model, tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_ViewFitsHeight(t *testing.T) {
	model, _, n := newModel(t)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 80, Height: 3})
	for i := 0; i < 5; i++ {
		model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
		model = waitChange(t, model, n)
	}
	assert.LessOrEqual(t, len(splitLines(model.View())), 3)
}

func TestNotifierCoalesces(t *testing.T) {
	n := NewNotifier()
	n.Notify()
	n.Notify()
	<-n.C()
	select {
	case <-n.C():
		t.Fatal("expected a single pending notification")
	default:
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
