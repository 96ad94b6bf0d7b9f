package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/webterm/pkg/adapters/memory"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/history"
	"github.com/aretw0/webterm/pkg/router"
	"github.com/aretw0/webterm/pkg/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoExecutor struct{}

func (echoExecutor) Execute(_ context.Context, req domain.CommandRequest) (domain.CommandResult, error) {
	if req.Command == "offline" {
		return domain.CommandResult{}, errors.New("connection refused")
	}
	return domain.Success("remote:" + req.Command), nil
}

type fixedSession struct{}

func (fixedSession) Session(context.Context) domain.Session {
	return domain.Session{ID: "session_1_test", CreatedAt: time.Unix(1, 0)}
}

func newMachine(store *memory.Store) *terminal.Machine {
	cache := history.NewCache(store)
	cache.Load(context.Background())
	return terminal.New(cache, router.New(echoExecutor{}, fixedSession{}))
}

func runLines(t *testing.T, m *terminal.Machine, input string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithIO(strings.NewReader(input), &out), WithWelcome("")}, opts...)
	r := New(m, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Run(ctx))
	return out.String()
}

func TestRun_LocalAndRemote(t *testing.T) {
	m := newMachine(memory.NewStore())
	out := runLines(t, m, "echo hi\nuptime\nwhoami")

	assert.Contains(t, out, "hi\n")
	assert.Contains(t, out, "remote:uptime\n")
	assert.Contains(t, out, "guest\n")
	assert.Equal(t, 4, strings.Count(out, DefaultPrompt), "one prompt per line plus the final one")
	assert.Equal(t, []string{"echo hi", "uptime", "whoami"}, domain.Commands(m.History()))
}

func TestRun_BlankLineShowsHelp(t *testing.T) {
	out := runLines(t, newMachine(memory.NewStore()), "\n")
	assert.Contains(t, out, "Available commands:")
}

func TestRun_NetworkError(t *testing.T) {
	out := runLines(t, newMachine(memory.NewStore()), "offline\n")
	assert.Contains(t, out, "Error: connection refused")
}

func TestRun_ClearEmptiesHistory(t *testing.T) {
	m := newMachine(memory.NewStore())
	out := runLines(t, m, "echo one\nclear\necho two\n")

	assert.Contains(t, out, "\x1b[2J", "screen cleared")
	assert.Equal(t, []string{"echo two"}, domain.Commands(m.History()))
}

func TestRun_ReloadRestoresPersistedHistory(t *testing.T) {
	store := memory.NewStore()
	m := newMachine(store)
	runLines(t, m, "echo kept\n")

	out := runLines(t, m, "reload\necho after\n", WithWelcome("welcome back"))
	assert.Equal(t, terminal.ModeActive, m.Mode())
	assert.Equal(t, 2, strings.Count(out, "welcome back"), "welcome printed at start and after reload")
	assert.Equal(t, []string{"echo kept", "echo after"}, domain.Commands(m.History()))
}

func TestRun_PrintsRestoredEntries(t *testing.T) {
	store := memory.NewStore()
	runLines(t, newMachine(store), "echo from-before\n")

	out := runLines(t, newMachine(store), "")
	assert.Contains(t, out, "from-before")
}

func TestRun_WelcomeRendered(t *testing.T) {
	var out bytes.Buffer
	r := New(newMachine(memory.NewStore()),
		WithIO(strings.NewReader(""), &out),
		WithRenderer(func(md string) (string, error) { return strings.ToUpper(md), nil }),
		WithPrompt("> "),
	)
	require.NoError(t, r.Run(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "# WEBTERM"))
	assert.Contains(t, out.String(), "> ")
}

func TestRun_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- New(newMachine(memory.NewStore()), WithIO(pr, io.Discard)).Run(ctx)
	}()
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
