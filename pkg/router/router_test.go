package router

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/webterm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	got    []domain.CommandRequest
	result domain.CommandResult
	err    error
}

func (f *fakeExecutor) Execute(ctx context.Context, req domain.CommandRequest) (domain.CommandResult, error) {
	f.got = append(f.got, req)
	return f.result, f.err
}

type fixedSession struct{ s domain.Session }

func (f fixedSession) Session(context.Context) domain.Session { return f.s }

type fakeVersions struct {
	v   string
	err error
}

func (f fakeVersions) Version(context.Context) (string, error) { return f.v, f.err }

func newTestRouter(exec *fakeExecutor, opts ...Option) *Router {
	sess := fixedSession{domain.Session{ID: "session_1_abc", CreatedAt: time.Unix(0, 0).UTC()}}
	return New(exec, sess, opts...)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		kind Kind
		arg  string
	}{
		{"help", KindHelp, ""},
		{"clear", KindClear, ""},
		{"echo", KindEcho, ""},
		{"echo Hello World", KindEcho, "Hello World"},
		{"echo   spaced  out", KindEcho, "  spaced  out"},
		{"echoes", KindRemote, ""},
		{"date", KindDate, ""},
		{"Date", KindRemote, ""},
		{"whoami", KindWhoami, ""},
		{"history", KindHistory, ""},
		{"session", KindSession, ""},
		{"version", KindVersion, ""},
		{"reload", KindReload, ""},
		{"help me", KindRemote, ""},
		{"weather London", KindRemote, ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd := Classify(tt.line)
			assert.Equal(t, tt.kind, cmd.Kind)
			assert.Equal(t, tt.arg, cmd.Arg)
			assert.Equal(t, tt.line, cmd.Line)
		})
	}
}

func TestDispatch_Echo(t *testing.T) {
	exec := &fakeExecutor{}
	r := newTestRouter(exec)

	out := r.Dispatch(context.Background(), "echo Hello World", nil)
	assert.Equal(t, "Hello World", out.Output)
	assert.Equal(t, EffectNone, out.Effect)
	assert.Empty(t, exec.got, "local commands must not reach the executor")
}

func TestDispatch_Help(t *testing.T) {
	out := newTestRouter(&fakeExecutor{}).Dispatch(context.Background(), "help", nil)
	assert.True(t, strings.HasPrefix(out.Output, "Available commands:"))
}

func TestDispatch_Effects(t *testing.T) {
	r := newTestRouter(&fakeExecutor{})
	assert.Equal(t, EffectClear, r.Dispatch(context.Background(), "clear", nil).Effect)
	assert.Equal(t, EffectReload, r.Dispatch(context.Background(), "reload", nil).Effect)
}

func TestDispatch_Date(t *testing.T) {
	fixed := time.Date(2024, 2, 29, 9, 15, 0, 0, time.UTC)
	r := newTestRouter(&fakeExecutor{}, WithClock(func() time.Time { return fixed }))
	assert.Equal(t, "Thu Feb 29 09:15:00 UTC 2024", r.Dispatch(context.Background(), "date", nil).Output)
}

func TestDispatch_History(t *testing.T) {
	r := newTestRouter(&fakeExecutor{})

	assert.Equal(t, "No commands in history.", r.Dispatch(context.Background(), "history", nil).Output)

	hist := []domain.HistoryEntry{
		{Command: "date"},
		{Command: "", Output: domain.HelpText},
		{Command: "echo hi"},
	}
	assert.Equal(t, "    1  date\n    2  echo hi", r.Dispatch(context.Background(), "history", hist).Output)
}

func TestDispatch_Session(t *testing.T) {
	out := newTestRouter(&fakeExecutor{}).Dispatch(context.Background(), "session", nil)
	assert.Contains(t, out.Output, "session_1_abc")
}

type ctxKey struct{}

type recordingSession struct{ seen []any }

func (r *recordingSession) Session(ctx context.Context) domain.Session {
	r.seen = append(r.seen, ctx.Value(ctxKey{}))
	return domain.Session{ID: "session_2_def"}
}

func TestDispatch_SessionUsesCallerContext(t *testing.T) {
	src := &recordingSession{}
	r := New(&fakeExecutor{}, src)
	ctx := context.WithValue(context.Background(), ctxKey{}, "caller")

	out := r.Dispatch(ctx, "session", nil)
	assert.Contains(t, out.Output, "session_2_def")
	assert.Equal(t, []any{"caller"}, src.seen)
}

func TestDispatch_Version(t *testing.T) {
	r := newTestRouter(&fakeExecutor{},
		WithClientVersion("1.2.3"),
		WithVersionSource(fakeVersions{v: "9.9.9"}),
	)
	assert.Equal(t, "Client: 1.2.3\nServer: unknown", r.Dispatch(context.Background(), "version", nil).Output)

	r.RefreshServerVersion(context.Background())
	assert.Equal(t, "Client: 1.2.3\nServer: 9.9.9", r.Dispatch(context.Background(), "version", nil).Output)
}

func TestDispatch_VersionRefreshFailureKeepsValue(t *testing.T) {
	r := newTestRouter(&fakeExecutor{}, WithVersionSource(fakeVersions{err: errors.New("down")}))
	r.RefreshServerVersion(context.Background())
	assert.Contains(t, r.Dispatch(context.Background(), "version", nil).Output, "Server: unknown")
}

func TestDispatch_RemoteForwardsVerbatim(t *testing.T) {
	exec := &fakeExecutor{result: domain.Success("sunny")}
	r := newTestRouter(exec)

	out := r.Dispatch(context.Background(), "weather  New   York", nil)
	assert.Equal(t, "sunny", out.Output)
	require.Len(t, exec.got, 1)
	assert.Equal(t, "weather  New   York", exec.got[0].Command)
	assert.Equal(t, "session_1_abc", exec.got[0].SessionID)
}

func TestDispatch_RemoteErrorResult(t *testing.T) {
	exec := &fakeExecutor{result: domain.Failure("Internal server error")}
	out := newTestRouter(exec).Dispatch(context.Background(), "uptime", nil)
	assert.Equal(t, "Error: Internal server error", out.Output)
}

func TestDispatch_NetworkError(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")}
	out := newTestRouter(exec).Dispatch(context.Background(), "uptime", nil)
	assert.Equal(t, "Error: dial tcp 127.0.0.1:1: connect: connection refused", out.Output)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "echo", KindEcho.String())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.False(t, KindRemote.IsLocal())
	assert.True(t, KindHelp.IsLocal())
}
