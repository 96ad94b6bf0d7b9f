package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/history"
	"github.com/aretw0/webterm/pkg/router"
)

// Mode is the lifecycle state of the terminal.
type Mode int

const (
	ModeActive Mode = iota
	ModeReloading
)

func (m Mode) String() string {
	if m == ModeReloading {
		return "reloading"
	}
	return "active"
}

// NotNavigating is the cursor value outside history navigation.
const NotNavigating = -1

// BufferState is a snapshot of the editable state.
type BufferState struct {
	Text          string
	HistoryCursor int
	DisplayOffset int
}

// Dispatcher resolves commands. *router.Router satisfies it.
type Dispatcher interface {
	Run(ctx context.Context, cmd router.Command, hist []domain.HistoryEntry) router.Outcome
}

// Machine is the Input State Machine. Safe for concurrent use.
type Machine struct {
	cache    *history.Cache
	seq      *history.Sequencer
	router   Dispatcher
	logger   *slog.Logger
	onChange func()

	mu     sync.Mutex
	text   string
	cursor int
	offset int
	mode   Mode
}

// Option configures the Machine.
type Option func(*Machine)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithOnChange registers a callback run after every history write or effect.
// It is called without internal locks held.
func WithOnChange(fn func()) Option {
	return func(m *Machine) {
		m.onChange = fn
	}
}

// New creates a Machine over an already loaded cache.
func New(cache *history.Cache, d Dispatcher, opts ...Option) *Machine {
	m := &Machine{
		cache:  cache,
		seq:    history.NewSequencer(),
		router: d,
		logger: logging.NewNop(),
		cursor: NotNavigating,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AppendChar adds r to the end of the buffer.
func (m *Machine) AppendChar(r rune) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text += string(r)
}

// Backspace removes the last rune of the buffer.
func (m *Machine) Backspace() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(m.text)
	m.text = m.text[:len(m.text)-size]
}

// SetText replaces the buffer.
func (m *Machine) SetText(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = s
}

// Text returns the current buffer.
func (m *Machine) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// State returns a snapshot of the buffer, cursor and offset.
func (m *Machine) State() BufferState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return BufferState{Text: m.text, HistoryCursor: m.cursor, DisplayOffset: m.offset}
}

// Mode returns the lifecycle state.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Pending returns the number of submissions whose entries have not been written yet.
func (m *Machine) Pending() int {
	return m.seq.Pending()
}

// Submit trims text and resolves it. The buffer is cleared and navigation
// reset before Submit returns, whatever the outcome. The returned channel is
// closed once this submission's entry (or effect) has been applied.
func (m *Machine) Submit(ctx context.Context, text string) <-chan struct{} {
	line := strings.TrimSpace(text)

	m.mu.Lock()
	m.text = ""
	m.cursor = NotNavigating
	m.mu.Unlock()

	ticket := m.seq.Reserve()

	if line == "" {
		ticket.Complete(func() {
			m.cache.Append(ctx, domain.HistoryEntry{Command: "", Output: domain.HelpText})
			m.notify()
		})
		return ticket.Done()
	}

	cmd := router.Classify(line)
	if cmd.Kind.IsLocal() {
		// Local handlers see the history as it stands at their turn.
		ticket.Complete(func() {
			m.apply(ctx, cmd, m.run(ctx, cmd, m.cache.Entries()))
		})
		return ticket.Done()
	}

	go func() {
		out := m.run(ctx, cmd, nil)
		ticket.Complete(func() {
			m.apply(ctx, cmd, out)
		})
	}()
	return ticket.Done()
}

// run calls the dispatcher, turning a panic into a displayable outcome.
func (m *Machine) run(ctx context.Context, cmd router.Command, hist []domain.HistoryEntry) (out router.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Command handler panicked", "command", cmd.Line, "panic", r)
			out = router.Outcome{Output: fmt.Sprintf("Error: %v", r)}
		}
	}()
	return m.router.Run(ctx, cmd, hist)
}

func (m *Machine) apply(ctx context.Context, cmd router.Command, out router.Outcome) {
	switch out.Effect {
	case router.EffectClear:
		m.cache.Clear(ctx)
		m.mu.Lock()
		m.offset = 0
		m.mu.Unlock()
	case router.EffectReload:
		m.mu.Lock()
		m.mode = ModeReloading
		m.mu.Unlock()
	default:
		m.cache.Append(ctx, domain.HistoryEntry{Command: cmd.Line, Output: out.Output})
	}
	m.notify()
}

func (m *Machine) notify() {
	if m.onChange != nil {
		m.onChange()
	}
}

// HistoryUp loads the previous (older) command into the buffer.
// The first press jumps to the newest command; at the oldest it is a no-op.
func (m *Machine) HistoryUp() {
	cmds := domain.Commands(m.cache.Entries())

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(cmds) == 0 {
		return
	}
	switch {
	case m.cursor == NotNavigating || m.cursor >= len(cmds):
		m.cursor = len(cmds) - 1
	case m.cursor > 0:
		m.cursor--
	}
	m.text = cmds[m.cursor]
}

// HistoryDown loads the next (newer) command, or clears the buffer when
// moving past the newest or when not navigating.
func (m *Machine) HistoryDown() {
	cmds := domain.Commands(m.cache.Entries())

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor == NotNavigating || len(cmds) == 0 {
		m.text = ""
		m.cursor = NotNavigating
		return
	}
	if m.cursor < len(cmds)-1 {
		m.cursor++
		m.text = cmds[m.cursor]
		return
	}
	m.text = ""
	m.cursor = NotNavigating
}

// ClearScreen hides every entry rendered so far without deleting any.
func (m *Machine) ClearScreen() {
	n := m.cache.Len()
	m.mu.Lock()
	m.offset = n
	m.mu.Unlock()
	m.notify()
}

// Visible returns the entries appended since the last ClearScreen.
func (m *Machine) Visible() []domain.HistoryEntry {
	entries := m.cache.Entries()
	m.mu.Lock()
	offset := m.offset
	m.mu.Unlock()

	if offset > len(entries) {
		offset = len(entries)
	}
	return entries[offset:]
}

// History returns every cached entry, including hidden ones.
func (m *Machine) History() []domain.HistoryEntry {
	return m.cache.Entries()
}

// Reload rebuilds the machine from the persisted cache and returns it to ModeActive.
func (m *Machine) Reload(ctx context.Context) {
	m.cache.Load(ctx)
	m.mu.Lock()
	m.text = ""
	m.cursor = NotNavigating
	m.offset = 0
	m.mode = ModeActive
	m.mu.Unlock()
	m.notify()
}
