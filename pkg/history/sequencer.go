package history

import "sync"

// Sequencer applies completions in the order their tickets were reserved.
// Apply functions run one at a time, outside the Sequencer's lock.
type Sequencer struct {
	mu       sync.Mutex
	next     uint64
	head     uint64
	flushing bool
	pending  map[uint64]func()
}

// NewSequencer creates an idle Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{pending: make(map[uint64]func())}
}

// Ticket is one reserved position in submission order.
type Ticket struct {
	seq  *Sequencer
	n    uint64
	once sync.Once
	done chan struct{}
}

// Reserve hands out the next ticket. Every ticket must eventually be completed,
// otherwise later tickets are held back forever.
func (s *Sequencer) Reserve() *Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Ticket{seq: s, n: s.next, done: make(chan struct{})}
	s.next++
	return t
}

// Pending returns the number of tickets reserved but not yet applied.
func (s *Sequencer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.next - s.head)
}

// Complete schedules apply to run once every earlier ticket has been applied.
// Only the first call on a ticket has any effect.
func (t *Ticket) Complete(apply func()) {
	t.once.Do(func() {
		t.seq.complete(t.n, func() {
			defer close(t.done)
			if apply != nil {
				apply()
			}
		})
	})
}

// Done is closed after the ticket's apply function has run.
func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

func (s *Sequencer) complete(n uint64, apply func()) {
	s.mu.Lock()
	s.pending[n] = apply
	if s.flushing {
		// The active flusher will pick it up.
		s.mu.Unlock()
		return
	}
	s.flushing = true
	for {
		fn, ok := s.pending[s.head]
		if !ok {
			s.flushing = false
			s.mu.Unlock()
			return
		}
		delete(s.pending, s.head)
		s.head++
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}
}
