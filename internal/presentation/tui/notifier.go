package tui

// Notifier coalesces machine change notifications into a channel the
// program can wait on. Notify never blocks, so it is safe to call from
// inside Update and from dispatch goroutines alike.
type Notifier struct {
	ch chan struct{}
}

// NewNotifier creates a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// Notify records that the machine changed.
func (n *Notifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// C returns the channel signalled after Notify.
func (n *Notifier) C() <-chan struct{} {
	return n.ch
}
