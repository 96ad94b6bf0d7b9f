/*
Package terminal implements the Input State Machine.

A Machine owns the line buffer, the history-navigation cursor and the display
offset. It consumes edits and navigation keys and turns submitted lines into
history entries through a router. Submitting never blocks on the network:
remote commands resolve in their own goroutine while the buffer stays editable,
and a history.Sequencer writes their entries back in submission order.

# States

  - ModeActive: normal operation.
  - ModeReloading: entered by the "reload" command. The front-end is expected to
    call Reload, which rebuilds the view from the persisted cache and returns
    the machine to ModeActive.
*/
package terminal
