/*
Package history implements the client tier of the History Store.

Cache is an unbounded, insertion-ordered list of entries that is fully
re-serialized to a ports.ClientStore on every append. Persistence failures are
logged and otherwise ignored so rendering and further commands never block on
storage.

Sequencer restores submission order: remote commands may resolve in any
order, but their entries are applied strictly in the order they were submitted.
*/
package history
