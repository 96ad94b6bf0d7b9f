/*
Package session implements the client-side Session Identity Manager.

A session id is an opaque token created once per client install and reused on
every later run. It is held by a ports.ClientStore; if the store cannot persist
it, the generated id still serves the current process, unpersisted.
*/
package session
