/*
Package webterm is an interactive terminal-session engine: a client-side
input and history state machine paired with a server-side command service
that only ever produces text from a closed, whitelisted command set.

# Concept

A user types into a line buffer. On submit the line is routed either to a
local handler (help, clear, echo, date, whoami, history, session, version,
reload) or to the remote execution service. The result is appended to a
persisted history whose order always matches the order of submission, even
when remote calls finish out of order.

# Usage

NewTerminal assembles the client side around any ports.Executor and
ports.ClientStore:

	exec := webhttp.NewClient("http://localhost:8000")
	t := webterm.NewTerminal(ctx, exec, file.New(".webterm"),
		webterm.WithVersionSource(exec),
	)
	<-t.Machine.Submit(ctx, "weather London")
	fmt.Println(t.Machine.History())

The server side is executor.Service behind the handlers of
pkg/adapters/http or the tools of pkg/adapters/mcp.
*/
package webterm
