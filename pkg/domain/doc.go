/*
Package domain contains the core domain models of the webterm engine.

It defines the entities shared by the client-side input state machine and the
server-side execution service. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Session: The durable client-held token correlating a user's history on the server.
  - HistoryEntry: One submitted command and the text it produced.
  - CommandRequest / CommandResult: The wire contract between client and server.
  - ValidationError: A rejected parameter whose message is always safe to display.
*/
package domain
