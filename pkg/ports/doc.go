/*
Package ports defines the driven ports (interfaces) for the webterm engine.

These interfaces decouple the terminal state machine and the execution service
from concrete storage backends, transports and data providers.

# Key Interfaces

  - ClientStore: Client-side key/value persistence (the browser's local storage equivalent).
  - HistoryLog: Server-side, append-only command log keyed by session id.
  - Executor: Sends a remote command to the execution service.
  - Provider: The single whitelisted external data source (weather).
*/
package ports
