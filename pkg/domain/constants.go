package domain

// Persistence keys used by the client-side store.
const (
	KeySessionID = "terminal_session_id"
	KeyHistory   = "terminal_history"
)

// MaxCommandLength is the longest command string the server accepts.
const MaxCommandLength = 500

// DefaultHistoryLimit is the number of entries returned by a history query when no limit is given.
const DefaultHistoryLimit = 50

// HelpText is rendered for the "help" command and for blank submissions.
const HelpText = `Available commands:
  help              Show this help message
  clear             Clear the terminal and discard local history
  echo <text>       Print text
  date              Show the current date and time
  whoami            Show the current user
  history           List previously submitted commands
  session           Show the session identifier
  version           Show client and server versions
  reload            Restart the terminal

Server commands:
  weather [location]  Current weather for a location
  ping <host>         Ping a host
  uptime              Show system uptime
  uname -a            Show system information
  cat <file>          Show file contents
  df -h               Show disk usage
  free -h             Show memory usage
  grep <pattern>      Search for a pattern
  ps aux              List processes

Keys: Up/Down browse history, Ctrl+L clears the screen.`
