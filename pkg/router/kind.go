package router

// Kind is the closed set of command kinds.
type Kind int

const (
	KindRemote Kind = iota
	KindHelp
	KindClear
	KindEcho
	KindDate
	KindWhoami
	KindHistory
	KindSession
	KindVersion
	KindReload
)

var kindNames = map[Kind]string{
	KindRemote:  "remote",
	KindHelp:    "help",
	KindClear:   "clear",
	KindEcho:    "echo",
	KindDate:    "date",
	KindWhoami:  "whoami",
	KindHistory: "history",
	KindSession: "session",
	KindVersion: "version",
	KindReload:  "reload",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsLocal reports whether the kind is resolved without a network call.
func (k Kind) IsLocal() bool {
	return k != KindRemote
}

// Effect is a side effect on the terminal that accompanies an outcome.
type Effect int

const (
	// EffectNone appends the outcome to history.
	EffectNone Effect = iota
	// EffectClear discards the local history and resets the view. Nothing is appended.
	EffectClear
	// EffectReload moves the terminal into its reloading state. Nothing is appended.
	EffectReload
)

// Command is a classified line.
type Command struct {
	Kind Kind
	Line string // trimmed input, forwarded verbatim for KindRemote
	Arg  string // text after a prefix match, verbatim
}

// Outcome is the result of running a command.
type Outcome struct {
	Output string
	Effect Effect
}

type matcher struct {
	text   string
	prefix bool
	kind   Kind
}

// registry is matched in order, case-sensitively, against the trimmed line.
var registry = []matcher{
	{text: "help", kind: KindHelp},
	{text: "clear", kind: KindClear},
	{text: "echo", kind: KindEcho},
	{text: "echo ", prefix: true, kind: KindEcho},
	{text: "date", kind: KindDate},
	{text: "whoami", kind: KindWhoami},
	{text: "history", kind: KindHistory},
	{text: "session", kind: KindSession},
	{text: "version", kind: KindVersion},
	{text: "reload", kind: KindReload},
}

// Classify maps a trimmed line to its command.
func Classify(line string) Command {
	for _, m := range registry {
		if m.prefix {
			if len(line) > len(m.text) && line[:len(m.text)] == m.text {
				return Command{Kind: m.kind, Line: line, Arg: line[len(m.text):]}
			}
			continue
		}
		if line == m.text {
			return Command{Kind: m.kind, Line: line}
		}
	}
	return Command{Kind: KindRemote, Line: line}
}
