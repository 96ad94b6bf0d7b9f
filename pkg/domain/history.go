package domain

import "time"

// HistoryEntry is one rendered line of the terminal: the command as submitted
// and the output it produced.
//
// Command is empty only for the synthetic help entry appended when a blank
// line is submitted.
type HistoryEntry struct {
	Command   string    `json:"command"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// IsSynthetic reports whether the entry was produced by a blank submission.
func (e HistoryEntry) IsSynthetic() bool {
	return e.Command == ""
}

// Commands returns the non-empty commands of entries, oldest first.
func Commands(entries []HistoryEntry) []string {
	cmds := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsSynthetic() {
			cmds = append(cmds, e.Command)
		}
	}
	return cmds
}
