package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEntry_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.UTC)
	entries := []HistoryEntry{
		{Command: "", Output: HelpText, Timestamp: ts},
		{Command: "echo  spaced   out ", Output: "spaced   out ", Timestamp: ts.Add(time.Second)},
		{Command: "weather São Paulo", Output: "line1\nline2\t\"quoted\"", Timestamp: ts.Add(2 * time.Second)},
	}

	data, err := json.Marshal(entries)
	require.NoError(t, err)

	var decoded []HistoryEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(entries))

	for i := range entries {
		assert.Equal(t, entries[i].Command, decoded[i].Command)
		assert.Equal(t, entries[i].Output, decoded[i].Output)
		assert.True(t, entries[i].Timestamp.Equal(decoded[i].Timestamp))
	}
}

func TestCommands_SkipsSynthetic(t *testing.T) {
	entries := []HistoryEntry{
		{Command: "ls"},
		{Command: "", Output: HelpText},
		{Command: "date"},
	}
	assert.Equal(t, []string{"ls", "date"}, Commands(entries))
}

func TestCommandResult_Text(t *testing.T) {
	assert.Equal(t, "ok", Success("ok").Text())
	assert.Equal(t, "Error: Internal server error", Failure("Internal server error").Text())
	assert.Equal(t, "", CommandResult{}.Text())
}

func TestIsValidation(t *testing.T) {
	err := NewValidationError("bad location")
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(ErrUpstreamUnavailable))
}
