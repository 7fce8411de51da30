package agent

import (
	"time"

	"pdf-knowledge-be/internal/constant"
)

// Thread is the per-conversation state carried across turns. A Thread is a
// value: ProcessTurn returns a new Thread for the next turn and never mutates
// the one it was given, so a half-failed turn cannot leave the conversation
// state torn.
type Thread struct {
	// Prompt shown when the conversation starts or resets.
	Prompt string

	// LastChatResponse is the agent output of the most recent turn.
	LastChatResponse string

	// NumInput counts user turns processed so far.
	NumInput int

	// UserInput is the raw text of the most recent turn.
	UserInput string

	// SlyData carries values (file paths) that reach the tools but never the
	// chat stream.
	SlyData map[string]interface{}

	// Timeout bounds a single turn.
	Timeout time.Duration
}

// NewThread returns the state for a fresh conversation.
func NewThread() Thread {
	return Thread{
		Prompt:  constant.InitialPrompt,
		Timeout: 120 * time.Second,
		SlyData: map[string]interface{}{},
	}
}

// WithTurn derives the successor state after a completed turn.
func (t Thread) WithTurn(input string, response string) Thread {
	next := t
	next.UserInput = input
	next.LastChatResponse = response
	next.NumInput = t.NumInput + 1
	next.SlyData = copyMap(t.SlyData)
	return next
}

// WithSlyData derives a state carrying an extra side-channel value.
func (t Thread) WithSlyData(key string, value interface{}) Thread {
	next := t
	next.SlyData = copyMap(t.SlyData)
	next.SlyData[key] = value
	return next
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
