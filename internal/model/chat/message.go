package chat

import "strings"

// Role identifies the speaker of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleModel is only produced by history normalization for generative providers.
	RoleModel Role = "model"
)

// Turn is a single message in a conversation. Turns are values and never mutated after creation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NormalizedTurn is the alternating-role shape generative chat providers require.
// It is derived per request and never stored.
type NormalizedTurn struct {
	Role  Role     `json:"role"`
	Parts []string `json:"parts"`
}

// Text joins the turn parts with a newline.
func (t NormalizedTurn) Text() string {
	return strings.Join(t.Parts, "\n")
}
