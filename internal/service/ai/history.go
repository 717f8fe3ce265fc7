package ai

import (
	"github.com/cloudwego/eino/schema"

	"github.com/studybuddy/assistant/backend/internal/model/chat"
)

// NormalizeHistory reshapes raw turns into the strictly alternating form generative chat
// providers accept. Turns before the first user turn are dropped, every non-user role becomes
// "model", and adjacent turns with the same role are merged with a newline.
// A history without any user turn yields an empty result.
func NormalizeHistory(turns []chat.Turn) []chat.NormalizedTurn {
	start := -1
	for i, turn := range turns {
		if turn.Role == chat.RoleUser {
			start = i
			break
		}
	}
	if start < 0 {
		return []chat.NormalizedTurn{}
	}

	normalized := make([]chat.NormalizedTurn, 0, len(turns)-start)
	for _, turn := range turns[start:] {
		role := chat.RoleModel
		if turn.Role == chat.RoleUser {
			role = chat.RoleUser
		}

		if n := len(normalized); n > 0 && normalized[n-1].Role == role {
			last := &normalized[n-1]
			last.Parts[len(last.Parts)-1] += "\n" + turn.Content
			continue
		}

		normalized = append(normalized, chat.NormalizedTurn{
			Role:  role,
			Parts: []string{turn.Content},
		})
	}
	return normalized
}

// toSchemaMessages converts normalized turns into eino messages; "model" maps to the assistant role.
func toSchemaMessages(turns []chat.NormalizedTurn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Text()))
		default:
			history = append(history, schema.AssistantMessage(turn.Text(), nil))
		}
	}
	return history
}
