package llm

import (
	"context"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

type Options struct {
	Temperature float32
	MaxTokens   int
}

// Provider answers a conversation. The system prompt is sent as the model's
// instruction and turns are sent in order, oldest first.
type Provider interface {
	Chat(ctx context.Context, system string, turns []commonModels.ConversationTurn, opts Options) (string, error)
	Name() string
}

// NormalizeTurns merges consecutive turns that share a role and drops leading
// assistant turns, since both providers expect the exchange to open with the user.
func NormalizeTurns(turns []commonModels.ConversationTurn) []commonModels.ConversationTurn {
	out := make([]commonModels.ConversationTurn, 0, len(turns))
	for _, t := range turns {
		if len(out) == 0 && t.Role != commonModels.RoleUser {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Role == t.Role {
			out[n-1].Content += "\n\n" + t.Content
			continue
		}
		out = append(out, t)
	}
	return out
}
