package service

import (
	"context"

	"github.com/yeabsiraa/ragbot-be/types"
)

// AIService generates an answer from a system prompt (which already
// includes the retrieved context), prior chat history and the user
// input.
type AIService interface {
	Chat(ctx context.Context, system string, history []types.Message, input string) (string, error)
	ChatStream(ctx context.Context, system string, history []types.Message, input string, handler types.StreamHandler) error
}
