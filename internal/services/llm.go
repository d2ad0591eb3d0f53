package services

import (
	"context"

	"github.com/tavernkeep/gamemaster/pkg/chat"
)

// LLMService defines the interface for interacting with the LLM API
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// Chat generates a completion for the given messages
	Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}
