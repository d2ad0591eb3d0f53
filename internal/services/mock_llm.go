package services

import (
	"context"
	"sync"

	"github.com/tavernkeep/gamemaster/pkg/chat"
)

// MockLLMService is a mock implementation of LLMService for testing
type MockLLMService struct {
	InitModelFunc func(ctx context.Context, modelName string) error
	ChatFunc      func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Track calls for testing
	InitModelCalls []string
	ChatCalls      []ChatCall

	mu sync.Mutex // protects all fields above
}

type ChatCall struct {
	Messages []chat.ChatMessage
}

var _ LLMService = (*MockLLMService)(nil)

func NewMockLLMService() *MockLLMService {
	return &MockLLMService{
		InitModelCalls: make([]string, 0),
		ChatCalls:      make([]ChatCall, 0),
	}
}

func (m *MockLLMService) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

func (m *MockLLMService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = append(m.ChatCalls, ChatCall{Messages: messages})

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}

	// Default: a well-formed game master turn with no state changes.
	return &chat.ChatResponse{
		Message: `{"narrative":"The story continues.","options":["look around","press on"],"dice_applied":false,"state_changes":{}}`,
		Model:   "mock",
	}, nil
}

// LastChatCall returns the most recent Chat invocation, or nil.
func (m *MockLLMService) LastChatCall() *ChatCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.ChatCalls) == 0 {
		return nil
	}
	call := m.ChatCalls[len(m.ChatCalls)-1]
	return &call
}
