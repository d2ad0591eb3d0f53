package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tavernkeep/gamemaster/pkg/chat"
)

func TestNewAnthropicService(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-api-key", "claude-sonnet-4-20250514", log)

	if service.apiKey != "test-api-key" {
		t.Errorf("api key = %q", service.apiKey)
	}
	if service.modelName != "claude-sonnet-4-20250514" {
		t.Errorf("model name = %q", service.modelName)
	}
	if service.httpClient == nil {
		t.Error("http client not initialized")
	}
}

func TestAnthropicService_SplitChatMessages(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-key", "model", log)

	tests := []struct {
		name           string
		messages       []chat.ChatMessage
		expectedSystem string
		expectedCount  int
	}{
		{
			name: "single system message",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleSystem, Content: "You are a narrator."},
				{Role: chat.ChatRoleUser, Content: "Hello"},
				{Role: chat.ChatRoleAgent, Content: "Hi there!"},
			},
			expectedSystem: "You are a narrator.",
			expectedCount:  2,
		},
		{
			name: "multiple system messages are joined",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleSystem, Content: "You are a narrator."},
				{Role: chat.ChatRoleUser, Content: "Hello"},
				{Role: chat.ChatRoleSystem, Content: "Be concise."},
			},
			expectedSystem: "You are a narrator.\n\nBe concise.",
			expectedCount:  1,
		},
		{
			name: "no system messages",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleUser, Content: "Hello"},
			},
			expectedSystem: "",
			expectedCount:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			systemPrompt, rest := service.splitChatMessages(tt.messages)
			if systemPrompt != tt.expectedSystem {
				t.Errorf("system = %q, want %q", systemPrompt, tt.expectedSystem)
			}
			if len(rest) != tt.expectedCount {
				t.Errorf("non-system count = %d, want %d", len(rest), tt.expectedCount)
			}
			for _, msg := range rest {
				if msg.Role == chat.ChatRoleSystem {
					t.Error("system message leaked into conversation")
				}
			}
		})
	}
}

func TestAnthropicService_Chat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") != anthropicVersion {
			t.Errorf("missing anthropic-version header")
		}

		var req AnthropicChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.System == "" {
			t.Error("system prompt not extracted")
		}
		for _, m := range req.Messages {
			if m.Role == chat.ChatRoleSystem {
				t.Error("system message in messages array")
			}
		}

		resp := AnthropicChatResponse{
			Content: []AnthropicContentBlock{{Type: "text", Text: "The door creaks open."}},
			Model:   req.Model,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-key", "test-model", log)
	service.baseURL = server.URL

	resp, err := service.Chat(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "You are a narrator."},
		{Role: chat.ChatRoleUser, Content: "open the door"},
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.Message != "The door creaks open." {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Model != "test-model" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestAnthropicService_Chat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer server.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-key", "test-model", log)
	service.baseURL = server.URL

	_, err := service.Chat(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "hello"},
	})
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
