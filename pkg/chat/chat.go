// Package chat defines the message shapes shared by the HTTP API, the
// turn processor and the LLM services.
package chat

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tavernkeep/gamemaster/pkg/mechanics"
)

const (
	ChatRoleUser   = "user"
	ChatRoleAgent  = "assistant" // the game master
	ChatRoleSystem = "system"
)

// ChatMessage is a single message in the conversation, in the role/content
// shape LLM chat APIs expect.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the raw LLM completion for one request.
type ChatResponse struct {
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
}

// ActionRequest is a player action submitted for one turn.
type ActionRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Action    string    `json:"action"`

	// IdempotencyKey dedupes retries of the same turn. Optional; when
	// set, a repeated key returns the cached response for that turn.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

func (r *ActionRequest) Validate() error {
	if r.SessionID == uuid.Nil {
		return fmt.Errorf("session_id is required")
	}
	if r.Action == "" {
		return fmt.Errorf("action cannot be empty")
	}
	return nil
}

// ActionResponse is the resolved turn returned to the player.
//
// DiceResult is present only when the game master judged the action
// mechanically consequential this turn; routine actions carry no dice
// noise.
type ActionResponse struct {
	SessionID  uuid.UUID              `json:"session_id"`
	Narrative  string                 `json:"narrative"`
	Options    []string               `json:"options,omitempty"`
	DiceResult *mechanics.CheckResult `json:"dice_result,omitempty"`
	HP         int                    `json:"hp"`
	MaxHP      int                    `json:"max_hp"`
	Level      int                    `json:"level"`
	TurnCount  int                    `json:"turn_count"`
	MaxTurns   int                    `json:"max_turns"`
	IsEnding   bool                   `json:"is_ending"`
	EndingType string                 `json:"ending_type,omitempty"`
	Error      string                 `json:"error,omitempty"`
}
