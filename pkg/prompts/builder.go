package prompts

import (
	"fmt"

	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/mechanics"
	"github.com/tavernkeep/gamemaster/pkg/scenario"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

// DefaultHistoryLimit caps how many prior chat messages are replayed to
// the model each turn.
const DefaultHistoryLimit = 20

// Builder assembles the message sequence for one generation call:
// system instructions, game state, the binding dice result, a window of
// chat history, and the user's action.
type Builder struct {
	scenario     *scenario.Scenario
	character    *actor.Character
	session      *state.Session
	checkResult  *mechanics.CheckResult
	userAction   string
	historyLimit int
	ending       bool
}

func NewBuilder() *Builder {
	return &Builder{historyLimit: DefaultHistoryLimit}
}

func (b *Builder) WithScenario(s *scenario.Scenario) *Builder {
	b.scenario = s
	return b
}

func (b *Builder) WithCharacter(ch *actor.Character) *Builder {
	b.character = ch
	return b
}

func (b *Builder) WithSession(s *state.Session) *Builder {
	b.session = s
	return b
}

// WithCheckResult attaches the rolled check. Nil means this turn carries
// no dice context.
func (b *Builder) WithCheckResult(r *mechanics.CheckResult) *Builder {
	b.checkResult = r
	return b
}

func (b *Builder) WithUserAction(action string) *Builder {
	b.userAction = action
	return b
}

func (b *Builder) WithHistoryLimit(n int) *Builder {
	if n > 0 {
		b.historyLimit = n
	}
	return b
}

// ForEnding switches the contract to the final-turn ending prompt.
func (b *Builder) ForEnding() *Builder {
	b.ending = true
	return b
}

// Build produces the messages for the generation call. Scenario, session,
// character and user action are required.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.scenario == nil {
		return nil, fmt.Errorf("prompt builder: scenario is required")
	}
	if b.session == nil || b.character == nil {
		return nil, fmt.Errorf("prompt builder: session and character are required")
	}
	if b.userAction == "" {
		return nil, fmt.Errorf("prompt builder: user action is required")
	}

	messages := []chat.ChatMessage{SystemPrompt(b.scenario)}

	stateMsg, err := StatePrompt(b.session, b.character)
	if err != nil {
		return nil, fmt.Errorf("prompt builder: %w", err)
	}
	messages = append(messages, stateMsg)

	if b.ending {
		messages = append(messages, chat.ChatMessage{
			Role:    chat.ChatRoleSystem,
			Content: EndingSystemPrompt,
		})
	} else if b.checkResult != nil {
		checkMsg, err := CheckResultPrompt(b.checkResult)
		if err != nil {
			return nil, fmt.Errorf("prompt builder: %w", err)
		}
		messages = append(messages, checkMsg)
	}

	messages = append(messages, b.historyWindow()...)

	messages = append(messages, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: b.userAction,
	})
	if !b.ending {
		messages = append(messages, chat.ChatMessage{
			Role:    chat.ChatRoleSystem,
			Content: UserPostPrompt,
		})
	}
	return messages, nil
}

func (b *Builder) historyWindow() []chat.ChatMessage {
	history := b.session.ChatHistory
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}
	out := make([]chat.ChatMessage, len(history))
	copy(out, history)
	return out
}
