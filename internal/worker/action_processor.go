// Package worker contains the turn processor: the one place where a
// player action, the dice engine, the game master LLM and persistence
// meet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tavernkeep/gamemaster/internal/services"
	"github.com/tavernkeep/gamemaster/internal/storage"
	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/mechanics"
	"github.com/tavernkeep/gamemaster/pkg/prompts"
	"github.com/tavernkeep/gamemaster/pkg/scenario"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

const (
	PromptHistoryLimit = 20

	llmTimeout = 30 * time.Second
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session has already ended")
)

// ActionProcessor resolves one player action into one completed turn.
//
// The order of operations is the whole point: the dice are rolled and
// the outcome fixed BEFORE the game master narrates, and whatever state
// changes the game master proposes are reconciled against that fixed
// outcome before anything is persisted.
type ActionProcessor struct {
	storage    storage.Storage
	llmService services.LLMService
	engine     *mechanics.Engine
	logger     *slog.Logger
}

func NewActionProcessor(
	storage storage.Storage,
	llmService services.LLMService,
	engine *mechanics.Engine,
	logger *slog.Logger,
) *ActionProcessor {
	if engine == nil {
		engine = mechanics.NewEngine(nil)
	}
	return &ActionProcessor{
		storage:    storage,
		llmService: llmService,
		engine:     engine,
		logger:     logger,
	}
}

// ProcessAction runs one turn end to end and returns the resolved
// response. Repeated idempotency keys return the originally cached
// response without running the turn again.
func (p *ActionProcessor) ProcessAction(ctx context.Context, req chat.ActionRequest) (*chat.ActionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		cached, err := p.storage.CachedResponse(ctx, req.SessionID, req.IdempotencyKey)
		if err != nil {
			p.logger.Warn("Idempotency lookup failed", "error", err, "session_id", req.SessionID)
		} else if cached != nil {
			p.logger.Debug("Returning cached turn", "session_id", req.SessionID, "key", req.IdempotencyKey)
			return cached, nil
		}
	}

	session, err := p.storage.LoadSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsEnded {
		return nil, ErrSessionEnded
	}

	character, err := p.storage.LoadCharacter(ctx, session.CharacterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	if character == nil {
		return nil, fmt.Errorf("character not found: %s", session.CharacterID)
	}

	loadedScenario, err := p.storage.GetScenario(ctx, session.Scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	session.AdvanceTurn()

	var resp *chat.ActionResponse
	if session.IsFinalTurn() {
		resp, err = p.processEndingTurn(ctx, req, session, *character, loadedScenario)
	} else {
		resp, err = p.processTurn(ctx, req, session, *character, loadedScenario)
	}
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if err := p.storage.CacheResponse(ctx, req.SessionID, req.IdempotencyKey, resp); err != nil {
			p.logger.Warn("Failed to cache turn response", "error", err, "session_id", req.SessionID)
		}
	}
	return resp, nil
}

// processTurn handles an ordinary turn: roll, narrate, reconcile, apply,
// persist.
func (p *ActionProcessor) processTurn(ctx context.Context, req chat.ActionRequest, session *state.Session, character actor.Character, sc *scenario.Scenario) (*chat.ActionResponse, error) {
	category := classifyAction(req.Action)
	result, err := p.engine.PerformCheck(character.Level, sc.Difficulty, category)
	if err != nil {
		return nil, fmt.Errorf("dice check failed: %w", err)
	}

	p.logger.Debug("Rolled check",
		"session_id", session.ID,
		"category", category,
		"roll", result.Roll,
		"total", result.Total,
		"dc", result.Target,
		"success", result.IsSuccess)

	messages, err := prompts.NewBuilder().
		WithScenario(sc).
		WithSession(session).
		WithCharacter(&character).
		WithCheckResult(&result).
		WithUserAction(req.Action).
		WithHistoryLimit(PromptHistoryLimit).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	response, err := p.llmService.Chat(llmCtx, messages)
	if err != nil {
		return nil, fmt.Errorf("LLM chat failed: %w", err)
	}

	narrative, options, applied, proposed := p.interpretGMResponse(session, response.Message)

	delta, surfaced := state.Reconcile(&result, applied, proposed)
	character = state.NewDeltaWorker(session, delta, p.logger).Apply(character)

	// Fumble self-damage comes from the engine, not the narrator.
	if surfaced != nil && surfaced.IsFumble && surfaced.Damage != nil {
		character = character.TakeDamage(*surfaced.Damage)
	}

	session.AppendMessage(chat.ChatRoleUser, req.Action)
	session.AppendMessage(chat.ChatRoleAgent, narrative)

	if character.IsDead() {
		narrative += prompts.DeathEpilogue
		session.End(state.EndingDeath)
		options = nil
		p.logger.Info("Character died", "session_id", session.ID, "character_id", character.ID)
	}

	if err := p.save(ctx, session, character); err != nil {
		return nil, err
	}

	return &chat.ActionResponse{
		SessionID:  session.ID,
		Narrative:  narrative,
		Options:    options,
		DiceResult: surfaced,
		HP:         character.HP,
		MaxHP:      character.MaxHP,
		Level:      character.Level,
		TurnCount:  session.TurnCount,
		MaxTurns:   session.MaxTurns,
		IsEnding:   session.IsEnded,
		EndingType: session.EndingType,
	}, nil
}

// processEndingTurn runs the session's last action. No dice: the game
// master is asked only to end the story.
func (p *ActionProcessor) processEndingTurn(ctx context.Context, req chat.ActionRequest, session *state.Session, character actor.Character, sc *scenario.Scenario) (*chat.ActionResponse, error) {
	messages, err := prompts.NewBuilder().
		WithScenario(sc).
		WithSession(session).
		WithCharacter(&character).
		WithUserAction(req.Action).
		WithHistoryLimit(PromptHistoryLimit).
		ForEnding().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build ending prompt: %w", err)
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	response, err := p.llmService.Chat(llmCtx, messages)
	if err != nil {
		return nil, fmt.Errorf("LLM chat failed: %w", err)
	}

	narrative := response.Message
	endingType := state.EndingNeutral
	if ending, err := state.ParseEndingResponse(response.Message); err != nil {
		p.logger.Warn("Unparseable ending response, using raw narrative",
			"error", err, "session_id", session.ID)
	} else {
		narrative = ending.Narrative
		endingType = ending.EndingType
	}

	session.AppendMessage(chat.ChatRoleUser, req.Action)
	session.AppendMessage(chat.ChatRoleAgent, narrative)
	session.End(endingType)

	if err := p.save(ctx, session, character); err != nil {
		return nil, err
	}

	return &chat.ActionResponse{
		SessionID:  session.ID,
		Narrative:  narrative,
		HP:         character.HP,
		MaxHP:      character.MaxHP,
		Level:      character.Level,
		TurnCount:  session.TurnCount,
		MaxTurns:   session.MaxTurns,
		IsEnding:   true,
		EndingType: endingType,
	}, nil
}

// interpretGMResponse parses the structured payload, falling back to
// treating the whole completion as narrative with no state changes.
func (p *ActionProcessor) interpretGMResponse(session *state.Session, content string) (narrative string, options []string, applied bool, proposed state.Delta) {
	gmResp, err := state.ParseGMResponse(content)
	if err != nil {
		p.logger.Warn("Unstructured game master response, treating as narrative",
			"error", err, "session_id", session.ID)
		return strings.TrimSpace(content), state.ExtractOptions(content, 3), false, state.Delta{}
	}
	return gmResp.Narrative, gmResp.Options, gmResp.Applied(), gmResp.Delta()
}

func (p *ActionProcessor) save(ctx context.Context, session *state.Session, character actor.Character) error {
	if err := p.storage.SaveCharacter(ctx, character.ID, &character); err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	if err := p.storage.SaveSession(ctx, session.ID, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// classifyAction buckets a free-text action into a check category. The
// category only labels the result for the narrative; it never changes
// the math.
func classifyAction(action string) mechanics.Category {
	lower := strings.ToLower(action)
	switch {
	case containsAny(lower, "attack", "fight", "strike", "shoot", "stab", "punch", "swing"):
		return mechanics.CategoryCombat
	case containsAny(lower, "talk", "persuade", "convince", "ask", "bargain", "intimidate", "charm"):
		return mechanics.CategorySocial
	case containsAny(lower, "search", "explore", "look", "examine", "investigate", "scout", "listen"):
		return mechanics.CategoryExploration
	default:
		return mechanics.CategorySkill
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
