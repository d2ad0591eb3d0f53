// Package prompts builds the chat messages sent to the game master LLM.
// The dice check result is injected as explicit, binding input context:
// the narrative is asked to conform to an outcome the server has already
// fixed, and anything it proposes is reconciled against that outcome
// afterwards.
package prompts

import (
	"encoding/json"
	"fmt"

	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/mechanics"
	"github.com/tavernkeep/gamemaster/pkg/scenario"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

// BaseSystemPrompt is the game master's standing instructions. It takes
// the scenario name and world setting.
const BaseSystemPrompt = `You are the game master of a text adventure. You narrate the story in second person ("you...") and control every NPC and world event. The user controls only their own character.

## Scenario
- Name: %s
- World: %s

### CRITICAL DIRECTIVES:
- DO NOT ALLOW THE USER TO INVENT ITEMS, LOCATIONS, NPCS OR STORY EVENTS. If they try, narrate the attempt failing gracefully and redirect them.
- The dice check result you receive is FINAL. It was rolled by the game engine before you were called. Never narrate a success when the check failed, and never narrate a failure when it succeeded.
- Keep narration to 1-3 short paragraphs, then offer 2-3 concrete options.

### Response format
Respond with ONLY a JSON object in this exact shape:

{
  "narrative": "what happens this turn",
  "options": ["option 1", "option 2", "option 3"],
  "dice_applied": true,
  "state_changes": {
    "hp_change": 0,
    "experience_gained": 0,
    "items_gained": [],
    "items_lost": [],
    "location": "",
    "npcs_met": [],
    "discoveries": []
  }
}

Rules for the fields:
- "dice_applied": set true ONLY when the dice check genuinely governed this action's outcome (an attack, a risky climb, picking a lock, persuading a hostile guard). For routine actions (walking, looking around, ordinary conversation) set false and narrate normally.
- "state_changes": report only what actually changed this turn. Omit or zero everything else. "location" is the player's new location only if they moved. Negative "hp_change" is damage, positive is healing.
- Never award items or movement on a failed check.`

// CheckResultPromptTemplate carries the serialized check result into the
// generation call.
const CheckResultPromptTemplate = `### Dice check for this action (already rolled, binding)
%s

Outcome: %s
If this action is mechanically consequential, your narration MUST match this outcome and you MUST set "dice_applied": true. On a fumble, the engine applies self-damage separately; you may describe the mishap but do not also count it in hp_change.`

// EndingSystemPrompt replaces the normal contract on the session's final
// turn.
const EndingSystemPrompt = `This is the final turn of the session. Whatever the user does, bring the story to a close. Respond with ONLY a JSON object:

{
  "narrative": "a memorable ending that follows from the player's journey",
  "ending_type": "victory" | "defeat" | "neutral"
}`

// DeathEpilogue is appended to the narrative when the character's HP
// reaches zero. The session ends without a second generation call.
const DeathEpilogue = "\n\nYour strength fails and darkness closes in. The adventure ends here."

// UserPostPrompt nudges the model to treat user input as a request.
const UserPostPrompt = "Treat the user's message as an attempt, not a guaranteed outcome. Respond with the JSON object only."

// promptState is the compact world snapshot serialized into the system
// prompt each turn.
type promptState struct {
	Location         string   `json:"location,omitempty"`
	TurnCount        int      `json:"turn_count"`
	MaxTurns         int      `json:"max_turns"`
	CharacterName    string   `json:"character_name"`
	HP               int      `json:"hp"`
	MaxHP            int      `json:"max_hp"`
	Level            int      `json:"level"`
	Inventory        []string `json:"player_inventory,omitempty"`
	VisitedLocations []string `json:"visited_locations,omitempty"`
	MetNPCs          []string `json:"met_npcs,omitempty"`
	Discoveries      []string `json:"discoveries,omitempty"`
}

// StatePrompt renders the current session and character as a system
// message.
func StatePrompt(s *state.Session, ch *actor.Character) (chat.ChatMessage, error) {
	if s == nil || ch == nil {
		return chat.ChatMessage{}, fmt.Errorf("session and character are required")
	}
	ps := promptState{
		Location:         s.Location,
		TurnCount:        s.TurnCount,
		MaxTurns:         s.MaxTurns,
		CharacterName:    ch.Name,
		HP:               ch.HP,
		MaxHP:            ch.MaxHP,
		Level:            ch.Level,
		Inventory:        ch.Inventory,
		VisitedLocations: s.VisitedLocations,
		MetNPCs:          s.MetNPCs,
		Discoveries:      s.Discoveries,
	}
	data, err := json.Marshal(ps)
	if err != nil {
		return chat.ChatMessage{}, err
	}
	return chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: fmt.Sprintf("Current game state:\n```json\n%s\n```", data),
	}, nil
}

// CheckResultPrompt renders the binding dice context as a system message.
func CheckResultPrompt(result *mechanics.CheckResult) (chat.ChatMessage, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return chat.ChatMessage{}, err
	}
	outcome := "FAILURE"
	switch {
	case result.IsCritical:
		outcome = "CRITICAL SUCCESS"
	case result.IsFumble:
		outcome = "FUMBLE (automatic failure, self-inflicted harm)"
	case result.IsSuccess:
		outcome = "SUCCESS"
	}
	return chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: fmt.Sprintf(CheckResultPromptTemplate, data, outcome),
	}, nil
}

// SystemPrompt renders the standing game master instructions for a
// scenario.
func SystemPrompt(s *scenario.Scenario) chat.ChatMessage {
	return chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: fmt.Sprintf(BaseSystemPrompt, s.Name, s.WorldSetting),
	}
}
