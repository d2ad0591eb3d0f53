// Package scenario models the adventure definitions the game master
// runs. Scenarios are static JSON files loaded from the data directory.
package scenario

import (
	"fmt"

	"github.com/tavernkeep/gamemaster/pkg/mechanics"
)

// Scenario describes one playable adventure: its world, its difficulty
// tier and its turn budget.
type Scenario struct {
	Name            string               `json:"name"`
	Description     string               `json:"description,omitempty"`
	Genre           string               `json:"genre,omitempty"`
	Difficulty      mechanics.Difficulty `json:"difficulty,omitempty"`
	WorldSetting    string               `json:"world_setting"`
	OpeningLocation string               `json:"opening_location"`
	OpeningPrompt   string               `json:"opening_prompt,omitempty"`
	MaxTurns        int                  `json:"max_turns,omitempty"`
}

// Validate checks required fields and fills defaults. A scenario without
// a difficulty tier plays at the default; the resolution engine itself
// never accepts an unset tier.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.WorldSetting == "" {
		return fmt.Errorf("scenario world_setting is required")
	}
	if s.Difficulty == "" {
		s.Difficulty = mechanics.DefaultDifficulty
	}
	if !s.Difficulty.Valid() {
		return fmt.Errorf("scenario %q: unknown difficulty %q", s.Name, s.Difficulty)
	}
	if s.MaxTurns <= 0 {
		s.MaxTurns = 10
	}
	return nil
}
