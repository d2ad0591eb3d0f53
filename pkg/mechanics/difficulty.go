package mechanics

import (
	"fmt"
	"strings"
)

// Difficulty is a scenario difficulty tier. The set is closed: every
// scenario plays at exactly one of the four tiers below.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyNormal    Difficulty = "normal"
	DifficultyHard      Difficulty = "hard"
	DifficultyNightmare Difficulty = "nightmare"
)

// DefaultDifficulty is used when a scenario does not declare a tier.
const DefaultDifficulty = DifficultyNormal

// targets maps each tier to the number a check total must meet or exceed.
var targets = map[Difficulty]int{
	DifficultyEasy:      8,
	DifficultyNormal:    12,
	DifficultyHard:      15,
	DifficultyNightmare: 18,
}

// Target returns the target number (DC) for the tier. An unmapped tier is
// a caller bug, not a runtime condition, and panics.
func (d Difficulty) Target() int {
	dc, ok := targets[d]
	if !ok {
		panic(fmt.Sprintf("mechanics: unknown difficulty tier %q", d))
	}
	return dc
}

// Valid reports whether d is one of the four known tiers.
func (d Difficulty) Valid() bool {
	_, ok := targets[d]
	return ok
}

// ParseDifficulty normalizes and validates a difficulty string from an
// external source (scenario file, API request).
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty tier: %q", s)
	}
	return d, nil
}
