// Package mechanics is the server-authoritative resolution core for the
// game master. It turns a player action into a fixed, binding check result
// before the narrator ever sees the action, so generated narrative can be
// reconciled against it rather than trusted.
package mechanics

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

const (
	d20Faces = 20

	// Fumble self-damage is a flat 1d4, independent of level.
	fumbleDamageFaces = 4
)

// Engine resolves checks. The roller is injected so tests can supply
// deterministic sequences; callers sharing one Engine across goroutines
// must supply a roller that is safe for concurrent use (dice.DefaultRoller
// is).
type Engine struct {
	roller dice.Roller
}

// NewEngine creates an Engine. A nil roller falls back to
// dice.DefaultRoller.
func NewEngine(roller dice.Roller) *Engine {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &Engine{roller: roller}
}

// PerformCheck resolves one action: a d20 roll plus the level modifier
// against the tier's target, with critical and fumble edge handling.
//
// A critical rolls the level's damage dice twice and sums the rolls
// (roll-twice-add, not double-the-result). A fumble rolls flat 1d4
// self-damage. All other outcomes carry no server-computed damage.
//
// Level < 1 or an unknown tier panics; those are contract violations,
// not runtime failures. The returned error only reflects roller faults.
func (e *Engine) PerformCheck(level int, difficulty Difficulty, category Category) (CheckResult, error) {
	mustValidLevel(level)
	target := difficulty.Target()

	roll, err := e.roller.Roll(d20Faces)
	if err != nil {
		return CheckResult{}, fmt.Errorf("d20 roll failed: %w", err)
	}

	modifier := ModifierFor(level)

	var damage *int
	switch roll {
	case 20:
		dmg, err := e.rollCriticalDamage(level)
		if err != nil {
			return CheckResult{}, err
		}
		damage = &dmg
	case 1:
		dmg, err := e.roller.Roll(fumbleDamageFaces)
		if err != nil {
			return CheckResult{}, fmt.Errorf("fumble damage roll failed: %w", err)
		}
		damage = &dmg
	}

	return newCheckResult(roll, modifier, target, category, damage), nil
}

// rollCriticalDamage rolls 2x the level's damage dice and sums them.
func (e *Engine) rollCriticalDamage(level int) (int, error) {
	count, faces := DamageDiceFor(level)
	rolls, err := e.roller.RollN(2*count, faces)
	if err != nil {
		return 0, fmt.Errorf("critical damage roll failed: %w", err)
	}
	total := 0
	for _, r := range rolls {
		total += r
	}
	return total, nil
}
