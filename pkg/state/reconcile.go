package state

import "github.com/tavernkeep/gamemaster/pkg/mechanics"

// Reconcile decides how much of the game master's proposed delta to
// trust, given the check result computed before the generation call and
// the game master's own report of whether that check governed the turn.
//
// The policy is a fixed decision table:
//
//	diceApplied | outcome            | location / items gained | everything else | result surfaced
//	false       | (ignored)          | pass through            | pass through    | no
//	true        | success / critical | pass through            | pass through    | yes
//	true        | failure / fumble   | blocked                 | pass through    | yes
//
// A failed check can still cost the player (HP loss, lost items), but it
// cannot move them forward or reward them. The returned delta is a new
// value; neither input is modified. The surfaced result is nil exactly
// when the turn was not mechanically consequential, in which case the
// caller must not attach a dice result to the response.
//
// Fumble self-damage is not folded into the delta here: the server-rolled
// amount in result.Damage is a mechanical fact the caller applies to the
// character after the delta, whatever HP change the game master proposed.
func Reconcile(result *mechanics.CheckResult, diceApplied bool, proposed Delta) (Delta, *mechanics.CheckResult) {
	if !diceApplied {
		// Routine action: the game master's judgment stands.
		return proposed.Clone(), nil
	}

	if result.IsSuccess {
		// Consequential and successful, including critical bonus
		// effects the narrative may describe.
		return proposed.Clone(), result
	}

	// Mechanical failure: strip forward progress and rewards, keep costs.
	final := proposed.Clone()
	final.Location = ""
	final.ItemsGained = nil
	return final, result
}
