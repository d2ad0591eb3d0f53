package mechanics

import "fmt"

// Category classifies a check for narrative and UI purposes. It has no
// effect on the numeric resolution.
type Category string

const (
	CategoryCombat      Category = "combat"
	CategorySkill       Category = "skill"
	CategorySocial      Category = "social"
	CategoryExploration Category = "exploration"
)

// CheckResult is the outcome of one resolved check. It is built once by
// the Engine and never modified; everything below Roll is derived from
// the inputs at construction time.
//
// Invariants:
//   - Total == Roll + Modifier
//   - IsCritical iff Roll == 20, and forces IsSuccess true
//   - IsFumble iff Roll == 1, and forces IsSuccess false
//   - Damage is non-nil iff IsCritical or IsFumble
type CheckResult struct {
	Roll       int      `json:"roll"`
	Modifier   int      `json:"modifier"`
	Total      int      `json:"total"`
	Target     int      `json:"dc"`
	IsSuccess  bool     `json:"is_success"`
	IsCritical bool     `json:"is_critical"`
	IsFumble   bool     `json:"is_fumble"`
	Category   Category `json:"category"`
	Damage     *int     `json:"damage,omitempty"`
	Summary    string   `json:"summary"`
}

// newCheckResult derives all computed fields from the raw inputs.
func newCheckResult(roll, modifier, target int, category Category, damage *int) CheckResult {
	r := CheckResult{
		Roll:       roll,
		Modifier:   modifier,
		Total:      roll + modifier,
		Target:     target,
		IsCritical: roll == 20,
		IsFumble:   roll == 1,
		Category:   category,
		Damage:     damage,
	}
	switch {
	case r.IsCritical:
		r.IsSuccess = true
	case r.IsFumble:
		r.IsSuccess = false
	default:
		r.IsSuccess = r.Total >= r.Target
	}
	r.Summary = r.summarize()
	return r
}

func (r CheckResult) summarize() string {
	label := "failure"
	switch {
	case r.IsCritical:
		label = "critical success!"
	case r.IsFumble:
		label = "fumble!"
	case r.IsSuccess:
		label = "success"
	}
	return fmt.Sprintf("1d20%+d = %d vs DC %d: %s", r.Modifier, r.Total, r.Target, label)
}
