package state

// Delta is the set of state changes the game master proposes for one
// turn. It is much faster for the LLM to generate than a full game state,
// and it is the only channel through which narrative can touch server
// state. Deltas are never applied as proposed; they pass through
// Reconcile first.
type Delta struct {
	HPChange         int      `json:"hp_change,omitempty"`
	ExperienceGained int      `json:"experience_gained,omitempty"`
	ItemsGained      []string `json:"items_gained,omitempty"`
	ItemsLost        []string `json:"items_lost,omitempty"`
	Location         string   `json:"location,omitempty"`
	NPCsMet          []string `json:"npcs_met,omitempty"`
	Discoveries      []string `json:"discoveries,omitempty"`
}

// IsEmpty reports whether the delta proposes no changes at all.
func (d Delta) IsEmpty() bool {
	return d.HPChange == 0 &&
		d.ExperienceGained == 0 &&
		len(d.ItemsGained) == 0 &&
		len(d.ItemsLost) == 0 &&
		d.Location == "" &&
		len(d.NPCsMet) == 0 &&
		len(d.Discoveries) == 0
}

// Clone returns a deep copy, so reconciliation can filter a delta without
// touching the caller's value.
func (d Delta) Clone() Delta {
	d.ItemsGained = cloneStrings(d.ItemsGained)
	d.ItemsLost = cloneStrings(d.ItemsLost)
	d.NPCsMet = cloneStrings(d.NPCsMet)
	d.Discoveries = cloneStrings(d.Discoveries)
	return d
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
