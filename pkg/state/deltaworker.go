package state

import (
	"log/slog"

	"github.com/tavernkeep/gamemaster/pkg/actor"
)

// DeltaWorker applies a reconciled delta to the session and character.
// It expects a delta that already passed Reconcile; it performs no trust
// decisions of its own.
type DeltaWorker struct {
	session *Session
	delta   Delta
	logger  *slog.Logger
}

// NewDeltaWorker creates a worker for one turn's reconciled delta.
func NewDeltaWorker(session *Session, delta Delta, logger *slog.Logger) *DeltaWorker {
	return &DeltaWorker{
		session: session,
		delta:   delta,
		logger:  logger,
	}
}

// Apply updates the session in place and returns the updated character.
// Character updates follow the copy-on-write character API, so the
// caller keeps both the loaded and the updated value.
func (dw *DeltaWorker) Apply(ch actor.Character) actor.Character {
	dw.session.MoveTo(dw.delta.Location)
	dw.session.RecordNPCs(dw.delta.NPCsMet)
	dw.session.RecordDiscoveries(dw.delta.Discoveries)

	if dw.delta.HPChange > 0 {
		ch = ch.Heal(dw.delta.HPChange)
	} else if dw.delta.HPChange < 0 {
		ch = ch.TakeDamage(-dw.delta.HPChange)
	}

	if dw.delta.ExperienceGained > 0 {
		before := ch.Level
		ch = ch.GainExperience(dw.delta.ExperienceGained)
		if ch.Level > before && dw.logger != nil {
			dw.logger.Info("Character leveled up",
				"character_id", ch.ID.String(),
				"from_level", before,
				"to_level", ch.Level,
				"max_hp", ch.MaxHP)
		}
	}

	for _, item := range dw.delta.ItemsGained {
		ch = ch.AddItem(item)
	}
	for _, item := range dw.delta.ItemsLost {
		ch = ch.RemoveItem(item)
	}

	return ch
}
