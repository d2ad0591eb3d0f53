// Package state holds the game session state, the game master's proposed
// state-change deltas, and the reconciliation policy that decides which
// proposals the server accepts.
package state

import (
	"time"

	"github.com/google/uuid"
	"github.com/tavernkeep/gamemaster/pkg/chat"
)

// Ending types for a completed session.
const (
	EndingVictory = "victory"
	EndingDefeat  = "defeat"
	EndingNeutral = "neutral"
	EndingDeath   = "death"
)

const DefaultMaxTurns = 10

// Session is one playthrough of a scenario by one character.
type Session struct {
	ID          uuid.UUID `json:"id"`
	CharacterID uuid.UUID `json:"character_id"`
	Scenario    string    `json:"scenario"` // scenario filename
	Location    string    `json:"location,omitempty"`

	TurnCount  int    `json:"turn_count"`
	MaxTurns   int    `json:"max_turns"`
	IsEnded    bool   `json:"is_ended"`
	EndingType string `json:"ending_type,omitempty"`

	VisitedLocations []string `json:"visited_locations,omitempty"`
	MetNPCs          []string `json:"met_npcs,omitempty"`
	Discoveries      []string `json:"discoveries,omitempty"`

	ChatHistory []chat.ChatMessage `json:"chat_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession starts a session at the scenario's opening location.
func NewSession(characterID uuid.UUID, scenarioFile, openingLocation string, maxTurns int) *Session {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	now := time.Now().UTC()
	s := &Session{
		ID:          uuid.New(),
		CharacterID: characterID,
		Scenario:    scenarioFile,
		Location:    openingLocation,
		MaxTurns:    maxTurns,
		ChatHistory: make([]chat.ChatMessage, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if openingLocation != "" {
		s.VisitedLocations = []string{openingLocation}
	}
	return s
}

// AdvanceTurn increments the turn counter for a new player action.
func (s *Session) AdvanceTurn() {
	s.TurnCount++
}

// RemainingTurns reports how many turns are left before the scenario's
// turn limit ends the session.
func (s *Session) RemainingTurns() int {
	remaining := s.MaxTurns - s.TurnCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFinalTurn reports whether the current turn is the session's last.
func (s *Session) IsFinalTurn() bool {
	return s.TurnCount >= s.MaxTurns
}

// End marks the session complete with the given ending type.
func (s *Session) End(endingType string) {
	s.IsEnded = true
	s.EndingType = endingType
}

// MoveTo sets the current location, tracking first visits.
func (s *Session) MoveTo(location string) {
	if location == "" {
		return
	}
	s.Location = location
	s.VisitedLocations = appendUnique(s.VisitedLocations, location)
}

// RecordNPCs adds newly met NPCs, skipping ones already known.
func (s *Session) RecordNPCs(npcs []string) {
	for _, npc := range npcs {
		s.MetNPCs = appendUnique(s.MetNPCs, npc)
	}
}

// RecordDiscoveries adds new discoveries, skipping duplicates.
func (s *Session) RecordDiscoveries(discoveries []string) {
	for _, d := range discoveries {
		s.Discoveries = appendUnique(s.Discoveries, d)
	}
}

// AppendMessage adds a message to the chat history.
func (s *Session) AppendMessage(role, content string) {
	s.ChatHistory = append(s.ChatHistory, chat.ChatMessage{Role: role, Content: content})
}

func appendUnique(list []string, item string) []string {
	for _, have := range list {
		if have == item {
			return list
		}
	}
	return append(list, item)
}
