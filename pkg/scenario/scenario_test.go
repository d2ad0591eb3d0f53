package scenario

import (
	"encoding/json"
	"testing"

	"github.com/tavernkeep/gamemaster/pkg/mechanics"
)

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name        string
		scenario    Scenario
		expectError bool
	}{
		{
			name: "valid",
			scenario: Scenario{
				Name:         "The Drowned Lighthouse",
				WorldSetting: "A storm-wrecked coast.",
				Difficulty:   mechanics.DifficultyHard,
				MaxTurns:     15,
			},
		},
		{
			name:        "missing name",
			scenario:    Scenario{WorldSetting: "somewhere"},
			expectError: true,
		},
		{
			name:        "missing world setting",
			scenario:    Scenario{Name: "x"},
			expectError: true,
		},
		{
			name: "bad difficulty",
			scenario: Scenario{
				Name: "x", WorldSetting: "y", Difficulty: "mythic",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("Validate() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestScenario_Validate_Defaults(t *testing.T) {
	s := Scenario{Name: "x", WorldSetting: "y"}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.Difficulty != mechanics.DefaultDifficulty {
		t.Errorf("difficulty = %q, want default %q", s.Difficulty, mechanics.DefaultDifficulty)
	}
	if s.MaxTurns != 10 {
		t.Errorf("max turns = %d, want 10", s.MaxTurns)
	}
}

func TestScenario_Unmarshal(t *testing.T) {
	data := `{
		"name": "The Drowned Lighthouse",
		"difficulty": "nightmare",
		"world_setting": "A storm-wrecked coast where the light went out.",
		"opening_location": "the shingle beach",
		"max_turns": 20
	}`

	var s Scenario
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.Difficulty != mechanics.DifficultyNightmare {
		t.Errorf("difficulty = %q", s.Difficulty)
	}
	if s.Difficulty.Target() != 18 {
		t.Errorf("target = %d, want 18", s.Difficulty.Target())
	}
}
