package mechanics

import "testing"

func TestModifierFor(t *testing.T) {
	tests := []struct {
		level    int
		modifier int
	}{
		{1, 2},
		{2, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{12, 4},
		{13, 5},
		{20, 6},
	}

	for _, tt := range tests {
		if got := ModifierFor(tt.level); got != tt.modifier {
			t.Errorf("ModifierFor(%d) = %d, want %d", tt.level, got, tt.modifier)
		}
	}
}

func TestModifierFor_StepEveryFourLevels(t *testing.T) {
	for level := 1; level <= 30; level++ {
		if ModifierFor(level) < 2 {
			t.Errorf("ModifierFor(%d) < 2", level)
		}
		if ModifierFor(level+4) != ModifierFor(level)+1 {
			t.Errorf("ModifierFor(%d+4) != ModifierFor(%d)+1", level, level)
		}
	}
}

func TestModifierFor_InvalidLevelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for level 0")
		}
	}()
	ModifierFor(0)
}

func TestDamageDiceFor(t *testing.T) {
	tests := []struct {
		level int
		count int
		faces int
	}{
		{1, 1, 4},
		{2, 1, 4},
		{3, 1, 6},
		{4, 1, 6},
		{5, 1, 8},
		{6, 1, 8},
		{7, 1, 10},
		{8, 1, 10},
		{9, 1, 12},
		{50, 1, 12}, // unbounded top band
	}

	for _, tt := range tests {
		count, faces := DamageDiceFor(tt.level)
		if count != tt.count || faces != tt.faces {
			t.Errorf("DamageDiceFor(%d) = (%d,%d), want (%d,%d)",
				tt.level, count, faces, tt.count, tt.faces)
		}
	}
}
