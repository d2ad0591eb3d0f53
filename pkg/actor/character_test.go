package actor

import "testing"

func TestNewCharacter(t *testing.T) {
	c := NewCharacter("Mira", "A wandering scholar")

	if c.Level != 1 {
		t.Errorf("new character level = %d, want 1", c.Level)
	}
	if c.HP != DefaultMaxHP || c.MaxHP != DefaultMaxHP {
		t.Errorf("new character HP = %d/%d, want %d/%d", c.HP, c.MaxHP, DefaultMaxHP, DefaultMaxHP)
	}
	if c.IsDead() {
		t.Error("new character should not be dead")
	}
	if c.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated ID")
	}
}

func TestCharacter_TakeDamage(t *testing.T) {
	c := NewCharacter("Mira", "")

	hurt := c.TakeDamage(30)
	if hurt.HP != 70 {
		t.Errorf("HP after 30 damage = %d, want 70", hurt.HP)
	}
	if c.HP != 100 {
		t.Errorf("original character mutated: HP = %d", c.HP)
	}

	dead := hurt.TakeDamage(999)
	if dead.HP != 0 {
		t.Errorf("HP floors at 0, got %d", dead.HP)
	}
	if !dead.IsDead() {
		t.Error("character at 0 HP is dead")
	}
}

func TestCharacter_Heal(t *testing.T) {
	c := NewCharacter("Mira", "").TakeDamage(50)

	healed := c.Heal(20)
	if healed.HP != 70 {
		t.Errorf("HP after heal = %d, want 70", healed.HP)
	}

	capped := healed.Heal(999)
	if capped.HP != capped.MaxHP {
		t.Errorf("heal caps at MaxHP, got %d/%d", capped.HP, capped.MaxHP)
	}
}

func TestCharacter_GainExperience(t *testing.T) {
	c := NewCharacter("Mira", "").TakeDamage(40)

	// Level 1 needs 100 XP; 150 levels up once with 50 carried over.
	leveled := c.GainExperience(150)
	if leveled.Level != 2 {
		t.Errorf("level = %d, want 2", leveled.Level)
	}
	if leveled.Experience != 50 {
		t.Errorf("carried XP = %d, want 50", leveled.Experience)
	}
	if leveled.MaxHP != DefaultMaxHP+10 {
		t.Errorf("MaxHP = %d, want %d", leveled.MaxHP, DefaultMaxHP+10)
	}
	if leveled.HP != leveled.MaxHP {
		t.Error("level-up fully heals")
	}
}

func TestCharacter_GainExperience_MultipleLevels(t *testing.T) {
	c := NewCharacter("Mira", "")

	// 100 (1->2) + 200 (2->3) + 10 left over.
	leveled := c.GainExperience(310)
	if leveled.Level != 3 {
		t.Errorf("level = %d, want 3", leveled.Level)
	}
	if leveled.Experience != 10 {
		t.Errorf("carried XP = %d, want 10", leveled.Experience)
	}
}

func TestCharacter_GainExperience_NonPositive(t *testing.T) {
	c := NewCharacter("Mira", "")
	if got := c.GainExperience(0); got.Experience != 0 {
		t.Errorf("zero XP gain changed experience to %d", got.Experience)
	}
	if got := c.GainExperience(-5); got.Experience != 0 {
		t.Errorf("negative XP gain changed experience to %d", got.Experience)
	}
}

func TestCharacter_Inventory(t *testing.T) {
	c := NewCharacter("Mira", "")

	c2 := c.AddItem("rope").AddItem("lantern").AddItem("rope")
	if len(c2.Inventory) != 2 {
		t.Errorf("inventory = %v, want 2 distinct items", c2.Inventory)
	}
	if !c2.HasItem("rope") || !c2.HasItem("lantern") {
		t.Errorf("missing expected items: %v", c2.Inventory)
	}
	if len(c.Inventory) != 0 {
		t.Errorf("original character mutated: %v", c.Inventory)
	}

	c3 := c2.RemoveItem("rope")
	if c3.HasItem("rope") {
		t.Error("rope should be removed")
	}
	if c3.RemoveItem("ghost").HasItem("ghost") {
		t.Error("removing an absent item must be a no-op")
	}
}
