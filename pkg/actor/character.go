// Package actor holds the player character model. Characters are value
// types: every mutation returns a new copy, so a loaded character can be
// compared against its updated version when deciding what to persist.
package actor

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMaxHP = 100

	// Each level-up adds this much max HP and fully heals the character.
	levelUpHPBonus = 10

	// XP needed to leave the current level: level * 100.
	xpPerLevel = 100
)

// Character is a player character. HP, level and inventory are the only
// server-authoritative progression state; everything else about the
// character lives in narrative.
type Character struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	HP          int       `json:"hp"`
	MaxHP       int       `json:"max_hp"`
	Level       int       `json:"level"`
	Experience  int       `json:"experience"`
	Inventory   []string  `json:"inventory,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCharacter creates a fresh level 1 character at full health.
func NewCharacter(name, description string) Character {
	return Character{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		HP:          DefaultMaxHP,
		MaxHP:       DefaultMaxHP,
		Level:       1,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsDead reports whether the character's HP has reached the terminal floor.
func (c *Character) IsDead() bool {
	return c.HP <= 0
}

// TakeDamage returns a copy with HP reduced, floored at zero.
func (c Character) TakeDamage(amount int) Character {
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
	return c
}

// Heal returns a copy with HP restored, capped at MaxHP.
func (c Character) Heal(amount int) Character {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return c
}

// GainExperience returns a copy with XP added, applying any level-ups.
// Each level-up raises MaxHP and fully heals; leftover XP carries over.
func (c Character) GainExperience(amount int) Character {
	if amount <= 0 {
		return c
	}
	c.Experience += amount
	for c.Experience >= c.Level*xpPerLevel {
		c.Experience -= c.Level * xpPerLevel
		c.Level++
		c.MaxHP += levelUpHPBonus
		c.HP = c.MaxHP
	}
	return c
}

// AddItem returns a copy with the item appended, ignoring duplicates.
func (c Character) AddItem(item string) Character {
	for _, have := range c.Inventory {
		if have == item {
			return c
		}
	}
	inv := make([]string, len(c.Inventory), len(c.Inventory)+1)
	copy(inv, c.Inventory)
	c.Inventory = append(inv, item)
	return c
}

// RemoveItem returns a copy without the item. Removing an item the
// character doesn't hold is a no-op.
func (c Character) RemoveItem(item string) Character {
	inv := make([]string, 0, len(c.Inventory))
	for _, have := range c.Inventory {
		if have != item {
			inv = append(inv, have)
		}
	}
	c.Inventory = inv
	return c
}

// HasItem reports whether the character holds the item.
func (c Character) HasItem(item string) bool {
	for _, have := range c.Inventory {
		if have == item {
			return true
		}
	}
	return false
}
