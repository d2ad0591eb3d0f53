package mechanics

import "fmt"

// Progression math maps a character's level to dice mechanics. These are
// pure functions over level >= 1; a smaller level is a programming error
// and panics.

// ModifierFor returns the flat bonus added to a d20 roll at the given
// level: (level-1)/4 + 2. Levels 1-4 give +2, 5-8 give +3, and so on.
// The +2 floor means even a fresh character passes easy checks most of
// the time.
func ModifierFor(level int) int {
	mustValidLevel(level)
	return (level-1)/4 + 2
}

// DamageDiceFor returns the damage dice (count, faces) for the given
// level. The faces step up every two levels and cap at d12 from level 9.
func DamageDiceFor(level int) (count, faces int) {
	mustValidLevel(level)
	switch {
	case level <= 2:
		return 1, 4
	case level <= 4:
		return 1, 6
	case level <= 6:
		return 1, 8
	case level <= 8:
		return 1, 10
	default:
		return 1, 12
	}
}

func mustValidLevel(level int) {
	if level < 1 {
		panic(fmt.Sprintf("mechanics: character level must be >= 1, got %d", level))
	}
}
