package engine

import "math"

const (
	// BaseLevelXP is the XP required to clear level 1.
	BaseLevelXP = 100.0

	// LevelGrowth is the per-level threshold multiplier.
	LevelGrowth = 1.5
)

// XPForLevel returns the XP threshold required to advance from the given
// level to the next: floor(100 * 1.5^(level-1)). This is the single canonical
// curve; the ledger's rollover reuses it rather than rescaling the previous
// threshold.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(BaseLevelXP * math.Pow(LevelGrowth, float64(level-1))))
}
