package engine

// AwardXP applies a positive XP award to the snapshot and returns the result.
// CurrentXP rolls over through as many levels as the award crosses, TotalXP
// and the category total accumulate unconditionally, and the mapped attribute
// gains xp/10 points. The input snapshot is never mutated.
func AwardXP(s Snapshot, amount int, c Category) (Snapshot, error) {
	if amount <= 0 {
		return s, InvalidAwardError{Amount: amount}
	}

	attr, gain, err := DeriveAttributeGain(c, amount)
	if err != nil {
		return s, err
	}

	out := s.Clone()
	out.CurrentXP += amount
	for out.CurrentXP >= out.XPToNextLevel {
		// A non-positive threshold would spin this loop forever.
		if out.XPToNextLevel <= 0 {
			break
		}
		out.CurrentXP -= out.XPToNextLevel
		out.Level++
		out.XPToNextLevel = XPForLevel(out.Level)
	}

	out.TotalXP += amount
	out.CategoryXP[c] += amount
	if gain > 0 {
		out.Attributes[attr] += gain
	}
	return out, nil
}
