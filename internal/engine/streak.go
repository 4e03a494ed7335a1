package engine

import "time"

// UpdateStreak rolls the consecutive-day streak forward to the given moment of
// activity. The first activity on the profile's first day starts the streak at
// 1, later same-day calls are no-ops, the day after the last activity extends
// the streak, and anything else (a gap of 2+ days, or a last-active date in
// the future from clock skew) resets it to 1.
func UpdateStreak(s Snapshot, now time.Time) Snapshot {
	today := dayOf(now)
	last := dayOf(s.LastActive)

	switch {
	case today.Equal(last):
		if s.StreakDays > 0 {
			return s
		}
		out := s.Clone()
		out.StreakDays = 1
		return out
	case today.Equal(last.AddDate(0, 0, 1)):
		out := s.Clone()
		out.StreakDays++
		out.LastActive = today
		return out
	default:
		out := s.Clone()
		out.StreakDays = 1
		out.LastActive = today
		return out
	}
}

// ExpireStreak zeroes a lapsed streak without recording activity. Unlike
// UpdateStreak it never extends: viewing the profile is not a completion.
// The streak survives until a full calendar day has been skipped, so the day
// after the last activity still shows the old count.
func ExpireStreak(s Snapshot, now time.Time) Snapshot {
	if s.StreakDays == 0 {
		return s
	}
	today := dayOf(now)
	lapsed := dayOf(s.LastActive).AddDate(0, 0, 1)
	if !today.After(lapsed) {
		return s
	}
	out := s.Clone()
	out.StreakDays = 0
	return out
}
