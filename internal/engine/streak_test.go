package engine

import (
	"testing"
	"time"
)

func TestUpdateStreakSameDayIsIdempotent(t *testing.T) {
	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC)

	s := NewSnapshot(morning)
	s = UpdateStreak(s, morning)
	if s.StreakDays != 1 {
		t.Fatalf("streak=%d after first activity, want 1", s.StreakDays)
	}

	again := UpdateStreak(s, evening)
	if again.StreakDays != 1 {
		t.Fatalf("streak=%d after same-day repeat, want 1", again.StreakDays)
	}
	if !again.LastActive.Equal(s.LastActive) {
		t.Fatalf("lastActive moved on same-day repeat: %v -> %v", s.LastActive, again.LastActive)
	}
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot(start)
	s = UpdateStreak(s, start)

	for day := 1; day <= 6; day++ {
		s = UpdateStreak(s, start.AddDate(0, 0, day))
	}
	if s.StreakDays != 7 {
		t.Fatalf("streak=%d after 7 consecutive days, want 7", s.StreakDays)
	}
}

func TestUpdateStreakResetsAfterGap(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot(start)
	s = UpdateStreak(s, start)
	s = UpdateStreak(s, start.AddDate(0, 0, 1))
	s = UpdateStreak(s, start.AddDate(0, 0, 2))
	if s.StreakDays != 3 {
		t.Fatalf("streak=%d, want 3", s.StreakDays)
	}

	// Three idle days, then activity again.
	s = UpdateStreak(s, start.AddDate(0, 0, 6))
	if s.StreakDays != 1 {
		t.Fatalf("streak=%d after gap, want reset to 1", s.StreakDays)
	}
}

func TestExpireStreakKeepsFreshStreak(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot(start)
	s = UpdateStreak(s, start)

	// Same day and the morning after are both within the grace window.
	if got := ExpireStreak(s, start.Add(6*time.Hour)); got.StreakDays != 1 {
		t.Fatalf("streak=%d on same-day view, want 1", got.StreakDays)
	}
	if got := ExpireStreak(s, start.AddDate(0, 0, 1)); got.StreakDays != 1 {
		t.Fatalf("streak=%d on next-day view, want 1", got.StreakDays)
	}
}

func TestExpireStreakZeroesLapsedStreak(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot(start)
	s = UpdateStreak(s, start)
	s = UpdateStreak(s, start.AddDate(0, 0, 1))

	got := ExpireStreak(s, start.AddDate(0, 0, 3))
	if got.StreakDays != 0 {
		t.Fatalf("streak=%d after skipped day, want 0", got.StreakDays)
	}
	if !got.LastActive.Equal(s.LastActive) {
		t.Fatalf("lastActive moved on expiry: %v -> %v", s.LastActive, got.LastActive)
	}
	// Viewing never extends either.
	if ExpireStreak(s, start.AddDate(0, 0, 2)).StreakDays != 2 {
		t.Fatalf("next-day view changed an intact streak")
	}
}

func TestUpdateStreakDoesNotMutateInput(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot(start)
	s = UpdateStreak(s, start)

	_ = UpdateStreak(s, start.AddDate(0, 0, 1))
	if s.StreakDays != 1 {
		t.Fatalf("input snapshot mutated: streak=%d", s.StreakDays)
	}
}
