package engine

import (
	"testing"
	"time"
)

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Catalog() {
		if def.ID == "" {
			t.Fatalf("catalog entry %q has empty id", def.Name)
		}
		if seen[def.ID] {
			t.Fatalf("duplicate catalog id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Predicate == nil {
			t.Fatalf("catalog entry %q has nil predicate", def.ID)
		}
	}
}

func TestEvaluateUnlocksIgnoresAlreadyUnlocked(t *testing.T) {
	s := NewSnapshot(time.Now())
	s.TasksCompleted = 1

	first := EvaluateUnlocks(s, nil)
	if len(first) != 1 || first[0].ID != "first_blood" {
		t.Fatalf("first pass unlocked %v, want [first_blood]", rewardIDs(first))
	}

	s.Unlocked = append(s.Unlocked, "first_blood")
	second := EvaluateUnlocks(s, nil)
	if len(second) != 0 {
		t.Fatalf("second pass unlocked %v, want none", rewardIDs(second))
	}
}

func TestEvaluateUnlocksPreservesCatalogOrder(t *testing.T) {
	s := NewSnapshot(time.Now())
	s.StreakDays = 30
	s.TasksCompleted = 1

	got := EvaluateUnlocks(s, nil)
	want := []string{"first_blood", "weekly_warrior", "ritual_keeper", "discipline_king", "gloves_grit"}
	if len(got) != len(want) {
		t.Fatalf("unlocked %v, want %v", rewardIDs(got), want)
	}
	for i, def := range got {
		if def.ID != want[i] {
			t.Fatalf("unlocked %v, want %v", rewardIDs(got), want)
		}
	}
}

func TestStreakUnlockFiresExactlyOnce(t *testing.T) {
	start := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot(start)
	var h History

	fired := 0
	for day := 0; day < 10; day++ {
		out, err := CompleteStep(s, h, CompletionEvent{
			Category:   CategoryWork,
			XP:         10,
			OccurredAt: start.AddDate(0, 0, day),
			TaskDone:   true,
		})
		if err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		s, h = out.Snapshot, out.History
		for _, def := range out.NewlyUnlocked {
			if def.ID == "weekly_warrior" {
				fired++
				if s.StreakDays != 7 {
					t.Fatalf("weekly_warrior fired at streak %d, want 7", s.StreakDays)
				}
			}
		}
	}
	if fired != 1 {
		t.Fatalf("weekly_warrior fired %d times, want exactly once", fired)
	}
	if !s.HasUnlocked("weekly_warrior") {
		t.Fatalf("weekly_warrior missing from unlocked set")
	}
}

func TestAttributeThresholdUnlocksOnCrossing(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot(now)
	var h History

	// 90 learning XP -> 9 Intelligence: headband_focus (needs 10) stays locked.
	out, err := CompleteStep(s, h, CompletionEvent{
		Category: CategoryLearning, XP: 90, OccurredAt: now, TaskDone: true,
	})
	if err != nil {
		t.Fatalf("first award: %v", err)
	}
	s, h = out.Snapshot, out.History
	if s.Attributes[AttributeIntelligence] != 9 {
		t.Fatalf("intelligence=%d, want 9", s.Attributes[AttributeIntelligence])
	}
	if s.HasUnlocked("headband_focus") {
		t.Fatalf("headband_focus unlocked below threshold")
	}

	// Second award the same day crosses the threshold.
	out, err = CompleteStep(s, h, CompletionEvent{
		Category: CategoryLearning, XP: 10, OccurredAt: now.Add(time.Hour), TaskDone: true,
	})
	if err != nil {
		t.Fatalf("second award: %v", err)
	}
	s = out.Snapshot
	if s.Attributes[AttributeIntelligence] != 10 {
		t.Fatalf("intelligence=%d, want 10", s.Attributes[AttributeIntelligence])
	}
	if !containsReward(out.NewlyUnlocked, "headband_focus") {
		t.Fatalf("headband_focus not in newly unlocked: %v", rewardIDs(out.NewlyUnlocked))
	}
}

func TestNightRunnerBadge(t *testing.T) {
	s := NewSnapshot(time.Now())
	var h History
	for day := 0; day < 5; day++ {
		h = append(h, ActivityRecord{
			OccurredAt: time.Date(2025, 4, 1+day, 23, 0, 0, 0, time.UTC),
			Category:   CategoryWork,
			Source:     SourceTask,
		})
	}
	if got := EvaluateUnlocks(s, h); !containsReward(got, "night_runner") {
		t.Fatalf("night_runner not unlocked after 5 late nights: %v", rewardIDs(got))
	}
}

func TestUnstoppableBadgeNeedsConsecutiveBusyDays(t *testing.T) {
	var h History
	busyDay := func(day int) {
		for i := 0; i < 5; i++ {
			h = append(h, ActivityRecord{
				OccurredAt: time.Date(2025, 4, day, 10+i, 0, 0, 0, time.UTC),
				Category:   CategoryWork,
				Source:     SourceTask,
			})
		}
	}
	for day := 1; day <= 6; day++ {
		busyDay(day)
	}
	if h.LongestDailyRun(5) != 6 {
		t.Fatalf("run=%d after 6 busy days, want 6", h.LongestDailyRun(5))
	}
	// Day 7 with only 4 completions breaks the run.
	for i := 0; i < 4; i++ {
		h = append(h, ActivityRecord{OccurredAt: time.Date(2025, 4, 7, 10+i, 0, 0, 0, time.UTC), Category: CategoryWork})
	}
	busyDay(8)
	if h.LongestDailyRun(5) != 6 {
		t.Fatalf("run=%d, want 6 (broken by light day)", h.LongestDailyRun(5))
	}
	busyDay(9)
	s := NewSnapshot(time.Now())
	if got := EvaluateUnlocks(s, h); containsReward(got, "unstoppable") {
		t.Fatalf("unstoppable unlocked with longest run %d", h.LongestDailyRun(5))
	}
}

func TestRingDisciplineEarlyBird(t *testing.T) {
	s := NewSnapshot(time.Now())
	h := History{{OccurredAt: time.Date(2025, 4, 1, 7, 30, 0, 0, time.UTC), Category: CategoryHealth, Source: SourceTask}}
	if got := EvaluateUnlocks(s, h); !containsReward(got, "ring_discipline") {
		t.Fatalf("ring_discipline not unlocked for a 7:30 completion: %v", rewardIDs(got))
	}
	late := History{{OccurredAt: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC), Category: CategoryHealth, Source: SourceTask}}
	if got := EvaluateUnlocks(s, late); containsReward(got, "ring_discipline") {
		t.Fatalf("ring_discipline unlocked for an 8:00 completion")
	}
}

func TestEarlyAdopterBadge(t *testing.T) {
	s := NewSnapshot(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	if got := EvaluateUnlocks(s, nil); !containsReward(got, "early_adopter") {
		t.Fatalf("early_adopter not unlocked for a 2024-05 account")
	}
	s = NewSnapshot(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if got := EvaluateUnlocks(s, nil); containsReward(got, "early_adopter") {
		t.Fatalf("early_adopter unlocked for a 2025 account")
	}
}

func TestCompleteStepLevelUpNotificationFirst(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot(now)

	out, err := CompleteStep(s, nil, CompletionEvent{
		Category: CategoryHealth, XP: 120, OccurredAt: now, TaskDone: true,
	})
	if err != nil {
		t.Fatalf("CompleteStep: %v", err)
	}
	if out.LevelBefore != 1 || out.LevelAfter != 2 {
		t.Fatalf("level %d -> %d, want 1 -> 2", out.LevelBefore, out.LevelAfter)
	}
	if len(out.Notifications) < 2 {
		t.Fatalf("notifications=%v, want level-up plus unlock", out.Notifications)
	}
	if out.Notifications[0].Message != "Level up! You reached level 2" {
		t.Fatalf("first notification=%q, want level-up", out.Notifications[0].Message)
	}
	if out.Notifications[1].Message != "Achievement Unlocked: First Steps!" {
		t.Fatalf("second notification=%q", out.Notifications[1].Message)
	}
}

func TestCompleteStepRejectsInvalidXP(t *testing.T) {
	s := NewSnapshot(time.Now())
	s.TotalXP = 7
	if _, err := CompleteStep(s, nil, CompletionEvent{Category: CategoryWork, XP: -5, OccurredAt: time.Now()}); err == nil {
		t.Fatalf("expected error for negative XP")
	}
	if s.TotalXP != 7 {
		t.Fatalf("snapshot mutated by rejected event")
	}
}

func containsReward(defs []RewardDefinition, id string) bool {
	for _, d := range defs {
		if d.ID == id {
			return true
		}
	}
	return false
}

func rewardIDs(defs []RewardDefinition) []string {
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	return ids
}
