package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) (*testDB, context.Context) {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Migrate must be safe to run again on an existing database.
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	return &testDB{
		profiles: NewProfileRepo(db),
		tasks:    NewTaskRepo(db),
		quests:   NewQuestRepo(db),
		activity: NewActivityRepo(db),
		unlocks:  NewUnlockRepo(db),
	}, ctx
}

type testDB struct {
	profiles *ProfileRepo
	tasks    *TaskRepo
	quests   *QuestRepo
	activity *ActivityRepo
	unlocks  *UnlockRepo
}

func TestProfileGetOrCreateMain(t *testing.T) {
	db, ctx := newTestDB(t)
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	p, err := db.profiles.Get(ctx, MainProfileKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != nil {
		t.Fatalf("profile exists before first use")
	}

	p, err = db.profiles.GetOrCreateMain(ctx, now)
	if err != nil {
		t.Fatalf("GetOrCreateMain: %v", err)
	}
	if p.Level != 1 || p.TotalXP != 0 || !p.CreatedAt.Equal(now) {
		t.Fatalf("fresh profile=%+v", p)
	}

	p.Level = 3
	p.TotalXP = 400
	if err := db.profiles.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := db.profiles.GetOrCreateMain(ctx, now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetOrCreateMain: %v", err)
	}
	if again.Level != 3 || again.TotalXP != 400 || !again.CreatedAt.Equal(now) {
		t.Fatalf("re-read profile=%+v", again)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	db, ctx := newTestDB(t)

	desc := "every weekday"
	err := db.tasks.Insert(ctx, TaskInsert{
		ID:          "t1",
		Title:       "Stand-up",
		Description: &desc,
		Type:        "daily",
		Category:    "work",
		Difficulty:  "easy",
		XPValue:     10,
		RepeatDays:  []int{1, 2, 3, 4, 5},
		Subtasks: []SubtaskInsert{
			{ID: "s1", Title: "Prepare notes"},
			{ID: "s2", Title: "Join the call"},
		},
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	task, err := db.tasks.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if task.Title != "Stand-up" || *task.Description != desc || task.Completed {
		t.Fatalf("task=%+v", task)
	}
	if len(task.RepeatDays) != 5 || task.RepeatDays[0] != 1 || task.RepeatDays[4] != 5 {
		t.Fatalf("repeat days=%v", task.RepeatDays)
	}

	subtasks, err := db.tasks.ListSubtasks(ctx, "t1")
	if err != nil {
		t.Fatalf("ListSubtasks: %v", err)
	}
	if len(subtasks) != 2 || subtasks[0].ID != "s1" || subtasks[1].ID != "s2" {
		t.Fatalf("subtasks=%+v, want insertion order", subtasks)
	}

	done := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	if err := db.tasks.MarkDone(ctx, "t1", done, true); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	task, err = db.tasks.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !task.Completed || task.StreakCount != 1 {
		t.Fatalf("task after MarkDone=%+v", task)
	}

	if err := db.tasks.ResetCompletion(ctx, "t1"); err != nil {
		t.Fatalf("ResetCompletion: %v", err)
	}
	task, err = db.tasks.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if task.Completed || task.StreakCount != 1 {
		t.Fatalf("task after reset=%+v, want open with streak kept", task)
	}

	if missing, err := db.tasks.Get(ctx, "nope"); err != nil || missing != nil {
		t.Fatalf("Get(missing)=%v, %v, want nil, nil", missing, err)
	}
}

func TestQuestStepsKeepOrder(t *testing.T) {
	db, ctx := newTestDB(t)

	err := db.quests.Insert(ctx, QuestInsert{
		ID:         "q1",
		Title:      "Learn Go",
		Category:   "learning",
		Difficulty: "hard",
		XPReward:   150,
		StartDate:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Steps: []QuestStepInsert{
			{ID: "qs1", Title: "Tour", XPValue: 50},
			{ID: "qs2", Title: "Book", XPValue: 50},
			{ID: "qs3", Title: "Project", XPValue: 50},
		},
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	steps, err := db.quests.ListSteps(ctx, "q1")
	if err != nil {
		t.Fatalf("ListSteps: %v", err)
	}
	if len(steps) != 3 || steps[0].ID != "qs1" || steps[2].ID != "qs3" {
		t.Fatalf("steps=%+v, want insertion order", steps)
	}

	if err := db.quests.MarkStepDone(ctx, "qs1"); err != nil {
		t.Fatalf("MarkStepDone: %v", err)
	}
	if err := db.quests.UpdateProgress(ctx, "q1", 33); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	q, err := db.quests.Get(ctx, "q1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if q.Progress != 33 || q.Completed {
		t.Fatalf("quest=%+v", q)
	}

	if err := db.quests.MarkCompleted(ctx, "q1", time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	q, err = db.quests.Get(ctx, "q1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !q.Completed || q.Progress != 100 || q.Status != "completed" {
		t.Fatalf("completed quest=%+v", q)
	}
}

func TestUnlockInsertIsIdempotentAndOrdered(t *testing.T) {
	db, ctx := newTestDB(t)
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	if err := db.unlocks.Insert(ctx, "first_blood", "achievement", at); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := db.unlocks.Insert(ctx, "weekly_warrior", "achievement", at.Add(time.Hour)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	// Re-granting is a no-op.
	if err := db.unlocks.Insert(ctx, "first_blood", "achievement", at.Add(2*time.Hour)); err != nil {
		t.Fatalf("Insert dup: %v", err)
	}

	unlocks, err := db.unlocks.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(unlocks) != 2 {
		t.Fatalf("unlocks=%+v, want 2", unlocks)
	}
	if unlocks[0].RewardID != "first_blood" || unlocks[1].RewardID != "weekly_warrior" {
		t.Fatalf("unlocks=%+v, want first-unlock order", unlocks)
	}
	if !unlocks[0].UnlockedAt.Equal(at) {
		t.Fatalf("duplicate insert changed unlocked_at: %v", unlocks[0].UnlockedAt)
	}
}

func TestActivityLogOrderAndClear(t *testing.T) {
	db, ctx := newTestDB(t)
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := db.activity.Insert(ctx, base.Add(time.Duration(i)*time.Hour), "work", "task", 10); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	records, err := db.activity.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records=%d, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].OccurredAt.Before(records[i-1].OccurredAt) {
			t.Fatalf("records out of order: %+v", records)
		}
	}

	if err := db.activity.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err = db.activity.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records=%d after clear, want 0", len(records))
	}
}
