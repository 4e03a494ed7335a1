package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gravitonian77/DailyXP/internal/storage"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Type        TaskType
	Category    Category
	Difficulty  TaskDifficulty
	DueDate     *time.Time
	RepeatDays  []int
	Subtasks    []string
}

// CreateTask validates the input, derives the XP value from difficulty, and
// stores the task (plus subtasks) under fresh uuids. The XP value is frozen
// at creation time.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*storage.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Type.IsValid() {
		return nil, fmt.Errorf("invalid task type: %q", in.Type)
	}
	if !in.Category.IsValid() {
		return nil, UnknownCategoryError{Category: in.Category}
	}
	if !in.Difficulty.IsValid() {
		return nil, fmt.Errorf("invalid difficulty: %q", in.Difficulty)
	}

	ins := storage.TaskInsert{
		ID:         uuid.NewString(),
		Title:      title,
		Type:       string(in.Type),
		Category:   string(in.Category),
		Difficulty: string(in.Difficulty),
		XPValue:    in.Difficulty.XPValue(),
		DueDate:    in.DueDate,
		RepeatDays: in.RepeatDays,
	}
	if in.Description != "" {
		d := in.Description
		ins.Description = &d
	}
	for _, st := range in.Subtasks {
		ins.Subtasks = append(ins.Subtasks, storage.SubtaskInsert{ID: uuid.NewString(), Title: st})
	}

	if err := s.tasks.Insert(ctx, ins); err != nil {
		return nil, err
	}
	s.log.Info("task created",
		zap.String("task_id", ins.ID),
		zap.String("category", ins.Category),
		zap.Int("xp_value", ins.XPValue))
	return s.tasks.Get(ctx, ins.ID)
}

type CompleteTaskResult struct {
	TaskID        string
	Title         string
	XPAwarded     int
	LevelBefore   int
	LevelAfter    int
	LevelUp       bool
	StreakDays    int
	NewlyUnlocked []RewardDefinition
}

// CompleteTask marks a task done and runs the full completion pipeline:
// streak, XP award, history append, and unlock evaluation, all under the
// service lock.
func (s *Service) CompleteTask(ctx context.Context, id string) (*CompleteTaskResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeTask(ctx, id)
}

// completeTask expects the service lock to be held.
func (s *Service) completeTask(ctx context.Context, id string) (*CompleteTaskResult, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %s not found", id)
	}
	if task.Completed {
		return nil, fmt.Errorf("task %s is already completed", id)
	}

	p, snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ev := CompletionEvent{
		Category:   Category(task.Category),
		XP:         task.XPValue,
		OccurredAt: now,
		Source:     SourceTask,
		TaskDone:   true,
	}
	out, err := CompleteStep(snap, history, ev)
	if err != nil {
		return nil, err
	}

	taskType := TaskType(task.Type)
	bumpStreak := taskType == TaskTypeDaily || taskType == TaskTypeHabit
	if err := s.tasks.MarkDone(ctx, id, now, bumpStreak); err != nil {
		return nil, err
	}
	if err := s.persistOutcome(ctx, p, out, ev); err != nil {
		return nil, err
	}

	s.log.Info("task completed",
		zap.String("task_id", id),
		zap.Int("xp", ev.XP),
		zap.Int("level", out.LevelAfter),
		zap.Int("unlocks", len(out.NewlyUnlocked)))

	return &CompleteTaskResult{
		TaskID:        id,
		Title:         task.Title,
		XPAwarded:     ev.XP,
		LevelBefore:   out.LevelBefore,
		LevelAfter:    out.LevelAfter,
		LevelUp:       out.LevelAfter > out.LevelBefore,
		StreakDays:    out.Snapshot.StreakDays,
		NewlyUnlocked: out.NewlyUnlocked,
	}, nil
}

// CompleteSubtask marks one subtask done. When it was the last open subtask,
// the parent task completes through the normal pipeline and the result is
// returned; otherwise the result is nil.
func (s *Service) CompleteSubtask(ctx context.Context, taskID, subtaskID string) (*CompleteTaskResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %s not found", taskID)
	}
	if task.Completed {
		return nil, fmt.Errorf("task %s is already completed", taskID)
	}

	subtasks, err := s.tasks.ListSubtasks(ctx, taskID)
	if err != nil {
		return nil, err
	}
	var target *storage.Subtask
	for i := range subtasks {
		if subtasks[i].ID == subtaskID {
			target = &subtasks[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("subtask %s not found on task %s", subtaskID, taskID)
	}
	if target.Completed {
		return nil, fmt.Errorf("subtask %s is already completed", subtaskID)
	}

	if err := s.tasks.MarkSubtaskDone(ctx, subtaskID); err != nil {
		return nil, err
	}

	open := 0
	for _, st := range subtasks {
		if !st.Completed && st.ID != subtaskID {
			open++
		}
	}
	if open > 0 {
		return nil, nil
	}
	return s.completeTask(ctx, taskID)
}

// ResetDailyTasks clears the completed flag on recurring tasks so they can be
// done again: habits always, dailies when their repeat days include today (or
// they have no repeat days). Returns the number of tasks reset.
func (s *Service) ResetDailyTasks(ctx context.Context) (int, error) {
	all, err := s.tasks.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	weekday := int(s.now().UTC().Weekday())
	reset := 0
	for _, t := range all {
		if !t.Completed {
			continue
		}
		switch TaskType(t.Type) {
		case TaskTypeHabit:
			// Habits always renew.
		case TaskTypeDaily:
			if len(t.RepeatDays) > 0 && !containsInt(t.RepeatDays, weekday) {
				continue
			}
		default:
			continue
		}
		if err := s.tasks.ResetCompletion(ctx, t.ID); err != nil {
			return reset, err
		}
		reset++
	}
	if reset > 0 {
		s.log.Info("daily tasks renewed", zap.Int("count", reset))
	}
	return reset, nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
