package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gravitonian77/DailyXP/internal/storage"
)

type QuestStepSpec struct {
	Title       string
	Description string
}

type CreateQuestInput struct {
	Title       string
	Description string
	Category    Category
	Difficulty  QuestDifficulty
	EndDate     *time.Time
	Steps       []QuestStepSpec
}

// CreateQuest stores a multi-step quest. The total reward comes from the
// difficulty and is split evenly across steps (rounded); any rounding
// remainder is settled when the final step completes, so the full reward is
// always paid.
func (s *Service) CreateQuest(ctx context.Context, in CreateQuestInput) (*storage.Quest, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Category.IsValid() {
		return nil, UnknownCategoryError{Category: in.Category}
	}
	if !in.Difficulty.IsValid() {
		return nil, fmt.Errorf("invalid quest difficulty: %q", in.Difficulty)
	}
	if len(in.Steps) == 0 {
		return nil, fmt.Errorf("quest needs at least one step")
	}

	reward := in.Difficulty.Reward()
	stepXP := int(math.Round(float64(reward) / float64(len(in.Steps))))
	if stepXP < 1 {
		stepXP = 1
	}

	ins := storage.QuestInsert{
		ID:         uuid.NewString(),
		Title:      title,
		Category:   string(in.Category),
		Difficulty: string(in.Difficulty),
		XPReward:   reward,
		StartDate:  s.now(),
		EndDate:    in.EndDate,
	}
	if in.Description != "" {
		d := in.Description
		ins.Description = &d
	}
	for _, spec := range in.Steps {
		st := storage.QuestStepInsert{ID: uuid.NewString(), Title: spec.Title, XPValue: stepXP}
		if spec.Description != "" {
			d := spec.Description
			st.Description = &d
		}
		ins.Steps = append(ins.Steps, st)
	}

	if err := s.quests.Insert(ctx, ins); err != nil {
		return nil, err
	}
	s.log.Info("quest created",
		zap.String("quest_id", ins.ID),
		zap.String("difficulty", ins.Difficulty),
		zap.Int("xp_reward", reward),
		zap.Int("steps", len(ins.Steps)))
	return s.quests.Get(ctx, ins.ID)
}

type CompleteQuestStepResult struct {
	QuestID        string
	StepID         string
	StepTitle      string
	XPAwarded      int
	Progress       int
	QuestCompleted bool
	LevelBefore    int
	LevelAfter     int
	LevelUp        bool
	NewlyUnlocked  []RewardDefinition
}

// CompleteQuestStep marks one quest step done, recomputes quest progress, and
// awards the step XP through the completion pipeline. Completing the final
// step completes the quest, pays out any rounding remainder of the total
// reward, and bumps the lifetime quest counter.
func (s *Service) CompleteQuestStep(ctx context.Context, questID, stepID string) (*CompleteQuestStepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quest, err := s.quests.Get(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, fmt.Errorf("quest %s not found", questID)
	}
	if quest.Completed {
		return nil, fmt.Errorf("quest %s is already completed", questID)
	}

	steps, err := s.quests.ListSteps(ctx, questID)
	if err != nil {
		return nil, err
	}
	var target *storage.QuestStep
	done := 0
	paid := 0
	for i := range steps {
		if steps[i].Completed {
			done++
			paid += steps[i].XPValue
		}
		if steps[i].ID == stepID {
			target = &steps[i]
		}
	}
	if target == nil {
		return nil, fmt.Errorf("step %s not found on quest %s", stepID, questID)
	}
	if target.Completed {
		return nil, fmt.Errorf("step %s is already completed", stepID)
	}

	done++
	progress := int(math.Round(float64(done) / float64(len(steps)) * 100))
	questDone := done == len(steps)

	xp := target.XPValue
	if questDone {
		// Settle rounding so the total paid equals the quest reward exactly.
		if remainder := quest.XPReward - paid - target.XPValue; remainder != 0 {
			xp += remainder
		}
		if xp < 1 {
			xp = 1
		}
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
		Category:   Category(quest.Category),
		XP:         xp,
		OccurredAt: now,
		Source:     SourceQuestStep,
		QuestDone:  questDone,
	}
	out, err := CompleteStep(snap, history, ev)
	if err != nil {
		return nil, err
	}

	if err := s.quests.MarkStepDone(ctx, stepID); err != nil {
		return nil, err
	}
	if questDone {
		if err := s.quests.MarkCompleted(ctx, questID, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.quests.UpdateProgress(ctx, questID, progress); err != nil {
			return nil, err
		}
	}
	if err := s.persistOutcome(ctx, p, out, ev); err != nil {
		return nil, err
	}

	s.log.Info("quest step completed",
		zap.String("quest_id", questID),
		zap.String("step_id", stepID),
		zap.Int("xp", xp),
		zap.Int("progress", progress),
		zap.Bool("quest_done", questDone))

	return &CompleteQuestStepResult{
		QuestID:        questID,
		StepID:         stepID,
		StepTitle:      target.Title,
		XPAwarded:      xp,
		Progress:       progress,
		QuestCompleted: questDone,
		LevelBefore:    out.LevelBefore,
		LevelAfter:     out.LevelAfter,
		LevelUp:        out.LevelAfter > out.LevelBefore,
		NewlyUnlocked:  out.NewlyUnlocked,
	}, nil
}
