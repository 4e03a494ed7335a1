package engine

import (
	"fmt"
	"time"
)

// Severity classifies a notification for the notifier collaborator.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a user-facing message produced by the completion pipeline.
type Notification struct {
	Message  string
	Severity Severity
}

// CompletionEvent is the ephemeral input to the completion pipeline: a task or
// quest step was finished at OccurredAt in Category, worth XP. TaskDone and
// QuestDone mark whether the event also finishes a whole task or quest, which
// bumps the corresponding lifetime counter.
type CompletionEvent struct {
	Category   Category
	XP         int
	OccurredAt time.Time
	Source     SourceKind
	TaskDone   bool
	QuestDone  bool
}

// Outcome carries everything the caller must persist and announce after one
// completion: the new snapshot (unlocked ids already merged), the history with
// the event appended, the newly unlocked rewards, and the notifications.
type Outcome struct {
	Snapshot      Snapshot
	History       History
	NewlyUnlocked []RewardDefinition
	Notifications []Notification
	LevelBefore   int
	LevelAfter    int
}

// CompleteStep runs the full completion pipeline as one atomic computation:
//
//  1. validate the XP amount,
//  2. roll the streak forward to the event's day,
//  3. award the XP (leveling as needed) and bump lifetime counters,
//  4. append the event to the history,
//  5. evaluate unlocks against the post-award state,
//  6. merge newly unlocked ids preserving first-unlock order.
//
// A validation failure aborts before any mutation. The function is pure:
// persistence and notification delivery belong to the caller, and the returned
// snapshot may be re-persisted idempotently on retry.
func CompleteStep(s Snapshot, h History, ev CompletionEvent) (*Outcome, error) {
	if ev.XP <= 0 {
		return nil, InvalidAwardError{Amount: ev.XP}
	}

	levelBefore := s.Level

	next := UpdateStreak(s, ev.OccurredAt)
	next, err := AwardXP(next, ev.XP, ev.Category)
	if err != nil {
		return nil, err
	}
	if ev.TaskDone {
		next.TasksCompleted++
	}
	if ev.QuestDone {
		next.QuestsCompleted++
	}

	source := ev.Source
	if source == "" {
		source = SourceTask
	}
	history := append(append(History(nil), h...), ActivityRecord{
		OccurredAt: ev.OccurredAt,
		Category:   ev.Category,
		Source:     source,
	})

	newly := EvaluateUnlocks(next, history)
	for _, def := range newly {
		next.Unlocked = append(next.Unlocked, def.ID)
	}

	out := &Outcome{
		Snapshot:      next,
		History:       history,
		NewlyUnlocked: newly,
		LevelBefore:   levelBefore,
		LevelAfter:    next.Level,
	}
	if next.Level > levelBefore {
		out.Notifications = append(out.Notifications, Notification{
			Message:  fmt.Sprintf("Level up! You reached level %d", next.Level),
			Severity: SeveritySuccess,
		})
	}
	for _, def := range newly {
		out.Notifications = append(out.Notifications, unlockNotification(def))
	}
	return out, nil
}

func unlockNotification(def RewardDefinition) Notification {
	switch def.Kind {
	case KindBadge:
		return Notification{Message: fmt.Sprintf("New Badge: %s!", def.Name), Severity: SeveritySuccess}
	case KindEquipment:
		return Notification{Message: fmt.Sprintf("New Equipment: %s!", def.Name), Severity: SeveritySuccess}
	default:
		return Notification{Message: fmt.Sprintf("Achievement Unlocked: %s!", def.Name), Severity: SeveritySuccess}
	}
}
