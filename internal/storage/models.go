package storage

import "time"

// Profile is the persisted progression state for the single local profile.
type Profile struct {
	Key   string
	Name  string
	Class *string
	Title *string

	Level           int
	CurrentXP       int
	XPToNext        int
	TotalXP         int
	StreakDays      int
	LastActive      time.Time
	CreatedAt       time.Time
	TasksCompleted  int
	QuestsCompleted int

	XPHealth     int
	XPWork       int
	XPCreativity int
	XPSocial     int
	XPLearning   int

	AttrStrength     int
	AttrIntelligence int
	AttrCharisma     int
	AttrDexterity    int
	AttrWisdom       int
	AttrVitality     int
}

type Task struct {
	ID          string
	Title       string
	Description *string
	Type        string
	Category    string
	Difficulty  string
	XPValue     int
	Completed   bool
	CompletedAt *time.Time
	DueDate     *time.Time
	RepeatDays  []int // weekdays: 0 = Sunday .. 6 = Saturday
	StreakCount int
	CreatedAt   time.Time
}

type Subtask struct {
	ID        string
	TaskID    string
	Title     string
	Completed bool
	Position  int
}

type Quest struct {
	ID          string
	Title       string
	Description *string
	Category    string
	Difficulty  string
	Status      string
	Progress    int
	XPReward    int
	StartDate   time.Time
	EndDate     *time.Time
	Completed   bool
}

type QuestStep struct {
	ID          string
	QuestID     string
	Title       string
	Description *string
	Completed   bool
	XPValue     int
	Position    int
}

type ActivityRecord struct {
	ID         int64
	OccurredAt time.Time
	Category   string
	Source     string
	XPAwarded  int
}

type Unlock struct {
	RewardID   string
	Kind       string
	UnlockedAt time.Time
	Position   int
}
