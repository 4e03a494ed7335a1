package engine

import (
	"strings"
	"time"
)

// Category is the closed set of task/quest categories.
type Category string

const (
	CategoryHealth     Category = "health"
	CategoryWork       Category = "work"
	CategoryCreativity Category = "creativity"
	CategorySocial     Category = "social"
	CategoryLearning   Category = "learning"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryHealth, CategoryWork, CategoryCreativity, CategorySocial, CategoryLearning}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryWork, CategoryCreativity, CategorySocial, CategoryLearning:
		return true
	default:
		return false
	}
}

// DefaultCategory is used when user input is missing.
const DefaultCategory Category = CategoryLearning

// ParseCategory parses user input to a Category.
// If input is empty, returns DefaultCategory.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return DefaultCategory, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", UnknownCategoryError{Category: c}
	}
	return c, nil
}

// Attribute is the closed set of character attributes.
type Attribute string

const (
	AttributeStrength     Attribute = "strength"
	AttributeIntelligence Attribute = "intelligence"
	AttributeCharisma     Attribute = "charisma"
	AttributeDexterity    Attribute = "dexterity"
	AttributeWisdom       Attribute = "wisdom"
	AttributeVitality     Attribute = "vitality"
)

// AttributeNames returns all attributes in display order.
func AttributeNames() []Attribute {
	return []Attribute{
		AttributeStrength, AttributeIntelligence, AttributeCharisma,
		AttributeDexterity, AttributeWisdom, AttributeVitality,
	}
}

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeStrength, AttributeIntelligence, AttributeCharisma,
		AttributeDexterity, AttributeWisdom, AttributeVitality:
		return true
	default:
		return false
	}
}

// TaskDifficulty scales a task's XP value.
type TaskDifficulty string

const (
	TaskEasy   TaskDifficulty = "easy"
	TaskMedium TaskDifficulty = "medium"
	TaskHard   TaskDifficulty = "hard"
)

func (d TaskDifficulty) IsValid() bool {
	switch d {
	case TaskEasy, TaskMedium, TaskHard:
		return true
	default:
		return false
	}
}

// XPValue returns the XP awarded for completing a task of this difficulty.
func (d TaskDifficulty) XPValue() int {
	switch d {
	case TaskEasy:
		return 10
	case TaskMedium:
		return 20
	case TaskHard:
		return 30
	default:
		return 10
	}
}

// QuestDifficulty scales a quest's total XP reward.
type QuestDifficulty string

const (
	QuestEasy      QuestDifficulty = "easy"
	QuestMedium    QuestDifficulty = "medium"
	QuestHard      QuestDifficulty = "hard"
	QuestLegendary QuestDifficulty = "legendary"
)

func (d QuestDifficulty) IsValid() bool {
	switch d {
	case QuestEasy, QuestMedium, QuestHard, QuestLegendary:
		return true
	default:
		return false
	}
}

// Reward returns the total XP paid across all steps of a quest.
func (d QuestDifficulty) Reward() int {
	switch d {
	case QuestEasy:
		return 50
	case QuestMedium:
		return 100
	case QuestHard:
		return 150
	case QuestLegendary:
		return 300
	default:
		return 50
	}
}

// TaskType distinguishes recurring tasks from one-shots.
type TaskType string

const (
	TaskTypeDaily   TaskType = "daily"
	TaskTypeHabit   TaskType = "habit"
	TaskTypeOneTime TaskType = "one-time"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeDaily, TaskTypeHabit, TaskTypeOneTime:
		return true
	default:
		return false
	}
}

// Snapshot is the complete progression state for the profile at a point in
// time. It is a value: engine operations return modified copies and never
// mutate their input. Callers own persistence.
type Snapshot struct {
	Level         int
	CurrentXP     int
	XPToNextLevel int
	TotalXP       int

	StreakDays int
	LastActive time.Time
	CreatedAt  time.Time

	TasksCompleted  int
	QuestsCompleted int

	CategoryXP map[Category]int
	Attributes map[Attribute]int

	// Unlocked holds granted reward ids in first-unlock order.
	Unlocked []string
}

// NewSnapshot returns the initial progression state for a fresh profile.
func NewSnapshot(now time.Time) Snapshot {
	s := Snapshot{
		Level:         1,
		XPToNextLevel: XPForLevel(1),
		LastActive:    dayOf(now),
		CreatedAt:     now,
		CategoryXP:    make(map[Category]int, len(Categories())),
		Attributes:    make(map[Attribute]int, len(AttributeNames())),
	}
	for _, c := range Categories() {
		s.CategoryXP[c] = 0
	}
	for _, a := range AttributeNames() {
		s.Attributes[a] = 0
	}
	return s
}

// Clone returns a deep copy so callers can treat Snapshot as a value despite
// the embedded maps.
func (s Snapshot) Clone() Snapshot {
	cp := s
	cp.CategoryXP = make(map[Category]int, len(s.CategoryXP))
	for k, v := range s.CategoryXP {
		cp.CategoryXP[k] = v
	}
	cp.Attributes = make(map[Attribute]int, len(s.Attributes))
	for k, v := range s.Attributes {
		cp.Attributes[k] = v
	}
	cp.Unlocked = append([]string(nil), s.Unlocked...)
	return cp
}

// HasUnlocked reports whether a reward id has already been granted.
func (s Snapshot) HasUnlocked(id string) bool {
	for _, u := range s.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// dayOf truncates a timestamp to calendar-day granularity (UTC).
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
