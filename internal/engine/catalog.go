package engine

import "time"

// RewardKind tags a catalog entry as achievement, badge, or equipment.
type RewardKind string

const (
	KindAchievement RewardKind = "achievement"
	KindBadge       RewardKind = "badge"
	KindEquipment   RewardKind = "equipment"
)

// RewardDefinition is one immutable catalog entry. Predicate must be pure and
// idempotent: it reads the snapshot and history and never mutates either.
type RewardDefinition struct {
	ID          string
	Kind        RewardKind
	Name        string
	Description string
	Icon        string
	Predicate   func(Snapshot, History) bool
}

// earlyAdopterCutoff is the account-creation cutoff for the Early Adopter
// badge (the app's first-release window).
var earlyAdopterCutoff = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

// Catalog returns every reward definition in evaluation order. Order matters:
// the unlock evaluator walks it top to bottom and first-unlock display order
// follows it.
func Catalog() []RewardDefinition {
	return []RewardDefinition{
		// Achievements
		{
			ID: "first_blood", Kind: KindAchievement,
			Name: "First Steps", Description: "Complete your first task", Icon: "🩸",
			Predicate: func(s Snapshot, _ History) bool { return s.TasksCompleted >= 1 },
		},
		{
			ID: "weekly_warrior", Kind: KindAchievement,
			Name: "Weekly Warrior", Description: "Maintain a 7-day streak", Icon: "🏆",
			Predicate: func(s Snapshot, _ History) bool { return s.StreakDays >= 7 },
		},
		{
			ID: "xp_grinder", Kind: KindAchievement,
			Name: "XP Grinder", Description: "Reach level 10", Icon: "💎",
			Predicate: func(s Snapshot, _ History) bool { return s.Level >= 10 },
		},
		{
			ID: "mind_master", Kind: KindAchievement,
			Name: "Mind Master", Description: "Reach 15 Intelligence", Icon: "🧠",
			Predicate: func(s Snapshot, _ History) bool { return s.Attributes[AttributeIntelligence] >= 15 },
		},
		{
			ID: "iron_body", Kind: KindAchievement,
			Name: "Iron Body", Description: "Reach 20 Strength", Icon: "💪",
			Predicate: func(s Snapshot, _ History) bool { return s.Attributes[AttributeStrength] >= 20 },
		},
		{
			ID: "ritual_keeper", Kind: KindAchievement,
			Name: "Ritual Keeper", Description: "Complete at least 1 task every day for 30 days", Icon: "📅",
			Predicate: func(s Snapshot, _ History) bool { return s.StreakDays >= 30 },
		},
		{
			ID: "jack_of_all", Kind: KindAchievement,
			Name: "Jack of All Trades", Description: "Reach 10 in all attributes", Icon: "🃏",
			Predicate: func(s Snapshot, _ History) bool {
				for _, a := range AttributeNames() {
					if s.Attributes[a] < 10 {
						return false
					}
				}
				return true
			},
		},
		{
			ID: "no_rest", Kind: KindAchievement,
			Name: "No Rest for the Focused", Description: "Complete 100 tasks", Icon: "🔥",
			Predicate: func(s Snapshot, _ History) bool { return s.TasksCompleted >= 100 },
		},
		{
			ID: "quest_clearer", Kind: KindAchievement,
			Name: "Quest Clearer", Description: "Finish 10 quests", Icon: "🎯",
			Predicate: func(s Snapshot, _ History) bool { return s.QuestsCompleted >= 10 },
		},

		// Badges
		{
			ID: "early_adopter", Kind: KindBadge,
			Name: "Early Adopter", Description: "Joined during the app's first release", Icon: "🌟",
			Predicate: func(s Snapshot, _ History) bool {
				return !s.CreatedAt.IsZero() && s.CreatedAt.Before(earlyAdopterCutoff)
			},
		},
		{
			ID: "night_runner", Kind: KindBadge,
			Name: "Night Runner", Description: "Completed tasks after 10 PM for 5 days", Icon: "🌙",
			Predicate: func(_ Snapshot, h History) bool { return h.DistinctDaysAtOrAfterHour(22) >= 5 },
		},
		{
			ID: "discipline_king", Kind: KindBadge,
			Name: "Discipline King", Description: "30-day streak badge", Icon: "👑",
			Predicate: func(s Snapshot, _ History) bool { return s.StreakDays >= 30 },
		},
		{
			ID: "brainiac", Kind: KindBadge,
			Name: "Brainiac", Description: "Reached 25 Intelligence", Icon: "🧠",
			Predicate: func(s Snapshot, _ History) bool { return s.Attributes[AttributeIntelligence] >= 25 },
		},
		{
			ID: "unstoppable", Kind: KindBadge,
			Name: "Unstoppable", Description: "7 days of completing 5+ tasks per day", Icon: "🚀",
			Predicate: func(_ Snapshot, h History) bool { return h.LongestDailyRun(5) >= 7 },
		},

		// Equipment
		{
			ID: "headband_focus", Kind: KindEquipment,
			Name: "Headband of Focus", Description: "+10% XP from reading tasks", Icon: "🎽",
			Predicate: func(s Snapshot, _ History) bool { return s.Attributes[AttributeIntelligence] >= 10 },
		},
		{
			ID: "boots_speed", Kind: KindEquipment,
			Name: "Swiftstep Boots", Description: "Gain +1 Dexterity from every 5 tasks completed", Icon: "👟",
			Predicate: func(s Snapshot, _ History) bool { return s.TasksCompleted >= 25 },
		},
		{
			ID: "gloves_grit", Kind: KindEquipment,
			Name: "Gloves of Grit", Description: "Prevents streak loss once every 14 days", Icon: "🧤",
			Predicate: func(s Snapshot, _ History) bool { return s.StreakDays >= 14 },
		},
		{
			ID: "cloak_knowledge", Kind: KindEquipment,
			Name: "Cloak of Knowledge", Description: "+2 Intelligence if you complete 3+ tasks per day", Icon: "🧥",
			Predicate: func(s Snapshot, h History) bool { return h.CountOnDay(s.LastActive) >= 3 },
		},
		{
			ID: "ring_discipline", Kind: KindEquipment,
			Name: "Ring of Discipline", Description: "Grants bonus XP for tasks completed before 8 AM", Icon: "💍",
			Predicate: func(_ Snapshot, h History) bool { return h.HasBeforeHour(8) },
		},
	}
}

// FindReward returns the catalog entry with the given id, or nil.
func FindReward(id string) *RewardDefinition {
	defs := Catalog()
	for i := range defs {
		if defs[i].ID == id {
			return &defs[i]
		}
	}
	return nil
}
