package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Gravitonian77/DailyXP/internal/storage"
)

// Notifier is the notification collaborator: the Service calls it once per
// newly unlocked reward and for level-up events. Implementations live at the
// edges (CLI printer, TUI); delivery failures never affect progression state.
type Notifier interface {
	Notify(message string, severity Severity)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, Severity) {}

// Service wires the pure progression engine to persistence and notification.
// All completion pipelines are serialized by an internal mutex so concurrent
// awards against the single profile cannot lose updates or double-level.
type Service struct {
	db       *sql.DB
	profiles *storage.ProfileRepo
	tasks    *storage.TaskRepo
	quests   *storage.QuestRepo
	activity *storage.ActivityRepo
	unlocks  *storage.UnlockRepo

	log      *zap.Logger
	notifier Notifier
	now      func() time.Time

	mu sync.Mutex
}

func NewService(db *sql.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:       db,
		profiles: storage.NewProfileRepo(db),
		tasks:    storage.NewTaskRepo(db),
		quests:   storage.NewQuestRepo(db),
		activity: storage.NewActivityRepo(db),
		unlocks:  storage.NewUnlockRepo(db),
		log:      logger,
		notifier: nopNotifier{},
		now:      time.Now,
	}
}

// SetNotifier installs the notification collaborator.
func (s *Service) SetNotifier(n Notifier) {
	if n != nil {
		s.notifier = n
	}
}

// SetClock overrides the time source. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) ProfileRepo() *storage.ProfileRepo   { return s.profiles }
func (s *Service) TaskRepo() *storage.TaskRepo         { return s.tasks }
func (s *Service) QuestRepo() *storage.QuestRepo       { return s.quests }
func (s *Service) ActivityRepo() *storage.ActivityRepo { return s.activity }
func (s *Service) UnlockRepo() *storage.UnlockRepo     { return s.unlocks }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// snapshotFromProfile converts the persisted row plus unlock rows into the
// engine's value type.
func snapshotFromProfile(p *storage.Profile, unlocks []storage.Unlock) Snapshot {
	s := Snapshot{
		Level:           p.Level,
		CurrentXP:       p.CurrentXP,
		XPToNextLevel:   p.XPToNext,
		TotalXP:         p.TotalXP,
		StreakDays:      p.StreakDays,
		LastActive:      p.LastActive,
		CreatedAt:       p.CreatedAt,
		TasksCompleted:  p.TasksCompleted,
		QuestsCompleted: p.QuestsCompleted,
		CategoryXP: map[Category]int{
			CategoryHealth:     p.XPHealth,
			CategoryWork:       p.XPWork,
			CategoryCreativity: p.XPCreativity,
			CategorySocial:     p.XPSocial,
			CategoryLearning:   p.XPLearning,
		},
		Attributes: map[Attribute]int{
			AttributeStrength:     p.AttrStrength,
			AttributeIntelligence: p.AttrIntelligence,
			AttributeCharisma:     p.AttrCharisma,
			AttributeDexterity:    p.AttrDexterity,
			AttributeWisdom:       p.AttrWisdom,
			AttributeVitality:     p.AttrVitality,
		},
	}
	for _, u := range unlocks {
		s.Unlocked = append(s.Unlocked, u.RewardID)
	}
	return s
}

func applySnapshot(p *storage.Profile, s Snapshot) {
	p.Level = s.Level
	p.CurrentXP = s.CurrentXP
	p.XPToNext = s.XPToNextLevel
	p.TotalXP = s.TotalXP
	p.StreakDays = s.StreakDays
	p.LastActive = s.LastActive
	p.TasksCompleted = s.TasksCompleted
	p.QuestsCompleted = s.QuestsCompleted

	p.XPHealth = s.CategoryXP[CategoryHealth]
	p.XPWork = s.CategoryXP[CategoryWork]
	p.XPCreativity = s.CategoryXP[CategoryCreativity]
	p.XPSocial = s.CategoryXP[CategorySocial]
	p.XPLearning = s.CategoryXP[CategoryLearning]

	p.AttrStrength = s.Attributes[AttributeStrength]
	p.AttrIntelligence = s.Attributes[AttributeIntelligence]
	p.AttrCharisma = s.Attributes[AttributeCharisma]
	p.AttrDexterity = s.Attributes[AttributeDexterity]
	p.AttrWisdom = s.Attributes[AttributeWisdom]
	p.AttrVitality = s.Attributes[AttributeVitality]
}

func (s *Service) loadSnapshot(ctx context.Context) (*storage.Profile, Snapshot, error) {
	p, err := s.profiles.GetOrCreateMain(ctx, s.now())
	if err != nil {
		return nil, Snapshot{}, err
	}
	unlocks, err := s.unlocks.ListAll(ctx)
	if err != nil {
		return nil, Snapshot{}, err
	}
	return p, snapshotFromProfile(p, unlocks), nil
}

func (s *Service) loadHistory(ctx context.Context) (History, error) {
	records, err := s.activity.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	h := make(History, 0, len(records))
	for _, r := range records {
		h = append(h, ActivityRecord{
			OccurredAt: r.OccurredAt,
			Category:   Category(r.Category),
			Source:     SourceKind(r.Source),
		})
	}
	return h, nil
}

// Profile returns the current snapshot, expiring a lapsed streak first (the
// login/day-rollover checkpoint). The zeroed streak is persisted at most once
// per lapse; viewing never extends a streak.
func (s *Service) Profile(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	expired := ExpireStreak(snap, s.now())
	if expired.StreakDays != snap.StreakDays {
		applySnapshot(p, expired)
		if err := s.profiles.Update(ctx, p); err != nil {
			return Snapshot{}, err
		}
		s.log.Debug("streak expired",
			zap.Time("last_active", expired.LastActive))
	}
	return expired, nil
}

// RewardStatus pairs a catalog entry with its unlock state for display.
type RewardStatus struct {
	Def        RewardDefinition
	Unlocked   bool
	UnlockedAt *time.Time
}

// Rewards returns the full catalog in order, annotated with unlock state.
func (s *Service) Rewards(ctx context.Context) ([]RewardStatus, error) {
	unlocks, err := s.unlocks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]storage.Unlock, len(unlocks))
	for _, u := range unlocks {
		byID[u.RewardID] = u
	}

	var out []RewardStatus
	for _, def := range Catalog() {
		st := RewardStatus{Def: def}
		if u, ok := byID[def.ID]; ok {
			st.Unlocked = true
			t := u.UnlockedAt
			st.UnlockedAt = &t
		}
		out = append(out, st)
	}
	return out, nil
}

// ResetProgress wipes progression state (profile, unlocks, activity log).
// Tasks and quests are kept; only the character starts over.
func (s *Service) ResetProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.profiles.Delete(ctx, storage.MainProfileKey); err != nil {
		return err
	}
	if err := s.unlocks.Clear(ctx); err != nil {
		return err
	}
	if err := s.activity.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("progress reset")
	return nil
}

// persistOutcome writes the computed pipeline result and emits notifications.
// The snapshot is idempotent to re-persist: a failed save can be retried
// without recomputation.
func (s *Service) persistOutcome(ctx context.Context, p *storage.Profile, out *Outcome, ev CompletionEvent) error {
	applySnapshot(p, out.Snapshot)
	if err := s.profiles.Update(ctx, p); err != nil {
		return err
	}
	if _, err := s.activity.Insert(ctx, ev.OccurredAt, string(ev.Category), string(ev.Source), ev.XP); err != nil {
		return err
	}
	for _, def := range out.NewlyUnlocked {
		if err := s.unlocks.Insert(ctx, def.ID, string(def.Kind), ev.OccurredAt); err != nil {
			return err
		}
	}

	for _, n := range out.Notifications {
		s.notifier.Notify(n.Message, n.Severity)
	}
	return nil
}
