package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const MainProfileKey = "main"

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `key, name, class, title,
	level, current_xp, xp_to_next, total_xp, streak_days, last_active, created_at,
	tasks_completed, quests_completed,
	xp_health, xp_work, xp_creativity, xp_social, xp_learning,
	attr_strength, attr_intelligence, attr_charisma, attr_dexterity, attr_wisdom, attr_vitality`

func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profile WHERE key = ?`, key)

	var p Profile
	err := row.Scan(
		&p.Key, &p.Name, &p.Class, &p.Title,
		&p.Level, &p.CurrentXP, &p.XPToNext, &p.TotalXP, &p.StreakDays, &p.LastActive, &p.CreatedAt,
		&p.TasksCompleted, &p.QuestsCompleted,
		&p.XPHealth, &p.XPWork, &p.XPCreativity, &p.XPSocial, &p.XPLearning,
		&p.AttrStrength, &p.AttrIntelligence, &p.AttrCharisma, &p.AttrDexterity, &p.AttrWisdom, &p.AttrVitality,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return &p, nil
}

// GetOrCreateMain returns the single local profile, creating it on first use.
func (r *ProfileRepo) GetOrCreateMain(ctx context.Context, now time.Time) (*Profile, error) {
	p, err := r.Get(ctx, MainProfileKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO profile (key, last_active, created_at) VALUES (?, ?, ?)`,
		MainProfileKey, now.UTC(), now.UTC(),
	); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, MainProfileKey)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profile
		SET name = ?, class = ?, title = ?,
			level = ?, current_xp = ?, xp_to_next = ?, total_xp = ?, streak_days = ?, last_active = ?,
			tasks_completed = ?, quests_completed = ?,
			xp_health = ?, xp_work = ?, xp_creativity = ?, xp_social = ?, xp_learning = ?,
			attr_strength = ?, attr_intelligence = ?, attr_charisma = ?, attr_dexterity = ?, attr_wisdom = ?, attr_vitality = ?
		WHERE key = ?
	`,
		p.Name, p.Class, p.Title,
		p.Level, p.CurrentXP, p.XPToNext, p.TotalXP, p.StreakDays, p.LastActive,
		p.TasksCompleted, p.QuestsCompleted,
		p.XPHealth, p.XPWork, p.XPCreativity, p.XPSocial, p.XPLearning,
		p.AttrStrength, p.AttrIntelligence, p.AttrCharisma, p.AttrDexterity, p.AttrWisdom, p.AttrVitality,
		p.Key,
	)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}

// Delete removes the profile row so the next GetOrCreateMain starts fresh.
func (r *ProfileRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profile WHERE key = ?`, key); err != nil {
		return fmt.Errorf("profile delete: %w", err)
	}
	return nil
}
