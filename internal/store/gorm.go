package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health-coach/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// AutoMigrate creates or updates the schema for every entity.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&model.Member{},
		&model.HealthLog{},
		&model.DailyTotals{},
		&model.Habit{},
		&model.HabitCompletion{},
		&model.FocusTask{},
		&model.WinEntry{},
		&model.Profile{},
	)
}

func (s *GormStore) MemberByUsername(ctx context.Context, username string) (*model.Member, error) {
	var m model.Member
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}
	return &m, nil
}

func (s *GormStore) LogsForDate(ctx context.Context, memberID int, date string) ([]model.HealthLog, error) {
	var logs []model.HealthLog
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND log_date = ?", memberID, date).
		Order("created_at").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	return logs, nil
}

func (s *GormStore) CreateLog(ctx context.Context, l *model.HealthLog) error {
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

func (s *GormStore) DailyTotals(ctx context.Context, memberID int, date string) (*model.DailyTotals, error) {
	var t model.DailyTotals
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND totals_date = ?", memberID, date).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	return &t, nil
}

func (s *GormStore) SaveDailyTotals(ctx context.Context, t *model.DailyTotals) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}, {Name: "totals_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"steps", "water_ml_override"}),
	}).Create(t).Error
	if err != nil {
		return fmt.Errorf("upsert daily totals: %w", err)
	}
	return nil
}

func (s *GormStore) ActiveHabits(ctx context.Context, memberID int) ([]model.Habit, error) {
	var habits []model.Habit
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND is_active = ?", memberID, true).
		Order("id").Find(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	return habits, nil
}

func (s *GormStore) CreateHabit(ctx context.Context, h *model.Habit) error {
	if err := s.db.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}
	return nil
}

func (s *GormStore) CompletionsSince(ctx context.Context, memberID int, since time.Time) ([]model.HabitCompletion, error) {
	var cs []model.HabitCompletion
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND completed_at >= ?", memberID, since).
		Order("completed_at").Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	return cs, nil
}

func (s *GormStore) CreateCompletion(ctx context.Context, c *model.HabitCompletion) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}

func (s *GormStore) BumpStreak(ctx context.Context, habitID int) error {
	err := s.db.WithContext(ctx).Model(&model.Habit{}).
		Where("id = ?", habitID).
		UpdateColumn("streak_count", gorm.Expr("streak_count + 1")).Error
	if err != nil {
		return fmt.Errorf("bump streak: %w", err)
	}
	return nil
}

func (s *GormStore) Profile(ctx context.Context, memberID int) (*model.Profile, error) {
	var p model.Profile
	err := s.db.WithContext(ctx).Where("member_id = ?", memberID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

func (s *GormStore) FocusTasksForDate(ctx context.Context, memberID int, date string) ([]model.FocusTask, error) {
	var tasks []model.FocusTask
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND task_date = ?", memberID, date).
		Order("position").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("query focus tasks: %w", err)
	}
	return tasks, nil
}

func (s *GormStore) SaveFocusTasks(ctx context.Context, tasks []model.FocusTask) error {
	if len(tasks) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&tasks).Error; err != nil {
		return fmt.Errorf("insert focus tasks: %w", err)
	}
	return nil
}

func (s *GormStore) SaveWin(ctx context.Context, w *model.WinEntry) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}, {Name: "win_date"}, {Name: "rule_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "mood", "tags"}),
	}).Create(w).Error
	if err != nil {
		return fmt.Errorf("upsert win: %w", err)
	}
	return nil
}

func (s *GormStore) WinsForDate(ctx context.Context, memberID int, date string) ([]model.WinEntry, error) {
	var wins []model.WinEntry
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND win_date = ?", memberID, date).
		Order("id").Find(&wins).Error
	if err != nil {
		return nil, fmt.Errorf("query wins: %w", err)
	}
	return wins, nil
}
