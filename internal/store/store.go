// Package store is the persistence boundary. Services and the engine's
// callers depend on the Store interface, not on gorm, so tests can inject
// fakes.
package store

import (
	"context"
	"time"

	"health-coach/internal/model"
)

type Store interface {
	MemberByUsername(ctx context.Context, username string) (*model.Member, error)

	LogsForDate(ctx context.Context, memberID int, date string) ([]model.HealthLog, error)
	CreateLog(ctx context.Context, l *model.HealthLog) error

	// DailyTotals returns (nil, nil) when no feed record exists for the
	// date; absence is not an error.
	DailyTotals(ctx context.Context, memberID int, date string) (*model.DailyTotals, error)
	SaveDailyTotals(ctx context.Context, t *model.DailyTotals) error

	ActiveHabits(ctx context.Context, memberID int) ([]model.Habit, error)
	CreateHabit(ctx context.Context, h *model.Habit) error
	CompletionsSince(ctx context.Context, memberID int, since time.Time) ([]model.HabitCompletion, error)
	CreateCompletion(ctx context.Context, c *model.HabitCompletion) error
	BumpStreak(ctx context.Context, habitID int) error

	// Profile returns (nil, nil) when the member has no profile yet.
	Profile(ctx context.Context, memberID int) (*model.Profile, error)

	FocusTasksForDate(ctx context.Context, memberID int, date string) ([]model.FocusTask, error)
	SaveFocusTasks(ctx context.Context, tasks []model.FocusTask) error

	// SaveWin upserts on (member_id, win_date, rule_id) so re-running
	// detection for a processed date cannot duplicate entries.
	SaveWin(ctx context.Context, w *model.WinEntry) error
	WinsForDate(ctx context.Context, memberID int, date string) ([]model.WinEntry, error)
}
