package service

import (
	"context"
	"fmt"
	"time"

	"health-coach/internal/model"
	"health-coach/internal/store"
)

// TrackService is the write side: the log/habit collection surface the
// engine later reads from.
type TrackService struct {
	store store.Store
}

func NewTrackService(st store.Store) *TrackService { return &TrackService{store: st} }

func (s *TrackService) AddLog(ctx context.Context, memberID int, req model.LogRequest) (*model.HealthLog, error) {
	date := req.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	l := &model.HealthLog{
		MemberID:       memberID,
		LogDate:        date,
		Type:           req.Type,
		Calories:       req.Calories,
		Protein:        req.Protein,
		Carbs:          req.Carbs,
		Fat:            req.Fat,
		WaterMl:        req.WaterMl,
		SleepHours:     req.SleepHours,
		DurationMin:    req.DurationMin,
		CaloriesBurned: req.CaloriesBurned,
		WeightKg:       req.WeightKg,
		Mood:           req.Mood,
		Text:           req.Text,
	}
	if err := s.store.CreateLog(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *TrackService) SetTotals(ctx context.Context, memberID int, req model.TotalsRequest) (*model.DailyTotals, error) {
	date := req.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	t := &model.DailyTotals{
		MemberID:        memberID,
		TotalsDate:      date,
		Steps:           req.Steps,
		WaterMlOverride: req.WaterMlOverride,
	}
	if err := s.store.SaveDailyTotals(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TrackService) Habits(ctx context.Context, memberID int) ([]model.Habit, error) {
	return s.store.ActiveHabits(ctx, memberID)
}

func (s *TrackService) CreateHabit(ctx context.Context, memberID int, req model.HabitRequest) (*model.Habit, error) {
	h := &model.Habit{
		MemberID:    memberID,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   normalizeFrequency(req.Frequency),
		Priority:    normalizePriority(req.Priority),
		IsActive:    true,
	}
	if err := s.store.CreateHabit(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// CompleteHabit records today's completion and bumps the streak. The bump
// failing after the completion is written is reported, not rolled back; the
// completion itself is the source of truth.
func (s *TrackService) CompleteHabit(ctx context.Context, memberID, habitID int, value float64) (*model.HabitCompletion, error) {
	c := &model.HabitCompletion{
		MemberID:    memberID,
		HabitID:     habitID,
		CompletedAt: time.Now(),
		Value:       value,
	}
	if err := s.store.CreateCompletion(ctx, c); err != nil {
		return nil, err
	}
	if err := s.store.BumpStreak(ctx, habitID); err != nil {
		return c, fmt.Errorf("completion saved, streak not updated: %w", err)
	}
	return c, nil
}

func normalizeFrequency(f string) string {
	switch f {
	case "DAILY", "WEEKLY", "MONTHLY", "CUSTOM":
		return f
	}
	return "DAILY"
}

func normalizePriority(p string) string {
	switch p {
	case "LOW", "MEDIUM", "HIGH", "CRITICAL":
		return p
	}
	return "MEDIUM"
}
