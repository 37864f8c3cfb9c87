package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"health-coach/internal/engine"
	"health-coach/internal/logger"
	"health-coach/internal/model"
	"health-coach/internal/store"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// DailyService owns one member's day: it runs the aggregation fan-out and
// feeds the score calculator, reminder generator and achievement detector.
type DailyService struct {
	store          store.Store
	historyDays    int
	completionDays int
}

func NewDailyService(st store.Store, historyDays, completionDays int) *DailyService {
	if historyDays <= 0 {
		historyDays = engine.DefaultHistoryDays
	}
	if completionDays <= 0 {
		completionDays = 1
	}
	return &DailyService{store: st, historyDays: historyDays, completionDays: completionDays}
}

// dayState performs the single aggregation step everything fans out from.
type dayState struct {
	totals      engine.DayTotals
	goals       engine.Goals
	habits      []model.Habit
	completions map[int]time.Time
	profile     *model.Profile
}

func (s *DailyService) loadDay(ctx context.Context, memberID int, date string) (*dayState, error) {
	logs, err := s.store.LogsForDate(ctx, memberID, date)
	if err != nil {
		return nil, err
	}
	feed, err := s.store.DailyTotals(ctx, memberID, date)
	if err != nil {
		return nil, err
	}
	habits, err := s.store.ActiveHabits(ctx, memberID)
	if err != nil {
		return nil, err
	}
	day, _ := time.Parse(dateLayout, date)
	since := day.AddDate(0, 0, -(s.completionDays - 1))
	completions, err := s.store.CompletionsSince(ctx, memberID, since)
	if err != nil {
		return nil, err
	}
	profile, err := s.store.Profile(ctx, memberID)
	if err != nil {
		return nil, err
	}

	return &dayState{
		totals:      engine.Aggregate(logs, feed),
		goals:       engine.GoalsFromProfile(profile),
		habits:      habits,
		completions: completionsOn(completions, date),
		profile:     profile,
	}, nil
}

// completionsOn scopes completions to one calendar day by wall-clock date.
func completionsOn(cs []model.HabitCompletion, date string) map[int]time.Time {
	out := make(map[int]time.Time)
	for _, c := range cs {
		if c.CompletedAt.Format(dateLayout) == date {
			out[c.HabitID] = c.CompletedAt
		}
	}
	return out
}

// Reminders returns the continuous suggestion feed for the given instant.
// A data-layer failure degrades to an empty feed so the UI always has a
// renderable state.
func (s *DailyService) Reminders(ctx context.Context, memberID int, date string, now time.Time) []engine.Reminder {
	st, err := s.loadDay(ctx, memberID, date)
	if err != nil {
		logger.Warn("reminders.degraded", "member_id", memberID, "date", date, "err", err)
		return []engine.Reminder{}
	}
	return engine.Feed(now, st.totals, st.goals, st.habits, st.completions)
}

// Scores computes the category scores and the weighted daily composite.
// Failures degrade to zero scores.
func (s *DailyService) Scores(ctx context.Context, memberID int, date string) (engine.CategoryScores, int) {
	st, err := s.loadDay(ctx, memberID, date)
	if err != nil {
		logger.Warn("scores.degraded", "member_id", memberID, "date", date, "err", err)
		return engine.CategoryScores{}, 0
	}

	// Detected wins live in the win store, not in the raw log list the
	// aggregator folds, so surface them here for the wellness bonus.
	if wins, err := s.store.WinsForDate(ctx, memberID, date); err == nil && len(wins) > 0 {
		st.totals.HasWinEntry = true
	}

	allFocusDone := false
	if tasks, err := s.store.FocusTasksForDate(ctx, memberID, date); err == nil && len(tasks) > 0 {
		allFocusDone = true
		for _, t := range tasks {
			if t.CompletedAt == nil {
				allFocusDone = false
				break
			}
		}
	}

	completed := 0
	active := 0
	for _, h := range st.habits {
		active++
		if _, ok := st.completions[h.ID]; ok {
			completed++
		}
	}

	scores := engine.CategoryScores{
		Health:   engine.HealthScore(st.totals, st.goals),
		Wellness: engine.WellnessScore(st.totals, engine.WellnessInputs{AllFocusDone: allFocusDone}),
		Habits:   engine.HabitsScore(completed, active),
	}
	return scores, engine.DailyScore(scores)
}

// FocusTasks returns the Today's Focus batch for the date, generating and
// persisting one only if none exists yet.
func (s *DailyService) FocusTasks(ctx context.Context, memberID int, date string, now time.Time) ([]model.FocusTask, error) {
	existing, err := s.store.FocusTasksForDate(ctx, memberID, date)
	if err != nil {
		return nil, fmt.Errorf("load focus tasks: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	st, err := s.loadDay(ctx, memberID, date)
	if err != nil {
		return nil, fmt.Errorf("load day: %w", err)
	}

	reminders := engine.FocusBatch(now, st.totals, st.goals, st.habits, st.completions)
	batchID := uuid.NewString()
	tasks := make([]model.FocusTask, 0, len(reminders))
	for i, r := range reminders {
		tasks = append(tasks, model.FocusTask{
			MemberID:    memberID,
			TaskDate:    date,
			BatchID:     batchID,
			ReminderID:  r.ID,
			Type:        string(r.Type),
			Title:       r.Title,
			Description: r.Description,
			Priority:    string(r.Priority),
			ActionType:  string(r.ActionType),
			Position:    i,
			CompletedAt: r.CompletedAt,
		})
	}
	if err := s.store.SaveFocusTasks(ctx, tasks); err != nil {
		return nil, fmt.Errorf("save focus tasks: %w", err)
	}
	logger.Info("focus.generated", "member_id", memberID, "date", date, "batch_id", batchID, "count", len(tasks))
	return tasks, nil
}

// DetectWins rebuilds the trailing historical baseline, evaluates the win
// rules for the date and persists each detected win independently. Writes
// run under a non-cancellable context so an already-detected batch is not
// lost to caller cancellation; a single failed write is logged and skipped.
func (s *DailyService) DetectWins(ctx context.Context, memberID int, date string) ([]model.WinEntry, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	var base engine.Baseline
	for i := 1; i <= s.historyDays; i++ {
		prior := day.AddDate(0, 0, -i).Format(dateLayout)
		logs, err := s.store.LogsForDate(ctx, memberID, prior)
		if err != nil {
			return nil, fmt.Errorf("load history %s: %w", prior, err)
		}
		feed, err := s.store.DailyTotals(ctx, memberID, prior)
		if err != nil {
			return nil, fmt.Errorf("load history totals %s: %w", prior, err)
		}
		// empty days are absence of history, not zero-valued history
		if len(logs) == 0 && feed == nil {
			continue
		}
		base.Merge(engine.Aggregate(logs, feed))
	}

	st, err := s.loadDay(ctx, memberID, date)
	if err != nil {
		return nil, fmt.Errorf("load day: %w", err)
	}

	done := make(map[int]bool, len(st.completions))
	for id := range st.completions {
		done[id] = true
	}
	wins := engine.DetectWins(date, st.totals, base, st.habits, done, st.profile)

	writeCtx := context.WithoutCancel(ctx)
	saved := make([]model.WinEntry, 0, len(wins))
	for _, w := range wins {
		entry := model.WinEntry{
			MemberID: memberID,
			WinDate:  w.Date,
			RuleID:   w.RuleID,
			Text:     w.Text,
			Mood:     w.Mood,
			Tags:     joinTags(w.Tags),
		}
		if err := s.store.SaveWin(writeCtx, &entry); err != nil {
			logger.Warn("win.save_failed", "member_id", memberID, "date", date, "rule", w.RuleID, "err", err)
			continue
		}
		saved = append(saved, entry)
	}
	logger.Info("wins.detected", "member_id", memberID, "date", date, "detected", len(wins), "saved", len(saved))
	return saved, nil
}

func joinTags(tags []string) string { return strings.Join(tags, ",") }

// Summary is the one-call dashboard payload.
type Summary struct {
	Date       string                `json:"date"`
	Totals     engine.DayTotals      `json:"totals"`
	Scores     engine.CategoryScores `json:"scores"`
	DailyScore int                   `json:"daily_score"`
	Reminders  []engine.Reminder     `json:"reminders"`
	Wins       []model.WinEntry      `json:"wins"`
}

func (s *DailyService) Summary(ctx context.Context, memberID int, date string, now time.Time) Summary {
	scores, daily := s.Scores(ctx, memberID, date)
	wins, err := s.store.WinsForDate(ctx, memberID, date)
	if err != nil {
		logger.Warn("summary.wins_degraded", "member_id", memberID, "date", date, "err", err)
	}
	if wins == nil {
		wins = []model.WinEntry{}
	}

	sum := Summary{
		Date:       date,
		Scores:     scores,
		DailyScore: daily,
		Reminders:  s.Reminders(ctx, memberID, date, now),
		Wins:       wins,
	}
	if st, err := s.loadDay(ctx, memberID, date); err == nil {
		sum.Totals = st.totals
		if len(wins) > 0 {
			sum.Totals.HasWinEntry = true
		}
	}
	return sum
}
