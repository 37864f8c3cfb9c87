package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"health-coach/internal/engine"
	"health-coach/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	logs        map[string][]model.HealthLog
	totals      map[string]*model.DailyTotals
	habits      []model.Habit
	completions []model.HabitCompletion
	profile     *model.Profile
	focus       map[string][]model.FocusTask
	wins        []model.WinEntry

	failAll   bool
	failRules map[string]bool
	saveCalls int
	lastSince time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		logs:   map[string][]model.HealthLog{},
		totals: map[string]*model.DailyTotals{},
		focus:  map[string][]model.FocusTask{},
	}
}

var errDown = errors.New("store down")

func (f *fakeStore) MemberByUsername(ctx context.Context, username string) (*model.Member, error) {
	return nil, errDown
}

func (f *fakeStore) LogsForDate(ctx context.Context, memberID int, date string) ([]model.HealthLog, error) {
	if f.failAll {
		return nil, errDown
	}
	return f.logs[date], nil
}

func (f *fakeStore) CreateLog(ctx context.Context, l *model.HealthLog) error {
	if f.failAll {
		return errDown
	}
	f.logs[l.LogDate] = append(f.logs[l.LogDate], *l)
	return nil
}

func (f *fakeStore) DailyTotals(ctx context.Context, memberID int, date string) (*model.DailyTotals, error) {
	if f.failAll {
		return nil, errDown
	}
	return f.totals[date], nil
}

func (f *fakeStore) SaveDailyTotals(ctx context.Context, t *model.DailyTotals) error {
	if f.failAll {
		return errDown
	}
	f.totals[t.TotalsDate] = t
	return nil
}

func (f *fakeStore) ActiveHabits(ctx context.Context, memberID int) ([]model.Habit, error) {
	if f.failAll {
		return nil, errDown
	}
	return f.habits, nil
}

func (f *fakeStore) CreateHabit(ctx context.Context, h *model.Habit) error {
	if f.failAll {
		return errDown
	}
	h.ID = len(f.habits) + 1
	f.habits = append(f.habits, *h)
	return nil
}

func (f *fakeStore) CompletionsSince(ctx context.Context, memberID int, since time.Time) ([]model.HabitCompletion, error) {
	if f.failAll {
		return nil, errDown
	}
	f.lastSince = since
	return f.completions, nil
}

func (f *fakeStore) CreateCompletion(ctx context.Context, c *model.HabitCompletion) error {
	f.completions = append(f.completions, *c)
	return nil
}

func (f *fakeStore) BumpStreak(ctx context.Context, habitID int) error { return nil }

func (f *fakeStore) Profile(ctx context.Context, memberID int) (*model.Profile, error) {
	if f.failAll {
		return nil, errDown
	}
	return f.profile, nil
}

func (f *fakeStore) FocusTasksForDate(ctx context.Context, memberID int, date string) ([]model.FocusTask, error) {
	if f.failAll {
		return nil, errDown
	}
	return f.focus[date], nil
}

func (f *fakeStore) SaveFocusTasks(ctx context.Context, tasks []model.FocusTask) error {
	if len(tasks) > 0 {
		f.focus[tasks[0].TaskDate] = tasks
	}
	return nil
}

func (f *fakeStore) SaveWin(ctx context.Context, w *model.WinEntry) error {
	f.saveCalls++
	if f.failRules[w.RuleID] {
		return errDown
	}
	// upsert on (member, date, rule)
	for i, existing := range f.wins {
		if existing.MemberID == w.MemberID && existing.WinDate == w.WinDate && existing.RuleID == w.RuleID {
			f.wins[i] = *w
			return nil
		}
	}
	f.wins = append(f.wins, *w)
	return nil
}

func (f *fakeStore) WinsForDate(ctx context.Context, memberID int, date string) ([]model.WinEntry, error) {
	if f.failAll {
		return nil, errDown
	}
	var out []model.WinEntry
	for _, w := range f.wins {
		if w.WinDate == date {
			out = append(out, w)
		}
	}
	return out, nil
}

const testDate = "2026-08-27"

func testNow(hour int) time.Time {
	return time.Date(2026, 8, 27, hour, 0, 0, 0, time.UTC)
}

func TestFocusTasksEndToEnd(t *testing.T) {
	// fresh day: no logs, no totals feed, one uncompleted DAILY habit, 09:00
	st := newFakeStore()
	st.habits = []model.Habit{{
		ID: 1, MemberID: 1, Title: "Morning stretch",
		Frequency: "DAILY", Priority: "MEDIUM", IsActive: true,
	}}
	svc := NewDailyService(st, 7, 1)

	tasks, err := svc.FocusTasks(context.Background(), 1, testDate, testNow(9))
	require.NoError(t, err)
	require.Len(t, tasks, engine.MinFocusTasks)

	byReminder := map[string]int{}
	for i, task := range tasks {
		byReminder[task.ReminderID] = i
		assert.Equal(t, i, task.Position)
	}

	breakfast, ok := byReminder["meal-breakfast"]
	require.True(t, ok, "expected a breakfast reminder")
	water, ok := byReminder["water-morning"]
	require.True(t, ok, "expected a morning water reminder")
	habit, ok := byReminder["habit-1"]
	require.True(t, ok, "expected the habit reminder")

	assert.Equal(t, 0, breakfast, "breakfast ranks first inside the meal window")
	assert.Less(t, breakfast, habit)
	assert.Less(t, habit, water, "water sinks below the habit")
	assert.Nil(t, tasks[habit].CompletedAt)
}

func TestFocusTasksGeneratedOncePerDate(t *testing.T) {
	st := newFakeStore()
	svc := NewDailyService(st, 7, 1)

	first, err := svc.FocusTasks(context.Background(), 1, testDate, testNow(9))
	require.NoError(t, err)
	again, err := svc.FocusTasks(context.Background(), 1, testDate, testNow(20))
	require.NoError(t, err)

	require.Len(t, again, len(first))
	assert.Equal(t, first[0].BatchID, again[0].BatchID, "second call must return the stored batch")
}

func TestRemindersDegradeToEmptyOnStoreFailure(t *testing.T) {
	st := newFakeStore()
	st.failAll = true
	svc := NewDailyService(st, 7, 1)

	rs := svc.Reminders(context.Background(), 1, testDate, testNow(9))
	assert.NotNil(t, rs)
	assert.Empty(t, rs)

	scores, daily := svc.Scores(context.Background(), 1, testDate)
	assert.Equal(t, engine.CategoryScores{}, scores)
	assert.Equal(t, 0, daily)
}

func TestScoresCountHabitCompletions(t *testing.T) {
	st := newFakeStore()
	st.habits = []model.Habit{
		{ID: 1, MemberID: 1, Title: "A", Frequency: "DAILY", IsActive: true},
		{ID: 2, MemberID: 1, Title: "B", Frequency: "DAILY", IsActive: true},
	}
	st.completions = []model.HabitCompletion{
		{MemberID: 1, HabitID: 1, CompletedAt: testNow(8)},
		{MemberID: 1, HabitID: 2, CompletedAt: testNow(8).AddDate(0, 0, -1)}, // yesterday, out of scope
	}
	svc := NewDailyService(st, 7, 1)

	scores, _ := svc.Scores(context.Background(), 1, testDate)
	assert.Equal(t, 50, scores.Habits)
}

func TestDetectWinsPersistsIndependently(t *testing.T) {
	st := newFakeStore()
	// one prior day of history so records have a baseline
	prior := "2026-08-26"
	st.totals[prior] = &model.DailyTotals{MemberID: 1, TotalsDate: prior, Steps: 6000}
	st.totals[testDate] = &model.DailyTotals{MemberID: 1, TotalsDate: testDate, Steps: 12000}
	st.logs[testDate] = []model.HealthLog{{Type: model.LogWater, WaterMl: 2200, LogDate: testDate}}
	st.failRules = map[string]bool{"steps_goal": true}
	svc := NewDailyService(st, 7, 1)

	saved, err := svc.DetectWins(context.Background(), 1, testDate)
	require.NoError(t, err)

	rules := map[string]bool{}
	for _, w := range saved {
		rules[w.RuleID] = true
	}
	assert.False(t, rules["steps_goal"], "failed write is skipped")
	assert.True(t, rules["steps_record"], "other writes proceed past the failure")
	assert.True(t, rules["water_record"])
	assert.True(t, rules["water_goal"])
}

func TestDetectWinsExcludesEvaluatedDateFromBaseline(t *testing.T) {
	st := newFakeStore()
	// today has the best-ever steps; if today leaked into its own baseline
	// the record could never fire
	st.totals[testDate] = &model.DailyTotals{MemberID: 1, TotalsDate: testDate, Steps: 9000}
	st.totals["2026-08-25"] = &model.DailyTotals{MemberID: 1, TotalsDate: "2026-08-25", Steps: 5000}
	svc := NewDailyService(st, 7, 1)

	saved, err := svc.DetectWins(context.Background(), 1, testDate)
	require.NoError(t, err)

	found := false
	for _, w := range saved {
		if w.RuleID == "steps_record" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectWinsRerunUpserts(t *testing.T) {
	st := newFakeStore()
	st.totals[testDate] = &model.DailyTotals{MemberID: 1, TotalsDate: testDate, Steps: 11000}
	svc := NewDailyService(st, 7, 1)

	first, err := svc.DetectWins(context.Background(), 1, testDate)
	require.NoError(t, err)
	second, err := svc.DetectWins(context.Background(), 1, testDate)
	require.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	assert.Len(t, st.wins, len(first), "re-running a processed date must not duplicate wins")
}

func TestScoresIncludeDetectedWins(t *testing.T) {
	st := newFakeStore()
	st.totals[testDate] = &model.DailyTotals{MemberID: 1, TotalsDate: testDate, Steps: 11000}
	svc := NewDailyService(st, 7, 1)

	saved, err := svc.DetectWins(context.Background(), 1, testDate)
	require.NoError(t, err)
	require.NotEmpty(t, saved, "steps goal should have been detected")

	scores, _ := svc.Scores(context.Background(), 1, testDate)
	assert.Equal(t, 10, scores.Wellness, "a saved win must earn the wellness bonus")

	sum := svc.Summary(context.Background(), 1, testDate, testNow(9))
	assert.True(t, sum.Totals.HasWinEntry)
}

func TestScoresWithoutWinsNoBonus(t *testing.T) {
	st := newFakeStore()
	st.totals[testDate] = &model.DailyTotals{MemberID: 1, TotalsDate: testDate, Steps: 2000}
	svc := NewDailyService(st, 7, 1)

	scores, _ := svc.Scores(context.Background(), 1, testDate)
	assert.Equal(t, 0, scores.Wellness)
}

func TestCompletionLookbackWindow(t *testing.T) {
	st := newFakeStore()
	svc := NewDailyService(st, 7, 3)

	svc.Scores(context.Background(), 1, testDate)
	want := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, st.lastSince, "a 3-day lookback starts two days before the date")

	svc = NewDailyService(st, 7, 1)
	svc.Scores(context.Background(), 1, testDate)
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), st.lastSince)
}

func TestSummaryAssemblesRenderableState(t *testing.T) {
	st := newFakeStore()
	st.logs[testDate] = []model.HealthLog{
		{Type: model.LogMeal, Calories: 600, LogDate: testDate},
		{Type: model.LogWater, WaterMl: 500, LogDate: testDate},
	}
	svc := NewDailyService(st, 7, 1)

	sum := svc.Summary(context.Background(), 1, testDate, testNow(9))
	assert.Equal(t, testDate, sum.Date)
	assert.Equal(t, 600, sum.Totals.Calories)
	assert.Equal(t, 500, sum.Totals.WaterMl)
	assert.NotEmpty(t, sum.Reminders)
	assert.NotNil(t, sum.Wins)
}

func TestCompletionsOnScopesByCalendarDay(t *testing.T) {
	cs := []model.HabitCompletion{
		{HabitID: 1, CompletedAt: time.Date(2026, 8, 27, 23, 59, 0, 0, time.UTC)},
		{HabitID: 2, CompletedAt: time.Date(2026, 8, 28, 0, 1, 0, 0, time.UTC)},
	}
	got := completionsOn(cs, "2026-08-27")
	require.Len(t, got, 1)
	_, ok := got[1]
	assert.True(t, ok)
}

func TestTrackServiceDefaultsDateAndNormalizes(t *testing.T) {
	st := newFakeStore()
	svc := NewTrackService(st)

	l, err := svc.AddLog(context.Background(), 1, model.LogRequest{Type: model.LogWater, WaterMl: 300})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(dateLayout), l.LogDate)

	h, err := svc.CreateHabit(context.Background(), 1, model.HabitRequest{Title: "Stretch", Frequency: "bogus", Priority: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, "DAILY", h.Frequency)
	assert.Equal(t, "MEDIUM", h.Priority)
	assert.True(t, h.IsActive)
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "", joinTags(nil))
	assert.Equal(t, "a,b", joinTags([]string{"a", "b"}))
	assert.False(t, strings.Contains(joinTags([]string{"one"}), ","))
}

func TestDetectWinsEmptyHistoryEmptyDay(t *testing.T) {
	st := newFakeStore()
	svc := NewDailyService(st, 3, 1)

	saved, err := svc.DetectWins(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Zero(t, st.saveCalls, "nothing detected means nothing written")
}
