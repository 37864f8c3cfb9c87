package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"health-coach/internal/model"
)

type ReminderType string

const (
	TypeHealthLog   ReminderType = "HEALTH_LOG"
	TypeHabit       ReminderType = "HABIT"
	TypeWellness    ReminderType = "WELLNESS"
	TypeMindfulness ReminderType = "MINDFULNESS"
	TypeChallenge   ReminderType = "CHALLENGE"
)

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

func priorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type ActionType string

const (
	ActionLogMeal          ActionType = "LOG_MEAL"
	ActionLogWater         ActionType = "LOG_WATER"
	ActionLogWeight        ActionType = "LOG_WEIGHT"
	ActionLogSleep         ActionType = "LOG_SLEEP"
	ActionLogWorkout       ActionType = "LOG_WORKOUT"
	ActionLogSupplement    ActionType = "LOG_SUPPLEMENT"
	ActionCompleteHabit    ActionType = "COMPLETE_HABIT"
	ActionStartMeditation  ActionType = "START_MEDITATION"
	ActionStartJournal     ActionType = "START_JOURNAL"
	ActionStartMindfulness ActionType = "START_MINDFULNESS"
	ActionViewProgress     ActionType = "VIEW_PROGRESS"
	ActionViewInsights     ActionType = "VIEW_INSIGHTS"
	ActionViewChallenge    ActionType = "VIEW_CHALLENGE"
	ActionViewSummary      ActionType = "VIEW_SUMMARY"
	ActionViewHabits       ActionType = "VIEW_HABITS"
)

// Reminder is one actionable suggestion. IDs are stable keys, unique within
// a generated batch; a second reminder carrying a seen id is dropped.
type Reminder struct {
	ID                string            `json:"id"`
	Type              ReminderType      `json:"type"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Priority          Priority          `json:"priority"`
	ActionType        ActionType        `json:"action_type"`
	ActionData        map[string]string `json:"action_data,omitempty"`
	EstimatedDuration int               `json:"estimated_duration"`
	CompletedAt       *time.Time        `json:"completed_at,omitempty"`
}

const (
	MinFocusTasks = 7
	MaxFocusTasks = 9

	// Hard cap on filler-synthesis attempts so quota backfill always
	// terminates even if the id space is polluted.
	maxFillerAttempts = 20
)

// Day windows, lower bound inclusive, upper exclusive.
type window int

const (
	morning window = iota
	afternoon
	evening
)

func windowOf(t time.Time) window {
	switch h := t.Hour(); {
	case h < 12:
		return morning
	case h < 17:
		return afternoon
	default:
		return evening
	}
}

// inMealWindow reports whether t falls inside a recognized meal slot:
// breakfast 06:00-10:00, lunch 11:30-14:00, dinner 17:30-21:00.
func inMealWindow(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	switch {
	case m >= 6*60 && m < 10*60:
		return true
	case m >= 11*60+30 && m < 14*60:
		return true
	case m >= 17*60+30 && m < 21*60:
		return true
	}
	return false
}

// pick chooses a phrasing from a rotation pool. Deterministic by calendar
// day so the same date always yields the same wording; do not replace with
// randomness.
func pick(t time.Time, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	return (int(t.Weekday()) + t.Day()) % poolSize
}

type phrasing struct {
	title string
	desc  string
}

type guardRule struct {
	id       string
	typ      ReminderType
	priority Priority
	action   ActionType
	duration int
	guard    func(d DayTotals, g Goals, w window) bool
	pool     []phrasing
}

var guardRules = []guardRule{
	{
		id: "water-morning", typ: TypeHealthLog, priority: PriorityHigh, action: ActionLogWater, duration: 2,
		guard: func(d DayTotals, g Goals, w window) bool { return w == morning && d.WaterMl < 500 },
		pool: []phrasing{
			{"Start with a glass of water", "Hydrate before anything else today."},
			{"Morning hydration", "A glass of water kickstarts your metabolism."},
			{"Drink up", "You haven't logged much water yet this morning."},
		},
	},
	{
		id: "water-afternoon", typ: TypeHealthLog, priority: PriorityMedium, action: ActionLogWater, duration: 2,
		guard: func(d DayTotals, g Goals, w window) bool { return w == afternoon && d.WaterMl < 1500 },
		pool: []phrasing{
			{"Afternoon water check", "You're behind on hydration for this time of day."},
			{"Keep the water coming", "Top up your bottle and log it."},
		},
	},
	{
		id: "water-evening", typ: TypeHealthLog, priority: PriorityMedium, action: ActionLogWater, duration: 2,
		guard: func(d DayTotals, g Goals, w window) bool { return w == evening && d.WaterMl < g.WaterMl },
		pool: []phrasing{
			{"Close the hydration gap", "A little more water before the day ends."},
			{"Evening water", "You're short of your daily water goal."},
		},
	},
	{
		id: "meal-breakfast", typ: TypeHealthLog, priority: PriorityHigh, action: ActionLogMeal, duration: 15,
		guard: func(d DayTotals, g Goals, w window) bool { return w == morning && d.MealCount == 0 },
		pool: []phrasing{
			{"Log your breakfast", "No meals logged yet today."},
			{"Breakfast time", "Fuel up and log what you eat."},
			{"Don't skip breakfast", "Start the day with something nourishing."},
		},
	},
	{
		id: "meal-lunch", typ: TypeHealthLog, priority: PriorityHigh, action: ActionLogMeal, duration: 20,
		guard: func(d DayTotals, g Goals, w window) bool { return w == afternoon && d.MealCount < 2 },
		pool: []phrasing{
			{"Log your lunch", "Keep your nutrition record complete."},
			{"Lunch check-in", "What did you have for lunch?"},
		},
	},
	{
		id: "meal-dinner", typ: TypeHealthLog, priority: PriorityHigh, action: ActionLogMeal, duration: 20,
		guard: func(d DayTotals, g Goals, w window) bool { return w == evening && d.MealCount < 3 },
		pool: []phrasing{
			{"Log your dinner", "Round out today's food diary."},
			{"Dinner time", "Log tonight's meal before you forget."},
		},
	},
	{
		id: "sleep-log", typ: TypeHealthLog, priority: PriorityMedium, action: ActionLogSleep, duration: 2,
		guard: func(d DayTotals, g Goals, w window) bool { return w == morning && !d.HasSleepLog },
		pool: []phrasing{
			{"How did you sleep?", "Log last night's sleep while it's fresh."},
			{"Record your sleep", "Sleep data powers your recovery insights."},
		},
	},
	{
		id: "weight-check", typ: TypeHealthLog, priority: PriorityLow, action: ActionLogWeight, duration: 2,
		guard: func(d DayTotals, g Goals, w window) bool { return w == morning && !d.HasWeightLog },
		pool: []phrasing{
			{"Morning weigh-in", "Consistent timing makes weight trends meaningful."},
			{"Step on the scale", "A quick weigh-in keeps your trend line honest."},
		},
	},
	{
		id: "supplement", typ: TypeHealthLog, priority: PriorityLow, action: ActionLogSupplement, duration: 2,
		guard: func(d DayTotals, g Goals, w window) bool { return w == morning && !d.HasSupplement },
		pool: []phrasing{
			{"Take your supplements", "Log them once they're down."},
			{"Supplement check", "Did you take your vitamins today?"},
		},
	},
	{
		id: "workout", typ: TypeHealthLog, priority: PriorityMedium, action: ActionLogWorkout, duration: 30,
		guard: func(d DayTotals, g Goals, w window) bool { return w != morning && d.WorkoutCount == 0 },
		pool: []phrasing{
			{"Move your body", "No workout logged yet today."},
			{"Time to train", "Even 20 minutes counts."},
			{"Get a workout in", "Your future self will thank you."},
		},
	},
	{
		id: "steps-push", typ: TypeWellness, priority: PriorityMedium, action: ActionViewProgress, duration: 10,
		guard: func(d DayTotals, g Goals, w window) bool {
			return w == afternoon && g.Steps > 0 && d.Steps < g.Steps/2
		},
		pool: []phrasing{
			{"Stretch your legs", "You're under half your step goal."},
			{"Take a walk", "An afternoon walk closes the step gap fast."},
		},
	},
	{
		id: "meditation", typ: TypeWellness, priority: PriorityMedium, action: ActionStartMeditation, duration: 10,
		guard: func(d DayTotals, g Goals, w window) bool { return w == evening && !d.HasMeditation },
		pool: []phrasing{
			{"Evening meditation", "Ten minutes to unwind before bed."},
			{"Quiet your mind", "A short session improves sleep quality."},
		},
	},
	{
		id: "journal", typ: TypeMindfulness, priority: PriorityLow, action: ActionStartJournal, duration: 10,
		guard: func(d DayTotals, g Goals, w window) bool { return w == evening && !d.HasJournal },
		pool: []phrasing{
			{"Journal today", "Three lines about how today went."},
			{"Reflect on your day", "What went well? What would you change?"},
		},
	},
	{
		id: "mindful-break", typ: TypeMindfulness, priority: PriorityLow, action: ActionStartMindfulness, duration: 5,
		guard: func(d DayTotals, g Goals, w window) bool { return w == afternoon && !d.HasMindful },
		pool: []phrasing{
			{"Mindful minute", "Pause and take five deep breaths."},
			{"Breathing break", "A short reset beats an afternoon slump."},
		},
	},
	{
		id: "challenge", typ: TypeChallenge, priority: PriorityLow, action: ActionViewChallenge, duration: 5,
		guard: func(d DayTotals, g Goals, w window) bool {
			return d.Steps >= g.Steps && d.WorkoutCount >= 2
		},
		pool: []phrasing{
			{"You're on fire", "Big day. See what challenge is open next."},
			{"Ready for more?", "Today's numbers say you can take on a challenge."},
		},
	},
}

// backfillPool is the fixed set of generic category reminders used to reach
// the focus-task minimum. One entry per category; an entry is skipped when
// its action type is already represented.
var backfillPool = []Reminder{
	{ID: "generic-nutrition", Type: TypeHealthLog, Priority: PriorityMedium, ActionType: ActionLogMeal,
		Title: "Plan your next meal", Description: "A logged meal is a mindful meal.", EstimatedDuration: 15},
	{ID: "generic-water", Type: TypeHealthLog, Priority: PriorityMedium, ActionType: ActionLogWater,
		Title: "Stay hydrated", Description: "Keep a water bottle within reach.", EstimatedDuration: 2},
	{ID: "generic-movement", Type: TypeHealthLog, Priority: PriorityMedium, ActionType: ActionLogWorkout,
		Title: "Get some movement in", Description: "Any activity counts, log it when done.", EstimatedDuration: 30},
	{ID: "generic-journal", Type: TypeMindfulness, Priority: PriorityLow, ActionType: ActionStartJournal,
		Title: "Write a few lines", Description: "Journaling keeps your head clear.", EstimatedDuration: 10},
	{ID: "generic-health-check", Type: TypeHealthLog, Priority: PriorityLow, ActionType: ActionLogWeight,
		Title: "Quick health check", Description: "Weigh in and keep your trend current.", EstimatedDuration: 2},
	{ID: "generic-wellness", Type: TypeWellness, Priority: PriorityLow, ActionType: ActionStartMindfulness,
		Title: "Take a wellness break", Description: "Five mindful minutes, any time.", EstimatedDuration: 5},
	{ID: "generic-habit-review", Type: TypeHabit, Priority: PriorityLow, ActionType: ActionViewHabits,
		Title: "Review your habits", Description: "See where your streaks stand.", EstimatedDuration: 5},
}

var fillerPool = []phrasing{
	{"Check your progress", "A quick look at today's numbers keeps you on track."},
	{"Explore your insights", "Your trends have something to tell you."},
	{"Review your day", "A minute of review beats an evening of guessing."},
}

// batch accumulates reminders with id dedup; insertion order is preserved
// and a repeated id is a no-op, never a merge.
type batch struct {
	items []Reminder
	seen  map[string]bool
}

func newBatch() *batch {
	return &batch{seen: make(map[string]bool)}
}

func (b *batch) add(r Reminder) {
	if b.seen[r.ID] {
		return
	}
	b.seen[r.ID] = true
	b.items = append(b.items, r)
}

func (b *batch) hasAction(a ActionType) bool {
	for _, r := range b.items {
		if r.ActionType == a {
			return true
		}
	}
	return false
}

// Feed generates the continuous reminder list for the given instant: every
// guard rule whose condition holds plus every active DAILY habit, ordered.
// No quota applies beyond guard exhaustion.
func Feed(now time.Time, d DayTotals, g Goals, habits []model.Habit, completions map[int]time.Time) []Reminder {
	b := collect(now, d, g, habits, completions)
	return order(now, b.items)
}

// FocusBatch generates the once-per-date Today's Focus list: the feed
// content backfilled to at least MinFocusTasks and capped at MaxFocusTasks.
func FocusBatch(now time.Time, d DayTotals, g Goals, habits []model.Habit, completions map[int]time.Time) []Reminder {
	b := collect(now, d, g, habits, completions)

	for _, r := range backfillPool {
		if len(b.items) >= MinFocusTasks {
			break
		}
		if b.hasAction(r.ActionType) {
			continue
		}
		b.add(r)
	}

	for i := 1; len(b.items) < MinFocusTasks && i <= maxFillerAttempts; i++ {
		p := fillerPool[pick(now, len(fillerPool))]
		b.add(Reminder{
			ID:                fmt.Sprintf("filler-%d", i),
			Type:              TypeWellness,
			Title:             p.title,
			Description:       p.desc,
			Priority:          PriorityLow,
			ActionType:        ActionViewInsights,
			EstimatedDuration: 5,
		})
	}

	out := order(now, b.items)
	if len(out) > MaxFocusTasks {
		out = out[:MaxFocusTasks]
	}
	return out
}

func collect(now time.Time, d DayTotals, g Goals, habits []model.Habit, completions map[int]time.Time) *batch {
	w := windowOf(now)
	b := newBatch()

	for _, rule := range guardRules {
		if !rule.guard(d, g, w) {
			continue
		}
		p := rule.pool[pick(now, len(rule.pool))]
		b.add(Reminder{
			ID:                rule.id,
			Type:              rule.typ,
			Title:             p.title,
			Description:       p.desc,
			Priority:          rule.priority,
			ActionType:        rule.action,
			EstimatedDuration: rule.duration,
		})
	}

	// Every active DAILY habit shows up regardless of guards, marked done
	// when today's completions include it.
	for _, h := range habits {
		if !h.IsActive || h.Frequency != "DAILY" {
			continue
		}
		r := Reminder{
			ID:                fmt.Sprintf("habit-%d", h.ID),
			Type:              TypeHabit,
			Title:             h.Title,
			Description:       habitDescription(h),
			Priority:          habitPriority(h),
			ActionType:        ActionCompleteHabit,
			ActionData:        map[string]string{"habit_id": strconv.Itoa(h.ID)},
			EstimatedDuration: 10,
		}
		if at, ok := completions[h.ID]; ok {
			t := at
			r.CompletedAt = &t
		}
		b.add(r)
	}

	return b
}

func habitDescription(h model.Habit) string {
	if h.Description != "" {
		return h.Description
	}
	if h.StreakCount > 0 {
		return fmt.Sprintf("Keep your %d-day streak alive.", h.StreakCount)
	}
	return "Complete this habit today."
}

func habitPriority(h model.Habit) Priority {
	switch Priority(h.Priority) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return Priority(h.Priority)
	}
	return PriorityMedium
}

// order applies the final multi-key ranking: water-ish items sink to the
// bottom regardless of declared priority, meal reminders float to the top
// only inside a recognized meal window, everything else ranks by priority.
// The sort is stable so ties keep insertion order.
func order(now time.Time, items []Reminder) []Reminder {
	mealTime := inMealWindow(now)
	rank := func(r Reminder) int {
		if isWaterish(r) {
			return -1000
		}
		if r.ActionType == ActionLogMeal && mealTime {
			return 1000
		}
		return priorityRank(r.Priority)
	}
	out := make([]Reminder, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) > rank(out[j]) })
	return out
}

func isWaterish(r Reminder) bool {
	if r.ActionType == ActionLogWater {
		return true
	}
	s := strings.ToLower(r.Title + " " + r.Description)
	return strings.Contains(s, "water") || strings.Contains(s, "glass")
}
