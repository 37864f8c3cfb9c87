package engine

import (
	"fmt"

	"health-coach/internal/model"
)

// DefaultHistoryDays is the trailing window the detector compares against.
const DefaultHistoryDays = 90

// Baseline holds per-metric maxima over the days strictly before the
// evaluated date. The evaluated date is never part of its own baseline.
type Baseline struct {
	Steps          int
	WaterMl        int
	WorkoutCount   int
	CaloriesBurned int
	SleepHours     float64
	Days           int
}

// Merge folds one prior day into the running maxima.
func (b *Baseline) Merge(d DayTotals) {
	b.Days++
	if d.Steps > b.Steps {
		b.Steps = d.Steps
	}
	if d.WaterMl > b.WaterMl {
		b.WaterMl = d.WaterMl
	}
	if d.WorkoutCount > b.WorkoutCount {
		b.WorkoutCount = d.WorkoutCount
	}
	if d.CaloriesBurned > b.CaloriesBurned {
		b.CaloriesBurned = d.CaloriesBurned
	}
	if d.SleepHours > b.SleepHours {
		b.SleepHours = d.SleepHours
	}
}

// Win is a detected achievement before persistence. RuleID keys the upsert
// so a re-run for the same date cannot duplicate the entry.
type Win struct {
	Date   string
	RuleID string
	Text   string
	Mood   string
	Tags   []string
}

// DetectWins evaluates record, goal, habit and macro rules for one date.
//
// Record rules need today to beat the baseline and clear a floor; most also
// need a prior baseline to exist, so a first-ever data point is not hailed
// as a "record". Goal rules are history-independent.
func DetectWins(date string, d DayTotals, base Baseline, habits []model.Habit, completions map[int]bool, profile *model.Profile) []Win {
	var wins []Win
	add := func(rule, text, mood string, tags ...string) {
		wins = append(wins, Win{Date: date, RuleID: rule, Text: text, Mood: mood, Tags: tags})
	}

	// Records need an existing baseline: with zero days of history nothing
	// counts as a "personal record", only as a goal.
	if base.Days > 0 {
		if d.Steps > base.Steps && d.Steps >= 5000 {
			add("steps_record", fmt.Sprintf("New personal record: %d steps in one day!", d.Steps), "proud", "steps", "record")
		}
		if d.WaterMl > base.WaterMl && d.WaterMl >= 1000 {
			add("water_record", fmt.Sprintf("Most water ever logged: %dml!", d.WaterMl), "proud", "water", "record")
		}
		if d.WorkoutCount > base.WorkoutCount && d.WorkoutCount > 0 &&
			(d.WorkoutCount > 1 || base.WorkoutCount > 0) {
			add("workout_record", fmt.Sprintf("New record: %d workouts in a single day!", d.WorkoutCount), "proud", "workout", "record")
		}
		if d.CaloriesBurned > base.CaloriesBurned && d.CaloriesBurned > 0 {
			add("calories_record", fmt.Sprintf("Highest burn yet: %d calories!", d.CaloriesBurned), "proud", "workout", "record")
		}
		if d.SleepHours >= 6.0 && d.SleepHours <= 12.0 &&
			d.SleepHours > base.SleepHours && base.SleepHours > 0 {
			add("sleep_record", fmt.Sprintf("Best night of sleep on record: %.1f hours.", d.SleepHours), "rested", "sleep", "record")
		}
	}

	// goals
	if d.Steps >= 10000 {
		add("steps_goal", fmt.Sprintf("Hit %d steps today, goal smashed!", d.Steps), "accomplished", "steps", "goal")
	}
	if d.WaterMl >= 2000 {
		add("water_goal", fmt.Sprintf("Drank %dml of water, hydration goal met!", d.WaterMl), "accomplished", "water", "goal")
	}
	if d.WorkoutCount >= 1 {
		add("workout_goal", "Got a workout in today!", "accomplished", "workout", "goal")
	}
	if d.SleepHours >= 7.0 && d.SleepHours <= 9.0 {
		add("sleep_goal", fmt.Sprintf("Slept %.1f hours, right in the healthy range.", d.SleepHours), "rested", "sleep", "goal")
	}

	wins = append(wins, habitWins(date, habits, completions)...)
	wins = append(wins, macroWins(date, d, profile)...)
	return wins
}

func habitWins(date string, habits []model.Habit, completions map[int]bool) []Win {
	var wins []Win
	completed := 0
	for _, h := range habits {
		if !completions[h.ID] {
			continue
		}
		completed++
		if h.StreakCount > 0 && h.StreakCount%7 == 0 {
			wins = append(wins, Win{
				Date: date, RuleID: fmt.Sprintf("habit_streak_%d", h.ID),
				Text: fmt.Sprintf("%d-day streak on %q!", h.StreakCount, h.Title),
				Mood: "determined", Tags: []string{"habit", "streak"},
			})
		}
		switch h.StreakCount {
		case 7, 30, 100:
			wins = append(wins, Win{
				Date: date, RuleID: fmt.Sprintf("habit_milestone_%d", h.ID),
				Text: fmt.Sprintf("Milestone reached: %d days of %q.", h.StreakCount, h.Title),
				Mood: "proud", Tags: []string{"habit", "milestone"},
			})
		}
	}
	if completed > 0 {
		wins = append(wins, Win{
			Date: date, RuleID: "habits_completed",
			Text: fmt.Sprintf("Completed %d habit(s) today.", completed),
			Mood: "accomplished", Tags: []string{"habit"},
		})
	}
	return wins
}

// macroWins checks macros against a ±10% band around profile targets.
// A perfect day suppresses the standalone protein win; carbs- or fat-only
// hits are not reported at all.
func macroWins(date string, d DayTotals, profile *model.Profile) []Win {
	if profile == nil {
		return nil
	}
	inBand := func(actual, target float64) bool {
		return target > 0 && actual >= target*0.9 && actual <= target*1.1
	}
	protein := inBand(d.Protein, profile.ProteinTarget)
	carbs := inBand(d.Carbs, profile.CarbsTarget)
	fat := inBand(d.Fat, profile.FatTarget)

	switch {
	case protein && carbs && fat:
		return []Win{{
			Date: date, RuleID: "macro_perfect",
			Text: "Perfect macro day: protein, carbs and fat all on target.",
			Mood: "accomplished", Tags: []string{"nutrition", "macros"},
		}}
	case protein:
		return []Win{{
			Date: date, RuleID: "macro_protein",
			Text: fmt.Sprintf("Protein goal hit: %.0fg.", d.Protein),
			Mood: "accomplished", Tags: []string{"nutrition", "protein"},
		}}
	}
	return nil
}
