// Package engine implements the daily engagement engine: aggregation of a
// day's raw logs, the composite score, the reminder/focus-task generator,
// and the achievement detector. Everything in this package is pure; storage
// lives behind the caller.
package engine

import "health-coach/internal/model"

// DayTotals is the merged, de-double-counted summary of one member's one
// day of logs plus the external totals feed.
type DayTotals struct {
	WaterMl        int     `json:"total_water_ml"`
	SleepHours     float64 `json:"total_sleep_hours"`
	Steps          int     `json:"total_steps"`
	Calories       int     `json:"total_calories"`
	CaloriesBurned int     `json:"calories_burned"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	WorkoutCount   int     `json:"workout_count"`
	WorkoutMinutes int     `json:"workout_minutes"`
	MealCount      int     `json:"meal_count"`
	HasWeightLog   bool    `json:"has_weight_log"`
	HasMoodEntry   bool    `json:"has_mood_entry"`
	HasMeditation  bool    `json:"has_meditation"`
	HasJournal     bool    `json:"has_journal"`
	HasMindful     bool    `json:"has_mindful_session"`
	HasWinEntry    bool    `json:"has_win_entry"`
	HasSocial      bool    `json:"has_social"`
	HasSleepLog    bool    `json:"has_sleep_log"`
	HasSupplement  bool    `json:"has_supplement"`
	MetricsLogged  int     `json:"metrics_logged_count"`
}

// Aggregate folds one day of raw logs and an optional totals-feed record
// into a DayTotals. A nil totals record means zeros, never an error.
//
// Merge rules:
//   - water: a positive feed override wins outright; otherwise discrete
//     water logs are summed. The two sources are never combined.
//   - sleep: sessions outside (0h,24h] are dropped, then the single longest
//     session is taken. Naps must not inflate the total, so sessions are
//     never summed.
//   - steps: only the feed reports steps.
func Aggregate(logs []model.HealthLog, totals *model.DailyTotals) DayTotals {
	var d DayTotals

	waterFromLogs := 0
	for _, l := range logs {
		switch l.Type {
		case model.LogMeal:
			d.MealCount++
			if l.Calories > 0 {
				d.Calories += l.Calories
			}
			if l.Protein > 0 {
				d.Protein += l.Protein
			}
			if l.Carbs > 0 {
				d.Carbs += l.Carbs
			}
			if l.Fat > 0 {
				d.Fat += l.Fat
			}
		case model.LogWorkout:
			d.WorkoutCount++
			if l.DurationMin > 0 {
				d.WorkoutMinutes += l.DurationMin
			}
			if l.CaloriesBurned > 0 {
				d.CaloriesBurned += l.CaloriesBurned
			}
		case model.LogSleep:
			if l.SleepHours > 0 && l.SleepHours <= 24 {
				d.HasSleepLog = true
				if l.SleepHours > d.SleepHours {
					d.SleepHours = l.SleepHours
				}
			}
		case model.LogWater:
			if l.WaterMl > 0 {
				waterFromLogs += l.WaterMl
			}
		case model.LogWeight:
			d.HasWeightLog = true
		case model.LogSupplement:
			d.HasSupplement = true
		case model.LogMood:
			d.HasMoodEntry = true
		case model.LogMeditation:
			d.HasMeditation = true
		case model.LogJournal:
			d.HasJournal = true
		case model.LogMindfulness:
			d.HasMindful = true
		case model.LogWin:
			d.HasWinEntry = true
		case model.LogSocial:
			d.HasSocial = true
		}
	}

	d.WaterMl = waterFromLogs
	if totals != nil {
		d.Steps = totals.Steps
		if totals.WaterMlOverride > 0 {
			d.WaterMl = totals.WaterMlOverride
		}
	}

	d.MetricsLogged = d.countMetrics()
	return d
}

func (d *DayTotals) countMetrics() int {
	n := 0
	for _, ok := range []bool{
		d.MealCount > 0,
		d.WaterMl > 0,
		d.HasSleepLog,
		d.WorkoutCount > 0,
		d.HasWeightLog,
		d.Steps > 0,
		d.HasMoodEntry,
		d.HasMeditation,
		d.HasJournal,
		d.HasMindful,
	} {
		if ok {
			n++
		}
	}
	return n
}
