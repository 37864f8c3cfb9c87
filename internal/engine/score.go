package engine

import (
	"math"

	"health-coach/internal/model"
)

// Goals are the per-member targets the score curves are shaped against.
type Goals struct {
	Calories   int
	WaterMl    int
	Steps      int
	SleepHours float64
}

// DefaultGoals backstop a missing or incomplete profile.
var DefaultGoals = Goals{Calories: 2000, WaterMl: 2000, Steps: 10000, SleepHours: 8}

// GoalsFromProfile fills unset profile fields from the defaults. A nil
// profile is normal and yields the defaults.
func GoalsFromProfile(p *model.Profile) Goals {
	g := DefaultGoals
	if p == nil {
		return g
	}
	if p.CalorieGoal > 0 {
		g.Calories = p.CalorieGoal
	}
	if p.WaterGoalMl > 0 {
		g.WaterMl = p.WaterGoalMl
	}
	if p.StepGoal > 0 {
		g.Steps = p.StepGoal
	}
	if p.SleepGoalHours > 0 {
		g.SleepHours = p.SleepGoalHours
	}
	return g
}

type CategoryScores struct {
	Health   int `json:"health_score"`
	Wellness int `json:"wellness_score"`
	Habits   int `json:"habits_score"`
}

// HealthScore scores physical-metric progress 0..100. Each metric earns
// round(sqrt(actual/goal) * cap) so partial progress is rewarded more than
// a linear curve would.
func HealthScore(d DayTotals, g Goals) int {
	score := 0
	score += curvePoints(float64(d.Calories), float64(g.Calories), 25)
	score += curvePoints(float64(d.WaterMl), float64(g.WaterMl), 20)
	score += curvePoints(float64(d.Steps), float64(g.Steps), 15)
	score += curvePoints(d.SleepHours, g.SleepHours, 15)

	if d.HasWeightLog {
		score += 10
	}

	switch {
	case d.WorkoutCount >= 2:
		score += 10
	case d.WorkoutCount == 1:
		score += 8
	}
	if d.WorkoutCount > 0 {
		bonus := d.WorkoutMinutes / 45
		if bonus > 2 {
			bonus = 2
		}
		score += bonus
	}

	switch {
	case d.MetricsLogged >= 4:
		score += 5
	case d.MetricsLogged >= 2:
		score += 3
	}

	return clampScore(score)
}

func curvePoints(actual, goal, cap float64) int {
	if goal <= 0 {
		return 0
	}
	ratio := actual / goal
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(math.Sqrt(ratio) * cap))
}

// WellnessInputs carries the non-log wellness signals the aggregator cannot
// see: whether every focus task for the day is done.
type WellnessInputs struct {
	AllFocusDone bool
}

// WellnessScore sums independent flat bonuses. The flags are not mutually
// exclusive and can total 125; the clamp to 100 is the only ceiling.
func WellnessScore(d DayTotals, in WellnessInputs) int {
	score := 0
	if d.HasMoodEntry {
		score += 30
	}
	if d.HasMeditation {
		score += 25
	}
	if d.HasJournal {
		score += 20
	}
	if d.HasMindful {
		score += 15
	}
	if d.HasWinEntry {
		score += 10
	}
	if d.HasSocial {
		score += 10
	}
	if in.AllFocusDone {
		score += 15
	}
	return clampScore(score)
}

// HabitsScore is the completion ratio with a +5 perfect-day bonus. Zero
// active habits is a defined 0, never a division error.
func HabitsScore(completedToday, totalActive int) int {
	if totalActive <= 0 {
		return 0
	}
	score := completedToday * 100 / totalActive
	if completedToday == totalActive {
		score += 5
	}
	return clampScore(score)
}

// DailyScore is the weighted composite: 50% health, 30% wellness, 20% habits.
func DailyScore(s CategoryScores) int {
	return clampScore(int(0.50*float64(s.Health) + 0.30*float64(s.Wellness) + 0.20*float64(s.Habits)))
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
