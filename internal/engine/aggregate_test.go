package engine

import (
	"testing"

	"health-coach/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAggregateSleepTakesLongestValidSession(t *testing.T) {
	logs := []model.HealthLog{
		{Type: model.LogSleep, SleepHours: 3.0},
		{Type: model.LogSleep, SleepHours: 7.5},
		{Type: model.LogSleep, SleepHours: 25.0}, // invalid, filtered
	}
	d := Aggregate(logs, nil)
	assert.Equal(t, 7.5, d.SleepHours, "naps must not sum, invalid sessions must drop")
	assert.True(t, d.HasSleepLog)
}

func TestAggregateSleepDropsNonPositive(t *testing.T) {
	logs := []model.HealthLog{
		{Type: model.LogSleep, SleepHours: 0},
		{Type: model.LogSleep, SleepHours: -2},
	}
	d := Aggregate(logs, nil)
	assert.Equal(t, 0.0, d.SleepHours)
	assert.False(t, d.HasSleepLog)
}

func TestAggregateWaterOverrideWinsOutright(t *testing.T) {
	logs := []model.HealthLog{
		{Type: model.LogWater, WaterMl: 250},
		{Type: model.LogWater, WaterMl: 350},
	}
	totals := &model.DailyTotals{WaterMlOverride: 1800}
	d := Aggregate(logs, totals)
	assert.Equal(t, 1800, d.WaterMl, "override and discrete logs must never combine")
}

func TestAggregateWaterSumsLogsWithoutOverride(t *testing.T) {
	logs := []model.HealthLog{
		{Type: model.LogWater, WaterMl: 250},
		{Type: model.LogWater, WaterMl: 350},
		{Type: model.LogWater, WaterMl: -100}, // corrupt, ignored
	}
	d := Aggregate(logs, &model.DailyTotals{WaterMlOverride: 0})
	assert.Equal(t, 600, d.WaterMl)
}

func TestAggregateStepsOnlyFromTotalsFeed(t *testing.T) {
	d := Aggregate(nil, &model.DailyTotals{Steps: 8421})
	assert.Equal(t, 8421, d.Steps)

	d = Aggregate([]model.HealthLog{{Type: model.LogWorkout, DurationMin: 60}}, nil)
	assert.Equal(t, 0, d.Steps, "logs never contribute steps")
}

func TestAggregateMissingTotalsMeansZeros(t *testing.T) {
	d := Aggregate(nil, nil)
	assert.Equal(t, DayTotals{}, d)
}

func TestAggregateMealsAndWorkouts(t *testing.T) {
	logs := []model.HealthLog{
		{Type: model.LogMeal, Calories: 500, Protein: 30, Carbs: 50, Fat: 15},
		{Type: model.LogMeal, Calories: 700, Protein: 40, Carbs: 60, Fat: 20},
		{Type: model.LogWorkout, DurationMin: 45, CaloriesBurned: 300},
		{Type: model.LogWorkout, DurationMin: 30, CaloriesBurned: 200},
		{Type: model.LogWeight, WeightKg: 80},
		{Type: model.LogMood, Mood: "good"},
	}
	d := Aggregate(logs, nil)
	assert.Equal(t, 2, d.MealCount)
	assert.Equal(t, 1200, d.Calories)
	assert.Equal(t, 70.0, d.Protein)
	assert.Equal(t, 2, d.WorkoutCount)
	assert.Equal(t, 75, d.WorkoutMinutes)
	assert.Equal(t, 500, d.CaloriesBurned)
	assert.True(t, d.HasWeightLog)
	assert.True(t, d.HasMoodEntry)
	assert.Equal(t, 4, d.MetricsLogged) // meal, workout, weight, mood
}
