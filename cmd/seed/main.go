// Command seed bootstraps a demo member with habits, a profile and a week
// of sample logs so a fresh install has something to score.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"health-coach/internal/config"
	"health-coach/internal/logger"
	"health-coach/internal/model"
	"health-coach/internal/store"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	username := flag.String("user", "demo", "demo username")
	password := flag.String("pass", "demo1234", "demo password")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal("db connect failed: ", err)
	}

	st := store.NewGormStore(db)
	if err := st.AutoMigrate(); err != nil {
		log.Fatal("migrate failed: ", err)
	}

	ctx := context.Background()
	if m, err := st.MemberByUsername(ctx, *username); err == nil {
		logger.Info("seed: member already exists", "id", m.ID, "username", m.Username)
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	member := model.Member{Username: *username, Password: string(hash), Name: "Demo User"}
	if err := db.Create(&member).Error; err != nil {
		log.Fatal("create member: ", err)
	}
	logger.Info("seed: member created", "id", member.ID, "username", member.Username)

	profile := model.Profile{
		MemberID: member.ID, CalorieGoal: 2200, StepGoal: 10000,
		WaterGoalMl: 2500, SleepGoalHours: 8,
		ProteinTarget: 140, CarbsTarget: 220, FatTarget: 70,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatal("create profile: ", err)
	}

	habits := []model.Habit{
		{MemberID: member.ID, Title: "Morning stretch", Frequency: "DAILY", Priority: "MEDIUM", IsActive: true},
		{MemberID: member.ID, Title: "Read 20 minutes", Frequency: "DAILY", Priority: "LOW", IsActive: true},
		{MemberID: member.ID, Title: "No late snacks", Frequency: "DAILY", Priority: "HIGH", IsActive: true},
	}
	for i := range habits {
		if err := st.CreateHabit(ctx, &habits[i]); err != nil {
			log.Fatal("create habit: ", err)
		}
	}
	logger.Info("seed: habits created", "count", len(habits))

	// a week of plausible history so records and baselines mean something
	for i := 1; i <= 7; i++ {
		date := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		day := []model.HealthLog{
			{MemberID: member.ID, LogDate: date, Type: model.LogMeal, Calories: 600, Protein: 35, Carbs: 60, Fat: 20},
			{MemberID: member.ID, LogDate: date, Type: model.LogMeal, Calories: 750, Protein: 45, Carbs: 70, Fat: 25},
			{MemberID: member.ID, LogDate: date, Type: model.LogWater, WaterMl: 500},
			{MemberID: member.ID, LogDate: date, Type: model.LogWater, WaterMl: 750},
			{MemberID: member.ID, LogDate: date, Type: model.LogSleep, SleepHours: 7.0 + float64(i%3)*0.5},
		}
		if i%2 == 0 {
			day = append(day, model.HealthLog{
				MemberID: member.ID, LogDate: date, Type: model.LogWorkout,
				DurationMin: 30 + 5*i, CaloriesBurned: 250 + 20*i,
			})
		}
		for j := range day {
			if err := st.CreateLog(ctx, &day[j]); err != nil {
				log.Fatal("create log: ", err)
			}
		}
		if err := st.SaveDailyTotals(ctx, &model.DailyTotals{
			MemberID: member.ID, TotalsDate: date, Steps: 6000 + 500*i,
		}); err != nil {
			log.Fatal("save totals: ", err)
		}
	}

	logger.Info("seed: done", "member_id", member.ID)
}
