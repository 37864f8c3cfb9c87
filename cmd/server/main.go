package main

import (
	"flag"
	"log/slog"
	"os"

	"health-coach/internal/config"
	"health-coach/internal/handler"
	"health-coach/internal/logger"
	"health-coach/internal/middleware"
	"health-coach/internal/service"
	"health-coach/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	st := store.NewGormStore(db)
	if err := st.AutoMigrate(); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	dailySvc := service.NewDailyService(st, cfg.Engine.HistoryDays, cfg.Engine.CompletionDays)
	trackSvc := service.NewTrackService(st)
	authSvc := service.NewAuthService(st)

	dailyH := handler.NewDailyHandler(dailySvc)
	trackH := handler.NewTrackHandler(trackSvc)
	authH := handler.NewAuthHandler(authSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/login", authH.Login)
	api := r.Group("/api", middleware.JWTAuth())
	api.GET("/daily/reminders", dailyH.Reminders)
	api.GET("/daily/focus", dailyH.Focus)
	api.GET("/daily/score", dailyH.Score)
	api.GET("/daily/summary", dailyH.Summary)
	api.POST("/daily/wins/detect", dailyH.DetectWins)
	api.POST("/logs", trackH.AddLog)
	api.POST("/totals", trackH.SetTotals)
	api.GET("/habits", trackH.Habits)
	api.POST("/habits", trackH.CreateHabit)
	api.POST("/habits/:id/complete", trackH.CompleteHabit)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
