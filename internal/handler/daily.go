package handler

import (
	"net/http"
	"time"

	"health-coach/internal/logger"
	"health-coach/internal/model"
	"health-coach/internal/service"

	"github.com/gin-gonic/gin"
)

type DailyHandler struct {
	daily *service.DailyService
}

func NewDailyHandler(daily *service.DailyService) *DailyHandler {
	return &DailyHandler{daily: daily}
}

// dateParam reads ?date= and defaults to today.
func dateParam(c *gin.Context) string {
	if d := c.Query("date"); d != "" {
		return d
	}
	return time.Now().Format("2006-01-02")
}

// atParam reads ?at= (RFC3339) for time-of-day classification, defaulting
// to now. Useful for clients in other timezones and for tests.
func atParam(c *gin.Context) time.Time {
	if s := c.Query("at"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// GET /api/daily/reminders
func (h *DailyHandler) Reminders(c *gin.Context) {
	uid := c.GetInt("member_id")
	reminders := h.daily.Reminders(c.Request.Context(), uid, dateParam(c), atParam(c))
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// GET /api/daily/focus
func (h *DailyHandler) Focus(c *gin.Context) {
	uid := c.GetInt("member_id")
	tasks, err := h.daily.FocusTasks(c.Request.Context(), uid, dateParam(c), atParam(c))
	if err != nil {
		logger.Error("focus.failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GET /api/daily/score
func (h *DailyHandler) Score(c *gin.Context) {
	uid := c.GetInt("member_id")
	scores, daily := h.daily.Scores(c.Request.Context(), uid, dateParam(c))
	c.JSON(http.StatusOK, gin.H{
		"health_score":   scores.Health,
		"wellness_score": scores.Wellness,
		"habits_score":   scores.Habits,
		"daily_score":    daily,
	})
}

// POST /api/daily/wins/detect
func (h *DailyHandler) DetectWins(c *gin.Context) {
	uid := c.GetInt("member_id")
	wins, err := h.daily.DetectWins(c.Request.Context(), uid, dateParam(c))
	if err != nil {
		logger.Error("wins.failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if wins == nil {
		wins = []model.WinEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"wins": wins})
}

// GET /api/daily/summary
func (h *DailyHandler) Summary(c *gin.Context) {
	uid := c.GetInt("member_id")
	c.JSON(http.StatusOK, h.daily.Summary(c.Request.Context(), uid, dateParam(c), atParam(c)))
}
