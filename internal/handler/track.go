package handler

import (
	"net/http"
	"strconv"

	"health-coach/internal/logger"
	"health-coach/internal/model"
	"health-coach/internal/service"

	"github.com/gin-gonic/gin"
)

type TrackHandler struct {
	track *service.TrackService
}

func NewTrackHandler(track *service.TrackService) *TrackHandler {
	return &TrackHandler{track: track}
}

// POST /api/logs
func (h *TrackHandler) AddLog(c *gin.Context) {
	var req model.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetInt("member_id")
	l, err := h.track.AddLog(c.Request.Context(), uid, req)
	if err != nil {
		logger.Error("log.add_failed", "uid", uid, "type", req.Type, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, l)
}

// POST /api/totals
func (h *TrackHandler) SetTotals(c *gin.Context) {
	var req model.TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetInt("member_id")
	t, err := h.track.SetTotals(c.Request.Context(), uid, req)
	if err != nil {
		logger.Error("totals.set_failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/habits
func (h *TrackHandler) Habits(c *gin.Context) {
	uid := c.GetInt("member_id")
	habits, err := h.track.Habits(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if habits == nil {
		habits = []model.Habit{}
	}
	c.JSON(http.StatusOK, habits)
}

// POST /api/habits
func (h *TrackHandler) CreateHabit(c *gin.Context) {
	var req model.HabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := c.GetInt("member_id")
	habit, err := h.track.CreateHabit(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, habit)
}

// POST /api/habits/:id/complete
func (h *TrackHandler) CompleteHabit(c *gin.Context) {
	habitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Value float64 `json:"value"`
	}
	c.ShouldBindJSON(&req)

	uid := c.GetInt("member_id")
	completion, err := h.track.CompleteHabit(c.Request.Context(), uid, habitID, req.Value)
	if err != nil {
		if completion != nil {
			logger.Warn("habit.streak_lagging", "uid", uid, "habit_id", habitID, "err", err)
			c.JSON(http.StatusOK, completion)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("habit.completed", "uid", uid, "habit_id", habitID)
	c.JSON(http.StatusOK, completion)
}
