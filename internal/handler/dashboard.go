package handler

import (
	"errors"
	"net/http"

	"birthday-home/internal/clock"
	"birthday-home/internal/logger"
	"birthday-home/internal/middleware"
	"birthday-home/internal/model"
	"birthday-home/internal/service"

	"github.com/gin-gonic/gin"
)

const recentActivityLimit = 5

type DashboardHandler struct {
	messages *service.MessageService
	bottles  *service.BottleService
	schedule *service.ScheduleService
	activity *service.ActivityLogger
	clock    clock.Clock
}

func NewDashboardHandler(messages *service.MessageService, bottles *service.BottleService,
	schedule *service.ScheduleService, activity *service.ActivityLogger, clk clock.Clock) *DashboardHandler {
	return &DashboardHandler{messages: messages, bottles: bottles, schedule: schedule, activity: activity, clock: clk}
}

// Show assembles the per-user dashboard: counts, recent activity, and the
// time-of-day greeting/PS texts.
func (h *DashboardHandler) Show(c *gin.Context) {
	birthday := c.GetString(middleware.CtxBirthday)
	h.activity.Record(birthday, "dashboard")
	ctx := c.Request.Context()
	now := h.clock.Now()

	msgCount, err := h.messages.CountByAuthor(ctx, birthday)
	if err != nil {
		logger.Error("dashboard message count failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	bottleCount, err := h.bottles.CountByAuthor(ctx, birthday)
	if err != nil {
		logger.Error("dashboard bottle count failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	recent, err := h.activity.RecentFor(ctx, birthday, recentActivityLimit)
	if err != nil {
		logger.Error("dashboard recent activity failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	greeting, err := h.schedule.Current(ctx, model.KindGreeting, now)
	if err != nil {
		logger.Error("dashboard greeting failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ps, err := h.schedule.Current(ctx, model.KindPS, now)
	if err != nil {
		logger.Error("dashboard ps failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":            c.GetString(middleware.CtxDisplayName),
		"messages_count":  msgCount,
		"bottles_count":   bottleCount,
		"recent_activity": recent,
		"greeting":        greeting,
		"ps":              ps,
	})
}

// Content serves one scheduled text by kind, for pages that only need the
// greeting or the PS line.
func (h *DashboardHandler) Content(c *gin.Context) {
	kind := c.Param("kind")
	text, err := h.schedule.Current(c.Request.Context(), kind, h.clock.Now())
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown kind"})
		return
	}
	if err != nil {
		logger.Error("scheduled content failed", "kind", kind, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "text": text})
}
