package handler

import (
	"errors"
	"net/http"
	"strconv"

	"birthday-home/internal/logger"
	"birthday-home/internal/middleware"
	"birthday-home/internal/model"
	"birthday-home/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	admin    *service.AdminService
	schedule *service.ScheduleService
	visits   *service.VisitLogger
}

func NewAdminHandler(admin *service.AdminService, schedule *service.ScheduleService, visits *service.VisitLogger) *AdminHandler {
	return &AdminHandler{admin: admin, schedule: schedule, visits: visits}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !h.admin.VerifyKey(req.SecretKey) {
		logger.Warn("admin.login.failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid secret key"})
		return
	}
	token, err := middleware.IssueAdminToken(h.admin.JWTSecret())
	if err != nil {
		logger.Error("admin token issue failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	middleware.SetAdminCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) Summary(c *gin.Context) {
	sum, err := h.admin.Summary(c.Request.Context())
	if err != nil {
		logger.Error("admin summary failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *AdminHandler) Table(c *gin.Context) {
	rows, err := h.admin.Table(c.Request.Context(), c.Param("name"))
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table"})
		return
	}
	if err != nil {
		logger.Error("admin table failed", "table", c.Param("name"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": c.Param("name"), "rows": rows})
}

// CleanupVisits bulk-deletes visit rows by user-agent substring. Out-of-band
// maintenance, not part of normal operation.
func (h *AdminHandler) CleanupVisits(c *gin.Context) {
	var req struct {
		UserAgent string `json:"user_agent" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_agent required"})
		return
	}
	n, err := h.visits.CleanupByUserAgent(c.Request.Context(), req.UserAgent)
	if err != nil {
		logger.Error("visit cleanup failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	logger.Info("visit cleanup", "user_agent", req.UserAgent, "deleted", n)
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// --- scheduled-message CRUD ---

func (h *AdminHandler) CreateScheduled(c *gin.Context) {
	var req model.ScheduledMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	row, err := h.schedule.Create(c.Request.Context(), req)
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kind or window"})
		return
	}
	if err != nil {
		logger.Error("create scheduled failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *AdminHandler) UpdateScheduled(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.ScheduledMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	err = h.schedule.Update(c.Request.Context(), id, req)
	h.scheduledMutationResult(c, err)
}

func (h *AdminHandler) ToggleScheduled(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.scheduledMutationResult(c, h.schedule.ToggleActive(c.Request.Context(), id))
}

func (h *AdminHandler) DeleteScheduled(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.scheduledMutationResult(c, h.schedule.Delete(c.Request.Context(), id))
}

func (h *AdminHandler) ListScheduled(c *gin.Context) {
	rows, err := h.schedule.List(c.Request.Context())
	if err != nil {
		logger.Error("list scheduled failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheduled_messages": rows})
}

func (h *AdminHandler) scheduledMutationResult(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kind or window"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Error("scheduled mutation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --- chronicle ---

func (h *AdminHandler) PublishChronicle(c *gin.Context) {
	var req model.ChronicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	row, err := h.admin.PublishChronicle(c.Request.Context(), req.Title, req.Body)
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and body required"})
		return
	}
	if err != nil {
		logger.Error("publish chronicle failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// ListChronicles is public: published chronicles are readable without a
// session.
func (h *AdminHandler) ListChronicles(c *gin.Context) {
	rows, err := h.admin.ListChronicles(c.Request.Context())
	if err != nil {
		logger.Error("list chronicles failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if rows == nil {
		rows = []model.Chronicle{}
	}
	c.JSON(http.StatusOK, gin.H{"chronicles": rows})
}
