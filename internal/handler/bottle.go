package handler

import (
	"errors"
	"net/http"

	"birthday-home/internal/clock"
	"birthday-home/internal/logger"
	"birthday-home/internal/middleware"
	"birthday-home/internal/service"
	"birthday-home/internal/storage"

	"github.com/gin-gonic/gin"
)

type BottleHandler struct {
	bottles  *service.BottleService
	files    *storage.DiskStore
	activity *service.ActivityLogger
	clock    clock.Clock
}

func NewBottleHandler(bottles *service.BottleService, files *storage.DiskStore, activity *service.ActivityLogger, clk clock.Clock) *BottleHandler {
	return &BottleHandler{bottles: bottles, files: files, activity: activity, clock: clk}
}

// Submit throws a new bottle into the pool. Text is required; an attachment
// alone is not enough.
func (h *BottleHandler) Submit(c *gin.Context) {
	birthday := c.GetString(middleware.CtxBirthday)
	h.activity.Record(birthday, "bottle")

	text := c.PostForm("message")
	filePath := ""
	if fh, err := c.FormFile("file"); err == nil && fh.Filename != "" {
		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad upload"})
			return
		}
		defer src.Close()
		ref, err := h.files.Store(src, fh.Filename)
		if err != nil {
			logger.Error("store upload failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		filePath = ref
	}

	b, err := h.bottles.Submit(c.Request.Context(), birthday, text, filePath)
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text required"})
		return
	}
	if err != nil {
		logger.Error("submit bottle failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bottle": b})
}

// Draw returns today's bottle for the caller, drawing one if today's draw has
// not happened yet.
func (h *BottleHandler) Draw(c *gin.Context) {
	birthday := c.GetString(middleware.CtxBirthday)
	h.activity.Record(birthday, "bottle")
	ctx := c.Request.Context()

	picked, err := h.bottles.CountPickedUp(ctx, birthday)
	if err != nil {
		logger.Error("count picked up failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	b, err := h.bottles.DrawOrFetch(ctx, birthday, h.clock.Now())
	if errors.Is(err, service.ErrNoBottleAvailable) {
		c.JSON(http.StatusOK, gin.H{"no_bottle": true, "picked_count": picked})
		return
	}
	if err != nil {
		logger.Error("draw bottle failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := gin.H{"no_bottle": false, "bottle": b, "picked_count": picked}
	if b.FilePath != "" {
		resp["file_url"] = h.files.PublicURL(b.FilePath)
	}
	c.JSON(http.StatusOK, resp)
}
