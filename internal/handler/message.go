package handler

import (
	"net/http"

	"birthday-home/internal/logger"
	"birthday-home/internal/middleware"
	"birthday-home/internal/model"
	"birthday-home/internal/service"
	"birthday-home/internal/storage"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messages *service.MessageService
	files    *storage.DiskStore
	activity *service.ActivityLogger
}

func NewMessageHandler(messages *service.MessageService, files *storage.DiskStore, activity *service.ActivityLogger) *MessageHandler {
	return &MessageHandler{messages: messages, files: files, activity: activity}
}

// List returns the active board, newest first, with author names.
func (h *MessageHandler) List(c *gin.Context) {
	birthday := c.GetString(middleware.CtxBirthday)
	h.activity.Record(birthday, "message")

	rows, err := h.messages.ListActive(c.Request.Context())
	if err != nil {
		logger.Error("list messages failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if rows == nil {
		rows = []model.MessageView{}
	}
	for i := range rows {
		if rows[i].FilePath != "" {
			rows[i].FileURL = h.files.PublicURL(rows[i].FilePath)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"name":     c.GetString(middleware.CtxDisplayName),
		"messages": rows,
	})
}

// Post accepts a multipart form with an optional "message" text and optional
// "file" attachment. The attachment is stored before the row is inserted so a
// failed upload never leaves a dangling reference.
func (h *MessageHandler) Post(c *gin.Context) {
	birthday := c.GetString(middleware.CtxBirthday)
	h.activity.Record(birthday, "message")

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

	m, err := h.messages.Post(c.Request.Context(), birthday, text, filePath)
	if err != nil {
		logger.Error("post message failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if m == nil {
		// empty submission is quietly dropped, not an error
		c.JSON(http.StatusOK, gin.H{"posted": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posted": true, "message": m})
}

// Delete soft-deletes one of the caller's messages. Foreign or missing ids
// are a silent no-op and still answer ok.
func (h *MessageHandler) Delete(c *gin.Context) {
	birthday := c.GetString(middleware.CtxBirthday)
	id := c.PostForm("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}
	if err := h.messages.SoftDelete(c.Request.Context(), birthday, id); err != nil {
		logger.Error("delete message failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
