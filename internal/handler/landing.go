package handler

import (
	"net/http"
	"strings"

	"birthday-home/internal/model"
	"birthday-home/internal/service"

	"github.com/gin-gonic/gin"
)

// LandingHandler serves the birthday-gated landing micro-site. It only checks
// the allow-list; it never creates users or cookies.
type LandingHandler struct {
	identity *service.IdentityService
	visits   *service.VisitLogger
}

func NewLandingHandler(identity *service.IdentityService, visits *service.VisitLogger) *LandingHandler {
	return &LandingHandler{identity: identity, visits: visits}
}

func (h *LandingHandler) Show(c *gin.Context) {
	h.visits.Record(c.ClientIP(), c.Request.UserAgent(), "landing")
	c.JSON(http.StatusOK, gin.H{"birthday_verified": false})
}

func (h *LandingHandler) Unlock(c *gin.Context) {
	var req model.LandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birthday required"})
		return
	}

	birthday := strings.TrimSpace(req.Birthday)
	if h.identity.Allowed(birthday) {
		h.visits.Record(c.ClientIP(), c.Request.UserAgent(), "landing-birthday-unlocked")
		c.JSON(http.StatusOK, gin.H{"birthday_verified": true})
		return
	}

	// failed attempts land in the visit log with the attempted value
	h.visits.Record(c.ClientIP(), c.Request.UserAgent(), "landing-birthday-failed-"+birthday)
	c.JSON(http.StatusOK, gin.H{"birthday_verified": false, "error": "Invalid birthday"})
}
