package handler

import (
	"birthday-home/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth      *AuthHandler
	Landing   *LandingHandler
	Message   *MessageHandler
	Bottle    *BottleHandler
	Dashboard *DashboardHandler
	Admin     *AdminHandler
}

// SetupRouter wires every route. uploadDir is served statically so stored
// attachment references resolve as /uploads/<name>.
func SetupRouter(db *gorm.DB, h Handlers, adminJWTSecret []byte, uploadDir string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/api/landing", h.Landing.Show)
	r.POST("/api/landing", h.Landing.Unlock)
	r.POST("/api/login", h.Auth.Login)
	r.GET("/api/chronicles", h.Admin.ListChronicles)
	r.Static("/uploads", uploadDir)

	api := r.Group("/api", middleware.RequireIdentity(db))
	api.GET("/dashboard", h.Dashboard.Show)
	api.GET("/content/:kind", h.Dashboard.Content)
	api.GET("/messages", h.Message.List)
	api.POST("/messages", h.Message.Post)
	api.POST("/messages/delete", h.Message.Delete)
	api.POST("/bottles", h.Bottle.Submit)
	api.GET("/bottles/draw", h.Bottle.Draw)

	admin := r.Group("/api/admin")
	admin.POST("/login", h.Admin.Login)
	authed := admin.Group("", middleware.AdminAuth(adminJWTSecret))
	authed.GET("/summary", h.Admin.Summary)
	authed.GET("/tables/:name", h.Admin.Table)
	authed.POST("/visits/cleanup", h.Admin.CleanupVisits)
	authed.GET("/scheduled", h.Admin.ListScheduled)
	authed.POST("/scheduled", h.Admin.CreateScheduled)
	authed.PUT("/scheduled/:id", h.Admin.UpdateScheduled)
	authed.POST("/scheduled/:id/toggle", h.Admin.ToggleScheduled)
	authed.DELETE("/scheduled/:id", h.Admin.DeleteScheduled)
	authed.POST("/chronicles", h.Admin.PublishChronicle)

	return r
}
