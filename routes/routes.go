package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/services"
	"backend/store"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, st *store.ReportStore, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Services
	intake := services.NewIntakeService(st, cfg)
	notifications := services.NewNotificationService(st)
	feed := ws.NewFeedHub(st)
	go feed.Run()

	// Controllers
	reportCtrl := controllers.NewReportController(intake, st)
	adminCtrl := controllers.NewAdminController(st, notifications)

	// Public intake and read-only widgets
	r.POST("/reports", reportCtrl.Create)
	r.GET("/reports/recent", reportCtrl.Recent)
	r.GET("/reports/map", reportCtrl.MapPoints)
	r.GET("/crime-types", reportCtrl.CrimeTypes)

	// Admin triage, behind the API-key guard
	admin := r.Group("/admin", middlewares.APIKeyAuth(cfg.AdminAPIKey))
	{
		admin.GET("/reports", adminCtrl.Reports)
		admin.GET("/reports/:id", adminCtrl.ReportDetail)
		admin.PATCH("/reports/:id/status", adminCtrl.UpdateStatus)
		admin.PATCH("/reports/:id", adminCtrl.Update)
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.GET("/map", adminCtrl.MapPoints)

		admin.GET("/notifications", adminCtrl.Notifications)
		admin.POST("/notifications/read-all", adminCtrl.MarkAllNotificationsRead)
		admin.POST("/notifications/:id/read", adminCtrl.MarkNotificationRead)

		admin.GET("/feed", feed.HandleWebSocket)
	}
}
