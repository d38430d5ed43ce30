package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
)

// Register mounts every REST route on router.
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	fs := router.Group("/fs")
	fs.GET("/stat", h.Stat)
	fs.GET("/list", h.ListDir)
	fs.GET("/read", h.ReadFile)
	fs.POST("/write", h.WriteFile)
	fs.POST("/mkdir", h.MakeDir)
	fs.DELETE("", h.Delete)

	router.GET("/windows", h.ListWindows)
	router.POST("/windows", h.OpenWindow)
	router.POST("/windows/blur", h.BlurWindows)
	router.DELETE("/windows/:id", h.CloseWindow)
	router.POST("/windows/:id/focus", h.FocusWindow)
	router.POST("/windows/:id/minimize", h.MinimizeWindow)
	router.POST("/windows/:id/maximize", h.MaximizeWindow)
	router.PUT("/windows/:id/position", h.MoveWindow)

	router.GET("/apps", h.ListApps)
	router.POST("/apps/:id/toggle", h.ToggleApp)
	router.POST("/commands", h.Command)

	router.GET("/desktop", h.GetDesktop)
	router.PUT("/desktop", h.UpdateDesktop)

	system := router.Group("/system")
	system.GET("/export", h.Export)
	system.POST("/import", h.Import)
	system.POST("/reset", h.Reset)

	term := router.Group("/terminal/sessions")
	term.POST("", h.CreateTerminal)
	term.GET("", h.ListTerminals)
	term.GET("/:id", h.GetTerminal)
	term.POST("/:id/input", h.TerminalInput)
	term.DELETE("/:id", h.KillTerminal)

	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)

	router.GET("/metrics", monitoring.Handler(h.Metrics))
	router.GET("/metrics/json", h.Stats)
}
