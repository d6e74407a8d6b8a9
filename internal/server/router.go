package server

import (
	"github.com/gin-gonic/gin"

	"github.com/josephnc/cc-charts/internal/handlers"
	"github.com/josephnc/cc-charts/internal/middleware"
)

type RouterConfig struct {
	HealthHandler    *handlers.HealthHandler
	ChartHandler     *handlers.ChartHandler
	DashboardHandler *handlers.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
	StaticDir        string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	router.GET("/dashboard", cfg.DashboardHandler.Render)
	if cfg.StaticDir != "" {
		router.Static("/assets", cfg.StaticDir)
	}

	// Protected
	api := router.Group("/cc-charts/v1")
	api.Use(cfg.AuthMiddleware.RequireEditor())
	api.GET("/data/:days", cfg.ChartHandler.GetData)

	return router
}
