package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stationaryhq/stationary/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/api/login", handler.Login)
	r.POST("/api/logout", handler.Logout)

	r.GET("/api/users", handler.ListUsers)
	r.POST("/api/users", handler.AddUser)
	r.DELETE("/api/users/:id", handler.DeleteUser)

	r.GET("/api/reports", handler.ListReports)
	r.POST("/api/reports", handler.CreateReport)
	r.PUT("/api/reports/:id", handler.UpdateReport)
	r.DELETE("/api/reports/:id", handler.DeleteReport)

	r.GET("/api/selected-report", handler.SelectedReport)
	r.PUT("/api/selected-report", handler.SelectReport)
	r.DELETE("/api/selected-report", handler.ClearSelection)

	r.GET("/api/stock", handler.GetStock)
	r.PUT("/api/stock", handler.EditStock)
	r.DELETE("/api/stock", handler.ClearStock)

	r.POST("/api/import", handler.Import)
	r.POST("/api/export/full", handler.ExportFullReport)
	r.POST("/api/export/stock", handler.ExportStock)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
