package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikopa/backend/internal/config"
	"github.com/mikopa/backend/internal/http/handlers"
	"github.com/mikopa/backend/internal/http/middleware"
	"github.com/mikopa/backend/internal/version"
)

type Dependencies struct {
	Pinger        handlers.Pinger
	ClientHandler *handlers.ClientHandler
	LoanHandler   *handlers.LoanHandler
}

func NewRouter(cfg config.Config, logger *slog.Logger, deps Dependencies) *gin.Engine {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "err", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}))
	r.Use(func(c *gin.Context) {
		logger.Info("request", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	})
	r.Use(middleware.RequestBodyLimit(cfg.MaxBodyBytes))

	health := handlers.NewHealthHandler(deps.Pinger)
	meta := handlers.NewMetaHandler(cfg.Env, version.Version)

	r.GET("/", health.Root)
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/meta", meta.GetMeta)

	if deps.ClientHandler != nil {
		r.POST("/client", deps.ClientHandler.Create)
		r.DELETE("/client", deps.ClientHandler.Deactivate)
	}
	if deps.LoanHandler != nil {
		r.POST("/loan", deps.LoanHandler.Issue)
		r.GET("/loans", deps.LoanHandler.ListActive)
		r.GET("/loan-amount", deps.LoanHandler.SumOutstanding)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
	})

	return r
}
