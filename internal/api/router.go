package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/config"
	"github.com/post-engagement-api/internal/service"
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. store may be nil, in which
// case /health only reports liveness. extra collectors, such as connection pool
// statistics, are served on /metrics next to the request metrics.
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, store HealthChecker, extra ...prometheus.Collector) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	metrics := newHTTPMetrics(services, log, extra...)

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log, metrics))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	router.Use(bodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	// Handlers
	authHandler := NewAuthHandler(services, log)
	userHandler := NewUserHandler(services, log)
	postHandler := NewPostHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	replyHandler := NewReplyHandler(services, log)
	reportHandler := NewReportHandler(services, log)

	router.GET("/health", healthCheck(store))
	router.GET("/metrics", metrics.handler())

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register/:role", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	session := sessionMiddleware(services.Auth, log)

	users := router.Group("/users", session)
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	posts := router.Group("/posts", session)
	{
		posts.GET("", postHandler.List)
		posts.POST("", postHandler.Create)
		posts.GET("/:postId", postHandler.Get)
		posts.PUT("/:postId", postHandler.Update)
		posts.DELETE("/:postId", postHandler.Delete)
		posts.POST("/:postId/like", postHandler.ToggleLike)
		posts.GET("/:postId/report", reportHandler.Download)

		comments := posts.Group("/:postId/comments")
		{
			comments.POST("", commentHandler.Add)
			comments.PUT("/:commentId", commentHandler.Update)
			comments.DELETE("/:commentId", commentHandler.Delete)
			comments.POST("/:commentId/like", commentHandler.ToggleLike)

			replies := comments.Group("/:commentId/replies")
			{
				replies.POST("", replyHandler.Add)
				replies.PUT("/:replyId", replyHandler.Update)
				replies.DELETE("/:replyId", replyHandler.Delete)
				replies.POST("/:replyId/like", replyHandler.ToggleLike)
			}
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(store HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "post-engagement-api",
		}

		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := store.HealthCheck(ctx); err != nil {
				body["status"] = "unavailable"
				body["error"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
		}

		c.JSON(http.StatusOK, body)
	}
}
