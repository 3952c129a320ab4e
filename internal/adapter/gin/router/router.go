package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-table-service/internal/adapter/gin/docs"
	"user-table-service/internal/adapter/gin/handler"
	"user-table-service/internal/adapter/gin/middleware"
	"user-table-service/internal/adapter/ratelimit"
)

// Counter reports the number of stored users for the health endpoint.
type Counter interface {
	Len(ctx context.Context) int
}

// Options configures optional parts of the router.
type Options struct {
	ServiceName    string
	SwaggerEnabled bool
	RateLimiter    *ratelimit.Limiter // nil disables rate limiting
	Counter        Counter            // nil omits the user count from /health
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(userHandler *handler.UserHandler, opts Options, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RateLimiter(opts.RateLimiter))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		}
		if opts.Counter != nil {
			body["users"] = opts.Counter.Len(c.Request.Context())
		}
		c.JSON(http.StatusOK, body)
	})

	if opts.SwaggerEnabled {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json; charset=utf-8", docs.OpenAPI)
		})
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/openapi.json"),
		)))
	}

	users := router.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
