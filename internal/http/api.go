package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"recipebook/internal/service"
)

// SessionAuthority is the subset of session.Authority the handlers rely on.
type SessionAuthority interface {
	Establish(ctx context.Context, userID int64) (string, time.Time, error)
	CurrentUserID(ctx context.Context, token string) (int64, error)
	Terminate(ctx context.Context, token string) error
}

// CookieConfig controls how the session token is delivered.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.UserService
	recipes     service.RecipeService
	sessions    SessionAuthority
	cookie      CookieConfig
	corsOrigins map[string]struct{}
	logger      logrus.FieldLogger
}

func NewHandler(
	users service.UserService,
	recipes service.RecipeService,
	sessions SessionAuthority,
	cookie CookieConfig,
	corsOrigins []string,
	logger logrus.FieldLogger,
) *Handler {
	if cookie.Name == "" {
		cookie.Name = "session"
	}
	origins := make(map[string]struct{}, len(corsOrigins))
	for _, o := range corsOrigins {
		if o != "" {
			origins[o] = struct{}{}
		}
	}
	return &Handler{
		users:       users,
		recipes:     recipes,
		sessions:    sessions,
		cookie:      cookie,
		corsOrigins: origins,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.observe(), h.corsMiddleware())

	router.POST("/signup", h.signup)
	router.POST("/login", h.login)
	router.DELETE("/logout", h.logout)
	router.GET("/check_session", h.checkSession)

	recipes := router.Group("/recipes", h.requireSession())
	{
		recipes.GET("", h.listRecipes)
		recipes.POST("", h.createRecipe)
	}

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// corsMiddleware echoes allowed origins back with credentials enabled.
func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := h.corsOrigins[origin]; !ok || origin == "" {
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		c.Writer.Header().Add("Vary", "Origin")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
