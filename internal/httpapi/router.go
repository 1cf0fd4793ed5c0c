package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/mbelkin/storefront/internal/config"
)

// NewRouter builds the gin engine with the auth routes. The limiter may be
// nil when no Redis address is configured.
func NewRouter(cfg *config.Config, h *Handler, limiter *RedisLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID())

	api := r.Group("/api/auth")
	api.POST("/signup", h.SignUp)
	api.POST("/signin", RateLimit(limiter, cfg.SignInRateLimit, cfg.SignInRateWindow), h.SignIn)
	api.POST("/refresh", h.Refresh)
	api.POST("/signout", h.SignOut)
	api.GET("/me", RequireAuth([]byte(cfg.SecretKey), cfg.JWTIssuer, cfg.JWTAudience), h.Me)

	return r
}
