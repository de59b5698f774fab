package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/skillmatch/internal/middleware"
	appErr "github.com/xxxsen/skillmatch/internal/pkg/errors"
)

// RouterDeps wires handlers into routes. Auth and Dashboard are nil when no
// database is configured; their routes then answer 503.
type RouterDeps struct {
	Match           *MatchHandler
	Auth            *AuthHandler
	Dashboard       *DashboardHandler
	JWTSecret       []byte
	RateLimitWindow time.Duration
}

func RegisterRoutes(r *gin.RouterGroup, deps RouterDeps) {
	r.GET("/", deps.Match.Status)

	api := r.Group("/api")
	api.POST("/matches", deps.Match.Matches)
	api.POST("/skills", deps.Match.Skills)
	api.POST("/habits", deps.Match.Habits)

	if deps.Auth == nil || deps.Dashboard == nil {
		api.POST("/register", disabled)
		api.POST("/login", disabled)
		api.GET("/dashboard", disabled)
		api.PUT("/dashboard/skills", disabled)
		api.PUT("/dashboard/habits", disabled)
		return
	}

	limited := api.Group("")
	limited.Use(middleware.RateLimit(deps.RateLimitWindow))
	limited.POST("/register", deps.Auth.Register)
	limited.POST("/login", deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/dashboard", deps.Dashboard.Get)
	authGroup.PUT("/dashboard/skills", deps.Dashboard.SaveSkills)
	authGroup.PUT("/dashboard/habits", deps.Dashboard.SaveHabits)
}

func disabled(c *gin.Context) {
	handleError(c, appErr.ErrDisabled)
}
