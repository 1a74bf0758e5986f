package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sportsconnect/api/internal/middleware"
)

// authRoutes wires the signup/login flow. The unauthenticated endpoints
// are rate limited per client IP.
func (r *Router) authRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		limited := auth.Group("")
		limited.Use(middleware.RateLimit(
			r.Config.RateLimit.Request,
			time.Duration(r.Config.RateLimit.Duration)*time.Second,
		))
		{
			limited.POST("/request-otp", r.authHandler.RequestOTP)
			limited.POST("/verify-otp", r.authHandler.VerifyOTP)
			limited.POST("/check-username", r.authHandler.CheckUsername)
			limited.POST("/signup", r.authHandler.Signup)
			limited.POST("/login", r.authHandler.Login)
		}

		auth.POST("/logout", r.authHandler.Logout)
		auth.GET("/me", r.authMw.RequireUser(), r.authHandler.Me)
	}
}
