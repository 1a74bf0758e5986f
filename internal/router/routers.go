package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportsconnect/api/config"
	"github.com/sportsconnect/api/internal/constants"
	"github.com/sportsconnect/api/internal/handler"
	"github.com/sportsconnect/api/internal/middleware"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	adminHandler  *handler.AdminHandler
	healthHandler *handler.HealthHandler

	authMw *middleware.AuthMiddleware
	Config *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	admin *handler.AdminHandler,
	health *handler.HealthHandler,
	authMw *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		adminHandler:  admin,
		healthHandler: health,
		authMw:        authMw,
		Config:        cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.Config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(r.Config.CORS.FrontendOrigin))

	router.GET("/", r.healthHandler.Index)
	router.GET("/health", r.healthHandler.Health)

	api := router.Group("/api")
	{
		r.authRoutes(api)
		r.userRoutes(api)
		r.adminRoutes(api)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(constants.MsgNotFound, nil))
	})

	return router
}
