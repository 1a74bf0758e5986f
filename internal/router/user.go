package router

import "github.com/gin-gonic/gin"

// userRoutes wires profile management. The public profile is the only
// unauthenticated endpoint in the group.
func (r *Router) userRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/profile", r.authMw.RequireUser(), r.userHandler.GetProfile)
		users.PUT("/profile", r.authMw.RequireUser(), r.userHandler.UpdateProfile)
		users.GET("/:id", r.userHandler.GetPublicUser)
	}
}
