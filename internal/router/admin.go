package router

import "github.com/gin-gonic/gin"

// adminRoutes wires the operator dashboard. Everything except login
// requires an admin-scope token.
func (r *Router) adminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.POST("/login", r.adminHandler.Login)

		protected := admin.Group("")
		protected.Use(r.authMw.RequireAdmin())
		{
			protected.GET("/stats", r.adminHandler.Stats)
			protected.GET("/users", r.adminHandler.ListUsers)
			protected.GET("/users/:id", r.adminHandler.GetUser)
			protected.PUT("/users/:id", r.adminHandler.UpdateUser)
			protected.DELETE("/users/:id", r.adminHandler.DeleteUser)
			protected.GET("/export", r.adminHandler.Export)
		}
	}
}
