package routes

import (
	"github.com/gin-gonic/gin"

	userControllers "github.com/fresnizky/pizza-delivery-api/controllers/user"
	"github.com/fresnizky/pizza-delivery-api/middleware"
)

// SetupUserRoutes registers signup plus the token-gated profile endpoints.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	// Signup is the only public user endpoint
	r.POST("/users", userControllers.SignupHandler(deps.Stores, deps.Cfg))

	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireToken)
	{
		userGroup.GET("", userControllers.GetUserHandler(deps.Stores, deps.Cfg))       // GET /user?email=...
		userGroup.PUT("", userControllers.UpdateUserHandler(deps.Stores, deps.Cfg))    // PUT /user
		userGroup.DELETE("", userControllers.DeleteUserHandler(deps.Stores, deps.Cfg)) // DELETE /user
	}
}
