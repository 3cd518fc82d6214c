package routes

import (
	"github.com/gin-gonic/gin"

	tokenControllers "github.com/fresnizky/pizza-delivery-api/controllers/token"
)

// SetupTokenRoutes registers login/logout and token maintenance.
func SetupTokenRoutes(r *gin.Engine, deps Deps) {
	tokens := r.Group("/tokens")
	{
		tokens.POST("", tokenControllers.LoginHandler(deps.Stores, deps.Cfg))      // login
		tokens.GET("/:id", tokenControllers.GetTokenHandler(deps.Stores))          // inspect
		tokens.PUT("", tokenControllers.ExtendTokenHandler(deps.Stores, deps.Cfg)) // extend expiration
		tokens.DELETE("/:id", tokenControllers.DeleteTokenHandler(deps.Stores))    // logout
	}
}
