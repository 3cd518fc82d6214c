package routes

import (
	"github.com/gin-gonic/gin"

	menuControllers "github.com/fresnizky/pizza-delivery-api/controllers/menu"
	"github.com/fresnizky/pizza-delivery-api/middleware"
)

// SetupMenuRoutes registers the customer-facing menu listing.
func SetupMenuRoutes(r *gin.Engine, deps Deps) {
	r.GET("/menu", middleware.RequireToken, menuControllers.GetMenuHandler(deps.Stores))
}
