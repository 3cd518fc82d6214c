package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/fresnizky/pizza-delivery-api/controllers/cart"
	"github.com/fresnizky/pizza-delivery-api/middleware"
)

// SetupCartRoutes registers the cart lifecycle endpoints. All of them
// require the token header; ownership is verified per request.
func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.RequireToken)
	{
		cartGroup.POST("", cartControllers.CreateCartHandler(deps.Stores))   // POST /cart
		cartGroup.GET("", cartControllers.GetCartHandler(deps.Stores))       // GET /cart?email=...&id=...
		cartGroup.PUT("", cartControllers.UpdateCartHandler(deps.Stores))    // PUT /cart
		cartGroup.DELETE("", cartControllers.DeleteCartHandler(deps.Stores)) // DELETE /cart
	}
}
