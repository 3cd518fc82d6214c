package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/fresnizky/pizza-delivery-api/controllers/order"
	"github.com/fresnizky/pizza-delivery-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/orders")
	{
		// Convert a cart into a paid, notified order
		orders.POST("", middleware.RequireToken,
			orderControllers.PlaceOrderHandler(deps.Stores, deps.Cfg, deps.Payer, deps.Notifier))

		// websocket endpoint for real-time order notifications
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
	}
}
