package routes

import (
	"github.com/gin-gonic/gin"

	menuControllers "github.com/fresnizky/pizza-delivery-api/controllers/menu"
	"github.com/fresnizky/pizza-delivery-api/middleware"
)

// SetupAdminRoutes registers the menu-management surface. Requires the
// API-key middleware; the menu is owned by the admin process, not by users.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(deps.Cfg.AdminAPIKey))
	{
		menuAdmin := adminGroup.Group("/menu")
		{
			menuAdmin.POST("", menuControllers.UpsertMenuItemHandler(deps.Stores))
			menuAdmin.GET("", menuControllers.ListMenuItemsHandler(deps.Stores))
			menuAdmin.DELETE("/:id", menuControllers.DeleteMenuItemHandler(deps.Stores))
			menuAdmin.GET("/export-excel", menuControllers.ExportMenuToExcel(deps.Stores))
		}
	}
}
