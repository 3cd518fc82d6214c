package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fresnizky/pizza-delivery-api/config"
	"github.com/fresnizky/pizza-delivery-api/mailer"
	"github.com/fresnizky/pizza-delivery-api/payments"
	"github.com/fresnizky/pizza-delivery-api/store"
)

// Deps carries everything the handlers need. Built once in main and passed
// down; handlers never reach into globals.
type Deps struct {
	Stores   *store.Stores
	Cfg      *config.Config
	Payer    payments.Payer
	Notifier mailer.Notifier
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public signup + login
	SetupUserRoutes(r, deps)
	SetupTokenRoutes(r, deps)

	// Token-gated cart, menu and order endpoints
	SetupCartRoutes(r, deps)
	SetupMenuRoutes(r, deps)
	SetupOrderRoutes(r, deps)

	// API-key-gated admin endpoints
	SetupAdminRoutes(r, deps)
}
