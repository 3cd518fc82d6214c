package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fresnizky/pizza-delivery-api/config"
	tokenControllers "github.com/fresnizky/pizza-delivery-api/controllers/token"
	"github.com/fresnizky/pizza-delivery-api/helpers"
	"github.com/fresnizky/pizza-delivery-api/mailer"
	"github.com/fresnizky/pizza-delivery-api/models"
	"github.com/fresnizky/pizza-delivery-api/payments"
	"github.com/fresnizky/pizza-delivery-api/store"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	Email  string `json:"email" binding:"required"`
	CartID string `json:"cartId" binding:"required,len=10"`
}

// PlacedOrder is the summary returned to the caller and broadcast to
// websocket subscribers after a successful placement.
type PlacedOrder struct {
	CartID   string    `json:"cart_id"`
	Email    string    `json:"email"`
	Total    int       `json:"total"`
	PlacedAt time.Time `json:"placed_at"`
}

// -------- Core Logic --------

// PlaceOrder runs the fulfillment chain for a cart: ownership check, user
// lookup, payment capture, confirmation email. Each step gates the next.
// A payment failure aborts before any notification is attempted and leaves
// the cart untouched. An email failure after a successful charge is a real
// partial-failure state (money captured, user not told) and is surfaced as
// ErrEmailFailed rather than rolled back or swallowed.
func PlaceOrder(ctx context.Context, st *store.Stores, payer payments.Payer, notifier mailer.Notifier, secret, email, cartID string) (*PlacedOrder, error) {
	cart, err := st.Carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.Email != email {
		return nil, models.ErrCartNotOwned
	}

	// The account may have been deleted after the cart was created.
	user, err := st.Users.Get(ctx, helpers.Hash(email, secret))
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	if err := payer.Charge(ctx, cart.Total); err != nil {
		if errors.Is(err, models.ErrPaymentFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPaymentFailed, err)
	}

	subject := fmt.Sprintf("Order %s ready", cartID)
	if err := notifier.Send(ctx, user.FullName(), email, subject, "Your order is ready."); err != nil {
		if errors.Is(err, models.ErrEmailFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrEmailFailed, err)
	}

	return &PlacedOrder{
		CartID:   cartID,
		Email:    email,
		Total:    cart.Total,
		PlacedAt: time.Now(),
	}, nil
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(st *store.Stores, cfg *config.Config, payer payments.Payer, notifier mailer.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || !helpers.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Required Fields"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, req.Email) {
			return
		}

		order, err := PlaceOrder(c.Request.Context(), st, payer, notifier, cfg.HashingSecret, req.Email, req.CartID)
		switch {
		case errors.Is(err, models.ErrCartNotOwned):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Cart does not belong to the user"})
		case errors.Is(err, models.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, models.ErrPaymentFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error processing the payment"})
		case errors.Is(err, models.ErrEmailFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error sending confirmation email"})
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find the specified cart"})
		default:
			broadcastPlacedOrder(*order)
			c.JSON(http.StatusOK, order)
		}
	}
}
