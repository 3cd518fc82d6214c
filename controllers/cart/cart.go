package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	tokenControllers "github.com/fresnizky/pizza-delivery-api/controllers/token"
	"github.com/fresnizky/pizza-delivery-api/helpers"
	"github.com/fresnizky/pizza-delivery-api/models"
	"github.com/fresnizky/pizza-delivery-api/store"
)

const cartIDLength = 10

// -------- Request Structs --------

// ItemInput is one requested line at cart creation. Qty is a pointer so an
// omitted qty (defaults to 1) is distinguishable from a present one, which
// must be a positive integer.
type ItemInput struct {
	Type string `json:"type"`
	Size string `json:"size"`
	Qty  *int   `json:"qty"`
}

// DeltaInput is one quantity adjustment at cart update. Qty is a signed,
// non-zero integer.
type DeltaInput struct {
	Type string `json:"type"`
	Size string `json:"size"`
	Qty  int    `json:"qty"`
}

type CreateCartRequest struct {
	Email string      `json:"email" binding:"required"`
	Items []ItemInput `json:"items" binding:"required,min=1"`
}

type UpdateCartRequest struct {
	Email string       `json:"email" binding:"required"`
	ID    string       `json:"id" binding:"required,len=10"`
	Items []DeltaInput `json:"items" binding:"required,min=1"`
}

type DeleteCartRequest struct {
	Email string `json:"email" binding:"required"`
	ID    string `json:"id" binding:"required,len=10"`
}

// -------- Core Logic --------

// BuildCart prices every requested line against the menu. Lines with a
// missing type or size, a present non-positive qty, or no menu entry are
// collected as invalid; the caller decides whether anything is persisted.
// Lines repeating a (type, size) pair are merged into one, so the built cart
// holds at most one line per pair, and a successfully built cart always
// satisfies total == sum of subtotals.
func BuildCart(email string, inputs []ItemInput, prices models.PriceList) (*models.Cart, []ItemInput) {
	cart := &models.Cart{
		ID:    helpers.RandomString(cartIDLength),
		Email: email,
		Items: []models.CartItem{},
	}

	var invalid []ItemInput
	for _, input := range inputs {
		if input.Type == "" || input.Size == "" || (input.Qty != nil && *input.Qty < 1) {
			invalid = append(invalid, input)
			continue
		}
		price, ok := prices.Price(input.Type, input.Size)
		if !ok {
			invalid = append(invalid, input)
			continue
		}

		qty := 1
		if input.Qty != nil {
			qty = *input.Qty
		}
		subtotal := qty * price
		if idx := cart.FindItem(input.Type, input.Size); idx >= 0 {
			cart.Items[idx].Qty += qty
			cart.Items[idx].Subtotal += subtotal
		} else {
			cart.Items = append(cart.Items, models.CartItem{
				Type:     input.Type,
				Size:     input.Size,
				Qty:      qty,
				Subtotal: subtotal,
			})
		}
		cart.Total += subtotal
	}

	return cart, invalid
}

// ApplyDeltas folds the valid deltas into the cart and reports the invalid
// ones. A delta is invalid when type or size is missing, qty is zero, or the
// line was never added to the cart. A line whose quantity lands on exactly
// zero is dropped. Deltas are applied against a working copy of the item
// list, and subtotals plus the total are recomputed at the end.
func ApplyDeltas(cart *models.Cart, deltas []DeltaInput, prices models.PriceList) []DeltaInput {
	work := models.Cart{Items: make([]models.CartItem, len(cart.Items))}
	copy(work.Items, cart.Items)

	var invalid []DeltaInput
	for _, delta := range deltas {
		if delta.Type == "" || delta.Size == "" || delta.Qty == 0 {
			invalid = append(invalid, delta)
			continue
		}
		idx := work.FindItem(delta.Type, delta.Size)
		if idx < 0 {
			// Cannot adjust an item that was never added.
			invalid = append(invalid, delta)
			continue
		}
		work.Items[idx].Qty += delta.Qty
		if work.Items[idx].Qty == 0 {
			work.Items = append(work.Items[:idx:idx], work.Items[idx+1:]...)
		}
	}

	cart.Items = work.Items
	cart.Recalculate(prices)

	return invalid
}

// loadOwnedCart fetches the cart and distinguishes a missing cart from one
// owned by somebody else.
func loadOwnedCart(c *gin.Context, carts store.Carts, email, id string) (*models.Cart, error) {
	cart, err := carts.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if cart.Email != email {
		return nil, models.ErrCartNotOwned
	}
	return cart, nil
}

// -------- Handlers --------

// POST /cart
func CreateCartHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || !helpers.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Required Fields"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, req.Email) {
			return
		}

		prices, err := st.Menu.Load(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load menu"})
			return
		}

		cart, invalid := BuildCart(req.Email, req.Items, prices)
		if len(invalid) > 0 {
			// All or nothing: a single bad line fails the whole request.
			c.JSON(http.StatusForbidden, gin.H{
				"error":        "Invalid items in item list",
				"invalidItems": invalid,
			})
			return
		}

		if err := st.Carts.Create(c.Request.Context(), cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save the cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// GET /cart?email=...&id=...
func GetCartHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		id := c.Query("id")
		if !helpers.IsValidEmail(email) || len(id) != cartIDLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Required Fields"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, email) {
			return
		}

		cart, err := loadOwnedCart(c, st.Carts, email, id)
		switch {
		case errors.Is(err, models.ErrCartNotOwned):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Cart does not belong to the user"})
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find the specified cart"})
		default:
			c.JSON(http.StatusOK, cart)
		}
	}
}

// PUT /cart
func UpdateCartHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || !helpers.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Required Fields"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, req.Email) {
			return
		}

		cart, err := loadOwnedCart(c, st.Carts, req.Email, req.ID)
		if errors.Is(err, models.ErrCartNotOwned) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Cart does not belong to the user"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find the specified cart"})
			return
		}

		prices, err := st.Menu.Load(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load menu"})
			return
		}

		invalid := ApplyDeltas(cart, req.Items, prices)
		if len(invalid) == len(req.Items) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":        "Invalid items in item list",
				"invalidItems": invalid,
			})
			return
		}

		// Best effort: the valid subset is committed even when some deltas
		// were rejected.
		if err := st.Carts.Update(c.Request.Context(), cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart, "invalidItems": invalid})
	}
}

// DELETE /cart
func DeleteCartHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || !helpers.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Required Fields"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, req.Email) {
			return
		}

		_, err := loadOwnedCart(c, st.Carts, req.Email, req.ID)
		if errors.Is(err, models.ErrCartNotOwned) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Cart does not belong to the user"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find the specified cart"})
			return
		}

		if err := st.Carts.Delete(c.Request.Context(), req.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart deleted"})
	}
}
