package cartControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fresnizky/pizza-delivery-api/middleware"
	"github.com/fresnizky/pizza-delivery-api/models"
	"github.com/fresnizky/pizza-delivery-api/store"
)

func testPrices() models.PriceList {
	return models.PriceList{
		"margherita": {"small": 8, "medium": 10, "large": 12},
		"pepperoni":  {"small": 9, "large": 13},
	}
}

func seedMenu(t *testing.T, st *store.Stores) {
	t.Helper()
	ctx := context.Background()
	for itemType, sizes := range testPrices() {
		for size, price := range sizes {
			require.NoError(t, st.Menu.Upsert(ctx, &models.MenuItem{Type: itemType, Size: size, Price: price}))
		}
	}
}

func qty(n int) *int {
	return &n
}

func TestBuildCart(t *testing.T) {
	prices := testPrices()

	t.Run("prices every line and sums the total", func(t *testing.T) {
		cart, invalid := BuildCart("alice@x.com", []ItemInput{
			{Type: "margherita", Size: "large", Qty: qty(2)},
			{Type: "pepperoni", Size: "small"}, // qty defaults to 1
		}, prices)

		require.Empty(t, invalid)
		require.Len(t, cart.Items, 2)
		assert.Len(t, cart.ID, 10)
		assert.Equal(t, "alice@x.com", cart.Email)

		assert.Equal(t, 2, cart.Items[0].Qty)
		assert.Equal(t, 24, cart.Items[0].Subtotal)
		assert.Equal(t, 1, cart.Items[1].Qty)
		assert.Equal(t, 9, cart.Items[1].Subtotal)
		assert.Equal(t, 33, cart.Total)
	})

	t.Run("repeated lines merge into one per type and size", func(t *testing.T) {
		cart, invalid := BuildCart("alice@x.com", []ItemInput{
			{Type: "margherita", Size: "large", Qty: qty(1)},
			{Type: "margherita", Size: "large", Qty: qty(2)},
		}, prices)

		require.Empty(t, invalid)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Qty)
		assert.Equal(t, 36, cart.Items[0].Subtotal)
		assert.Equal(t, 36, cart.Total)
	})

	t.Run("total always equals the sum of subtotals", func(t *testing.T) {
		cart, invalid := BuildCart("alice@x.com", []ItemInput{
			{Type: "margherita", Size: "small", Qty: qty(3)},
			{Type: "margherita", Size: "medium", Qty: qty(1)},
			{Type: "pepperoni", Size: "large", Qty: qty(2)},
		}, prices)

		require.Empty(t, invalid)
		sum := 0
		for _, item := range cart.Items {
			sum += item.Subtotal
		}
		assert.Equal(t, sum, cart.Total)
	})

	t.Run("collects unknown and malformed lines", func(t *testing.T) {
		_, invalid := BuildCart("alice@x.com", []ItemInput{
			{Type: "margherita", Size: "large", Qty: qty(1)},
			{Type: "anchovy", Size: "large", Qty: qty(1)}, // not on the menu
			{Type: "pepperoni", Size: "medium"},           // size not on the menu
			{Size: "small", Qty: qty(1)},                  // missing type
			{Type: "margherita", Size: "small", Qty: qty(-2)},
			{Type: "margherita", Size: "small", Qty: qty(0)}, // explicit zero, not a default
		}, prices)

		assert.Len(t, invalid, 5)
	})
}

func TestApplyDeltas(t *testing.T) {
	prices := testPrices()

	newCart := func() *models.Cart {
		return &models.Cart{
			ID:    "cart000001",
			Email: "alice@x.com",
			Items: []models.CartItem{
				{Type: "margherita", Size: "large", Qty: 2, Subtotal: 24},
			},
			Total: 24,
		}
	}

	t.Run("delta to exactly zero removes the line", func(t *testing.T) {
		cart := newCart()
		invalid := ApplyDeltas(cart, []DeltaInput{{Type: "margherita", Size: "large", Qty: -2}}, prices)

		assert.Empty(t, invalid)
		assert.Empty(t, cart.Items)
		assert.Equal(t, 0, cart.Total)
	})

	t.Run("delta adjusts quantity and recomputes subtotal", func(t *testing.T) {
		cart := newCart()
		invalid := ApplyDeltas(cart, []DeltaInput{{Type: "margherita", Size: "large", Qty: 1}}, prices)

		assert.Empty(t, invalid)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Qty)
		assert.Equal(t, 36, cart.Items[0].Subtotal)
		assert.Equal(t, 36, cart.Total)
	})

	t.Run("delta for an item never added is invalid and changes nothing", func(t *testing.T) {
		cart := newCart()
		invalid := ApplyDeltas(cart, []DeltaInput{{Type: "pepperoni", Size: "small", Qty: 1}}, prices)

		assert.Len(t, invalid, 1)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Qty)
		assert.Equal(t, 24, cart.Total)
	})

	t.Run("zero qty delta is invalid", func(t *testing.T) {
		cart := newCart()
		invalid := ApplyDeltas(cart, []DeltaInput{{Type: "margherita", Size: "large", Qty: 0}}, prices)

		assert.Len(t, invalid, 1)
		assert.Equal(t, 24, cart.Total)
	})

	t.Run("mix of valid and invalid deltas applies the valid subset", func(t *testing.T) {
		cart := newCart()
		invalid := ApplyDeltas(cart, []DeltaInput{
			{Type: "margherita", Size: "large", Qty: -1},
			{Type: "pepperoni", Size: "small", Qty: 1},
		}, prices)

		assert.Len(t, invalid, 1)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Qty)
		assert.Equal(t, 12, cart.Total)
	})
}

// -------- Handler tests --------

func newCartRouter(st *store.Stores) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/cart")
	group.Use(middleware.RequireToken)
	{
		group.POST("", CreateCartHandler(st))
		group.GET("", GetCartHandler(st))
		group.PUT("", UpdateCartHandler(st))
		group.DELETE("", DeleteCartHandler(st))
	}
	return r
}

func seedSession(t *testing.T, st *store.Stores, tokenID, email string) {
	t.Helper()
	require.NoError(t, st.Tokens.Create(context.Background(), &models.Token{
		ID:      tokenID,
		Email:   email,
		Expires: time.Now().Add(time.Hour),
	}))
}

func doCartJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCartHandler(t *testing.T) {
	t.Run("missing token is rejected before any side effect", func(t *testing.T) {
		st := store.NewMemoryStores()
		seedMenu(t, st)
		r := newCartRouter(st)

		w := doCartJSON(r, http.MethodPost, "/cart", "", gin.H{
			"email": "alice@x.com",
			"items": []gin.H{{"type": "margherita", "size": "large", "qty": 2}},
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid request persists the cart", func(t *testing.T) {
		st := store.NewMemoryStores()
		seedMenu(t, st)
		seedSession(t, st, "tok00000000000000001", "alice@x.com")
		r := newCartRouter(st)

		w := doCartJSON(r, http.MethodPost, "/cart", "tok00000000000000001", gin.H{
			"email": "alice@x.com",
			"items": []gin.H{{"type": "margherita", "size": "large", "qty": 2}},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var cart models.Cart
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
		assert.Equal(t, 24, cart.Total)

		stored, err := st.Carts.Get(context.Background(), cart.ID)
		require.NoError(t, err)
		assert.Equal(t, 24, stored.Total)
	})

	t.Run("one invalid line fails the whole request and persists nothing", func(t *testing.T) {
		st := store.NewMemoryStores()
		seedMenu(t, st)
		seedSession(t, st, "tok00000000000000001", "alice@x.com")
		r := newCartRouter(st)

		w := doCartJSON(r, http.MethodPost, "/cart", "tok00000000000000001", gin.H{
			"email": "alice@x.com",
			"items": []gin.H{
				{"type": "margherita", "size": "large", "qty": 2},
				{"type": "anchovy", "size": "large", "qty": 1},
			},
		})
		require.Equal(t, http.StatusForbidden, w.Code)

		var resp struct {
			InvalidItems []ItemInput `json:"invalidItems"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.InvalidItems, 1)
		assert.Equal(t, "anchovy", resp.InvalidItems[0].Type)
	})
}

func TestGetCartHandler(t *testing.T) {
	st := store.NewMemoryStores()
	seedMenu(t, st)
	seedSession(t, st, "tok00000000000000001", "alice@x.com")
	seedSession(t, st, "tok00000000000000002", "bob@x.com")
	require.NoError(t, st.Carts.Create(context.Background(), &models.Cart{
		ID:    "cart000001",
		Email: "alice@x.com",
		Items: []models.CartItem{{Type: "margherita", Size: "large", Qty: 2, Subtotal: 24}},
		Total: 24,
	}))
	r := newCartRouter(st)

	t.Run("owner reads the cart", func(t *testing.T) {
		w := doCartJSON(r, http.MethodGet, "/cart?email=alice@x.com&id=cart000001", "tok00000000000000001", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign cart is 401, not 400", func(t *testing.T) {
		w := doCartJSON(r, http.MethodGet, "/cart?email=bob@x.com&id=cart000001", "tok00000000000000002", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown cart is 400", func(t *testing.T) {
		w := doCartJSON(r, http.MethodGet, "/cart?email=alice@x.com&id=cart000009", "tok00000000000000001", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateCartHandler(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *store.Stores) {
		st := store.NewMemoryStores()
		seedMenu(t, st)
		seedSession(t, st, "tok00000000000000001", "alice@x.com")
		require.NoError(t, st.Carts.Create(context.Background(), &models.Cart{
			ID:    "cart000001",
			Email: "alice@x.com",
			Items: []models.CartItem{{Type: "margherita", Size: "large", Qty: 2, Subtotal: 24}},
			Total: 24,
		}))
		return newCartRouter(st), st
	}

	t.Run("best effort persists the valid subset", func(t *testing.T) {
		r, st := setup(t)

		w := doCartJSON(r, http.MethodPut, "/cart", "tok00000000000000001", gin.H{
			"email": "alice@x.com",
			"id":    "cart000001",
			"items": []gin.H{
				{"type": "margherita", "size": "large", "qty": -1},
				{"type": "pepperoni", "size": "small", "qty": 1}, // never added
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		stored, err := st.Carts.Get(context.Background(), "cart000001")
		require.NoError(t, err)
		require.Len(t, stored.Items, 1)
		assert.Equal(t, 1, stored.Items[0].Qty)
		assert.Equal(t, 12, stored.Total)
	})

	t.Run("all invalid deltas persist nothing", func(t *testing.T) {
		r, st := setup(t)

		w := doCartJSON(r, http.MethodPut, "/cart", "tok00000000000000001", gin.H{
			"email": "alice@x.com",
			"id":    "cart000001",
			"items": []gin.H{{"type": "pepperoni", "size": "small", "qty": 1}},
		})
		require.Equal(t, http.StatusForbidden, w.Code)

		stored, err := st.Carts.Get(context.Background(), "cart000001")
		require.NoError(t, err)
		assert.Equal(t, 24, stored.Total)
	})

	t.Run("delta to zero removes the line", func(t *testing.T) {
		r, st := setup(t)

		w := doCartJSON(r, http.MethodPut, "/cart", "tok00000000000000001", gin.H{
			"email": "alice@x.com",
			"id":    "cart000001",
			"items": []gin.H{{"type": "margherita", "size": "large", "qty": -2}},
		})
		require.Equal(t, http.StatusOK, w.Code)

		stored, err := st.Carts.Get(context.Background(), "cart000001")
		require.NoError(t, err)
		assert.Empty(t, stored.Items)
		assert.Equal(t, 0, stored.Total)
	})
}

func TestDeleteCartHandler(t *testing.T) {
	st := store.NewMemoryStores()
	seedSession(t, st, "tok00000000000000001", "alice@x.com")
	seedSession(t, st, "tok00000000000000002", "bob@x.com")
	require.NoError(t, st.Carts.Create(context.Background(), &models.Cart{
		ID:    "cart000001",
		Email: "alice@x.com",
	}))
	r := newCartRouter(st)

	t.Run("foreign cart cannot be deleted", func(t *testing.T) {
		w := doCartJSON(r, http.MethodDelete, "/cart", "tok00000000000000002", gin.H{
			"email": "bob@x.com", "id": "cart000001",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("owner deletes with only email and id", func(t *testing.T) {
		w := doCartJSON(r, http.MethodDelete, "/cart", "tok00000000000000001", gin.H{
			"email": "alice@x.com", "id": "cart000001",
		})
		require.Equal(t, http.StatusOK, w.Code)

		_, err := st.Carts.Get(context.Background(), "cart000001")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
