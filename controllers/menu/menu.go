package menuControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	tokenControllers "github.com/fresnizky/pizza-delivery-api/controllers/token"
	"github.com/fresnizky/pizza-delivery-api/helpers"
	"github.com/fresnizky/pizza-delivery-api/models"
	"github.com/fresnizky/pizza-delivery-api/store"
)

type UpsertMenuItemRequest struct {
	Type  string `json:"type" binding:"required"`
	Size  string `json:"size" binding:"required"`
	Price int    `json:"price" binding:"required,min=1"`
}

// GET /menu?email=...
func GetMenuHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if !helpers.IsValidEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, email) {
			return
		}

		items, err := st.Menu.Items(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load menu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"pizzas": items})
	}
}

// POST /admin/menu
func UpsertMenuItemHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item := &models.MenuItem{
			Type:  req.Type,
			Size:  req.Size,
			Price: req.Price,
		}
		if err := st.Menu.Upsert(c.Request.Context(), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save menu item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// GET /admin/menu
func ListMenuItemsHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := st.Menu.Items(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load menu"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// DELETE /admin/menu/:id
func DeleteMenuItemHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}

		if err := st.Menu.Remove(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete menu item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	}
}
