package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fresnizky/pizza-delivery-api/config"
	tokenControllers "github.com/fresnizky/pizza-delivery-api/controllers/token"
	"github.com/fresnizky/pizza-delivery-api/helpers"
	"github.com/fresnizky/pizza-delivery-api/models"
	"github.com/fresnizky/pizza-delivery-api/store"
)

// -------- Request Structs --------

type SignupRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Email     string  `json:"email" binding:"required"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Address   *string `json:"address"`
	Password  *string `json:"password"`
}

type DeleteUserRequest struct {
	Email string `json:"email" binding:"required"`
}

// -------- Handlers --------

// POST /users
func SignupHandler(st *store.Stores, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil || !helpers.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		user := &models.User{
			ID:             helpers.Hash(req.Email, cfg.HashingSecret),
			Email:          req.Email,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Address:        req.Address,
			HashedPassword: helpers.Hash(req.Password, cfg.HashingSecret),
		}

		if err := st.Users.Create(c.Request.Context(), user); err != nil {
			if errors.Is(err, models.ErrAlreadyExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A user with that email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the new user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /user?email=...
func GetUserHandler(st *store.Stores, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if !helpers.IsValidEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, email) {
			return
		}

		user, err := st.Users.Get(c.Request.Context(), helpers.Hash(email, cfg.HashingSecret))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /user
func UpdateUserHandler(st *store.Stores, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil || !helpers.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		if req.FirstName == nil && req.LastName == nil && req.Address == nil && req.Password == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields to update"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, req.Email) {
			return
		}

		user, err := st.Users.Get(c.Request.Context(), helpers.Hash(req.Email, cfg.HashingSecret))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The specified user does not exist"})
			return
		}

		if req.FirstName != nil {
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			user.LastName = *req.LastName
		}
		if req.Address != nil {
			user.Address = *req.Address
		}
		if req.Password != nil {
			user.HashedPassword = helpers.Hash(*req.Password, cfg.HashingSecret)
		}

		if err := st.Users.Update(c.Request.Context(), user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DELETE /user
func DeleteUserHandler(st *store.Stores, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteUserRequest
		if err := c.ShouldBindJSON(&req); err != nil || !helpers.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field"})
			return
		}
		if !tokenControllers.GateRequest(c, st.Tokens, req.Email) {
			return
		}

		if err := st.Users.Delete(c.Request.Context(), helpers.Hash(req.Email, cfg.HashingSecret)); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find the specified user"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the specified user"})
			return
		}

		// TODO: also remove the user's carts and tokens on account deletion
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
