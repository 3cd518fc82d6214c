package tokenControllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fresnizky/pizza-delivery-api/config"
	"github.com/fresnizky/pizza-delivery-api/helpers"
	"github.com/fresnizky/pizza-delivery-api/middleware"
	"github.com/fresnizky/pizza-delivery-api/models"
	"github.com/fresnizky/pizza-delivery-api/store"
)

const tokenIDLength = 20

// -------- Request Structs --------

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ExtendRequest struct {
	ID     string `json:"id" binding:"required,len=20"`
	Extend bool   `json:"extend" binding:"required"`
}

// -------- Core Logic --------

// Verify reports whether the token authorizes actions for the given email:
// the record must exist, belong to that email, and not be expired. Every
// failure mode collapses to false; nothing is mutated.
func Verify(ctx context.Context, tokens store.Tokens, tokenID, email string) bool {
	if tokenID == "" || email == "" {
		return false
	}
	token, err := tokens.Get(ctx, tokenID)
	if err != nil {
		return false
	}
	return token.Email == email && !token.Expired(time.Now())
}

// GateRequest rejects the request when the token from the middleware does
// not authorize the given email. Returns true when the caller may proceed.
func GateRequest(c *gin.Context, tokens store.Tokens, email string) bool {
	tokenID := c.GetString(middleware.TokenIDKey)
	if !Verify(c.Request.Context(), tokens, tokenID, email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Missing required token in header or token is invalid"})
		return false
	}
	return true
}

// Login checks the credentials against the stored user and mints a fresh
// token valid for the configured TTL.
func Login(ctx context.Context, st *store.Stores, cfg *config.Config, email, password string) (*models.Token, error) {
	user, err := st.Users.Get(ctx, helpers.Hash(email, cfg.HashingSecret))
	if err != nil {
		return nil, models.ErrUserNotFound
	}
	if helpers.Hash(password, cfg.HashingSecret) != user.HashedPassword {
		return nil, models.ErrInvalidPassword
	}

	token := &models.Token{
		ID:      helpers.RandomString(tokenIDLength),
		Email:   email,
		Expires: time.Now().Add(cfg.TokenTTL),
	}
	if err := st.Tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Extend pushes an unexpired token's expiration out by the configured TTL.
// Expired tokens are never revivable.
func Extend(ctx context.Context, st *store.Stores, cfg *config.Config, id string) (*models.Token, error) {
	token, err := st.Tokens.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if token.Expired(time.Now()) {
		return nil, models.ErrTokenExpired
	}

	token.Expires = time.Now().Add(cfg.TokenTTL)
	if err := st.Tokens.Update(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// -------- Handlers --------

// POST /tokens
func LoginHandler(st *store.Stores, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Required Fields"})
			return
		}
		if !helpers.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Required Fields"})
			return
		}

		token, err := Login(c.Request.Context(), st, cfg, req.Email, req.Password)
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find the specified user"})
		case errors.Is(err, models.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Password did not match the specified user stored password"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the new token"})
		default:
			c.JSON(http.StatusOK, token)
		}
	}
}

// GET /tokens/:id
func GetTokenHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if len(id) != tokenIDLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field"})
			return
		}

		token, err := st.Tokens.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
			return
		}
		c.JSON(http.StatusOK, token)
	}
}

// PUT /tokens
func ExtendTokenHandler(st *store.Stores, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExtendRequest
		if err := c.ShouldBindJSON(&req); err != nil || !req.Extend {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Required fields or fields are invalid"})
			return
		}

		token, err := Extend(c.Request.Context(), st, cfg, req.ID)
		switch {
		case errors.Is(err, models.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "The token has already expired and cannot be extended"})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "The specified token does not exist"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the token expiration"})
		default:
			c.JSON(http.StatusOK, token)
		}
	}
}

// DELETE /tokens/:id
func DeleteTokenHandler(st *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if len(id) != tokenIDLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field"})
			return
		}

		if err := st.Tokens.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find the specified token"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the specified token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
