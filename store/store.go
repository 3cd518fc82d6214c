// Package store defines the persistence contracts for the order backend and
// ships two implementations: a gorm-backed one used in production and an
// in-memory one used by tests.
package store

import (
	"context"
	"time"

	"github.com/fresnizky/pizza-delivery-api/models"
)

// Users persists user records keyed by the hashed email.
type Users interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// Tokens persists login tokens keyed by their opaque id.
type Tokens interface {
	Create(ctx context.Context, token *models.Token) error
	Get(ctx context.Context, id string) (*models.Token, error)
	Update(ctx context.Context, token *models.Token) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Carts persists carts together with their item lines. Update replaces the
// stored item list with the one on the passed cart.
type Carts interface {
	Create(ctx context.Context, cart *models.Cart) error
	Get(ctx context.Context, id string) (*models.Cart, error)
	Update(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, id string) error
}

// Menu is the read-mostly catalog. Load returns the price table the cart and
// order paths consult; the remaining operations back the admin surface.
type Menu interface {
	Load(ctx context.Context) (models.PriceList, error)
	Items(ctx context.Context) ([]models.MenuItem, error)
	Upsert(ctx context.Context, item *models.MenuItem) error
	Remove(ctx context.Context, id uint) error
}

// Stores bundles one repository per collection.
type Stores struct {
	Users  Users
	Tokens Tokens
	Carts  Carts
	Menu   Menu
}
