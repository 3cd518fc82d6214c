package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fresnizky/pizza-delivery-api/models"
)

// NewGormStores wires every repository to the same gorm connection.
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:  &gormUsers{db: db},
		Tokens: &gormTokens{db: db},
		Carts:  &gormCarts{db: db},
		Menu:   &gormMenu{db: db},
	}
}

type gormUsers struct {
	db *gorm.DB
}

func (s *gormUsers) Create(ctx context.Context, user *models.User) error {
	var existing models.User
	err := s.db.WithContext(ctx).First(&existing, "id = ?", user.ID).Error
	if err == nil {
		return models.ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormUsers) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormUsers) Update(ctx context.Context, user *models.User) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"address":         user.Address,
		"hashed_password": user.HashedPassword,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *gormUsers) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

type gormTokens struct {
	db *gorm.DB
}

func (s *gormTokens) Create(ctx context.Context, token *models.Token) error {
	return s.db.WithContext(ctx).Create(token).Error
}

func (s *gormTokens) Get(ctx context.Context, id string) (*models.Token, error) {
	var token models.Token
	if err := s.db.WithContext(ctx).First(&token, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (s *gormTokens) Update(ctx context.Context, token *models.Token) error {
	res := s.db.WithContext(ctx).Model(&models.Token{}).Where("id = ?", token.ID).
		Update("expires", token.Expires)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *gormTokens) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Token{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *gormTokens) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires <= ?", before).Delete(&models.Token{})
	return res.RowsAffected, res.Error
}

type gormCarts struct {
	db *gorm.DB
}

func (s *gormCarts) Create(ctx context.Context, cart *models.Cart) error {
	return s.db.WithContext(ctx).Create(cart).Error
}

func (s *gormCarts) Get(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.WithContext(ctx).Preload("Items").First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Update rewrites the stored item list wholesale. The cart mutation paths
// rebuild items instead of patching rows in place, so replace-all keeps the
// persisted state aligned with what the engine computed.
func (s *gormCarts) Update(ctx context.Context, cart *models.Cart) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
			"total":      cart.Total,
			"updated_at": time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}
		items := make([]models.CartItem, len(cart.Items))
		for i, item := range cart.Items {
			items[i] = models.CartItem{
				CartID:   cart.ID,
				Type:     item.Type,
				Size:     item.Size,
				Qty:      item.Qty,
				Subtotal: item.Subtotal,
			}
		}
		return tx.Create(&items).Error
	})
}

func (s *gormCarts) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Select(clause.Associations).Delete(&models.Cart{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

type gormMenu struct {
	db *gorm.DB
}

func (s *gormMenu) Load(ctx context.Context) (models.PriceList, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	prices := models.PriceList{}
	for _, item := range items {
		if prices[item.Type] == nil {
			prices[item.Type] = map[string]int{}
		}
		prices[item.Type][item.Size] = item.Price
	}
	return prices, nil
}

func (s *gormMenu) Items(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Order("type, size").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *gormMenu) Upsert(ctx context.Context, item *models.MenuItem) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}, {Name: "size"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(item).Error
}

func (s *gormMenu) Remove(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
