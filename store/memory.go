package store

import (
	"context"
	"sync"
	"time"

	"github.com/fresnizky/pizza-delivery-api/models"
)

// NewMemoryStores returns map-backed repositories with the same semantics as
// the gorm ones. Tests run against these.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:  &memoryUsers{users: map[string]models.User{}},
		Tokens: &memoryTokens{tokens: map[string]models.Token{}},
		Carts:  &memoryCarts{carts: map[string]models.Cart{}},
		Menu:   &memoryMenu{},
	}
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (s *memoryUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return models.ErrAlreadyExists
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memoryUsers) Get(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

func (s *memoryUsers) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return models.ErrNotFound
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memoryUsers) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type memoryTokens struct {
	mu     sync.Mutex
	tokens map[string]models.Token
}

func (s *memoryTokens) Create(_ context.Context, token *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token.ID]; ok {
		return models.ErrAlreadyExists
	}
	s.tokens[token.ID] = *token
	return nil
}

func (s *memoryTokens) Get(_ context.Context, id string) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &token, nil
}

func (s *memoryTokens) Update(_ context.Context, token *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token.ID]; !ok {
		return models.ErrNotFound
	}
	s.tokens[token.ID] = *token
	return nil
}

func (s *memoryTokens) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.tokens, id)
	return nil
}

func (s *memoryTokens) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, token := range s.tokens {
		if !token.Expires.After(before) {
			delete(s.tokens, id)
			n++
		}
	}
	return n, nil
}

type memoryCarts struct {
	mu    sync.Mutex
	carts map[string]models.Cart
}

func copyCart(cart models.Cart) models.Cart {
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return cart
}

func (s *memoryCarts) Create(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[cart.ID]; ok {
		return models.ErrAlreadyExists
	}
	s.carts[cart.ID] = copyCart(*cart)
	return nil
}

func (s *memoryCarts) Get(_ context.Context, id string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	c := copyCart(cart)
	return &c, nil
}

func (s *memoryCarts) Update(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[cart.ID]; !ok {
		return models.ErrNotFound
	}
	s.carts[cart.ID] = copyCart(*cart)
	return nil
}

func (s *memoryCarts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.carts, id)
	return nil
}

type memoryMenu struct {
	mu     sync.Mutex
	items  []models.MenuItem
	nextID uint
}

func (s *memoryMenu) Load(ctx context.Context) (models.PriceList, error) {
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

func (s *memoryMenu) Items(_ context.Context) ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.MenuItem, len(s.items))
	copy(items, s.items)
	return items, nil
}

func (s *memoryMenu) Upsert(_ context.Context, item *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Type == item.Type && s.items[i].Size == item.Size {
			s.items[i].Price = item.Price
			item.ID = s.items[i].ID
			return nil
		}
	}
	s.nextID++
	item.ID = s.nextID
	s.items = append(s.items, *item)
	return nil
}

func (s *memoryMenu) Remove(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}
