package cart

import (
	"sync"
	"time"

	"needwise/models"
)

// Store keeps per-user carts. Quantities never drop below one: setting a
// lower quantity removes the line entirely.
type Store struct {
	mu    sync.Mutex
	items map[string][]models.CartItem // userID -> lines, arrival order
}

func NewStore() *Store {
	return &Store{items: make(map[string][]models.CartItem)}
}

func (s *Store) List(userID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items[userID]))
	copy(out, s.items[userID])
	return out
}

// Add inserts a new line with quantity one, or bumps the quantity when
// the product is already in the cart.
func (s *Store) Add(userID string, product models.Product) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.items[userID]
	for i := range lines {
		if lines[i].ProductID == product.ProductID {
			lines[i].Quantity++
			return s.snapshot(userID)
		}
	}
	s.items[userID] = append(lines, models.CartItem{
		UserID:    userID,
		ProductID: product.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
		AddedAt:   time.Now(),
	})
	return s.snapshot(userID)
}

// SetQuantity updates a line; a quantity below one removes it.
func (s *Store) SetQuantity(userID, productID string, quantity int) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity < 1 {
		s.removeLocked(userID, productID)
		return s.snapshot(userID)
	}
	for i := range s.items[userID] {
		if s.items[userID][i].ProductID == productID {
			s.items[userID][i].Quantity = quantity
			break
		}
	}
	return s.snapshot(userID)
}

// Remove drops a line; removing an absent product is a no-op.
func (s *Store) Remove(userID, productID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(userID, productID)
	return s.snapshot(userID)
}

func (s *Store) removeLocked(userID, productID string) {
	lines := s.items[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.items[userID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

func (s *Store) snapshot(userID string) []models.CartItem {
	out := make([]models.CartItem, len(s.items[userID]))
	copy(out, s.items[userID])
	return out
}
