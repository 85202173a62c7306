package models

import "time"

// CartItem represents a single item in the user's cart.
type CartItem struct {
	UserID    string    `json:"userId,omitempty" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Price     float64   `json:"price" bson:"price"` // unit price
	Quantity  int       `json:"quantity" bson:"quantity"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}
