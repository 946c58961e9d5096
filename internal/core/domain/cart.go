package domain

import (
	"errors"
	"time"
)

var ErrCartItemNotFound = errors.New("cart item not found")
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartItem is one (user, product) line in a cart. The storage layer enforces
// uniqueness on the pair; a line with quantity <= 0 is never persisted.
type CartItem struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	ProductID string    `json:"product_id" bson:"product_id"`
	Quantity  int64     `json:"quantity" bson:"quantity"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CartEntry is a cart line joined with its live product, as returned to
// callers. Lines whose product has since been deleted are filtered out
// before this type is built.
type CartEntry struct {
	CartItem
	Product Product `json:"product"`
}
