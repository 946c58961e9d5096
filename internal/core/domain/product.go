package domain

import (
	"errors"
	"math"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidPrice = errors.New("price must be a non-negative finite number")

// Product is a catalog record. Mutated and deleted only by admin action.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Category    string    `json:"category" bson:"category"`
	InStock     bool      `json:"in_stock" bson:"in_stock"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ValidPrice reports whether p is acceptable as a catalog price:
// finite and not negative. Zero is allowed.
func ValidPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}
