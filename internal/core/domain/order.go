package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDone      OrderStatus = "done"
	OrderCancelled OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// done and cancelled are terminal: nothing transitions out of them.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderDone, OrderCancelled},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")

// ParseOrderStatus validates a status literal supplied by a caller.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderDone, OrderCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s OrderStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// OrderLine is a point-in-time copy of a product embedded in an order.
// It is deliberately decoupled from the live catalog record so that later
// product edits or deletions never alter order history.
type OrderLine struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int64   `json:"quantity" bson:"quantity"`
}

// Order is the immutable record produced by checkout. Status is the only
// field that changes after creation, and only through an admin transition.
type Order struct {
	ID             string      `json:"id" bson:"_id,omitempty"`
	UserID         string      `json:"user_id" bson:"user_id"`
	Username       string      `json:"username" bson:"username"`
	WhatsappNumber string      `json:"whatsapp_number" bson:"whatsapp_number"`
	Products       []OrderLine `json:"products" bson:"products"`
	TotalAmount    float64     `json:"total_amount" bson:"total_amount"`
	Status         OrderStatus `json:"status" bson:"status"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
}
