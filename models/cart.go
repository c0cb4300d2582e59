package models

import (
	"math"
	"time"
)

// Transaction status values used by the commerce backend.
const (
	TransactionPending   = "pending"
	TransactionPurchased = "purchased"
)

// CartLine is one item inside a cart transaction.
type CartLine struct {
	ItemID string  `json:"itemId" bson:"itemId"`
	Title  string  `json:"title" bson:"title"`
	Price  float64 `json:"price" bson:"price"`
}

// CartTransaction is a user's cart record on the commerce backend.
type CartTransaction struct {
	ID    string     `json:"id" bson:"id"`
	Email string     `json:"email" bson:"email"`
	Items []CartLine `json:"items" bson:"items"`
}

// Total sums line prices rounded to two decimals.
func (t CartTransaction) Total() float64 {
	var sum float64
	for _, line := range t.Items {
		sum += line.Price
	}
	return math.Round(sum*100) / 100
}

// CartSummary is what the assistant reports back after a booking.
type CartSummary struct {
	TransactionID string  `json:"transactionId"`
	ItemCount     int     `json:"itemCount"`
	Total         float64 `json:"total"`
}

// BookingEvent is published after an item lands in a cart.
type BookingEvent struct {
	ConversationID string    `json:"conversationId" bson:"conversationId"`
	Email          string    `json:"email" bson:"email"`
	TransactionID  string    `json:"transactionId" bson:"transactionId"`
	ItemID         string    `json:"itemId" bson:"itemId"`
	CartTotal      float64   `json:"cartTotal" bson:"cartTotal"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
