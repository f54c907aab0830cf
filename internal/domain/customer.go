package domain

import "time"

// Customer is the subset of the platform customer exposed to clients.
type Customer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	Version   int    `json:"version"`
}

// SignInResult is returned by sign-in and sign-up.
type SignInResult struct {
	Customer Customer `json:"customer"`
	Cart     *Cart    `json:"cart"`
}

// Order is the confirmation returned after placing an order.
type Order struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	CartID      string    `json:"cartId"`
	TotalPrice  Money     `json:"totalPrice"`
	OrderState  string    `json:"orderState"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlacedOrder is a row of the local order ledger.
type PlacedOrder struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	CartID      string    `json:"cartId"`
	CustomerID  *string   `json:"customerId,omitempty"`
	AnonymousID *string   `json:"-"`
	Locale      string    `json:"locale"`
	Currency    string    `json:"currency"`
	TotalCents  int64     `json:"totalCents"`
	CreatedAt   time.Time `json:"createdAt"`
}
