package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const StatusConfirmed = "confirmed"

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNotFound  = errors.New("order not found")
)

// InsufficientStockError reports the first cart line whose requested quantity
// exceeds the live stock, naming the product and what is still available.
type InsufficientStockError struct {
	ProductID string
	Title     string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: only %d available", e.Title, e.Available)
}

type Item struct {
	ProductID       string          `json:"product_id"`
	Title           string          `json:"title"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	PrimaryImage    *string         `json:"image,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []Item          `json:"items"`
}

// PlacedOrder is the result handed back to the caller of PlaceOrder.
type PlacedOrder struct {
	OrderID     string          `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}
