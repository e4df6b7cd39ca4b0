package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Line struct {
	CartItemID    string          `json:"cart_item_id"`
	ProductID     string          `json:"product_id"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Quantity      int             `json:"quantity"`
	PrimaryImage  *string         `json:"primary_image,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Summary struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

type Cart struct {
	Items   []Line  `json:"items"`
	Summary Summary `json:"summary"`
}
