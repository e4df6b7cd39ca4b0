package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `json:"review_count"`
	CategoryName  *string         `json:"category_name"`
	PrimaryImage  *string         `json:"primary_image,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Image struct {
	ImageURL     string `json:"image_url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

// ProductDetail is a single product with its image carousel and the
// specifications JSONB decoded into a map.
type ProductDetail struct {
	Product
	Images         []Image        `json:"images"`
	Specifications map[string]any `json:"specifications"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
