package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrItemNotFound      = errors.New("item not found in wishlist")
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
)

type Item struct {
	WishlistItemID string          `json:"wishlist_item_id"`
	ProductID      string          `json:"product_id"`
	Title          string          `json:"title"`
	Price          decimal.Decimal `json:"price"`
	Rating         float64         `json:"rating"`
	StockQuantity  int             `json:"stock_quantity"`
	PrimaryImage   *string         `json:"image,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	List(ctx context.Context, userID string) ([]Item, error)
	Add(ctx context.Context, userID, productID string) (string, error)
	Remove(ctx context.Context, userID, productID string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT wi.id, p.id, p.title, p.price, p.rating, p.stock_quantity,
			(SELECT image_url FROM product_images WHERE product_id = p.id AND is_primary LIMIT 1),
			wi.created_at
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = $1
		ORDER BY wi.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select wishlist_items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.WishlistItemID, &it.ProductID, &it.Title, &it.Price,
			&it.Rating, &it.StockQuantity, &it.PrimaryImage, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wishlist_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}

// Add inserts the (user, product) pair. A duplicate add is a conflict, not a
// merge; this is what distinguishes the wishlist from the cart.
func (r *PostgresRepository) Add(ctx context.Context, userID, productID string) (string, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("select product: %w", err)
	}
	if !exists {
		return "", ErrProductNotFound
	}

	itemID := uuid.NewString()
	_, err = r.pool.Exec(ctx,
		`INSERT INTO wishlist_items (id, user_id, product_id) VALUES ($1, $2, $3)`,
		itemID, userID, productID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrAlreadyInWishlist
		}
		return "", fmt.Errorf("insert wishlist_item: %w", err)
	}

	return itemID, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, productID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete wishlist_item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
