package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// StockError is returned when a requested quantity exceeds what the catalog
// currently has on hand.
type StockError struct {
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("only %d items available in stock", e.Available)
}

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (string, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetCart(ctx context.Context, userID string) (*Cart, error) {
	rows, err := r.pool.Query(ctx, `SELECT ci.id, ci.product_id, p.title, p.price, p.stock_quantity, ci.quantity,
			(SELECT image_url FROM product_images WHERE product_id = p.id AND is_primary LIMIT 1),
			ci.created_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart_items: %w", err)
	}
	defer rows.Close()

	c := &Cart{Items: []Line{}}
	subtotal := decimal.Zero
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.CartItemID, &l.ProductID, &l.Title, &l.Price, &l.StockQuantity,
			&l.Quantity, &l.PrimaryImage, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart_item: %w", err)
		}
		c.Items = append(c.Items, l)
		c.Summary.ItemCount += l.Quantity
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	c.Summary.Subtotal = subtotal.Round(2)
	c.Summary.Total = c.Summary.Subtotal
	return c, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, userID, productID string, quantity int) (string, error) {
	if quantity < 1 {
		return "", ErrInvalidQuantity
	}

	var stock int
	err := r.pool.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1`, productID).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrProductNotFound
		}
		return "", fmt.Errorf("select product: %w", err)
	}

	existing := 0
	err = r.pool.QueryRow(ctx,
		`SELECT quantity FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	).Scan(&existing)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("select cart_item: %w", err)
	}

	if existing+quantity > stock {
		return "", &StockError{Available: stock}
	}

	// Merge into the existing line if one exists for this (user, product).
	var cartItemID string
	err = r.pool.QueryRow(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, product_id) DO UPDATE
		 SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
		 RETURNING id`,
		uuid.NewString(), userID, productID, quantity,
	).Scan(&cartItemID)
	if err != nil {
		return "", fmt.Errorf("upsert cart_item: %w", err)
	}

	return cartItemID, nil
}

func (r *PostgresRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	var stock int
	err := r.pool.QueryRow(ctx, `SELECT p.stock_quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1 AND ci.product_id = $2`,
		userID, productID,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrItemNotFound
		}
		return fmt.Errorf("select cart_item: %w", err)
	}

	if quantity > stock {
		return &StockError{Available: stock}
	}

	_, err = r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		 WHERE user_id = $1 AND product_id = $2`,
		userID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart_item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete cart_item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Clear empties the cart. Clearing an already-empty cart is not an error.
func (r *PostgresRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete cart_items: %w", err)
	}
	return nil
}
