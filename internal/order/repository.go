package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository interface {
	PlaceOrder(ctx context.Context, userID, shippingAddress string) (*PlacedOrder, error)
	GetByID(ctx context.Context, userID, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// PlaceOrder converts the user's cart into an order in one transaction:
// - locks the referenced product rows (SELECT ... FOR UPDATE OF p) so a
//   concurrent placement for the same products blocks until we commit
// - fails the whole unit on an empty cart or any short line
// - snapshots price_at_purchase from the locked read, decrements stock,
//   and clears the cart before committing
// Locks are taken in product_id order so two multi-line placements cannot
// deadlock. A stock conflict is reported, never retried.
func (r *PostgresRepository) PlaceOrder(ctx context.Context, userID, shippingAddress string) (*PlacedOrder, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `SELECT ci.product_id, ci.quantity, p.title, p.price, p.stock_quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.product_id
		FOR UPDATE OF p`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart for update: %w", err)
	}

	type line struct {
		productID string
		quantity  int
		title     string
		price     decimal.Decimal
		stock     int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity, &l.title, &l.price, &l.stock); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	for _, l := range lines {
		if l.quantity > l.stock {
			return nil, &InsufficientStockError{
				ProductID: l.productID,
				Title:     l.title,
				Requested: l.quantity,
				Available: l.stock,
			}
		}
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}
	total = total.Round(2)

	orderID := uuid.NewString()
	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, total_amount, status, shipping_address)
		 VALUES ($1, $2, $3, $4, $5)`,
		orderID, userID, total, StatusConfirmed, shippingAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, l := range lines {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), orderID, l.productID, l.quantity, l.price,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order_item: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE products SET stock_quantity = stock_quantity - $2 WHERE id = $1`,
			l.productID, l.quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("update stock: %w", err)
		}
	}

	if _, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &PlacedOrder{OrderID: orderID, TotalAmount: total, Status: StatusConfirmed}, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, orderID string) (*Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, total_amount, status, shipping_address, created_at
		 FROM orders WHERE id = $1 AND user_id = $2`,
		orderID, userID,
	).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, total_amount, status, shipping_address, created_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT oi.product_id, p.title, oi.quantity, oi.price_at_purchase,
			(SELECT image_url FROM product_images WHERE product_id = p.id AND is_primary LIMIT 1)
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Title, &it.Quantity, &it.PriceAtPurchase, &it.PrimaryImage); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}
