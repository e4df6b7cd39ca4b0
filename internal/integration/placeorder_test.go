package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harsh10022004/amazon-clone/internal/order"
	"github.com/Harsh10022004/amazon-clone/internal/testutil"
)

func seedProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, title, price string, stock int) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(ctx,
		`INSERT INTO products (id, title, description, price, stock_quantity) VALUES ($1, $2, '', $3, $4)`,
		id, title, price, stock)
	require.NoError(t, err)
	return id
}

func seedCartLine(ctx context.Context, t *testing.T, pool *pgxpool.Pool, userID, productID string, quantity int) {
	t.Helper()
	_, err := pool.Exec(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), userID, productID, quantity)
	require.NoError(t, err)
}

func stockOf(ctx context.Context, t *testing.T, pool *pgxpool.Pool, productID string) int {
	t.Helper()
	var stock int
	require.NoError(t, pool.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1`, productID).Scan(&stock))
	return stock
}

func cartSize(ctx context.Context, t *testing.T, pool *pgxpool.Pool, userID string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM cart_items WHERE user_id = $1`, userID).Scan(&n))
	return n
}

func TestPlaceOrder_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test; requires docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pool, cleanup := testutil.StartPostgres(ctx, t)
	t.Cleanup(cleanup)

	productA := seedProduct(ctx, t, pool, "Product A", "10.00", 5)
	productB := seedProduct(ctx, t, pool, "Product B", "5.50", 1)
	seedCartLine(ctx, t, pool, "user-1", productA, 2)
	seedCartLine(ctx, t, pool, "user-1", productB, 1)

	repo := order.NewPostgresRepository(pool)

	placed, err := repo.PlaceOrder(ctx, "user-1", "221B Baker Street")
	require.NoError(t, err)
	assert.Equal(t, "25.50", placed.TotalAmount.StringFixed(2))
	assert.Equal(t, order.StatusConfirmed, placed.Status)

	assert.Equal(t, 3, stockOf(ctx, t, pool, productA))
	assert.Equal(t, 0, stockOf(ctx, t, pool, productB))
	assert.Equal(t, 0, cartSize(ctx, t, pool, "user-1"))

	// Re-reading the order is stable.
	first, err := repo.GetByID(ctx, "user-1", placed.OrderID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, "user-1", placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, first.Items, second.Items)
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	require.Len(t, first.Items, 2)

	// price_at_purchase is a snapshot: a later catalog price change must not
	// move the recorded total.
	_, err = pool.Exec(ctx, `UPDATE products SET price = '99.99' WHERE id = $1`, productA)
	require.NoError(t, err)
	after, err := repo.GetByID(ctx, "user-1", placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "25.50", after.TotalAmount.StringFixed(2))
	for _, it := range after.Items {
		if it.ProductID == productA {
			assert.Equal(t, "10.00", it.PriceAtPurchase.StringFixed(2))
		}
	}
}

func TestPlaceOrder_ShortStockLeavesStateUntouched(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test; requires docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pool, cleanup := testutil.StartPostgres(ctx, t)
	t.Cleanup(cleanup)

	productA := seedProduct(ctx, t, pool, "Product A", "10.00", 5)
	productB := seedProduct(ctx, t, pool, "Product B", "5.50", 0)
	seedCartLine(ctx, t, pool, "user-1", productA, 2)
	seedCartLine(ctx, t, pool, "user-1", productB, 1)

	repo := order.NewPostgresRepository(pool)

	_, err := repo.PlaceOrder(ctx, "user-1", "somewhere")
	var stockErr *order.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Product B", stockErr.Title)
	assert.Equal(t, 0, stockErr.Available)

	// Nothing moved: no partial decrement, cart intact, no order rows.
	assert.Equal(t, 5, stockOf(ctx, t, pool, productA))
	assert.Equal(t, 2, cartSize(ctx, t, pool, "user-1"))

	var orderCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&orderCount))
	assert.Equal(t, 0, orderCount)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test; requires docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pool, cleanup := testutil.StartPostgres(ctx, t)
	t.Cleanup(cleanup)

	repo := order.NewPostgresRepository(pool)

	_, err := repo.PlaceOrder(ctx, "user-1", "somewhere")
	require.ErrorIs(t, err, order.ErrEmptyCart)

	var orderCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&orderCount))
	assert.Equal(t, 0, orderCount)
}

// Two buyers race for the last unit: exactly one order commits and the stock
// never goes negative.
func TestPlaceOrder_ConcurrentLastUnit(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test; requires docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pool, cleanup := testutil.StartPostgres(ctx, t)
	t.Cleanup(cleanup)

	productID := seedProduct(ctx, t, pool, "Last One", "42.00", 1)
	seedCartLine(ctx, t, pool, "user-a", productID, 1)
	seedCartLine(ctx, t, pool, "user-b", productID, 1)

	repo := order.NewPostgresRepository(pool)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, userID := range []string{"user-a", "user-b"} {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, results[i] = repo.PlaceOrder(ctx, userID, "somewhere")
		}(i, userID)
	}
	wg.Wait()

	var succeeded, shortStock int
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var stockErr *order.InsufficientStockError
		if errors.As(err, &stockErr) {
			assert.Equal(t, 0, stockErr.Available)
			shortStock++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one placement must win: %v", results)
	assert.Equal(t, 1, shortStock, "the loser must see a stock conflict: %v", results)

	assert.Equal(t, 0, stockOf(ctx, t, pool, productID))

	var orderCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&orderCount))
	assert.Equal(t, 1, orderCount)
}
