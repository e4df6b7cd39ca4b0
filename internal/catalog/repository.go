package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("product not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	List(ctx context.Context, search, category string) ([]Product, error)
	GetByID(ctx context.Context, productID string) (*ProductDetail, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `p.id, p.title, p.description, p.price, p.stock_quantity, p.rating, p.review_count, c.name,
		(SELECT image_url FROM product_images WHERE product_id = p.id AND is_primary LIMIT 1),
		p.created_at`

func (r *PostgresRepository) List(ctx context.Context, search, category string) ([]Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id`

	var (
		clauses []string
		args    []any
	)
	if s := strings.TrimSpace(search); s != "" {
		args = append(args, "%"+s+"%")
		clauses = append(clauses, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}
	if c := strings.TrimSpace(category); c != "" {
		args = append(args, c)
		clauses = append(clauses, fmt.Sprintf("c.name = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.StockQuantity,
			&p.Rating, &p.ReviewCount, &p.CategoryName, &p.PrimaryImage, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return products, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, productID string) (*ProductDetail, error) {
	var (
		d        ProductDetail
		specsRaw []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT `+productColumns+`, p.specifications
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`, productID,
	).Scan(
		&d.ID, &d.Title, &d.Description, &d.Price, &d.StockQuantity,
		&d.Rating, &d.ReviewCount, &d.CategoryName, &d.PrimaryImage, &d.CreatedAt,
		&specsRaw,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}

	d.Specifications = map[string]any{}
	if len(specsRaw) > 0 {
		// A malformed specifications blob degrades to an empty map.
		if err := json.Unmarshal(specsRaw, &d.Specifications); err != nil {
			d.Specifications = map[string]any{}
		}
	}

	rows, err := r.pool.Query(ctx, `SELECT image_url, is_primary, display_order
		FROM product_images
		WHERE product_id = $1
		ORDER BY display_order ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("select product_images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ImageURL, &img.IsPrimary, &img.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan product_image: %w", err)
		}
		d.Images = append(d.Images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return &d, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return categories, nil
}
