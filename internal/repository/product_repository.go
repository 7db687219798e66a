package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// ProductPatch carries a partial update. Pointer fields distinguish
// "absent" from "present-and-zero": a stock of 0 is a real update, not a
// missing field.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	ImageURLs   []string
	Stock       *int
}

// Empty reports whether the patch carries no fields at all.
func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.ImageURLs == nil && p.Stock == nil
}

// ProductRepository encapsulates catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	UpdatePartial(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates the repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (title, description, price, category, image_urls, stock)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		product.Title,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURLs,
		product.Stock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, title, description, price, category, image_urls, stock, created_at, updated_at
        FROM products WHERE id=$1`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.ImageURLs,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns the catalog newest-first.
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
        SELECT id, title, description, price, category, image_urls, stock, created_at, updated_at
        FROM products ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Description,
			&product.Price,
			&product.Category,
			&product.ImageURLs,
			&product.Stock,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// UpdatePartial overwrites only the fields present in the patch and
// returns the updated row.
func (r *productRepository) UpdatePartial(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	idx := 1

	appendSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s=$%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Price != nil {
		appendSet("price", *patch.Price)
	}
	if patch.Category != nil {
		appendSet("category", *patch.Category)
	}
	if patch.ImageURLs != nil {
		appendSet("image_urls", patch.ImageURLs)
	}
	if patch.Stock != nil {
		appendSet("stock", *patch.Stock)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE products SET %s WHERE id=$%d
        RETURNING id, title, description, price, category, image_urls, stock, created_at, updated_at`,
		strings.Join(sets, ", "), idx)

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.ImageURLs,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
