package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ridloal/cart-approval-api/internal/platform/database"
	"github.com/ridloal/cart-approval-api/internal/platform/logger"
	"github.com/ridloal/cart-approval-api/internal/product/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductReferenced = errors.New("product is referenced by existing carts")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, category string, limit, offset int) ([]domain.Product, error)
	CountProducts(ctx context.Context, category string) (int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// DecrementStock runs inside a caller-owned transaction. The update is
	// conditional on stock covering the quantity, so concurrent approvals can
	// never drive stock negative: the losing update matches zero rows and
	// reports ErrInsufficientStock.
	DecrementStock(ctx context.Context, dbops database.DBTX, productID string, quantity int) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (id, name, description, price, category, stock, image, is_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	var image sql.NullString
	if product.Image != nil {
		image = sql.NullString{String: *product.Image, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Category,
		product.Stock, image, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT id, name, description, price, category, stock, image, is_active, created_at, updated_at
              FROM products WHERE id = $1`
	var p domain.Product
	var image sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &image, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	if image.Valid {
		p.Image = &image.String
	}
	return &p, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context, category string, limit, offset int) ([]domain.Product, error) {
	query := `SELECT id, name, description, price, category, stock, image, is_active, created_at, updated_at
              FROM products WHERE ($1 = '' OR category = $1)
              ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, category, limit, offset)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		var image sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &image,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		if image.Valid {
			p.Image = &image.String
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresProductRepository) CountProducts(ctx context.Context, category string) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE ($1 = '' OR category = $1)`
	var total int64
	if err := r.db.QueryRowContext(ctx, query, category).Scan(&total); err != nil {
		logger.Error("CountProducts: query failed", err)
		return 0, err
	}
	return total, nil
}

func (r *postgresProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM products ORDER BY category ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListCategories: query failed", err)
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			logger.Error("ListCategories: scan failed", err)
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products SET name = $1, description = $2, price = $3, category = $4,
              stock = $5, image = $6, is_active = $7, updated_at = $8 WHERE id = $9`

	product.UpdatedAt = time.Now()

	var image sql.NullString
	if product.Image != nil {
		image = sql.NullString{String: *product.Image, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query,
		product.Name, product.Description, product.Price, product.Category,
		product.Stock, image, product.IsActive, product.UpdatedAt, product.ID,
	)
	if err != nil {
		logger.Error("UpdateProduct: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// 23503 is foreign_key_violation: a cart item still points at this
		// product, and cart history must keep resolvable references.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrProductReferenced
		}
		logger.Error("DeleteProduct: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *postgresProductRepository) DecrementStock(ctx context.Context, dbops database.DBTX, productID string, quantity int) error {
	query := `UPDATE products SET stock = stock - $1, updated_at = NOW()
              WHERE id = $2 AND stock >= $1`
	res, err := dbops.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		// 23514 is check_violation on the stock >= 0 constraint
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			logger.Error("DecrementStock: check violation", err)
			return ErrInsufficientStock
		}
		logger.Error("DecrementStock: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrInsufficientStock // product missing, or stock no longer covers quantity
	}
	return nil
}
