package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ridloal/cart-approval-api/internal/cart/domain"
	"github.com/ridloal/cart-approval-api/internal/platform/database"
	"github.com/ridloal/cart-approval-api/internal/platform/logger"
)

var (
	ErrCartNotFound        = errors.New("cart not found")
	ErrCartAlreadyReviewed = errors.New("cart has already been reviewed")
)

type CartRepository interface {
	CreateCartWithItems(ctx context.Context, cart *domain.Cart, items []domain.CartItem) error
	GetCartByID(ctx context.Context, id string) (*domain.Cart, error)
	GetCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	ListCarts(ctx context.Context, status domain.CartStatus, limit, offset int) ([]domain.Cart, error)
	CountCarts(ctx context.Context, status domain.CartStatus) (int64, error)
	GetCartStats(ctx context.Context) (*domain.CartStats, error)
	ListPendingOlderThan(ctx context.Context, age time.Duration) ([]domain.Cart, error)

	BeginTx(ctx context.Context) (database.DBTX, error)

	// GetCartForReview locks the cart row FOR UPDATE so concurrent reviews of
	// the same cart serialize on it.
	GetCartForReview(ctx context.Context, dbops database.DBTX, id string) (*domain.Cart, error)

	// FinalizeReview writes the terminal status and review metadata. The
	// update is guarded on status = 'pending'; a cart already in a terminal
	// state matches zero rows and reports ErrCartAlreadyReviewed.
	FinalizeReview(ctx context.Context, dbops database.DBTX, cartID string, status domain.CartStatus, reviewedBy string, notes *string, reviewedAt time.Time) error
}

type postgresCartRepository struct {
	db *sql.DB
}

func NewPostgresCartRepository(db *sql.DB) CartRepository {
	return &postgresCartRepository{db: db}
}

func (r *postgresCartRepository) BeginTx(ctx context.Context) (database.DBTX, error) {
	return r.db.BeginTx(ctx, nil)
}

// CreateCartWithItems persists the cart and its items in one transaction.
func (r *postgresCartRepository) CreateCartWithItems(ctx context.Context, cart *domain.Cart, items []domain.CartItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("CreateCartWithItems: failed to begin tx", err)
		return err
	}
	defer tx.Rollback()

	cartQuery := `INSERT INTO carts (id, customer_name, customer_email, total_amount, status, created_at, updated_at)
                  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	cart.ID = uuid.NewString()
	cart.Status = domain.StatusPending
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = cart.CreatedAt

	_, err = tx.ExecContext(ctx, cartQuery,
		cart.ID, cart.CustomerName, cart.CustomerEmail, cart.TotalAmount, cart.Status,
		cart.CreatedAt, cart.UpdatedAt,
	)
	if err != nil {
		logger.Error("CreateCartWithItems: failed to insert cart", err)
		return err
	}

	itemStmt, err := tx.PrepareContext(ctx, `INSERT INTO cart_items (id, cart_id, product_id, quantity, price, created_at)
                                             VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		logger.Error("CreateCartWithItems: failed to prepare item statement", err)
		return err
	}
	defer itemStmt.Close()

	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].CartID = cart.ID
		items[i].CreatedAt = cart.CreatedAt
		_, err = itemStmt.ExecContext(ctx,
			items[i].ID, items[i].CartID, items[i].ProductID, items[i].Quantity, items[i].Price,
			items[i].CreatedAt,
		)
		if err != nil {
			logger.Error("CreateCartWithItems: failed to insert cart item", err, map[string]interface{}{"item_product_id": items[i].ProductID})
			return err // rollback via defer
		}
	}
	cart.Items = items

	return tx.Commit()
}

func (r *postgresCartRepository) GetCartByID(ctx context.Context, id string) (*domain.Cart, error) {
	query := `SELECT id, customer_name, customer_email, total_amount, status, reviewed_by, notes, reviewed_at, created_at, updated_at
              FROM carts WHERE id = $1`
	cart, err := scanCart(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		logger.Error("GetCartByID: query failed", err)
		return nil, err
	}

	items, err := r.GetCartItems(ctx, id)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}

func (r *postgresCartRepository) GetCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	query := `SELECT ci.id, ci.cart_id, ci.product_id, p.name, ci.quantity, ci.price, ci.created_at
              FROM cart_items ci
              JOIN products p ON p.id = ci.product_id
              WHERE ci.cart_id = $1
              ORDER BY ci.created_at ASC, ci.id ASC`
	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		logger.Error("GetCartItems: query failed", err)
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.CreatedAt); err != nil {
			logger.Error("GetCartItems: scan failed", err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresCartRepository) ListCarts(ctx context.Context, status domain.CartStatus, limit, offset int) ([]domain.Cart, error) {
	query := `SELECT id, customer_name, customer_email, total_amount, status, reviewed_by, notes, reviewed_at, created_at, updated_at
              FROM carts
              WHERE ($1 = '' OR status = $1)
              ORDER BY created_at DESC
              LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, string(status), limit, offset)
	if err != nil {
		logger.Error("ListCarts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	carts := []domain.Cart{}
	for rows.Next() {
		cart, err := scanCart(rows)
		if err != nil {
			logger.Error("ListCarts: scan failed", err)
			return nil, err
		}
		carts = append(carts, *cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range carts {
		items, err := r.GetCartItems(ctx, carts[i].ID)
		if err != nil {
			return nil, err
		}
		carts[i].Items = items
	}
	return carts, nil
}

func (r *postgresCartRepository) CountCarts(ctx context.Context, status domain.CartStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM carts WHERE ($1 = '' OR status = $1)`
	var total int64
	if err := r.db.QueryRowContext(ctx, query, string(status)).Scan(&total); err != nil {
		logger.Error("CountCarts: query failed", err)
		return 0, err
	}
	return total, nil
}

func (r *postgresCartRepository) GetCartStats(ctx context.Context) (*domain.CartStats, error) {
	query := `SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0) FROM carts GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("GetCartStats: query failed", err)
		return nil, err
	}
	defer rows.Close()

	stats := &domain.CartStats{}
	for rows.Next() {
		var status domain.CartStatus
		var count int
		var totalAmount float64
		if err := rows.Scan(&status, &count, &totalAmount); err != nil {
			logger.Error("GetCartStats: scan failed", err)
			return nil, err
		}
		switch status {
		case domain.StatusPending:
			stats.Pending = count
		case domain.StatusApproved:
			stats.Approved = count
			stats.TotalRevenue = totalAmount // revenue counts approved carts only
		case domain.StatusDeclined:
			stats.Declined = count
		}
	}
	return stats, rows.Err()
}

func (r *postgresCartRepository) ListPendingOlderThan(ctx context.Context, age time.Duration) ([]domain.Cart, error) {
	query := `SELECT id, customer_name, customer_email, total_amount, status, reviewed_by, notes, reviewed_at, created_at, updated_at
              FROM carts
              WHERE status = $1 AND created_at < $2
              ORDER BY created_at ASC`

	threshold := time.Now().Add(-age)
	rows, err := r.db.QueryContext(ctx, query, domain.StatusPending, threshold)
	if err != nil {
		logger.Error("ListPendingOlderThan: query failed", err)
		return nil, err
	}
	defer rows.Close()

	var carts []domain.Cart
	for rows.Next() {
		cart, err := scanCart(rows)
		if err != nil {
			logger.Error("ListPendingOlderThan: scan failed", err)
			return nil, err
		}
		carts = append(carts, *cart)
	}
	return carts, rows.Err()
}

func (r *postgresCartRepository) GetCartForReview(ctx context.Context, dbops database.DBTX, id string) (*domain.Cart, error) {
	query := `SELECT id, customer_name, customer_email, total_amount, status, reviewed_by, notes, reviewed_at, created_at, updated_at
              FROM carts WHERE id = $1 FOR UPDATE`
	cart, err := scanCart(dbops.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		logger.Error("GetCartForReview: query failed", err)
		return nil, err
	}
	return cart, nil
}

func (r *postgresCartRepository) FinalizeReview(ctx context.Context, dbops database.DBTX, cartID string, status domain.CartStatus, reviewedBy string, notes *string, reviewedAt time.Time) error {
	query := `UPDATE carts SET status = $1, reviewed_by = $2, notes = $3, reviewed_at = $4, updated_at = $4
              WHERE id = $5 AND status = $6`

	var nullNotes sql.NullString
	if notes != nil {
		nullNotes = sql.NullString{String: *notes, Valid: true}
	}

	res, err := dbops.ExecContext(ctx, query, status, reviewedBy, nullNotes, reviewedAt, cartID, domain.StatusPending)
	if err != nil {
		logger.Error("FinalizeReview: exec failed", err, map[string]interface{}{"cart_id": cartID, "status": status})
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrCartAlreadyReviewed
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCart(row rowScanner) (*domain.Cart, error) {
	var cart domain.Cart
	var reviewedBy, notes sql.NullString
	var reviewedAt sql.NullTime
	err := row.Scan(
		&cart.ID, &cart.CustomerName, &cart.CustomerEmail, &cart.TotalAmount, &cart.Status,
		&reviewedBy, &notes, &reviewedAt, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reviewedBy.Valid {
		cart.ReviewedBy = &reviewedBy.String
	}
	if notes.Valid {
		cart.Notes = &notes.String
	}
	if reviewedAt.Valid {
		cart.ReviewedAt = &reviewedAt.Time
	}
	return &cart, nil
}
