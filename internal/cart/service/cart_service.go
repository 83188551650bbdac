package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ridloal/cart-approval-api/internal/cart/domain"
	"github.com/ridloal/cart-approval-api/internal/cart/repository"
	"github.com/ridloal/cart-approval-api/internal/platform/database"
	"github.com/ridloal/cart-approval-api/internal/platform/logger"
	productDomain "github.com/ridloal/cart-approval-api/internal/product/domain"
	productRepo "github.com/ridloal/cart-approval-api/internal/product/repository"
)

var (
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ProductStore is the read-and-decrement view of the product catalog the cart
// lifecycle needs. The postgres product repository satisfies it.
type ProductStore interface {
	GetProductByID(ctx context.Context, id string) (*productDomain.Product, error)
	DecrementStock(ctx context.Context, dbops database.DBTX, productID string, quantity int) error
}

type CartList struct {
	Carts []domain.Cart
	Page  int
	Pages int
	Total int64
}

type CartService interface {
	// Submit validates the requested items against the catalog, snapshots
	// each product's current price, and persists the cart as pending. Stock
	// is not decremented at submission.
	Submit(ctx context.Context, req domain.SubmitCartRequest) (*domain.Cart, error)

	// Review moves a pending cart to a terminal state. Approval re-validates
	// and decrements stock for every item atomically; decline touches no
	// stock. A cart already in a terminal state is always an error.
	Review(ctx context.Context, cartID string, req domain.ReviewCartRequest) (*domain.Cart, error)

	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	ListCarts(ctx context.Context, query domain.ListCartsQuery) (*CartList, error)
	GetStats(ctx context.Context) (*domain.CartStats, error)

	// ProcessReviewTimeouts auto-declines pending carts older than maxAge.
	ProcessReviewTimeouts(ctx context.Context, maxAge time.Duration)
}

type cartServiceImpl struct {
	cartRepo repository.CartRepository
	products ProductStore
}

func NewCartService(cartRepo repository.CartRepository, products ProductStore) CartService {
	return &cartServiceImpl{
		cartRepo: cartRepo,
		products: products,
	}
}

func (s *cartServiceImpl) Submit(ctx context.Context, req domain.SubmitCartRequest) (*domain.Cart, error) {
	items := make([]domain.CartItem, 0, len(req.Items))
	var totalAmount float64

	for _, itemReq := range req.Items {
		product, err := s.products.GetProductByID(ctx, itemReq.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", productRepo.ErrProductNotFound, itemReq.ProductID)
			}
			logger.Error("Submit: failed to load product "+itemReq.ProductID, err)
			return nil, err
		}

		if !product.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}
		if product.Stock < itemReq.Quantity {
			return nil, fmt.Errorf("%w for %s, available: %d", ErrInsufficientStock, product.Name, product.Stock)
		}

		// Snapshot the current price; later catalog changes must not touch it.
		items = append(items, domain.CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    itemReq.Quantity,
			Price:       product.Price,
		})
		totalAmount += product.Price * float64(itemReq.Quantity)
	}

	cart := &domain.Cart{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		TotalAmount:   totalAmount,
	}

	if err := s.cartRepo.CreateCartWithItems(ctx, cart, items); err != nil {
		logger.Error("Submit: failed to save cart", err)
		return nil, err
	}
	return cart, nil
}

func (s *cartServiceImpl) Review(ctx context.Context, cartID string, req domain.ReviewCartRequest) (*domain.Cart, error) {
	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("Review: failed to begin tx", err)
		return nil, err
	}
	defer tx.Rollback()

	// The FOR UPDATE lock serializes concurrent reviews of the same cart: the
	// second one observes the terminal status after the first commits.
	cart, err := s.cartRepo.GetCartForReview(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.Status != domain.StatusPending {
		return nil, repository.ErrCartAlreadyReviewed
	}

	items, err := s.cartRepo.GetCartItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if req.Status == domain.StatusApproved {
		// The conditional decrement is the stock re-validation: it only
		// matches while current stock covers the quantity, so two concurrent
		// approvals can never overdraw a product.
		for _, item := range items {
			if err := s.products.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, productRepo.ErrInsufficientStock) {
					return nil, fmt.Errorf("%w for product ID: %s", ErrInsufficientStock, item.ProductID)
				}
				logger.Error("Review: failed to decrement stock for product "+item.ProductID, err)
				return nil, err
			}
		}
	}

	now := time.Now()
	if err := s.cartRepo.FinalizeReview(ctx, tx, cartID, req.Status, req.ReviewedBy, req.Notes, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Review: failed to commit", err)
		return nil, err
	}

	cart.Status = req.Status
	cart.ReviewedBy = &req.ReviewedBy
	cart.Notes = req.Notes
	cart.ReviewedAt = &now
	cart.UpdatedAt = now
	cart.Items = items
	return cart, nil
}

func (s *cartServiceImpl) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.cartRepo.GetCartByID(ctx, cartID)
}

func (s *cartServiceImpl) ListCarts(ctx context.Context, query domain.ListCartsQuery) (*CartList, error) {
	page := query.Page
	if page < 1 {
		page = defaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	carts, err := s.cartRepo.ListCarts(ctx, query.Status, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.cartRepo.CountCarts(ctx, query.Status)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &CartList{Carts: carts, Page: page, Pages: pages, Total: total}, nil
}

func (s *cartServiceImpl) GetStats(ctx context.Context) (*domain.CartStats, error) {
	return s.cartRepo.GetCartStats(ctx)
}

const timeoutReviewer = "system"

func (s *cartServiceImpl) ProcessReviewTimeouts(ctx context.Context, maxAge time.Duration) {
	carts, err := s.cartRepo.ListPendingOlderThan(ctx, maxAge)
	if err != nil {
		logger.Error("ProcessReviewTimeouts: failed to list pending carts", err)
		return
	}
	if len(carts) == 0 {
		return
	}

	logger.Info(fmt.Sprintf("ProcessReviewTimeouts: found %d carts past review timeout", len(carts)))

	notes := fmt.Sprintf("Automatically declined after %v without review", maxAge)
	for _, cart := range carts {
		_, err := s.Review(ctx, cart.ID, domain.ReviewCartRequest{
			Status:     domain.StatusDeclined,
			ReviewedBy: timeoutReviewer,
			Notes:      &notes,
		})
		if err != nil {
			// An admin may have decided the cart between the listing and now;
			// that race is benign.
			if errors.Is(err, repository.ErrCartAlreadyReviewed) {
				continue
			}
			logger.Error(fmt.Sprintf("ProcessReviewTimeouts: failed to decline cart %s", cart.ID), err)
			continue
		}
		logger.Info(fmt.Sprintf("ProcessReviewTimeouts: cart %s auto-declined", cart.ID))
	}
}
