package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/cart-approval-api/internal/cart/domain"
	"github.com/ridloal/cart-approval-api/internal/platform/database"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) CreateCartWithItems(ctx context.Context, cart *domain.Cart, items []domain.CartItem) error {
	args := m.Called(ctx, cart, items)
	if cart != nil && args.Error(0) == nil {
		cart.ID = "mock-cart-id"
		cart.Status = domain.StatusPending
	}
	return args.Error(0)
}

func (m *MockCartRepository) GetCartByID(ctx context.Context, id string) (*domain.Cart, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) GetCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	args := m.Called(ctx, cartID)
	if items := args.Get(0); items != nil {
		return items.([]domain.CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) ListCarts(ctx context.Context, status domain.CartStatus, limit, offset int) ([]domain.Cart, error) {
	args := m.Called(ctx, status, limit, offset)
	if cs := args.Get(0); cs != nil {
		return cs.([]domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) CountCarts(ctx context.Context, status domain.CartStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) GetCartStats(ctx context.Context) (*domain.CartStats, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*domain.CartStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) ListPendingOlderThan(ctx context.Context, age time.Duration) ([]domain.Cart, error) {
	args := m.Called(ctx, age)
	if cs := args.Get(0); cs != nil {
		return cs.([]domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) BeginTx(ctx context.Context) (database.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(database.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) GetCartForReview(ctx context.Context, dbops database.DBTX, id string) (*domain.Cart, error) {
	args := m.Called(ctx, dbops, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) FinalizeReview(ctx context.Context, dbops database.DBTX, cartID string, status domain.CartStatus, reviewedBy string, notes *string, reviewedAt time.Time) error {
	args := m.Called(ctx, dbops, cartID, status, reviewedBy, notes, reviewedAt)
	return args.Error(0)
}
