package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/cart-approval-api/internal/platform/database"
	"github.com/ridloal/cart-approval-api/internal/product/domain"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	if product != nil && args.Error(0) == nil {
		product.ID = "mock-product-id"
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, category string, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, category, limit, offset)
	if ps := args.Get(0); ps != nil {
		return ps.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) CountProducts(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if cs := args.Get(0); cs != nil {
		return cs.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, dbops database.DBTX, productID string, quantity int) error {
	args := m.Called(ctx, dbops, productID, quantity)
	return args.Error(0)
}
