package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/cart-approval-api/internal/platform/database"
	productDomain "github.com/ridloal/cart-approval-api/internal/product/domain"
)

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) GetProductByID(ctx context.Context, id string) (*productDomain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*productDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductStore) DecrementStock(ctx context.Context, dbops database.DBTX, productID string, quantity int) error {
	args := m.Called(ctx, dbops, productID, quantity)
	return args.Error(0)
}
