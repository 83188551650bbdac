package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ridloal/cart-approval-api/internal/product/domain"
	"github.com/ridloal/cart-approval-api/internal/product/repository"
	"github.com/ridloal/cart-approval-api/internal/product/repository/mocks"
)

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults and pagination math", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		mockRepo.On("ListProducts", ctx, "", 10, 0).
			Return([]domain.Product{{ID: "p1"}, {ID: "p2"}}, nil).Once()
		mockRepo.On("CountProducts", ctx, "").Return(int64(25), nil).Once()

		list, err := svc.ListProducts(ctx, domain.ListProductsQuery{})

		assert.NoError(t, err)
		assert.Equal(t, 1, list.Page)
		assert.Equal(t, 3, list.Pages) // ceil(25 / 10)
		assert.Equal(t, int64(25), list.Total)
		assert.Len(t, list.Products, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Category filter and explicit page", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		mockRepo.On("ListProducts", ctx, domain.CategoryBooks, 5, 10).
			Return([]domain.Product{}, nil).Once()
		mockRepo.On("CountProducts", ctx, domain.CategoryBooks).Return(int64(11), nil).Once()

		list, err := svc.ListProducts(ctx, domain.ListProductsQuery{
			Category: domain.CategoryBooks,
			Page:     3,
			Limit:    5,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, list.Page)
		assert.Equal(t, 3, list.Pages) // ceil(11 / 5)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty catalog", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		mockRepo.On("ListProducts", ctx, "", 10, 0).Return([]domain.Product{}, nil).Once()
		mockRepo.On("CountProducts", ctx, "").Return(int64(0), nil).Once()

		list, err := svc.ListProducts(ctx, domain.ListProductsQuery{})

		assert.NoError(t, err)
		assert.Equal(t, 0, list.Pages)
		assert.Empty(t, list.Products)
	})
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults active with zero stock", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		mockRepo.On("CreateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Name == "Laptop" && p.Stock == 0 && p.IsActive
		})).Return(nil).Once()

		product, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
			Name:     "Laptop",
			Price:    999.99,
			Category: domain.CategoryElectronics,
		})

		assert.NoError(t, err)
		assert.True(t, product.IsActive)
		assert.Equal(t, 0, product.Stock)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Explicit stock and inactive flag", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		stock := 7
		inactive := false
		mockRepo.On("CreateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Stock == 7 && !p.IsActive
		})).Return(nil).Once()

		product, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
			Name:     "Laptop",
			Price:    999.99,
			Category: domain.CategoryElectronics,
			Stock:    &stock,
			IsActive: &inactive,
		})

		assert.NoError(t, err)
		assert.Equal(t, 7, product.Stock)
		assert.False(t, product.IsActive)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Merges partial fields onto the stored product", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		existing := &domain.Product{
			ID:       "p1",
			Name:     "Old Name",
			Price:    10,
			Category: domain.CategoryBooks,
			Stock:    4,
			IsActive: true,
		}
		mockRepo.On("GetProductByID", ctx, "p1").Return(existing, nil).Once()
		mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.ID == "p1" && p.Name == "New Name" && p.Stock == 4 && p.IsActive
		})).Return(nil).Once()

		product, err := svc.UpdateProduct(ctx, "p1", domain.UpdateProductRequest{
			Name:     "New Name",
			Price:    12,
			Category: domain.CategoryBooks,
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", product.Name)
		assert.Equal(t, 4, product.Stock) // untouched when not supplied
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		mockRepo.On("GetProductByID", ctx, "missing").
			Return(nil, repository.ErrProductNotFound).Once()

		_, err := svc.UpdateProduct(ctx, "missing", domain.UpdateProductRequest{Name: "X"})

		assert.ErrorIs(t, err, repository.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		mockRepo.On("DeleteProduct", ctx, "p1").Return(nil).Once()

		assert.NoError(t, svc.DeleteProduct(ctx, "p1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Referenced by a cart", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo)

		mockRepo.On("DeleteProduct", ctx, "p1").
			Return(repository.ErrProductReferenced).Once()

		err := svc.DeleteProduct(ctx, "p1")

		assert.ErrorIs(t, err, repository.ErrProductReferenced)
	})
}
