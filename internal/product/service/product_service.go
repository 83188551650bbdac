package service

import (
	"context"

	"github.com/ridloal/cart-approval-api/internal/platform/logger"
	"github.com/ridloal/cart-approval-api/internal/product/domain"
	"github.com/ridloal/cart-approval-api/internal/product/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type ProductList struct {
	Products []domain.Product
	Page     int
	Pages    int
	Total    int64
}

type ProductService interface {
	ListProducts(ctx context.Context, query domain.ListProductsQuery) (*ProductList, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, query domain.ListProductsQuery) (*ProductList, error) {
	page := query.Page
	if page < 1 {
		page = defaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	products, err := s.repo.ListProducts(ctx, query.Category, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountProducts(ctx, query.Category)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ProductList{Products: products, Page: page, Pages: pages, Total: total}, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *productServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		IsActive:    true,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		logger.Error("Svc.CreateProduct: repo error", err)
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Image = req.Image
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		logger.Error("Svc.UpdateProduct: repo error", err)
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	return s.repo.DeleteProduct(ctx, productID)
}
