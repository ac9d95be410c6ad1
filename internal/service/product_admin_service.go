package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// ProductAdminService 后台商品管理
type ProductAdminService struct {
	productRepo repository.ProductRepository
}

// NewProductAdminService 创建后台商品管理服务
func NewProductAdminService(productRepo repository.ProductRepository) *ProductAdminService {
	return &ProductAdminService{productRepo: productRepo}
}

// ListProducts 后台商品列表，含下架商品
func (s *ProductAdminService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = false
	return s.productRepo.List(filter)
}

// GetProduct 取单个商品，含下架商品
func (s *ProductAdminService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct 新建商品
func (s *ProductAdminService) CreateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	existing, err := s.productRepo.GetBySlug(product.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrProductInvalid
	}
	return s.productRepo.Create(product)
}

// UpdateProduct 更新商品
func (s *ProductAdminService) UpdateProduct(product *models.Product) error {
	if product.ID == 0 {
		return ErrProductInvalid
	}
	if err := validateProduct(product); err != nil {
		return err
	}
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Update(product)
}

// DeleteProduct 删除商品（软删除）
func (s *ProductAdminService) DeleteProduct(id uint) error {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func validateProduct(product *models.Product) error {
	if product == nil {
		return ErrProductInvalid
	}
	product.Slug = strings.ToLower(strings.TrimSpace(product.Slug))
	product.Name = strings.TrimSpace(product.Name)
	if product.Slug == "" || product.Name == "" {
		return ErrProductInvalid
	}
	if product.Price.LessThanOrEqual(decimal.Zero) {
		return ErrProductInvalid
	}
	if product.StockQuantity < 0 {
		return ErrProductInvalid
	}
	return nil
}
