package service

import (
	"strings"

	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// ProductService 商品目录服务
type ProductService struct {
	productRepo  repository.ProductRepository
	deliveryRepo repository.DeliveryOptionRepository
}

// NewProductService 创建商品目录服务
func NewProductService(productRepo repository.ProductRepository, deliveryRepo repository.DeliveryOptionRepository) *ProductService {
	return &ProductService{productRepo: productRepo, deliveryRepo: deliveryRepo}
}

// ListProducts 商品列表，仅返回上架商品
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	return s.productRepo.List(filter)
}

// GetProductBySlug 按 slug 取商品详情，下架商品视同不存在
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProductByID 按 ID 取商品详情，下架商品视同不存在
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListDeliveryOptions 可用配送方式，按排序值输出
func (s *ProductService) ListDeliveryOptions() ([]models.DeliveryOption, error) {
	return s.deliveryRepo.ListActive()
}
