package service

import (
	"context"
	"fmt"

	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// ProductRecord 对账用的商品快照
type ProductRecord struct {
	ID            uint
	Name          string
	Price         models.Money
	OriginalPrice models.Money
	ImageURL      string
	Stock         int
}

// ProductLookup 批量商品查询接口（对账引擎的唯一商品入口）
type ProductLookup interface {
	// LookupProducts 按 ID 批量查询，未命中的 ID 不出现在结果中
	LookupProducts(ctx context.Context, ids []uint) (map[uint]ProductRecord, error)
}

// RepoProductLookup 基于商品仓储的查询实现
type RepoProductLookup struct {
	productRepo repository.ProductRepository
}

// NewRepoProductLookup 创建商品查询实现
func NewRepoProductLookup(productRepo repository.ProductRepository) *RepoProductLookup {
	return &RepoProductLookup{productRepo: productRepo}
}

// LookupProducts 单次批量查询，下架商品视同不存在
func (l *RepoProductLookup) LookupProducts(ctx context.Context, ids []uint) (map[uint]ProductRecord, error) {
	products, err := l.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	records := make(map[uint]ProductRecord, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		records[p.ID] = ProductRecord{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			ImageURL:      p.ImageURL,
			Stock:         p.StockQuantity,
		}
	}
	return records, nil
}
