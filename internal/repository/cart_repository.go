package repository

import (
	"errors"

	"github.com/watchhub/watchhub/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByOwner(ownerID string) ([]models.CartLine, error)
	GetByID(lineID string) (*models.CartLine, error)
	FindByOwnerProductVariant(ownerID string, productID uint, variant string) (*models.CartLine, error)
	NextPosition(ownerID string) (int, error)
	Create(line *models.CartLine) error
	UpdateQuantity(lineID string, quantity int) error
	Delete(lineID string) error
	ClearByOwner(ownerID string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByOwner 获取归属的购物车行，按插入顺序返回
func (r *GormCartRepository) ListByOwner(ownerID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.db.Where("owner_id = ?", ownerID).Order("position asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// GetByID 根据行ID获取购物车行
func (r *GormCartRepository) GetByID(lineID string) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.db.Where("id = ?", lineID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// FindByOwnerProductVariant 查找同商品同规格的已有行（合并依据）
func (r *GormCartRepository) FindByOwnerProductVariant(ownerID string, productID uint, variant string) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.Where("owner_id = ? AND product_id = ? AND variant = ?", ownerID, productID, variant).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// NextPosition 下一个插入序号
func (r *GormCartRepository) NextPosition(ownerID string) (int, error) {
	var max *int
	err := r.db.Model(&models.CartLine{}).
		Where("owner_id = ?", ownerID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// Create 创建购物车行
func (r *GormCartRepository) Create(line *models.CartLine) error {
	return r.db.Create(line).Error
}

// UpdateQuantity 覆盖写数量
func (r *GormCartRepository) UpdateQuantity(lineID string, quantity int) error {
	return r.db.Model(&models.CartLine{}).
		Where("id = ?", lineID).
		UpdateColumn("quantity", quantity).Error
}

// Delete 删除购物车行（不存在时不报错）
func (r *GormCartRepository) Delete(lineID string) error {
	return r.db.Where("id = ?", lineID).Delete(&models.CartLine{}).Error
}

// ClearByOwner 清空归属的购物车
func (r *GormCartRepository) ClearByOwner(ownerID string) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&models.CartLine{}).Error
}
