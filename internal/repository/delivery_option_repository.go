package repository

import (
	"errors"
	"strings"

	"github.com/watchhub/watchhub/internal/models"

	"gorm.io/gorm"
)

// DeliveryOptionRepository 配送方式数据访问接口
type DeliveryOptionRepository interface {
	GetByID(id uint) (*models.DeliveryOption, error)
	GetByCode(code string) (*models.DeliveryOption, error)
	ListActive() ([]models.DeliveryOption, error)
	List() ([]models.DeliveryOption, error)
	Create(option *models.DeliveryOption) error
	Update(option *models.DeliveryOption) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormDeliveryOptionRepository
}

// GormDeliveryOptionRepository GORM 实现
type GormDeliveryOptionRepository struct {
	db *gorm.DB
}

// NewDeliveryOptionRepository 创建配送方式仓库
func NewDeliveryOptionRepository(db *gorm.DB) *GormDeliveryOptionRepository {
	return &GormDeliveryOptionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDeliveryOptionRepository) WithTx(tx *gorm.DB) *GormDeliveryOptionRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryOptionRepository{db: tx}
}

// GetByID 根据ID获取配送方式
func (r *GormDeliveryOptionRepository) GetByID(id uint) (*models.DeliveryOption, error) {
	var option models.DeliveryOption
	if err := r.db.First(&option, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

// GetByCode 根据标识获取配送方式
func (r *GormDeliveryOptionRepository) GetByCode(code string) (*models.DeliveryOption, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}
	var option models.DeliveryOption
	if err := r.db.Where("code = ?", normalized).First(&option).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

// ListActive 获取启用的配送方式，按排序权重返回
func (r *GormDeliveryOptionRepository) ListActive() ([]models.DeliveryOption, error) {
	var options []models.DeliveryOption
	if err := r.db.Where("is_active = ?", true).Order("sort_order asc, id asc").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// List 获取全部配送方式
func (r *GormDeliveryOptionRepository) List() ([]models.DeliveryOption, error) {
	var options []models.DeliveryOption
	if err := r.db.Order("sort_order asc, id asc").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// Create 创建配送方式
func (r *GormDeliveryOptionRepository) Create(option *models.DeliveryOption) error {
	return r.db.Create(option).Error
}

// Update 更新配送方式
func (r *GormDeliveryOptionRepository) Update(option *models.DeliveryOption) error {
	return r.db.Save(option).Error
}

// Delete 删除配送方式
func (r *GormDeliveryOptionRepository) Delete(id uint) error {
	return r.db.Delete(&models.DeliveryOption{}, id).Error
}
