package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// DeliveryAdminService 后台配送方式管理
type DeliveryAdminService struct {
	deliveryRepo repository.DeliveryOptionRepository
}

// NewDeliveryAdminService 创建后台配送方式管理服务
func NewDeliveryAdminService(deliveryRepo repository.DeliveryOptionRepository) *DeliveryAdminService {
	return &DeliveryAdminService{deliveryRepo: deliveryRepo}
}

// ListOptions 配送方式列表，含停用项
func (s *DeliveryAdminService) ListOptions() ([]models.DeliveryOption, error) {
	return s.deliveryRepo.List()
}

// CreateOption 新建配送方式，运费允许为 0（免费配送）
func (s *DeliveryAdminService) CreateOption(option *models.DeliveryOption) error {
	if err := validateDeliveryOption(option); err != nil {
		return err
	}
	existing, err := s.deliveryRepo.GetByCode(option.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDeliveryInvalid
	}
	return s.deliveryRepo.Create(option)
}

// UpdateOption 更新配送方式
func (s *DeliveryAdminService) UpdateOption(option *models.DeliveryOption) error {
	if option.ID == 0 {
		return ErrDeliveryInvalid
	}
	if err := validateDeliveryOption(option); err != nil {
		return err
	}
	existing, err := s.deliveryRepo.GetByID(option.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrDeliveryNotFound
	}
	return s.deliveryRepo.Update(option)
}

// DeleteOption 删除配送方式
func (s *DeliveryAdminService) DeleteOption(id uint) error {
	existing, err := s.deliveryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrDeliveryNotFound
	}
	return s.deliveryRepo.Delete(id)
}

func validateDeliveryOption(option *models.DeliveryOption) error {
	if option == nil {
		return ErrDeliveryInvalid
	}
	option.Code = strings.ToLower(strings.TrimSpace(option.Code))
	option.Name = strings.TrimSpace(option.Name)
	if option.Code == "" || option.Name == "" {
		return ErrDeliveryInvalid
	}
	if option.FlatFee.LessThan(decimal.Zero) {
		return ErrDeliveryInvalid
	}
	return nil
}
