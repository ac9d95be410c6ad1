package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// CouponAdminService 后台优惠码管理
type CouponAdminService struct {
	couponRepo repository.CouponRepository
}

// NewCouponAdminService 创建后台优惠码管理服务
func NewCouponAdminService(couponRepo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{couponRepo: couponRepo}
}

// ListCoupons 优惠码列表
func (s *CouponAdminService) ListCoupons(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// CreateCoupon 新建优惠码，码统一存大写
func (s *CouponAdminService) CreateCoupon(coupon *models.Coupon) error {
	if err := validateCoupon(coupon); err != nil {
		return err
	}
	existing, err := s.couponRepo.GetByCode(coupon.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrCouponInvalid
	}
	return s.couponRepo.Create(coupon)
}

// UpdateCoupon 更新优惠码
func (s *CouponAdminService) UpdateCoupon(coupon *models.Coupon) error {
	if coupon.ID == 0 {
		return ErrCouponInvalid
	}
	if err := validateCoupon(coupon); err != nil {
		return err
	}
	existing, err := s.couponRepo.GetByID(coupon.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	return s.couponRepo.Update(coupon)
}

// DeleteCoupon 删除优惠码
func (s *CouponAdminService) DeleteCoupon(id uint) error {
	existing, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	return s.couponRepo.Delete(id)
}

func validateCoupon(coupon *models.Coupon) error {
	if coupon == nil {
		return ErrCouponInvalid
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return ErrCouponInvalid
	}
	if coupon.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrCouponInvalid
	}
	if coupon.StartsAt != nil && coupon.EndsAt != nil && coupon.EndsAt.Before(*coupon.StartsAt) {
		return ErrCouponInvalid
	}
	return nil
}
