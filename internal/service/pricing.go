package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// OrderTotals 订单金额汇总，全部以分为单位计算，杜绝浮点误差
type OrderTotals struct {
	SubtotalCents int64 `json:"-"`
	ShippingCents int64 `json:"-"`
	TaxCents      int64 `json:"-"`
	DiscountCents int64 `json:"-"`
	TotalCents    int64 `json:"-"`

	Subtotal models.Money `json:"subtotal"`
	Shipping models.Money `json:"shipping"`
	Tax      models.Money `json:"tax"`
	Discount models.Money `json:"discount"`
	Total    models.Money `json:"total"`
}

// PricingService 计价服务：小计、运费、税、优惠与最终合计
type PricingService struct {
	couponRepo   repository.CouponRepository
	deliveryRepo repository.DeliveryOptionRepository
	cfg          config.PricingConfig
}

// NewPricingService 创建计价服务
func NewPricingService(couponRepo repository.CouponRepository, deliveryRepo repository.DeliveryOptionRepository, cfg config.PricingConfig) *PricingService {
	return &PricingService{couponRepo: couponRepo, deliveryRepo: deliveryRepo, cfg: cfg}
}

// ResolveDelivery 解析配送方式，空码取免费标准配送
func (s *PricingService) ResolveDelivery(code string) (*models.DeliveryOption, error) {
	if code == "" {
		options, err := s.deliveryRepo.ListActive()
		if err != nil {
			return nil, err
		}
		if len(options) == 0 {
			return nil, nil
		}
		// 默认选中免运费项，没有再取排序第一项
		for i := range options {
			if options[i].FlatFee.Cents() == 0 {
				return &options[i], nil
			}
		}
		return &options[0], nil
	}
	option, err := s.deliveryRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if option == nil || !option.IsActive {
		return nil, ErrDeliveryNotFound
	}
	return option, nil
}

// ResolveDiscount 解析优惠码为固定减免金额（分）。
// 码不存在、停用或不在有效期内均返回 ErrCouponInvalid，金额按 0 处理。
func (s *PricingService) ResolveDiscount(code string) (int64, error) {
	if code == "" {
		return 0, nil
	}
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return 0, err
	}
	if coupon == nil {
		return 0, ErrCouponInvalid
	}
	now := time.Now()
	if !coupon.IsActive {
		return 0, ErrCouponInvalid
	}
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return 0, ErrCouponInvalid
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return 0, ErrCouponInvalid
	}
	return coupon.Amount.Cents(), nil
}

// ComputeTotals 汇总计算订单金额。
// 优惠码无效时金额按无优惠计算并返回 ErrCouponInvalid，其余字段照常可用。
func (s *PricingService) ComputeTotals(items []ReconciledLine, delivery *models.DeliveryOption, promoCode string) (OrderTotals, error) {
	discountCents, promoErr := s.ResolveDiscount(promoCode)
	if promoErr != nil && !errors.Is(promoErr, ErrCouponInvalid) {
		return OrderTotals{}, promoErr
	}

	var deliveryFeeCents int64
	if delivery != nil {
		deliveryFeeCents = delivery.FlatFee.Cents()
	}
	totals := computeTotals(items, deliveryFeeCents, discountCents, s.cfg)
	return totals, promoErr
}

// computeTotals 纯金额计算。规则：
//   - 小计 = Σ 单价(分) × 数量
//   - 运费：空车为 0；小计达到免邮门槛为 0；否则收所选配送方式的固定费
//   - 税 = 小计 × 税率，仅在乘法这一步四舍五入到分，运费不计税
//   - 优惠上限为 小计+运费+税，合计下限为 0
func computeTotals(items []ReconciledLine, deliveryFeeCents, discountCents int64, cfg config.PricingConfig) OrderTotals {
	var subtotalCents int64
	for _, item := range items {
		subtotalCents += item.UnitPrice.Cents() * int64(item.Quantity)
	}

	thresholdCents := decimal.NewFromFloat(cfg.FreeShippingThreshold).Mul(decimal.NewFromInt(100)).IntPart()
	var shippingCents int64
	if len(items) > 0 && subtotalCents < thresholdCents {
		shippingCents = deliveryFeeCents
	}

	taxCents := decimal.NewFromInt(subtotalCents).
		Mul(decimal.NewFromFloat(cfg.TaxRate)).
		Round(0).
		IntPart()

	grossCents := subtotalCents + shippingCents + taxCents
	if discountCents > grossCents {
		discountCents = grossCents
	}
	totalCents := grossCents - discountCents
	if totalCents < 0 {
		totalCents = 0
	}

	return OrderTotals{
		SubtotalCents: subtotalCents,
		ShippingCents: shippingCents,
		TaxCents:      taxCents,
		DiscountCents: discountCents,
		TotalCents:    totalCents,
		Subtotal:      models.NewMoneyFromCents(subtotalCents),
		Shipping:      models.NewMoneyFromCents(shippingCents),
		Tax:           models.NewMoneyFromCents(taxCents),
		Discount:      models.NewMoneyFromCents(discountCents),
		Total:         models.NewMoneyFromCents(totalCents),
	}
}
