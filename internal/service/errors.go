package service

import "errors"

// 本地可恢复类（按无操作/剔除处理，不向上抛致命错误）
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrDeliveryNotFound = errors.New("delivery option not found")
	ErrCouponNotFound   = errors.New("coupon not found")
)

// 用户可修正类（校验失败，提示后可重试）
var (
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidOwner        = errors.New("owner identity is empty")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrLinesUnavailable    = errors.New("cart has unavailable lines")
	ErrCouponInvalid       = errors.New("coupon code invalid")
	ErrCustomerInfoInvalid = errors.New("customer contact info invalid")
	ErrUnitPriceInvalid    = errors.New("line item unit price invalid")
	ErrCheckoutInFlight    = errors.New("checkout already in flight")
	ErrAdminCredentials    = errors.New("admin credentials invalid")
	ErrProductInvalid      = errors.New("product payload invalid")
	ErrDeliveryInvalid     = errors.New("delivery option payload invalid")
)

// 外部协作方类（可重试，降级处理）
var (
	ErrLookupFailed  = errors.New("product lookup failed")
	ErrPaymentFailed = errors.New("payment collaborator request failed")
)

// 不变量违反类（程序缺陷，中止操作并记录，不得悄悄修正）
var (
	ErrInvariantViolation = errors.New("invariant violation")
)
