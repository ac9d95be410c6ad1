package constants

// 订单状态
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusAbandoned      = "abandoned"
	OrderStatusFailed         = "failed"
)

// 结算会话状态
const (
	CheckoutStatusAwaitingPayment = "awaiting_payment"
	CheckoutStatusConfirmed       = "confirmed"
	CheckoutStatusAbandoned       = "abandoned"
	CheckoutStatusFailed          = "failed"
)

// 支付结果
const (
	OutcomePaid    = "paid"
	OutcomePending = "pending"
	OutcomeFailed  = "failed"
	OutcomeUnknown = "unknown"
)

// 购物车行不可用原因
const (
	UnavailableNotFound     = "not_found"
	UnavailableOutOfStock   = "out_of_stock"
	UnavailableLookupFailed = "lookup_failed"
)

// 归属标识前缀（user:<id> 为登录用户，guest:<uuid> 为游客）
const (
	OwnerPrefixUser  = "user:"
	OwnerPrefixGuest = "guest:"
)

// 队列名称
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	TaskCheckoutSweep       = "checkout:sweep"
	TaskOrderConfirmedEmail = "order:confirmed_email"
)

// 管理员角色
const (
	AdminRoleSuper = "super"
)
