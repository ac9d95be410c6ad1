package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watchhub/watchhub/internal/cache"
	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/constants"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/queue"
	"github.com/watchhub/watchhub/internal/repository"
)

// CustomerInfo 下单客户信息
type CustomerInfo struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	ShippingAddr string `json:"shipping_addr"`
}

// OrderSummary 结算页的单次读取结果：可结算行、不可用行与金额汇总
type OrderSummary struct {
	Items         []ReconciledLine       `json:"items"`
	Unavailable   []UnavailableLine      `json:"unavailable"`
	Totals        OrderTotals            `json:"totals"`
	Delivery      *models.DeliveryOption `json:"delivery,omitempty"`
	PromoAccepted bool                   `json:"promo_accepted"`
}

// PlacedOrder 下单成功后的跳转信息
type PlacedOrder struct {
	OrderNo     string      `json:"order_no"`
	SessionID   string      `json:"session_id"`
	RedirectURL string      `json:"redirect_url"`
	Totals      OrderTotals `json:"totals"`
}

// PaymentResult 支付回查结果
type PaymentResult struct {
	Outcome string        `json:"outcome"`
	Order   *models.Order `json:"order,omitempty"`
}

// CheckoutService 结算服务：对账、计价、支付会话与订单落账
type CheckoutService struct {
	cartSvc     *CartService
	engine      *ReconcileEngine
	pricing     *PricingService
	orderRepo   repository.OrderRepository
	sessionRepo repository.CheckoutSessionRepository
	productRepo repository.ProductRepository
	gateway     CheckoutGateway
	queueClient *queue.Client
	checkoutCfg config.CheckoutConfig
	pricingCfg  config.PricingConfig

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(
	cartSvc *CartService,
	engine *ReconcileEngine,
	pricing *PricingService,
	orderRepo repository.OrderRepository,
	sessionRepo repository.CheckoutSessionRepository,
	productRepo repository.ProductRepository,
	gateway CheckoutGateway,
	queueClient *queue.Client,
	checkoutCfg config.CheckoutConfig,
	pricingCfg config.PricingConfig,
) *CheckoutService {
	return &CheckoutService{
		cartSvc:     cartSvc,
		engine:      engine,
		pricing:     pricing,
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		productRepo: productRepo,
		gateway:     gateway,
		queueClient: queueClient,
		checkoutCfg: checkoutCfg,
		pricingCfg:  pricingCfg,
		inflight:    make(map[string]struct{}),
	}
}

// GetOrderSummary 结算页唯一读取入口：最新购物车快照对账后计价。
// 优惠码无效时 PromoAccepted 为 false，金额按无优惠给出。
func (s *CheckoutService) GetOrderSummary(ctx context.Context, ownerID, deliveryCode, promoCode string) (*OrderSummary, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwner
	}
	lines := s.cartSvc.List(ownerID)
	result := s.engine.Reconcile(ctx, lines)

	delivery, err := s.pricing.ResolveDelivery(deliveryCode)
	if err != nil {
		return nil, err
	}
	totals, promoErr := s.pricing.ComputeTotals(result.Items, delivery, promoCode)
	if promoErr != nil && !errors.Is(promoErr, ErrCouponInvalid) {
		return nil, promoErr
	}
	return &OrderSummary{
		Items:         result.Items,
		Unavailable:   result.Unavailable,
		Totals:        totals,
		Delivery:      delivery,
		PromoAccepted: strings.TrimSpace(promoCode) != "" && promoErr == nil,
	}, nil
}

// ApplyPromoCode 应用优惠码并返回重算后的汇总。新码整体替换旧码，不叠加。
func (s *CheckoutService) ApplyPromoCode(ctx context.Context, ownerID, deliveryCode, code string) (*OrderSummary, error) {
	return s.GetOrderSummary(ctx, ownerID, deliveryCode, code)
}

// BuildSessionRequest 由对账结果组装支付会话请求。
// 单价一律取服务端对账价，客户端无法篡改金额。
func (s *CheckoutService) BuildSessionRequest(orderNo string, items []ReconciledLine, totals OrderTotals, customer CustomerInfo) (*CheckoutSessionRequest, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	sessionItems := make([]SessionLineItem, 0, len(items))
	for _, item := range items {
		unitCents := item.UnitPrice.Cents()
		if unitCents <= 0 {
			return nil, ErrUnitPriceInvalid
		}
		sessionItems = append(sessionItems, SessionLineItem{
			Name:            item.Name,
			Variant:         item.Variant,
			ImageURL:        item.ImageURL,
			UnitAmountCents: unitCents,
			Quantity:        item.Quantity,
		})
	}
	return &CheckoutSessionRequest{
		OrderNo:       orderNo,
		Currency:      s.pricingCfg.Currency,
		Items:         sessionItems,
		TotalCents:    totals.TotalCents,
		CustomerEmail: strings.TrimSpace(customer.Email),
		CustomerName:  strings.TrimSpace(customer.Name),
		SuccessURL:    s.checkoutCfg.SuccessURL,
		CancelURL:     s.checkoutCfg.CancelURL,
	}, nil
}

// PlaceOrder 下单：对账、计价、建单并创建支付会话，返回跳转地址。
// 同一归属人同一时刻只允许一笔在途结算。
func (s *CheckoutService) PlaceOrder(ctx context.Context, ownerID, deliveryCode, promoCode string, customer CustomerInfo) (*PlacedOrder, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwner
	}
	release, ok := s.acquireOwnerGuard(ctx, ownerID)
	if !ok {
		return nil, ErrCheckoutInFlight
	}
	defer release()

	active, err := s.sessionRepo.GetActiveByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if active != nil && active.ExpiresAt.After(time.Now()) {
		return nil, ErrCheckoutInFlight
	}

	lines := s.cartSvc.List(ownerID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	result := s.engine.Reconcile(ctx, lines)
	if result.HasBlocking() {
		return nil, ErrLinesUnavailable
	}
	if len(result.Items) == 0 {
		return nil, ErrEmptyCart
	}

	delivery, err := s.pricing.ResolveDelivery(deliveryCode)
	if err != nil {
		return nil, err
	}
	totals, promoErr := s.pricing.ComputeTotals(result.Items, delivery, promoCode)
	if promoErr != nil {
		return nil, promoErr
	}

	orderNo := generateOrderNo()
	request, err := s.BuildSessionRequest(orderNo, result.Items, totals, customer)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNo:       orderNo,
		OwnerID:       ownerID,
		Status:        constants.OrderStatusPendingPayment,
		Subtotal:      totals.Subtotal,
		ShippingFee:   totals.Shipping,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Currency:      s.pricingCfg.Currency,
		CouponCode:    strings.ToUpper(strings.TrimSpace(promoCode)),
		CustomerEmail: strings.TrimSpace(customer.Email),
		CustomerName:  strings.TrimSpace(customer.Name),
		CustomerPhone: strings.TrimSpace(customer.Phone),
		ShippingAddr:  strings.TrimSpace(customer.ShippingAddr),
	}
	if delivery != nil {
		order.DeliveryCode = delivery.Code
	}
	orderItems := make([]models.OrderItem, 0, len(result.Items))
	for _, item := range result.Items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Variant:   item.Variant,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	if err := s.orderRepo.Create(order, orderItems); err != nil {
		return nil, err
	}

	gatewaySession, err := s.gateway.CreateSession(ctx, request)
	if err != nil {
		logger.Errorw("checkout_create_session_failed", "order_no", orderNo, "error", err)
		if markErr := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusFailed, nil); markErr != nil {
			logger.Errorw("checkout_mark_order_failed_failed", "order_no", orderNo, "error", markErr)
		}
		return nil, ErrPaymentFailed
	}

	session := &models.CheckoutSession{
		OwnerID:     ownerID,
		OrderID:     order.ID,
		SessionID:   gatewaySession.SessionID,
		RedirectURL: gatewaySession.RedirectURL,
		Status:      constants.CheckoutStatusAwaitingPayment,
		AmountCents: totals.TotalCents,
		ExpiresAt:   time.Now().Add(time.Duration(s.checkoutCfg.SessionExpireMinutes) * time.Minute),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	// 会话到期后兜底回查一次，避免仅依赖周期扫描
	if s.queueClient.Enabled() {
		delay := time.Until(session.ExpiresAt) + time.Minute
		if err := s.queueClient.EnqueueCheckoutSweep(queue.CheckoutSweepPayload{}, delay); err != nil {
			logger.Warnw("checkout_enqueue_sweep_failed", "order_no", orderNo, "error", err)
		}
	}

	return &PlacedOrder{
		OrderNo:     orderNo,
		SessionID:   gatewaySession.SessionID,
		RedirectURL: gatewaySession.RedirectURL,
		Totals:      totals,
	}, nil
}

// InterpretSessionStatus 把支付方的原始状态对解释为统一结果
func InterpretSessionStatus(paymentStatus, sessionStatus string) string {
	paymentStatus = strings.ToLower(strings.TrimSpace(paymentStatus))
	sessionStatus = strings.ToLower(strings.TrimSpace(sessionStatus))
	switch {
	case paymentStatus == "paid":
		return constants.OutcomePaid
	case paymentStatus == "no_payment_required" && sessionStatus == "complete":
		return constants.OutcomePaid
	case sessionStatus == "expired":
		return constants.OutcomeFailed
	case paymentStatus == "unpaid" && (sessionStatus == "open" || sessionStatus == "complete"):
		return constants.OutcomePending
	default:
		return constants.OutcomeUnknown
	}
}

// ResolvePayment 回查支付会话并落账。
// 仅 Paid 结果会确认订单、扣减库存并清空购物车；其余结果购物车原样保留。
func (s *CheckoutService) ResolvePayment(ctx context.Context, sessionID string) (*PaymentResult, error) {
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	order, err := s.orderRepo.GetByID(session.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	// 已落账的会话直接返回既有结果，回查幂等
	switch session.Status {
	case constants.CheckoutStatusConfirmed:
		return &PaymentResult{Outcome: constants.OutcomePaid, Order: order}, nil
	case constants.CheckoutStatusFailed, constants.CheckoutStatusAbandoned:
		return &PaymentResult{Outcome: constants.OutcomeFailed, Order: order}, nil
	}

	status, err := s.gateway.QuerySession(ctx, sessionID)
	if err != nil {
		logger.Errorw("payment_query_session_failed", "session_id", sessionID, "error", err)
		return nil, ErrPaymentFailed
	}
	outcome := InterpretSessionStatus(status.PaymentStatus, status.SessionStatus)

	switch outcome {
	case constants.OutcomePaid:
		if status.AmountPaidCents > 0 && status.AmountPaidCents != session.AmountCents {
			logger.Errorw("payment_amount_mismatch",
				"session_id", sessionID, "expected_cents", session.AmountCents, "paid_cents", status.AmountPaidCents)
			return nil, ErrInvariantViolation
		}
		if err := s.finalizePaid(session, order); err != nil {
			return nil, err
		}
	case constants.OutcomeFailed:
		if err := s.sessionRepo.UpdateStatus(session.ID, constants.CheckoutStatusFailed); err != nil {
			return nil, err
		}
		if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusFailed, nil); err != nil {
			return nil, err
		}
		order.Status = constants.OrderStatusFailed
	}
	return &PaymentResult{Outcome: outcome, Order: order}, nil
}

// CancelCheckout 支付取消返回页入口：把归属人仍未支付的在途会话标记废弃。
// 废弃前先回查一次支付方，已支付的会话照常落账；购物车原样保留，客户可立即重新下单。
func (s *CheckoutService) CancelCheckout(ctx context.Context, ownerID, sessionID string) (*PaymentResult, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwner
	}
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.OwnerID != ownerID {
		return nil, ErrSessionNotFound
	}

	result, err := s.ResolvePayment(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if result.Outcome != constants.OutcomePending && result.Outcome != constants.OutcomeUnknown {
		return result, nil
	}

	if err := s.sessionRepo.UpdateStatus(session.ID, constants.CheckoutStatusAbandoned); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(session.OrderID, constants.OrderStatusAbandoned, nil); err != nil {
		return nil, err
	}
	result.Outcome = constants.OutcomeFailed
	if result.Order != nil {
		result.Order.Status = constants.OrderStatusAbandoned
	}
	return result, nil
}

// finalizePaid 支付成功落账：订单置已支付、扣库存、会话置确认，最后清空购物车
func (s *CheckoutService) finalizePaid(session *models.CheckoutSession, order *models.Order) error {
	now := time.Now()
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusPaid, map[string]interface{}{
			"paid_at": now,
		}); err != nil {
			return err
		}
		if err := s.sessionRepo.WithTx(tx).UpdateStatus(session.ID, constants.CheckoutStatusConfirmed); err != nil {
			return err
		}
		for _, item := range order.Items {
			affected, err := s.productRepo.WithTx(tx).DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				logger.Warnw("payment_decrement_stock_missed", "product_id", item.ProductID, "quantity", item.Quantity)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Status = constants.OrderStatusPaid
	order.PaidAt = &now
	// 仅支付成功才清空购物车
	if err := s.cartSvc.Clear(session.OwnerID); err != nil {
		logger.Warnw("payment_clear_cart_failed", "owner_id", session.OwnerID, "error", err)
	}
	// 确认只发生一次，通知在此入队，轮询回查不会重复发
	if s.queueClient.Enabled() {
		payload := queue.OrderConfirmedEmailPayload{OrderID: order.ID}
		if err := s.queueClient.EnqueueOrderConfirmedEmail(payload); err != nil {
			logger.Warnw("enqueue_order_confirmed_email_failed", "order_id", order.ID, "error", err)
		}
	}
	return nil
}

// SweepExpiredSessions 清理超期未支付的在途会话。
// 对每个超期会话先回查一次支付方，已支付的照常落账，其余标记废弃。
func (s *CheckoutService) SweepExpiredSessions(ctx context.Context, limit int) (int, error) {
	sessions, err := s.sessionRepo.ListExpiredAwaiting(time.Now(), limit)
	if err != nil {
		return 0, err
	}
	swept := 0
	for i := range sessions {
		session := &sessions[i]
		result, err := s.ResolvePayment(ctx, session.SessionID)
		if err != nil {
			logger.Warnw("sweep_resolve_session_failed", "session_id", session.SessionID, "error", err)
			continue
		}
		if result.Outcome == constants.OutcomePaid || result.Outcome == constants.OutcomeFailed {
			swept++
			continue
		}
		if err := s.sessionRepo.UpdateStatus(session.ID, constants.CheckoutStatusAbandoned); err != nil {
			logger.Warnw("sweep_mark_session_abandoned_failed", "session_id", session.SessionID, "error", err)
			continue
		}
		if err := s.orderRepo.UpdateStatus(session.OrderID, constants.OrderStatusAbandoned, nil); err != nil {
			logger.Warnw("sweep_mark_order_abandoned_failed", "order_id", session.OrderID, "error", err)
			continue
		}
		swept++
	}
	return swept, nil
}

// GetOrderByNo 按订单号读取订单
func (s *CheckoutService) GetOrderByNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 按归属人分页列出订单
func (s *CheckoutService) ListOrders(ownerID string, page, pageSize int) ([]models.Order, int64, error) {
	if ownerID == "" {
		return nil, 0, ErrInvalidOwner
	}
	return s.orderRepo.ListByOwner(ownerID, page, pageSize)
}

// acquireOwnerGuard 归属人级并发闸：进程内互斥，Redis 可用时再加跨实例锁
func (s *CheckoutService) acquireOwnerGuard(ctx context.Context, ownerID string) (func(), bool) {
	s.mu.Lock()
	if _, busy := s.inflight[ownerID]; busy {
		s.mu.Unlock()
		return nil, false
	}
	s.inflight[ownerID] = struct{}{}
	s.mu.Unlock()

	releaseLocal := func() {
		s.mu.Lock()
		delete(s.inflight, ownerID)
		s.mu.Unlock()
	}

	if cache.Enabled() {
		key := "checkout:inflight:" + ownerID
		ttl := time.Duration(s.checkoutCfg.SessionExpireMinutes) * time.Minute
		acquired, err := cache.AcquireLock(ctx, key, ttl)
		if err != nil {
			logger.Warnw("checkout_lock_acquire_failed_fallback_local", "owner_id", ownerID, "error", err)
			return releaseLocal, true
		}
		if !acquired {
			releaseLocal()
			return nil, false
		}
		return func() {
			if err := cache.ReleaseLock(context.Background(), key); err != nil {
				logger.Warnw("checkout_lock_release_failed", "owner_id", ownerID, "error", err)
			}
			releaseLocal()
		}, true
	}
	return releaseLocal, true
}

func validateCustomer(customer CustomerInfo) error {
	email := strings.TrimSpace(customer.Email)
	if email == "" || strings.TrimSpace(customer.Name) == "" {
		return ErrCustomerInfoInvalid
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrCustomerInfoInvalid
	}
	return nil
}

func generateOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return "WH" + time.Now().UTC().Format("20060102150405") + suffix
}
