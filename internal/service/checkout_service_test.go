package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/constants"
	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

type fakeGateway struct {
	createErr  error
	queryErr   error
	status     GatewayStatus
	created    []*CheckoutSessionRequest
	queryCalls int
	sessionSeq int
}

func (f *fakeGateway) CreateSession(_ context.Context, req *CheckoutSessionRequest) (*GatewaySession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	f.sessionSeq++
	sessionID := fmt.Sprintf("cs_test_%d", f.sessionSeq)
	return &GatewaySession{SessionID: sessionID, RedirectURL: "https://pay.example/" + sessionID}, nil
}

func (f *fakeGateway) QuerySession(_ context.Context, sessionID string) (*GatewayStatus, error) {
	f.queryCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	status := f.status
	status.SessionID = sessionID
	return &status, nil
}

type checkoutFixture struct {
	db          *gorm.DB
	cartSvc     *CartService
	checkoutSvc *CheckoutService
	gateway     *fakeGateway
	productRepo repository.ProductRepository
	sessionRepo repository.CheckoutSessionRepository
	orderRepo   repository.OrderRepository
	couponRepo  repository.CouponRepository
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.CartLine{}, &models.Coupon{}, &models.DeliveryOption{},
		&models.Order{}, &models.OrderItem{}, &models.CheckoutSession{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	deliveryRepo := repository.NewDeliveryOptionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	sessionRepo := repository.NewCheckoutSessionRepository(db)

	cartSvc := NewCartService(cartRepo)
	engine := NewReconcileEngine(NewRepoProductLookup(productRepo))
	pricing := NewPricingService(couponRepo, deliveryRepo, pricingCfg())
	gateway := &fakeGateway{status: GatewayStatus{PaymentStatus: "unpaid", SessionStatus: "open"}}

	checkoutSvc := NewCheckoutService(
		cartSvc, engine, pricing, orderRepo, sessionRepo, productRepo, gateway, nil,
		config.CheckoutConfig{
			SessionExpireMinutes: 30,
			SuccessURL:           "https://shop.example/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:            "https://shop.example/cart",
		},
		pricingCfg(),
	)
	return &checkoutFixture{
		db:          db,
		cartSvc:     cartSvc,
		checkoutSvc: checkoutSvc,
		gateway:     gateway,
		productRepo: productRepo,
		sessionRepo: sessionRepo,
		orderRepo:   orderRepo,
		couponRepo:  couponRepo,
	}
}

func (f *checkoutFixture) seedProduct(t *testing.T, slug string, priceCents int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:          slug,
		Name:          "Watch " + slug,
		Price:         models.NewMoneyFromCents(priceCents),
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := f.productRepo.Create(product); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func testCustomer() CustomerInfo {
	return CustomerInfo{Email: "buyer@example.com", Name: "Buyer"}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:happy"
	product := f.seedProduct(t, "happy-diver", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	placed, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if placed.RedirectURL == "" || placed.SessionID == "" {
		t.Fatalf("expected redirect target, got %+v", placed)
	}
	// 100.00 超过免邮门槛：运费 0，税 8.00
	if placed.Totals.TotalCents != 10800 {
		t.Fatalf("expected total 10800, got %d", placed.Totals.TotalCents)
	}

	order, err := f.orderRepo.GetByOrderNo(placed.OrderNo)
	if err != nil || order == nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if order.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("expected pending_payment, got %s", order.Status)
	}
	session, err := f.sessionRepo.GetBySessionID(placed.SessionID)
	if err != nil || session == nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if session.Status != constants.CheckoutStatusAwaitingPayment {
		t.Fatalf("expected awaiting_payment, got %s", session.Status)
	}

	// 会话请求必须带服务端可信单价
	if len(f.gateway.created) != 1 {
		t.Fatalf("expected 1 gateway call, got %d", len(f.gateway.created))
	}
	req := f.gateway.created[0]
	if len(req.Items) != 1 || req.Items[0].UnitAmountCents != 10000 {
		t.Fatalf("expected server-trusted price 10000, got %+v", req.Items)
	}
	if req.CustomerEmail != "buyer@example.com" {
		t.Fatalf("expected customer email, got %q", req.CustomerEmail)
	}

	// 下单不清空购物车，只有支付成功才清
	if lines := f.cartSvc.List(owner); len(lines) != 1 {
		t.Fatalf("expected cart untouched, got %+v", lines)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), "guest:empty", "", "", testCustomer()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrderBlockedByUnavailableLine(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:oos"
	product := f.seedProduct(t, "oos-chrono", 5000, 1)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	product.StockQuantity = 0
	if err := f.productRepo.Update(product); err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer()); !errors.Is(err, ErrLinesUnavailable) {
		t.Fatalf("expected ErrLinesUnavailable, got %v", err)
	}
}

func TestPlaceOrderSingleFlightPerOwner(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:inflight"
	product := f.seedProduct(t, "inflight-gmt", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer()); err != nil {
		t.Fatalf("first place order failed: %v", err)
	}
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer()); !errors.Is(err, ErrCheckoutInFlight) {
		t.Fatalf("expected ErrCheckoutInFlight, got %v", err)
	}
}

func TestPlaceOrderInvalidPromo(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:badpromo"
	product := f.seedProduct(t, "badpromo-field", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "NOPE", testCustomer()); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid, got %v", err)
	}
}

func TestPlaceOrderGatewayFailureLeavesCartEditable(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:gwdown"
	product := f.seedProduct(t, "gwdown-pilot", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	f.gateway.createErr = errors.New("stripe down")
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer()); !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}
	// 无在途会话，购物车仍可编辑、可重试
	if lines := f.cartSvc.List(owner); len(lines) != 1 {
		t.Fatalf("expected cart untouched, got %+v", lines)
	}
	f.gateway.createErr = nil
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer()); err != nil {
		t.Fatalf("retry after gateway failure failed: %v", err)
	}
}

func TestResolvePaymentPaidFinalizesAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:paid"
	product := f.seedProduct(t, "paid-moon", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 2, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	placed, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	f.gateway.status = GatewayStatus{PaymentStatus: "paid", SessionStatus: "complete", AmountPaidCents: placed.Totals.TotalCents}
	result, err := f.checkoutSvc.ResolvePayment(context.Background(), placed.SessionID)
	if err != nil {
		t.Fatalf("resolve payment failed: %v", err)
	}
	if result.Outcome != constants.OutcomePaid {
		t.Fatalf("expected paid outcome, got %s", result.Outcome)
	}
	if result.Order.Status != constants.OrderStatusPaid || result.Order.PaidAt == nil {
		t.Fatalf("expected paid order, got %+v", result.Order)
	}
	if lines := f.cartSvc.List(owner); len(lines) != 0 {
		t.Fatalf("expected cart cleared, got %+v", lines)
	}
	refreshed, err := f.productRepo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if refreshed.StockQuantity != 3 {
		t.Fatalf("expected stock 3 after decrement, got %d", refreshed.StockQuantity)
	}

	// 重复回查幂等，不再扣库存
	again, err := f.checkoutSvc.ResolvePayment(context.Background(), placed.SessionID)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if again.Outcome != constants.OutcomePaid {
		t.Fatalf("expected paid outcome on replay, got %s", again.Outcome)
	}
	refreshed, _ = f.productRepo.GetByID(product.ID)
	if refreshed.StockQuantity != 3 {
		t.Fatalf("expected stock unchanged on replay, got %d", refreshed.StockQuantity)
	}
	// 已确认的会话直接返回既有结果，落账动作只发生一次
	if f.gateway.queryCalls != 1 {
		t.Fatalf("expected 1 gateway query, got %d", f.gateway.queryCalls)
	}
}

func TestResolvePaymentPendingLeavesCartUntouched(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:pending"
	product := f.seedProduct(t, "pending-skin", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	placed, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	f.gateway.status = GatewayStatus{PaymentStatus: "unpaid", SessionStatus: "open"}
	result, err := f.checkoutSvc.ResolvePayment(context.Background(), placed.SessionID)
	if err != nil {
		t.Fatalf("resolve payment failed: %v", err)
	}
	if result.Outcome != constants.OutcomePending {
		t.Fatalf("expected pending, got %s", result.Outcome)
	}
	if lines := f.cartSvc.List(owner); len(lines) != 1 {
		t.Fatalf("expected cart untouched, got %+v", lines)
	}
	if result.Order.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("expected order still pending_payment, got %s", result.Order.Status)
	}
}

func TestCancelCheckoutAllowsImmediateRetry(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:cancel"
	product := f.seedProduct(t, "cancel-field", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	placed, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	// 取消返回时支付方仍是 unpaid/open，在途会话会挡住再次下单
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer()); !errors.Is(err, ErrCheckoutInFlight) {
		t.Fatalf("expected ErrCheckoutInFlight, got %v", err)
	}

	result, err := f.checkoutSvc.CancelCheckout(context.Background(), owner, placed.SessionID)
	if err != nil {
		t.Fatalf("cancel checkout failed: %v", err)
	}
	if result.Outcome != constants.OutcomeFailed {
		t.Fatalf("expected failed outcome, got %s", result.Outcome)
	}
	session, err := f.sessionRepo.GetBySessionID(placed.SessionID)
	if err != nil || session == nil {
		t.Fatalf("reload session failed: %v", err)
	}
	if session.Status != constants.CheckoutStatusAbandoned {
		t.Fatalf("expected abandoned session, got %s", session.Status)
	}
	order, err := f.orderRepo.GetByOrderNo(placed.OrderNo)
	if err != nil || order == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if order.Status != constants.OrderStatusAbandoned {
		t.Fatalf("expected abandoned order, got %s", order.Status)
	}
	// 购物车原样保留，取消后立即可重新下单
	if lines := f.cartSvc.List(owner); len(lines) != 1 {
		t.Fatalf("expected cart untouched, got %+v", lines)
	}
	if _, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer()); err != nil {
		t.Fatalf("retry after cancel failed: %v", err)
	}
}

func TestCancelCheckoutPaidSessionFinalizes(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:cancelpaid"
	product := f.seedProduct(t, "cancelpaid-gmt", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	placed, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// 支付方已收款的会话不能被取消废弃，照常落账
	f.gateway.status = GatewayStatus{PaymentStatus: "paid", SessionStatus: "complete", AmountPaidCents: placed.Totals.TotalCents}
	result, err := f.checkoutSvc.CancelCheckout(context.Background(), owner, placed.SessionID)
	if err != nil {
		t.Fatalf("cancel checkout failed: %v", err)
	}
	if result.Outcome != constants.OutcomePaid {
		t.Fatalf("expected paid outcome, got %s", result.Outcome)
	}
	if result.Order.Status != constants.OrderStatusPaid {
		t.Fatalf("expected paid order, got %s", result.Order.Status)
	}
	if lines := f.cartSvc.List(owner); len(lines) != 0 {
		t.Fatalf("expected cart cleared, got %+v", lines)
	}
}

func TestCancelCheckoutWrongOwnerRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:cancelmine"
	product := f.seedProduct(t, "cancelmine-38", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	placed, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := f.checkoutSvc.CancelCheckout(context.Background(), "guest:intruder", placed.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	session, err := f.sessionRepo.GetBySessionID(placed.SessionID)
	if err != nil || session == nil {
		t.Fatalf("reload session failed: %v", err)
	}
	if session.Status != constants.CheckoutStatusAwaitingPayment {
		t.Fatalf("expected session still awaiting_payment, got %s", session.Status)
	}
}

func TestResolvePaymentExpiredMarksFailed(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:expired"
	product := f.seedProduct(t, "expired-tank", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	placed, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	f.gateway.status = GatewayStatus{PaymentStatus: "unpaid", SessionStatus: "expired"}
	result, err := f.checkoutSvc.ResolvePayment(context.Background(), placed.SessionID)
	if err != nil {
		t.Fatalf("resolve payment failed: %v", err)
	}
	if result.Outcome != constants.OutcomeFailed {
		t.Fatalf("expected failed, got %s", result.Outcome)
	}
	if result.Order.Status != constants.OrderStatusFailed {
		t.Fatalf("expected failed order, got %s", result.Order.Status)
	}
	if lines := f.cartSvc.List(owner); len(lines) != 1 {
		t.Fatalf("expected cart kept for retry, got %+v", lines)
	}
}

func TestResolvePaymentAmountMismatchRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:mismatch"
	product := f.seedProduct(t, "mismatch-diver", 10000, 5)

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	placed, err := f.checkoutSvc.PlaceOrder(context.Background(), owner, "", "", testCustomer())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	f.gateway.status = GatewayStatus{PaymentStatus: "paid", SessionStatus: "complete", AmountPaidCents: 1}
	if _, err := f.checkoutSvc.ResolvePayment(context.Background(), placed.SessionID); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
}

func TestGetOrderSummaryWithPromo(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := "guest:summary"
	product := f.seedProduct(t, "summary-dress", 2000, 5)

	if err := f.couponRepo.Create(&models.Coupon{
		Code:     "SAVE10",
		Amount:   models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive: true,
	}); err != nil {
		t.Fatalf("seed coupon failed: %v", err)
	}
	if err := f.db.Create(&models.DeliveryOption{
		Code: "standard", Name: "Standard Shipping", FlatFee: models.Money{}, ETA: "5-7 business days", IsActive: true,
	}).Error; err != nil {
		t.Fatalf("seed delivery failed: %v", err)
	}

	if _, err := f.cartSvc.AddLine(owner, product.ID, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}

	// 大小写不敏感
	summary, err := f.checkoutSvc.GetOrderSummary(context.Background(), owner, "", "save10")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if !summary.PromoAccepted {
		t.Fatalf("expected promo accepted")
	}
	// 20.00 + 税 1.60 - 优惠 10.00 = 11.60
	if summary.Totals.TotalCents != 1160 {
		t.Fatalf("expected total 1160, got %d", summary.Totals.TotalCents)
	}

	// 未知码：金额按无优惠给出，仅标记拒绝
	summary, err = f.checkoutSvc.GetOrderSummary(context.Background(), owner, "", "NOPE")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.PromoAccepted {
		t.Fatalf("expected promo rejected")
	}
	if summary.Totals.DiscountCents != 0 {
		t.Fatalf("expected zero discount, got %d", summary.Totals.DiscountCents)
	}
}

func TestBuildSessionRequestValidation(t *testing.T) {
	f := newCheckoutFixture(t)
	items := []ReconciledLine{{Name: "Watch", UnitPrice: models.NewMoneyFromCents(1000), Quantity: 1}}
	totals := computeTotals(items, 0, 0, pricingCfg())

	if _, err := f.checkoutSvc.BuildSessionRequest("WH1", nil, totals, testCustomer()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if _, err := f.checkoutSvc.BuildSessionRequest("WH1", items, totals, CustomerInfo{Name: "Buyer"}); !errors.Is(err, ErrCustomerInfoInvalid) {
		t.Fatalf("expected ErrCustomerInfoInvalid, got %v", err)
	}
	if _, err := f.checkoutSvc.BuildSessionRequest("WH1", items, totals, CustomerInfo{Email: "not-an-email", Name: "Buyer"}); !errors.Is(err, ErrCustomerInfoInvalid) {
		t.Fatalf("expected ErrCustomerInfoInvalid for bad email, got %v", err)
	}
	zeroPrice := []ReconciledLine{{Name: "Watch", UnitPrice: models.Money{}, Quantity: 1}}
	if _, err := f.checkoutSvc.BuildSessionRequest("WH1", zeroPrice, totals, testCustomer()); !errors.Is(err, ErrUnitPriceInvalid) {
		t.Fatalf("expected ErrUnitPriceInvalid, got %v", err)
	}
}

func TestInterpretSessionStatus(t *testing.T) {
	tests := []struct {
		paymentStatus string
		sessionStatus string
		want          string
	}{
		{"paid", "complete", constants.OutcomePaid},
		{"no_payment_required", "complete", constants.OutcomePaid},
		{"unpaid", "open", constants.OutcomePending},
		{"unpaid", "complete", constants.OutcomePending},
		{"unpaid", "expired", constants.OutcomeFailed},
		{"", "", constants.OutcomeUnknown},
		{"something-new", "weird", constants.OutcomeUnknown},
	}
	for _, tt := range tests {
		got := InterpretSessionStatus(tt.paymentStatus, tt.sessionStatus)
		if got != tt.want {
			t.Fatalf("InterpretSessionStatus(%q,%q)=%s, want %s", tt.paymentStatus, tt.sessionStatus, got, tt.want)
		}
	}
}
