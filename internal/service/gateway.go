package service

import (
	"context"
	"time"

	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/payment/stripe"
)

// SessionLineItem 支付会话中的单个商品行，金额为服务端可信价，单位分
type SessionLineItem struct {
	Name            string `json:"name"`
	Variant         string `json:"variant,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	UnitAmountCents int64  `json:"unit_amount_cents"`
	Quantity        int    `json:"quantity"`
}

// CheckoutSessionRequest 发往支付协作方的会话创建请求
type CheckoutSessionRequest struct {
	OrderNo       string            `json:"order_no"`
	Currency      string            `json:"currency"`
	Items         []SessionLineItem `json:"items"`
	TotalCents    int64             `json:"total_cents"`
	CustomerEmail string            `json:"customer_email"`
	CustomerName  string            `json:"customer_name"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
}

// GatewaySession 支付协作方创建会话的返回
type GatewaySession struct {
	SessionID   string
	RedirectURL string
}

// GatewayStatus 支付协作方的会话状态查询返回
type GatewayStatus struct {
	SessionID       string
	PaymentStatus   string
	SessionStatus   string
	AmountPaidCents int64
	CustomerEmail   string
}

// CheckoutGateway 支付协作方边界，测试中以假实现替换
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req *CheckoutSessionRequest) (*GatewaySession, error)
	QuerySession(ctx context.Context, sessionID string) (*GatewayStatus, error)
}

// StripeGateway 基于 Stripe Checkout 的支付协作方实现
type StripeGateway struct {
	cfg *stripe.Config
}

// NewStripeGateway 由应用配置构建 Stripe 网关
func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	return &StripeGateway{cfg: &stripe.Config{
		SecretKey:          cfg.SecretKey,
		APIBaseURL:         cfg.APIBaseURL,
		Timeout:            time.Duration(cfg.TimeoutSeconds) * time.Second,
		PaymentMethodTypes: cfg.PaymentMethodTypes,
	}}
}

func (g *StripeGateway) CreateSession(ctx context.Context, req *CheckoutSessionRequest) (*GatewaySession, error) {
	items := make([]stripe.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, stripe.LineItem{
			Name:            item.Name,
			Variant:         item.Variant,
			ImageURL:        item.ImageURL,
			UnitAmountMinor: item.UnitAmountCents,
			Quantity:        item.Quantity,
		})
	}
	result, err := stripe.CreateCheckoutSession(ctx, g.cfg, stripe.CreateInput{
		OrderNo:       req.OrderNo,
		Currency:      req.Currency,
		Items:         items,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
	})
	if err != nil {
		return nil, err
	}
	return &GatewaySession{SessionID: result.SessionID, RedirectURL: result.URL}, nil
}

func (g *StripeGateway) QuerySession(ctx context.Context, sessionID string) (*GatewayStatus, error) {
	result, err := stripe.QueryCheckoutSession(ctx, g.cfg, sessionID)
	if err != nil {
		return nil, err
	}
	return &GatewayStatus{
		SessionID:       result.SessionID,
		PaymentStatus:   result.PaymentStatus,
		SessionStatus:   result.SessionStatus,
		AmountPaidCents: result.AmountTotalMinor,
		CustomerEmail:   result.CustomerEmail,
	}, nil
}
