package public

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/service"
)

// ApplyPromoRequest 优惠码请求
type ApplyPromoRequest struct {
	Code         string `json:"code"`
	DeliveryCode string `json:"delivery_code"`
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	DeliveryCode string `json:"delivery_code"`
	PromoCode    string `json:"promo_code"`
	Email        string `json:"email" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone"`
	ShippingAddr string `json:"shipping_addr"`
}

// GetOrderSummary 结算页汇总：可结算行、不可用行与金额
func (h *Handler) GetOrderSummary(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	summary, err := h.CheckoutService.GetOrderSummary(c.Request.Context(), ownerID, c.Query("delivery_code"), c.Query("promo_code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}

// ApplyPromoCode 应用优惠码，返回重算后的汇总
func (h *Handler) ApplyPromoCode(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	summary, err := h.CheckoutService.ApplyPromoCode(c.Request.Context(), ownerID, req.DeliveryCode, req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"accepted": summary.PromoAccepted, "totals": summary.Totals})
}

// PlaceOrder 下单并创建支付会话，返回跳转地址
func (h *Handler) PlaceOrder(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	placed, err := h.CheckoutService.PlaceOrder(c.Request.Context(), ownerID, req.DeliveryCode, req.PromoCode, service.CustomerInfo{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		ShippingAddr: req.ShippingAddr,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, placed)
}

// GetPaymentStatus 支付返回页回查：仅支付成功会确认订单并清空购物车
func (h *Handler) GetPaymentStatus(c *gin.Context) {
	result, err := h.CheckoutService.ResolvePayment(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// CancelCheckout 支付取消返回页：废弃在途会话，购物车保留以便立即重试
func (h *Handler) CancelCheckout(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	result, err := h.CheckoutService.CancelCheckout(c.Request.Context(), ownerID, c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrder 按订单号读取订单，只允许归属人本人查看
func (h *Handler) GetOrder(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	order, err := h.CheckoutService.GetOrderByNo(c.Param("orderNo"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order.OwnerID != ownerID {
		response.NotFound(c, "order not found")
		return
	}
	response.Success(c, order)
}

// ListOrders 当前购物车归属人的历史订单
func (h *Handler) ListOrders(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	orders, total, err := h.CheckoutService.ListOrders(ownerID, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}
