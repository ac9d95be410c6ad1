package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// ListCoupons 优惠码列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	coupons, total, err := h.CouponAdminService.ListCoupons(repository.CouponListFilter{
		Code:     c.Query("code"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}
	response.SuccessWithPage(c, coupons, buildPagination(page, pageSize, total))
}

// CreateCoupon 新建优惠码
func (h *Handler) CreateCoupon(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.CouponAdminService.CreateCoupon(&coupon); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠码
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	coupon.ID = id
	if err := h.CouponAdminService.UpdateCoupon(&coupon); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠码
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CouponAdminService.DeleteCoupon(id); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, nil)
}
