package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/repository"
)

// ListOrders 后台订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	orders, total, err := h.OrderRepo.List(repository.OrderListFilter{
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetOrder 后台订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderRepo.GetByID(id)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	if order == nil {
		response.NotFound(c, "record not found")
		return
	}
	response.Success(c, order)
}
