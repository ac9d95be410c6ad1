package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/models"
)

// ListDeliveryOptions 配送方式列表，含停用项
func (h *Handler) ListDeliveryOptions(c *gin.Context) {
	options, err := h.DeliveryAdminService.ListOptions()
	if err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, options)
}

// CreateDeliveryOption 新建配送方式
func (h *Handler) CreateDeliveryOption(c *gin.Context) {
	var option models.DeliveryOption
	if err := c.ShouldBindJSON(&option); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.DeliveryAdminService.CreateOption(&option); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, option)
}

// UpdateDeliveryOption 更新配送方式
func (h *Handler) UpdateDeliveryOption(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var option models.DeliveryOption
	if err := c.ShouldBindJSON(&option); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	option.ID = id
	if err := h.DeliveryAdminService.UpdateOption(&option); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, option)
}

// DeleteDeliveryOption 删除配送方式
func (h *Handler) DeleteDeliveryOption(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.DeliveryAdminService.DeleteOption(id); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, nil)
}
