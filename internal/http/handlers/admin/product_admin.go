package admin

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
	"github.com/watchhub/watchhub/internal/service"
)

// ListProducts 后台商品列表，含下架商品
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	products, total, err := h.ProductAdminService.ListProducts(repository.ProductListFilter{
		Brand:    c.Query("brand"),
		Keyword:  c.Query("keyword"),
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct 后台商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductAdminService.GetProduct(id)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 新建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.ProductAdminService.CreateProduct(&product); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	product.ID = id
	if err := h.ProductAdminService.UpdateProduct(&product); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductAdminService.DeleteProduct(id); err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, nil)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrDeliveryNotFound):
		response.NotFound(c, "record not found")
	case errors.Is(err, service.ErrProductInvalid),
		errors.Is(err, service.ErrCouponInvalid),
		errors.Is(err, service.ErrDeliveryInvalid):
		response.BadRequest(c, "payload invalid")
	default:
		response.Error(c, response.CodeInternal, "internal error")
	}
}
