package public

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/repository"
)

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.ProductListFilter{
		Brand:    c.Query("brand"),
		Keyword:  c.Query("keyword"),
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: pageSize,
	}
	products, total, err := h.ProductService.ListProducts(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// ListDeliveryOptions 可用配送方式
func (h *Handler) ListDeliveryOptions(c *gin.Context) {
	options, err := h.ProductService.ListDeliveryOptions()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, options)
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
