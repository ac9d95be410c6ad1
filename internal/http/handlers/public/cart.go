package public

import (
	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/models"
)

// AddCartLineRequest 加购请求
type AddCartLineRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Variant   string `json:"variant"`
}

// UpdateCartLineRequest 改数量请求
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 读取购物车，读取失败按空购物车返回
func (h *Handler) GetCart(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"lines": h.CartService.List(ownerID)})
}

// AddCartLine 加入商品行，同商品同规格自动合并
func (h *Handler) AddCartLine(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// 展示提示价：加购时商品还在架上就带上当前价，仅供渲染，结算不信任
	var priceHint models.Money
	if product, err := h.ProductService.GetProductByID(req.ProductID); err == nil {
		priceHint = product.Price
	}

	line, err := h.CartService.AddLine(ownerID, req.ProductID, req.Quantity, req.Variant, priceHint)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, line)
}

// UpdateCartLine 修改行数量，数量降到 0 及以下等同删除
func (h *Handler) UpdateCartLine(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.CartService.SetQuantity(ownerID, c.Param("lineId"), req.Quantity); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"lines": h.CartService.List(ownerID)})
}

// RemoveCartLine 删除行，不存在时同样返回成功
func (h *Handler) RemoveCartLine(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveLine(ownerID, c.Param("lineId")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"lines": h.CartService.List(ownerID)})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(ownerID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"lines": []models.CartLine{}})
}
