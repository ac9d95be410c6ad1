package admin

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/service"
)

// LoginRequest 后台登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 后台登录，签发 JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	token, admin, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminCredentials) {
			response.Unauthorized(c, "username or password incorrect")
			return
		}
		response.Error(c, response.CodeInternal, "internal error")
		return
	}
	response.Success(c, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "username": admin.Username},
	})
}
