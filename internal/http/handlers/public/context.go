package public

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/constants"
	"github.com/watchhub/watchhub/internal/http/response"
)

// 购物车令牌：客户端生成并持久保存，标识一个游客购物车
const cartTokenHeader = "X-Cart-Token"

var cartTokenPattern = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// getOwnerID 解析请求的购物车归属标识，非法时直接写错误响应
func getOwnerID(c *gin.Context) (string, bool) {
	token := c.GetHeader(cartTokenHeader)
	if token == "" || !cartTokenPattern.MatchString(token) {
		response.BadRequest(c, "cart token missing or invalid")
		return "", false
	}
	return constants.OwnerPrefixGuest + token, true
}
