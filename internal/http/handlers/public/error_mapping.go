package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/http/response"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/service"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrLinesUnavailable, code: response.CodeBadRequest, msg: "some cart lines are unavailable"},
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "promo code invalid"},
	{target: service.ErrCustomerInfoInvalid, code: response.CodeBadRequest, msg: "customer contact info invalid"},
	{target: service.ErrUnitPriceInvalid, code: response.CodeBadRequest, msg: "line item price invalid"},
	{target: service.ErrDeliveryNotFound, code: response.CodeBadRequest, msg: "delivery option not found"},
	{target: service.ErrCheckoutInFlight, code: response.CodeConflict, msg: "checkout already in flight"},
	{target: service.ErrInvalidOwner, code: response.CodeBadRequest, msg: "cart token missing or invalid"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be at least 1"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrSessionNotFound, code: response.CodeNotFound, msg: "checkout session not found"},
	{target: service.ErrPaymentFailed, code: response.CodeUpstreamFailed, msg: "payment provider request failed"},
}

func respondServiceError(c *gin.Context, err error) {
	for _, rule := range checkoutErrorRules {
		if errors.Is(err, rule.target) {
			response.Error(c, rule.code, rule.msg)
			return
		}
	}
	logger.Errorw("public_handler_internal_error", "path", c.FullPath(), "error", err)
	response.Error(c, response.CodeInternal, "internal error")
}
