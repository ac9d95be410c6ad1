package router

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/watchhub/watchhub/internal/cache"
	"github.com/watchhub/watchhub/internal/config"
	adminhandlers "github.com/watchhub/watchhub/internal/http/handlers/admin"
	publichandlers "github.com/watchhub/watchhub/internal/http/handlers/public"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/provider"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "wh"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
		Message:       "too many checkout attempts",
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.GET("/delivery-options", publicHandler.ListDeliveryOptions)
		}

		// 购物车接口（游客令牌标识归属）
		cart := apiV1.Group("/cart")
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/lines", publicHandler.AddCartLine)
			cart.PUT("/lines/:lineId", publicHandler.UpdateCartLine)
			cart.DELETE("/lines/:lineId", publicHandler.RemoveCartLine)
			cart.DELETE("", publicHandler.ClearCart)
		}

		// 结算与支付接口
		checkout := apiV1.Group("/checkout")
		{
			checkout.GET("/summary", publicHandler.GetOrderSummary)
			checkout.POST("/promo", publicHandler.ApplyPromoCode)
			checkout.POST("/place-order",
				RateLimitMiddleware(redisClient, checkoutRule, KeyByCartToken),
				publicHandler.PlaceOrder)
		}
		apiV1.GET("/payment/status/:sessionId", publicHandler.GetPaymentStatus)
		apiV1.POST("/payment/cancel/:sessionId", publicHandler.CancelCheckout)
		apiV1.GET("/orders", publicHandler.ListOrders)
		apiV1.GET("/orders/:orderNo", publicHandler.GetOrder)

		// 后台接口
		adminAuth := apiV1.Group("/admin/auth")
		{
			adminAuth.POST("/login",
				RateLimitMiddleware(redisClient, loginRule, KeyByIP),
				adminHandler.Login)
		}
		admin := apiV1.Group("/admin")
		admin.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
		{
			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/coupons", adminHandler.ListCoupons)
			admin.POST("/coupons", adminHandler.CreateCoupon)
			admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
			admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

			admin.GET("/delivery-options", adminHandler.ListDeliveryOptions)
			admin.POST("/delivery-options", adminHandler.CreateDeliveryOption)
			admin.PUT("/delivery-options/:id", adminHandler.UpdateDeliveryOption)
			admin.DELETE("/delivery-options/:id", adminHandler.DeleteDeliveryOption)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
		}
	}

	return r
}
