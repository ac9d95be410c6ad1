package provider

import (
	"github.com/watchhub/watchhub/internal/cache"
	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/queue"
	"github.com/watchhub/watchhub/internal/repository"
	"github.com/watchhub/watchhub/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	CouponRepo   repository.CouponRepository
	DeliveryRepo repository.DeliveryOptionRepository
	OrderRepo    repository.OrderRepository
	SessionRepo  repository.CheckoutSessionRepository

	// Services
	AuthService          *service.AuthService
	ProductService       *service.ProductService
	CartService          *service.CartService
	PricingService       *service.PricingService
	CheckoutService      *service.CheckoutService
	ProductAdminService  *service.ProductAdminService
	CouponAdminService   *service.CouponAdminService
	DeliveryAdminService *service.DeliveryAdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.DeliveryRepo = repository.NewDeliveryOptionRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SessionRepo = repository.NewCheckoutSessionRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.AuthService = service.NewAuthService(c.AdminRepo, cfg.JWT)
	c.ProductService = service.NewProductService(c.ProductRepo, c.DeliveryRepo)
	c.CartService = service.NewCartService(c.CartRepo)
	c.PricingService = service.NewPricingService(c.CouponRepo, c.DeliveryRepo, cfg.Pricing)

	engine := service.NewReconcileEngine(service.NewRepoProductLookup(c.ProductRepo))
	gateway := service.NewStripeGateway(cfg.Stripe)
	c.CheckoutService = service.NewCheckoutService(
		c.CartService, engine, c.PricingService,
		c.OrderRepo, c.SessionRepo, c.ProductRepo,
		gateway, c.QueueClient, cfg.Checkout, cfg.Pricing,
	)

	c.ProductAdminService = service.NewProductAdminService(c.ProductRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.DeliveryAdminService = service.NewDeliveryAdminService(c.DeliveryRepo)
}
