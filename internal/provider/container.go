package provider

import (
	"github.com/ecommerce-api/internal/authz"
	"github.com/ecommerce-api/internal/cache"
	"github.com/ecommerce-api/internal/config"
	"github.com/ecommerce-api/internal/events"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/queue"
	"github.com/ecommerce-api/internal/repository"
	"github.com/ecommerce-api/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Publisher   events.Publisher

	// Repositories
	CustomerRepo    repository.CustomerRepository
	AddressRepo     repository.AddressRepository
	CategoryRepo    repository.CategoryRepository
	ProductRepo     repository.ProductRepository
	InventoryRepo   repository.InventoryRepository
	CartRepo        repository.CartRepository
	OrderRepo       repository.OrderRepository
	PaymentRepo     repository.PaymentRepository
	ShipmentRepo    repository.ShipmentRepository
	ReviewRepo      repository.ReviewRepository
	WishlistRepo    repository.WishlistRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository
	AuditLogRepo    repository.AuditLogRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	CaptchaService  *service.CaptchaService
	AuditService    *service.AuditService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	CartService     *service.CartService
	CouponService   *service.CouponService
	OrderService    *service.OrderService
	PaymentService  *service.PaymentService
	ReviewService   *service.ReviewService
	WishlistService *service.WishlistService
	AddressService  *service.AddressService
}

// NewContainer 基于全局数据库连接创建容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	return NewContainerWithDB(cfg, models.DB, queueClient, events.NewPublisher(cfg.Kafka))
}

// NewContainerWithDB 使用指定数据库、队列与事件发布器创建容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, publisher events.Publisher) *Container {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
		Publisher:   publisher,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := c.DB
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.ShipmentRepo = repository.NewShipmentRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.AuditLogRepo = repository.NewAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.CustomerRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuditService = service.NewAuditService(c.AuditLogRepo, c.QueueClient)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.AuditService)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.InventoryRepo, c.AuditService)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.CartRepo,
		c.InventoryRepo,
		c.AddressRepo,
		c.ShipmentRepo,
		c.CouponService,
		c.AuditService,
		c.QueueClient,
		c.Publisher,
		c.Config.Order.PaymentExpireMinutes,
	)
	c.PaymentService = service.NewPaymentService(
		c.PaymentRepo,
		c.OrderRepo,
		c.InventoryRepo,
		c.CustomerRepo,
		c.AuditService,
		c.QueueClient,
		c.Publisher,
	)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.AuditService)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
}
