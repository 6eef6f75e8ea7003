package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecommerce-api/internal/authz"
	"github.com/ecommerce-api/internal/cache"
	"github.com/ecommerce-api/internal/config"
	"github.com/ecommerce-api/internal/constants"
	adminhandlers "github.com/ecommerce-api/internal/http/handlers/admin"
	publichandlers "github.com/ecommerce-api/internal/http/handlers/public"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/provider"

	"github.com/gin-gonic/gin"
)

const adminHandlerPackage = "/internal/http/handlers/admin."

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ec"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "Too many login attempts, please try again later",
	}

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", publicHandler.Health)

	jwtAuth := JWTAuthMiddleware(cfg.JWT, c.CustomerRepo)
	adminOnly := RoleMiddleware(c.AuthzService)

	api := r.Group("/api")
	{
		// 认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/register", publicHandler.Register)
			auth.POST("/refresh", publicHandler.Refresh)
			auth.GET("/captcha", publicHandler.GetImageCaptcha)
			auth.GET("/me", jwtAuth, publicHandler.Me)
		}

		// 公开目录接口
		api.GET("/products", publicHandler.ListProducts)
		api.GET("/products/paged", publicHandler.GetPagedProducts)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.GET("/categories", publicHandler.ListCategories)
		api.GET("/categories/:id", publicHandler.GetCategory)
		api.GET("/reviews/product/:productId", publicHandler.ListProductReviews)
		api.GET("/reviews/product/:productId/summary", publicHandler.GetReviewSummary)

		// 顾客接口（需鉴权）
		customer := api.Group("")
		customer.Use(jwtAuth)
		{
			customer.GET("/cart", publicHandler.GetCart)
			customer.DELETE("/cart", publicHandler.ClearCart)
			customer.POST("/cart/items", publicHandler.AddCartItem)
			customer.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			customer.DELETE("/cart/items/:id", publicHandler.RemoveCartItem)
			customer.GET("/orders", publicHandler.ListOrders)
			customer.POST("/orders", publicHandler.CreateOrder)
			customer.GET("/orders/:id", publicHandler.GetOrder)
			customer.POST("/payments", publicHandler.ProcessPayment)
			customer.GET("/payments/order/:orderId", publicHandler.GetPaymentByOrder)
			customer.POST("/reviews", publicHandler.CreateReview)
			customer.DELETE("/reviews/:id", publicHandler.DeleteReview)
			customer.GET("/wishlist", publicHandler.GetWishlist)
			customer.POST("/wishlist/items", publicHandler.AddWishlistItem)
			customer.DELETE("/wishlist/items/:productId", publicHandler.RemoveWishlistItem)
			customer.GET("/addresses", publicHandler.ListAddresses)
			customer.POST("/addresses", publicHandler.CreateAddress)
			customer.DELETE("/addresses/:id", publicHandler.DeleteAddress)
		}

		// 管理员接口（需鉴权 + RBAC）
		admin := api.Group("")
		admin.Use(jwtAuth, adminOnly)
		{
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.PUT("/products/:id/inventory", adminHandler.UpdateInventory)
			admin.GET("/inventory/low-stock", adminHandler.ListLowStock)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
			admin.GET("/adminorders", adminHandler.ListOrders)
			admin.PUT("/adminorders/:id/status", adminHandler.UpdateOrderStatus)
			admin.GET("/auditlogs", adminHandler.ListAuditLogs)
			admin.GET("/authz/policies", adminHandler.ListRolePolicies)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, response.MsgRouteNotFound)
	})

	checkAdminPolicies(c.AuthzService, buildAdminPermissionCatalog(r))

	return r
}

type adminPermissionCatalogItem struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由中提取管理端权限点
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.Contains(item.Handler, adminHandlerPackage) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Method:     method,
			Path:       item.Path,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Object == items[j].Object {
			return items[i].Method < items[j].Method
		}
		return items[i].Object < items[j].Object
	})

	return items
}

// checkAdminPolicies 启动时核对管理端路由是否都已授予 Admin 角色
func checkAdminPolicies(authzService *authz.Service, catalog []adminPermissionCatalogItem) []string {
	missing := make([]string, 0)
	if authzService == nil {
		return missing
	}
	for _, item := range catalog {
		allowed, err := authzService.EnforceRole(constants.RoleAdmin, item.Path, item.Method)
		if err != nil || !allowed {
			missing = append(missing, item.Permission)
		}
	}
	if len(missing) > 0 {
		logger.Warnw("router_admin_policy_missing", "permissions", missing)
	}
	return missing
}
