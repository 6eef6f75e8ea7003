package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/ecommerce-api/internal/config"
	"github.com/ecommerce-api/internal/events"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceFixture struct {
	db       *gorm.DB
	cfg      *config.Config
	auth     *AuthService
	products *ProductService
	category *CategoryService
	carts    *CartService
	orders   *OrderService
	payments *PaymentService
	reviews  *ReviewService
	wishlist *WishlistService
	address  *AddressService
}

func openServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateWith(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newServiceFixture(t *testing.T, name string) *serviceFixture {
	t.Helper()
	db := openServiceTestDB(t, name)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:                "test-secret-key-with-enough-length",
			Issuer:                   "ECommerce API",
			Audience:                 "ECommerce Clients",
			AccessTokenExpiryMinutes: 60,
			RefreshTokenExpiryDays:   7,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true},
		},
		Order: config.OrderConfig{PaymentExpireMinutes: 30, LowStockThreshold: 5},
	}

	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	audit := NewAuditService(repository.NewAuditLogRepository(db), nil)
	coupons := NewCouponService(repository.NewCouponRepository(db), repository.NewCouponUsageRepository(db))
	orders := NewOrderService(orderRepo, productRepo, cartRepo, inventoryRepo,
		repository.NewAddressRepository(db), repository.NewShipmentRepository(db),
		coupons, audit, nil, events.NopPublisher{}, cfg.Order.PaymentExpireMinutes)

	return &serviceFixture{
		db:       db,
		cfg:      cfg,
		auth:     NewAuthService(cfg, customerRepo),
		products: NewProductService(productRepo, categoryRepo, inventoryRepo, audit),
		category: NewCategoryService(categoryRepo, audit),
		carts:    NewCartService(cartRepo, productRepo),
		orders:   orders,
		payments: NewPaymentService(paymentRepo, orderRepo, inventoryRepo, customerRepo, audit, nil, events.NopPublisher{}),
		reviews:  NewReviewService(repository.NewReviewRepository(db), productRepo, audit),
		wishlist: NewWishlistService(repository.NewWishlistRepository(db), productRepo),
		address:  NewAddressService(repository.NewAddressRepository(db)),
	}
}

func (f *serviceFixture) createCustomer(t *testing.T, email string) *models.Customer {
	t.Helper()
	hash, err := HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	customer := &models.Customer{Email: email, PasswordHash: hash, FirstName: "Test", LastName: "User", Role: "Customer", IsActive: true}
	if err := f.db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}

func (f *serviceFixture) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, IsActive: true}
	if err := f.db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func (f *serviceFixture) createProduct(t *testing.T, categoryID, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          name,
		Price:         models.NewMoneyFromFloat(price),
		StockQuantity: stock,
		CategoryID:    categoryID,
		IsActive:      true,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *serviceFixture) stockOf(t *testing.T, productID string) int {
	t.Helper()
	var product models.Product
	if err := f.db.First(&product, "id = ?", productID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return product.StockQuantity
}
