package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecommerce-api/internal/authz"
	"github.com/ecommerce-api/internal/config"
	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/provider"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	Errors       []string        `json:"errors"`
	PageNumber   int             `json:"page_number"`
	PageSize     int             `json:"page_size"`
	TotalPages   int             `json:"total_pages"`
	TotalRecords int64           `json:"total_records"`
	HasNextPage  bool            `json:"has_next_page"`
}

type apiFixture struct {
	t         *testing.T
	db        *gorm.DB
	container *provider.Container
	engine    *gin.Engine
}

func newAPIFixture(t *testing.T, name string) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := openRouterTestDB(t, name)
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    testJWTConfig(),
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true},
		},
		Order: config.OrderConfig{PaymentExpireMinutes: 30, LowStockThreshold: 5},
	}
	container := provider.NewContainerWithDB(cfg, db, nil, nil)
	return &apiFixture{t: t, db: db, container: container, engine: SetupRouter(cfg, container)}
}

func (f *apiFixture) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiEnvelope) {
	f.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env apiEnvelope
	if w.Body.Len() > 0 {
		require.NoError(f.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (f *apiFixture) createCustomer(email, role string) {
	f.t.Helper()
	hash, err := service.HashPassword("Passw0rd!")
	require.NoError(f.t, err)
	require.NoError(f.t, f.db.Create(&models.Customer{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     true,
	}).Error)
}

func (f *apiFixture) login(email string) string {
	f.t.Helper()
	w, env := f.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "Passw0rd!"})
	require.Equal(f.t, http.StatusOK, w.Code, w.Body.String())
	var result struct {
		Token string `json:"token"`
	}
	require.NoError(f.t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(f.t, result.Token)
	return result.Token
}

func decodeData(t *testing.T, env apiEnvelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func TestHealthAndNoRoute(t *testing.T) {
	f := newAPIFixture(t, "router_health")

	w, env := f.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = f.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.NotNil(t, env.Errors)
}

func TestAdminRoutesHavePolicies(t *testing.T) {
	f := newAPIFixture(t, "router_catalog")

	catalog := buildAdminPermissionCatalog(f.engine)
	require.NotEmpty(t, catalog)
	assert.Empty(t, checkAdminPolicies(f.container.AuthzService, catalog))

	permissions := make([]string, 0, len(catalog))
	for _, item := range catalog {
		permissions = append(permissions, item.Permission)
	}
	assert.Contains(t, permissions, "POST:/products")
	assert.Contains(t, permissions, "PUT:/adminorders/:id/status")
	assert.NotContains(t, permissions, "GET:/products")
}

func TestAuthEndpoints(t *testing.T) {
	f := newAPIFixture(t, "router_auth")

	w, env := f.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email":      "new@example.com",
		"password":   "Passw0rd!",
		"first_name": "New",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var registered service.AuthResult
	decodeData(t, env, &registered)
	assert.Equal(t, constants.RoleCustomer, registered.User.Role)

	w, env = f.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "new@example.com", "password": "Passw0rd!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", env.Message)

	w, env = f.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "weak@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	w, _ = f.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "new@example.com", "password": "wrong-Passw0rd"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = f.do(http.MethodGet, "/api/auth/me", registered.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me service.UserInfo
	decodeData(t, env, &me)
	assert.Equal(t, "new@example.com", me.Email)

	w, _ = f.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"token": registered.Token, "refresh_token": "bogus"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = f.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"token": registered.Token, "refresh_token": registered.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed service.AuthResult
	decodeData(t, env, &refreshed)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	w, _ = f.do(http.MethodGet, "/api/auth/captcha", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShoppingFlow(t *testing.T) {
	f := newAPIFixture(t, "router_flow")
	f.createCustomer("admin@example.com", constants.RoleAdmin)
	f.createCustomer("buyer@example.com", constants.RoleCustomer)
	adminToken := f.login("admin@example.com")
	buyerToken := f.login("buyer@example.com")

	// 非管理员与未登录访问管理接口
	w, env := f.do(http.MethodPost, "/api/categories", buyerToken, gin.H{"name": "Books"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden", env.Message)
	w, _ = f.do(http.MethodPost, "/api/categories", "", gin.H{"name": "Books"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = f.do(http.MethodPost, "/api/categories", adminToken, gin.H{"name": "Books"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category service.CategoryDTO
	decodeData(t, env, &category)

	w, env = f.do(http.MethodPost, "/api/products", adminToken, gin.H{"name": "", "price": 0, "category_id": category.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Errors)

	w, env = f.do(http.MethodPost, "/api/products", adminToken, gin.H{
		"name":           "Go in Action",
		"price":          "25.50",
		"stock_quantity": 3,
		"category_id":    category.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product service.ProductDTO
	decodeData(t, env, &product)

	w, env = f.do(http.MethodGet, "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched service.ProductDTO
	decodeData(t, env, &fetched)
	assert.Equal(t, "Go in Action", fetched.Name)
	assert.Equal(t, "25.50", fetched.Price.String())
	assert.Equal(t, "Books", fetched.CategoryName)

	w, env = f.do(http.MethodGet, "/api/products/paged?pageNumber=1&pageSize=10&searchTerm=Go", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), env.TotalRecords)
	assert.Equal(t, 1, env.TotalPages)
	assert.False(t, env.HasNextPage)

	// 购物车
	w, env = f.do(http.MethodPost, "/api/cart/items", buyerToken, gin.H{"product_id": product.ID, "quantity": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Insufficient stock quantity", env.Message)
	assert.False(t, env.Success)

	w, env = f.do(http.MethodPost, "/api/cart/items", buyerToken, gin.H{"product_id": product.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Item added to cart", env.Message)
	var cart service.CartDTO
	decodeData(t, env, &cart)
	require.Len(t, cart.Items, 1)

	w, env = f.do(http.MethodPut, "/api/cart/items/"+cart.Items[0].ID, buyerToken, gin.H{"quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Cart item updated", env.Message)
	decodeData(t, env, &cart)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "51.00", cart.SubTotal.String())

	// 下单与支付
	w, env = f.do(http.MethodPost, "/api/orders", buyerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order service.OrderDTO
	decodeData(t, env, &order)
	assert.Equal(t, constants.OrderStatusPendingPayment, order.Status)
	assert.Equal(t, "51.00", order.TotalAmount.String())

	w, env = f.do(http.MethodPost, "/api/orders", buyerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", env.Message)

	w, env = f.do(http.MethodGet, "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, env, &fetched)
	assert.Equal(t, 1, fetched.StockQuantity)

	w, env = f.do(http.MethodPost, "/api/payments", buyerToken, gin.H{"order_id": order.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Payment processed successfully", env.Message)

	w, _ = f.do(http.MethodGet, "/api/payments/order/"+order.ID, buyerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 管理端订单
	w, env = f.do(http.MethodGet, "/api/adminorders?page=1&page_size=10", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), env.TotalRecords)

	w, env = f.do(http.MethodPut, "/api/adminorders/"+order.ID+"/status", adminToken, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid order status", env.Message)

	w, _ = f.do(http.MethodPut, "/api/adminorders/"+order.ID+"/status", adminToken, gin.H{"status": "shipped", "tracking_number": "TRACK-1"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = f.do(http.MethodGet, "/api/orders/"+order.ID, buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, env, &order)
	assert.Equal(t, constants.OrderStatusShipped, order.Status)

	// 软删除后商品不可见
	w, _ = f.do(http.MethodDelete, "/api/products/"+product.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = f.do(http.MethodGet, "/api/products/"+product.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = f.do(http.MethodGet, "/api/auditlogs?page=1&page_size=50", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, env.TotalRecords, int64(0))

	// 角色权限矩阵
	w, _ = f.do(http.MethodGet, "/api/authz/policies", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, env = f.do(http.MethodGet, "/api/authz/policies", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var matrix []authz.RolePolicies
	decodeData(t, env, &matrix)
	require.Len(t, matrix, 2)
	assert.Equal(t, "Admin", matrix[0].Role)
	assert.Contains(t, matrix[0].Policies, authz.Policy{Subject: "role:Admin", Object: "/authz/policies", Action: "GET"})
}

func TestReviewOwnership(t *testing.T) {
	f := newAPIFixture(t, "router_reviews")
	f.createCustomer("admin@example.com", constants.RoleAdmin)
	f.createCustomer("author@example.com", constants.RoleCustomer)
	f.createCustomer("other@example.com", constants.RoleCustomer)
	adminToken := f.login("admin@example.com")
	authorToken := f.login("author@example.com")
	otherToken := f.login("other@example.com")

	_, env := f.do(http.MethodPost, "/api/categories", adminToken, gin.H{"name": "Games"})
	var category service.CategoryDTO
	decodeData(t, env, &category)
	_, env = f.do(http.MethodPost, "/api/products", adminToken, gin.H{"name": "Chess", "price": 10, "stock_quantity": 1, "category_id": category.ID})
	var product service.ProductDTO
	decodeData(t, env, &product)

	w, env := f.do(http.MethodPost, "/api/reviews", authorToken, gin.H{"product_id": product.ID, "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Errors)

	w, env = f.do(http.MethodPost, "/api/reviews", authorToken, gin.H{"product_id": product.ID, "rating": 4, "comment": "Fun"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var review service.ReviewDTO
	decodeData(t, env, &review)

	w, env = f.do(http.MethodDelete, "/api/reviews/"+review.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You can only delete your own reviews", env.Message)

	w, env = f.do(http.MethodGet, "/api/reviews/product/"+product.ID+"/summary", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary service.ReviewSummary
	decodeData(t, env, &summary)
	assert.Equal(t, int64(1), summary.TotalReviews)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.001)

	w, _ = f.do(http.MethodDelete, "/api/reviews/"+review.ID, authorToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestWishlistAndAddresses(t *testing.T) {
	f := newAPIFixture(t, "router_wishlist")
	f.createCustomer("admin@example.com", constants.RoleAdmin)
	f.createCustomer("buyer@example.com", constants.RoleCustomer)
	adminToken := f.login("admin@example.com")
	buyerToken := f.login("buyer@example.com")

	_, env := f.do(http.MethodPost, "/api/categories", adminToken, gin.H{"name": "Music"})
	var category service.CategoryDTO
	decodeData(t, env, &category)
	_, env = f.do(http.MethodPost, "/api/products", adminToken, gin.H{"name": "Vinyl", "price": 30, "stock_quantity": 4, "category_id": category.ID})
	var product service.ProductDTO
	decodeData(t, env, &product)

	for i := 0; i < 2; i++ {
		w, _ := f.do(http.MethodPost, "/api/wishlist/items", buyerToken, gin.H{"product_id": product.ID})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w, env := f.do(http.MethodGet, "/api/wishlist", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wishlist service.WishlistDTO
	decodeData(t, env, &wishlist)
	assert.Len(t, wishlist.Items, 1)

	w, _ = f.do(http.MethodDelete, "/api/wishlist/items/"+product.ID, buyerToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = f.do(http.MethodDelete, "/api/wishlist/items/"+product.ID, buyerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(http.MethodPost, "/api/addresses", buyerToken, gin.H{"city": "Berlin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, env = f.do(http.MethodPost, "/api/addresses", buyerToken, gin.H{"line1": "Main St 1", "city": "Berlin", "country": "DE", "is_default": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var address models.Address
	decodeData(t, env, &address)

	w, _ = f.do(http.MethodDelete, "/api/addresses/"+address.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = f.do(http.MethodDelete, "/api/addresses/"+address.ID, buyerToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
