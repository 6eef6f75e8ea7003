package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ecommerce-api/internal/authz"
	"github.com/ecommerce-api/internal/cache"
	"github.com/ecommerce-api/internal/config"
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/repository"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

const (
	msgAuthHeaderMissing = "Authorization header is missing"
	msgAuthHeaderInvalid = "Authorization header must be a Bearer token"
	msgTokenInvalid      = "Invalid or expired token"
	msgCustomerDisabled  = "Account is disabled"
)

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			requestIDHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if customerID, ok := c.Get(shared.ContextCustomerID); ok {
			entry = entry.With("customer_id", customerID)
		}
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

// RecoveryMiddleware panic 兜底，返回统一 500 响应
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithRequestID(getRequestID(c)).Errorw("request_panic",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		response.Abort(c, http.StatusInternalServerError, response.MsgUnexpected)
	})
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// JWTAuthMiddleware 顾客 JWT 鉴权中间件
// 校验签名算法、有效期、签发方与受众，并确认顾客仍处于启用状态
func JWTAuthMiddleware(cfg config.JWTConfig, customerRepo repository.CustomerRepository) gin.HandlerFunc {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.Audience))
	}

	return func(c *gin.Context) {
		if cfg.SecretKey == "" || customerRepo == nil {
			response.Abort(c, http.StatusUnauthorized, msgTokenInvalid)
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, msgAuthHeaderMissing)
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			response.Abort(c, http.StatusUnauthorized, msgAuthHeaderInvalid)
			return
		}

		parser := jwt.NewParser(options...)
		claims := &service.JWTClaims{}
		token, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.SecretKey), nil
		})
		if err != nil || !token.Valid || strings.TrimSpace(claims.Subject) == "" {
			response.Abort(c, http.StatusUnauthorized, msgTokenInvalid)
			return
		}

		if cached, hit, cacheErr := cache.GetCustomerAuthState(c.Request.Context(), claims.Subject); cacheErr == nil && hit && cached != nil {
			if !cached.IsActive {
				response.Abort(c, http.StatusUnauthorized, msgCustomerDisabled)
				return
			}
			setCustomerContext(c, cached.CustomerID, cached.Email, cached.Role)
			c.Next()
			return
		}

		customer, err := customerRepo.GetByID(claims.Subject)
		if err != nil || customer == nil {
			response.Abort(c, http.StatusUnauthorized, msgTokenInvalid)
			return
		}
		if !customer.IsActive {
			response.Abort(c, http.StatusUnauthorized, msgCustomerDisabled)
			return
		}
		_ = cache.SetCustomerAuthState(c.Request.Context(), cache.BuildCustomerAuthState(customer))

		setCustomerContext(c, customer.ID, customer.Email, customer.Role)
		c.Next()
	}
}

func setCustomerContext(c *gin.Context, customerID, email, role string) {
	c.Set(shared.ContextCustomerID, customerID)
	c.Set(shared.ContextCustomerEmail, email)
	c.Set(shared.ContextCustomerRole, role)
}

// RoleMiddleware 基于角色的 RBAC 鉴权中间件（需在 JWTAuthMiddleware 之后）
func RoleMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("rbac_service_unavailable")
			response.Abort(c, http.StatusForbidden, response.MsgForbidden)
			return
		}
		role := shared.GetCustomerRole(c)
		allowed, err := authzService.EnforceRole(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			logger.Errorw("rbac_enforce_failed",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Abort(c, http.StatusForbidden, response.MsgForbidden)
			return
		}
		if !allowed {
			logger.Warnw("rbac_permission_denied",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(c.Request.URL.Path),
			)
			response.Abort(c, http.StatusForbidden, response.MsgForbidden)
			return
		}
		c.Next()
	}
}
