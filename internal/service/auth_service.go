package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/ecommerce-api/internal/cache"
	"github.com/ecommerce-api/internal/config"
	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailRegistered    = "Email already registered"
	msgInvalidToken       = "Invalid token"
	msgInvalidRefresh     = "Invalid refresh token"
)

// AuthService 认证服务
type AuthService struct {
	cfg          *config.Config
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, customerRepo repository.CustomerRepository) *AuthService {
	return &AuthService{
		cfg:          cfg,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo 返回给前端的用户信息
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

// AuthResult 认证结果
type AuthResult struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserInfo  `json:"user"`
}

// JWTClaims JWT 声明
type JWTClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// Register 注册顾客账号
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, BadRequest(err.Error(), err.Error())
	}

	existing, err := s.customerRepo.GetByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, BadRequest(msgEmailRegistered)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         constants.RoleCustomer,
		IsActive:     true,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	logger.Infow("customer_registered", "customer_id", customer.ID)
	return s.issueTokens(customer)
}

// Login 顾客登录
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	customer, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer == nil || !customer.IsActive {
		return nil, Unauthorized(msgInvalidCredentials)
	}
	if err := VerifyPassword(customer.PasswordHash, input.Password); err != nil {
		return nil, Unauthorized(msgInvalidCredentials)
	}

	now := s.now()
	customer.LastLoginAt = &now
	return s.issueTokens(customer)
}

// Refresh 使用刷新令牌轮换访问令牌
// 访问令牌仅校验签名与算法，允许已过期
func (s *AuthService) Refresh(token, refreshToken string) (*AuthResult, error) {
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil || strings.TrimSpace(claims.Subject) == "" {
		return nil, Unauthorized(msgInvalidToken)
	}
	if s.cfg.JWT.Issuer != "" && claims.Issuer != s.cfg.JWT.Issuer {
		return nil, Unauthorized(msgInvalidToken)
	}

	customer, err := s.customerRepo.GetByID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if customer == nil || !customer.IsActive {
		return nil, Unauthorized(msgInvalidRefresh)
	}
	if customer.RefreshToken == "" || customer.RefreshToken != strings.TrimSpace(refreshToken) {
		return nil, Unauthorized(msgInvalidRefresh)
	}
	if customer.RefreshTokenExpiry == nil || !customer.RefreshTokenExpiry.After(s.now()) {
		return nil, Unauthorized(msgInvalidRefresh)
	}
	return s.issueTokens(customer)
}

// Me 获取当前顾客信息
func (s *AuthService) Me(customerID string) (*UserInfo, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, NotFound("Customer", customerID)
	}
	info := toUserInfo(customer)
	return &info, nil
}

// ParseAccessToken 解析并完整校验访问令牌（签名、算法、有效期、签发方、受众）
func (s *AuthService) ParseAccessToken(token string) (*JWTClaims, error) {
	options := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.cfg.JWT.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.cfg.JWT.Issuer))
	}
	if s.cfg.JWT.Audience != "" {
		options = append(options, jwt.WithAudience(s.cfg.JWT.Audience))
	}
	return s.parse(token, options...)
}

func (s *AuthService) parse(tokenString string, options ...jwt.ParserOption) (*JWTClaims, error) {
	options = append(options, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(strings.TrimSpace(tokenString), &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// GenerateJWT 生成访问令牌
func (s *AuthService) GenerateJWT(customer *models.Customer) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(time.Duration(positiveOr(s.cfg.JWT.AccessTokenExpiryMinutes, 60)) * time.Minute)

	claims := JWTClaims{
		Email:     customer.Email,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Role:      customer.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customer.ID,
			ID:        uuid.NewString(),
			Issuer:    s.cfg.JWT.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.JWT.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// issueTokens 签发访问令牌并轮换刷新令牌
func (s *AuthService) issueTokens(customer *models.Customer) (*AuthResult, error) {
	token, expiresAt, err := s.GenerateJWT(customer)
	if err != nil {
		return nil, err
	}
	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	refreshExpiry := s.now().Add(time.Duration(positiveOr(s.cfg.JWT.RefreshTokenExpiryDays, 7)) * 24 * time.Hour)
	customer.RefreshToken = refreshToken
	customer.RefreshTokenExpiry = &refreshExpiry
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	_ = cache.SetCustomerAuthState(context.Background(), cache.BuildCustomerAuthState(customer))

	return &AuthResult{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         toUserInfo(customer),
	}, nil
}

func newRefreshToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	raw, err := id.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func toUserInfo(customer *models.Customer) UserInfo {
	return UserInfo{
		ID:            customer.ID,
		Email:         customer.Email,
		FirstName:     customer.FirstName,
		LastName:      customer.LastName,
		Role:          customer.Role,
		LoyaltyPoints: customer.LoyaltyPoints,
	}
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
