package public

import (
	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgLoginSuccess    = "Login successful"
	msgRegisterSuccess = "Registration successful"
	msgRefreshSuccess  = "Token refreshed"
	msgCaptchaDisabled = "Captcha is disabled"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email          string                       `json:"email" validate:"required,email"`
	Password       string                       `json:"password" validate:"required"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email          string                       `json:"email" validate:"required,email,max=255"`
	Password       string                       `json:"password" validate:"required"`
	FirstName      string                       `json:"first_name" validate:"max=100"`
	LastName       string                       `json:"last_name" validate:"max=100"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	Token        string `json:"token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Login 顾客登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !shared.BindJSON(c, &req) {
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()); err != nil {
		shared.RespondError(c, err)
		return
	}

	result, err := h.AuthService.Login(service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithMsg(c, msgLoginSuccess, result)
}

// Register 顾客注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !shared.BindJSON(c, &req) {
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneRegister, req.CaptchaPayload.ToServicePayload()); err != nil {
		shared.RespondError(c, err)
		return
	}

	result, err := h.AuthService.Register(service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.CreatedWithMsg(c, msgRegisterSuccess, result)
}

// Refresh 刷新访问令牌
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !shared.BindJSON(c, &req) {
		return
	}
	result, err := h.AuthService.Refresh(req.Token, req.RefreshToken)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithMsg(c, msgRefreshSuccess, result)
}

// Me 当前顾客信息
func (h *Handler) Me(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	info, err := h.AuthService.Me(customerID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, info)
}

// GetImageCaptcha 获取图片验证码
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.NotFound(c, msgCaptchaDisabled)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, challenge)
}
