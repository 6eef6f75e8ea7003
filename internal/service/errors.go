package service

import (
	"errors"
	"fmt"
)

// 错误类别（通过 errors.Is 判断）
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrDomain       = errors.New("domain rule violated")
)

// 具体业务错误
var (
	ErrWeakPassword    = errors.New("password does not meet the policy")
	ErrCaptchaRequired = errors.New("captcha is required")
	ErrCaptchaInvalid  = errors.New("captcha is invalid")
)

// Error 业务错误，Kind 决定 HTTP 状态码
type Error struct {
	Kind    error
	Message string
	Details []string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap 返回错误类别
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// NotFound 资源不存在
func NotFound(resource string, key interface{}) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s with key '%v' was not found", resource, key)}
}

// NotFoundMessage 自定义消息的资源不存在错误
func NotFoundMessage(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// BadRequest 请求参数错误（可附带字段校验信息）
func BadRequest(message string, details ...string) *Error {
	return &Error{Kind: ErrBadRequest, Message: message, Details: details}
}

// Unauthorized 未认证
func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// Forbidden 无权限
func Forbidden(message string) *Error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Conflict 资源冲突
func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Domain 业务规则错误
func Domain(message string) *Error {
	return &Error{Kind: ErrDomain, Message: message}
}

// Details 提取错误附带的校验信息
func Details(err error) []string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr != nil {
		return svcErr.Details
	}
	return nil
}

func validationFailed(details []string) error {
	if len(details) == 0 {
		return nil
	}
	return BadRequest("One or more validation errors occurred", details...)
}
