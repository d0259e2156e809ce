package apperrors

import (
	"net/http"
)

// AppError 自定义错误类型
type AppError struct {
	Code    int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode 创建通用业务错误
func WithCode(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// BusinessError 封装业务逻辑错误（通用）
func BusinessError(code int, message string) *AppError {
	return WithCode(code, message)
}

// InvalidRequestError 封装参数校验错误
func InvalidRequestError(message string) *AppError {
	return WithCode(http.StatusBadRequest, message)
}

// InvalidRequestErrorDefault 默认参数校验错误
func InvalidRequestErrorDefault() *AppError {
	return WithCode(http.StatusBadRequest, "error.invalid_request")
}

// ConflictError 资源冲突（邮箱/记录已存在）
func ConflictError(message string) *AppError {
	return WithCode(http.StatusConflict, message)
}

// UnauthorizedError 认证失败
func UnauthorizedError(message string) *AppError {
	return WithCode(http.StatusUnauthorized, message)
}

// UnauthorizedErrorDefault 默认认证失败
func UnauthorizedErrorDefault() *AppError {
	return WithCode(http.StatusUnauthorized, "error.unauthorized")
}

// NotFoundError 资源不存在（包含无权访问，避免泄露存在性）
func NotFoundError(message string) *AppError {
	return WithCode(http.StatusNotFound, message)
}

// SystemError 封装系统内部错误
func SystemError(message string) *AppError {
	return WithCode(http.StatusInternalServerError, message)
}

// SystemErrorDefault 默认系统内部错误
func SystemErrorDefault() *AppError {
	return WithCode(http.StatusInternalServerError, "error.system")
}
