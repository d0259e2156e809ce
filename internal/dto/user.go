package dto

import (
	"shorturl-go/pkg/utils"
)

// RegisterRequest 用户注册请求参数
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=100"`
	// 密码长度与复杂度规则统一在 Validate 中检查
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required,min=8,max=32"`
}

// Validate 自定义验证逻辑（密码复杂度规则）
func (r *RegisterRequest) Validate() error {
	return utils.ValidatePassword(r.Password)
}

// RegisterResponse only echoes id and name. Email and the password
// hash never leave the service.
type RegisterResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LoginRequest 用户登录请求参数
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录成功返回的访问令牌
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
