package dto

import (
	"shorturl-go/pkg/utils"
)

// ShortenRequest 创建短链的请求参数（longurl 为自定义校验器）
type ShortenRequest struct {
	URL string `json:"url" binding:"required,longurl,max=200"`
}

// Validate 自定义验证逻辑
func (r *ShortenRequest) Validate() error {
	return utils.ValidateLongURL(r.URL)
}

// CreateShortURLResponse 创建短链的响应
type CreateShortURLResponse struct {
	ID       uint   `json:"id"`
	URLCode  string `json:"url_code"`
	ShortURL string `json:"short_url"`
}

// ResolveResponse 查询短码的响应
type ResolveResponse struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	ShortURL string `json:"short_url"`
}
