package response

import (
	"time"
)

// Response 是错误响应的统一结构。成功响应由各接口自行定义，
// 登录失败等场景下 401 的响应形状始终一致。
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// Error 构造一个失败的响应
func Error(message string) *Response {
	return &Response{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}
