package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/i18n"
	"shorturl-go/response"
)

// GlobalErrorMiddleware 全局错误中间件：业务层只返回 AppError，
// 在这里统一翻译成 HTTP 状态码和本地化消息。
func GlobalErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 如果有错误发生
		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				var appErr *apperrors.AppError
				if errors.As(err.Err, &appErr) {
					message := i18n.Localize(c.Request.Context(), appErr.Message)
					c.AbortWithStatusJSON(appErr.Code, response.Error(message))
					return
				}
			}

			// 默认处理未定义的错误
			message := i18n.Localize(c.Request.Context(), "error.system")
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(message))
			return
		}
	}
}
