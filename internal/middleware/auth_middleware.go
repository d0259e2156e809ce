package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/model"
	"shorturl-go/internal/service"
	"shorturl-go/internal/token"
)

// CurrentUserKey 存放已解析用户的 context key
const CurrentUserKey = "currentUser"

// AuthMiddleware 解析 Bearer 令牌并加载对应用户，失败一律 401。
// 令牌有效但用户已被删除时同样拒绝。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := token.Verify(tokenString)
		if err != nil {
			zap.L().Info("令牌校验失败",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			abortUnauthorized(c)
			return
		}

		user, err := service.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser 取出认证中间件放入的用户
func CurrentUser(c *gin.Context) *model.User {
	value, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	_ = c.Error(apperrors.UnauthorizedErrorDefault())
	c.Abort()
}
