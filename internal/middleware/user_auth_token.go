package middleware

import (
	"github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// extractToken 从查询参数或请求头提取用户 Token
func extractToken(c *gin.Context) string {
	if s, exist := c.GetQuery("authorization"); exist {
		return s
	}
	if s, exist := c.GetQuery("Authorization"); exist {
		return s
	}
	if s := c.GetHeader("authorization"); len(s) != 0 {
		return s
	}
	if s := c.GetHeader("Authorization"); len(s) != 0 {
		return s
	}
	if s, exist := c.GetQuery("token"); exist {
		return s
	}
	if s, exist := c.GetQuery("Token"); exist {
		return s
	}
	if s := c.GetHeader("token"); len(s) != 0 {
		return s
	}
	if s := c.GetHeader("Token"); len(s) != 0 {
		return s
	}
	return ""
}

// UserAuthTokenWithConfig 用户 Token 认证中间件（使用注入的密钥）
// 缺少或无效 Token 直接拒绝
func UserAuthTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := extractToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := app.ParseTokenWithKey(token, secretKey)
		if err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}
		c.Set("user_token", user)

		c.Next()
	}
}

// UserAuthTokenOptionalWithConfig 可选的用户 Token 认证中间件
// 工具类接口匿名可用，带 Token 时绑定用户上下文以记录调用历史
// 携带了无效 Token 仍然拒绝，避免客户端误以为自己已登录
func UserAuthTokenOptionalWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := app.ParseTokenWithKey(token, secretKey)
		if err != nil {
			app.NewResponse(c).ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}
		c.Set("user_token", user)

		c.Next()
	}
}
