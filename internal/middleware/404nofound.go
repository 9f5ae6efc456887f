package middleware

import (
	"github.com/haierkeys/dev-toolbox-service/global"
	"github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoFound 404 handler
// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		if lg := global.Log(); lg != nil {
			lg.Debug("route not found",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path))
		}
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
