package middleware

import (
	"github.com/haierkeys/dev-toolbox-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfoWithConfig 注入应用名称与版本信息
func AppInfoWithConfig(appName, appVersion string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", appName)
		c.Set("app_version", appVersion)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
