// Package routers 组装 HTTP 与 WebSocket 路由
package routers

import (
	"net/http"
	"time"

	_ "github.com/haierkeys/dev-toolbox-service/docs"
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/internal/middleware"
	"github.com/haierkeys/dev-toolbox-service/internal/routers/api_router"
	"github.com/haierkeys/dev-toolbox-service/internal/routers/websocket_router"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/limiter"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// 慢接口与易滥用接口单独限流, 其余接口不限
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/pdf",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
	limiter.BucketRule{
		Key:          "/api/image",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
	limiter.BucketRule{
		Key:          "/api/solana/vanity",
		FillInterval: time.Second,
		Capacity:     2,
		Quantum:      2,
	},
)

// NewRouter 创建主路由
// 工具类接口挂可选认证, 匿名即用; 用户态与文件类接口强制认证
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	var wss = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:    true,
			ParallelEnabled:     true,                                 // 开启并行消息处理
			Recovery:            gws.Recovery,                         // 开启异常恢复
			PermessageDeflate:   gws.PermessageDeflate{Enabled: true}, // 开启压缩
			ParallelGolimit:     8,
			ReadMaxPayloadSize:  1024 * 1024 * 64, // 设置最大读取缓冲区大小 64MB
			WriteMaxPayloadSize: 1024 * 1024 * 64, // 设置最大写入缓冲区大小 64MB
		},
		Logger:       appContainer.Logger(),
		TokenManager: appContainer.TokenManager,
	})

	// WebSocket Handlers（注入 App Container）
	wsHandler := websocket_router.NewWSHandler(appContainer)
	wss.Use(dto.Ping, wsHandler.Ping)
	wss.Use(dto.ToolInvoke, wsHandler.ToolInvoke)
	wss.Use(dto.VanitySub, wsHandler.VanitySub)
	wss.UserDataSelectUse(wsHandler.UserDataSelect)

	r := gin.New()
	r.Use(middleware.Cors())

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		toolsHandler := api_router.NewToolsHandler(appContainer)
		historyHandler := api_router.NewHistoryHandler(appContainer)
		favoriteHandler := api_router.NewFavoriteHandler(appContainer)
		settingHandler := api_router.NewSettingHandler(appContainer)
		base64Handler := api_router.NewBase64Handler(appContainer)
		jwtHandler := api_router.NewJwtHandler(appContainer)
		regexHandler := api_router.NewRegexHandler(appContainer)
		uuidHandler := api_router.NewUuidHandler(appContainer)
		cronHandler := api_router.NewCronHandler(appContainer)
		convertHandler := api_router.NewConvertHandler(appContainer)
		textHandler := api_router.NewTextHandler(appContainer)
		generateHandler := api_router.NewGenerateHandler(appContainer)
		pdfHandler := api_router.NewPdfHandler(appContainer)
		imageHandler := api_router.NewImageHandler(appContainer)
		solanaHandler := api_router.NewSolanaHandler(appContainer)
		outputHandler := api_router.NewOutputHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		adminHandler := api_router.NewAdminHandler(appContainer)

		// 无认证接口
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)
		api.GET("/ws", wss.Run())

		// 工具接口, 匿名可用, 携带合法 Token 时记录历史
		tools := api.Group("", middleware.UserAuthTokenOptionalWithConfig(cfg.Security.AuthTokenKey))
		{
			tools.GET("/tools", toolsHandler.List)
			tools.GET("/tools/:id", toolsHandler.Get)

			tools.POST("/base64/encode", base64Handler.EncodeText)
			tools.POST("/base64/decode", base64Handler.DecodeText)
			tools.POST("/base64/encode-file", base64Handler.EncodeFile)

			tools.POST("/jwt/decode", jwtHandler.Decode)

			tools.POST("/regex/test", regexHandler.Test)
			tools.POST("/regex/replace", regexHandler.Replace)

			tools.POST("/uuid/generate", uuidHandler.Generate)
			tools.POST("/uuid/validate", uuidHandler.Validate)

			tools.POST("/cron/parse", cronHandler.Parse)

			tools.POST("/number-base/convert", convertHandler.NumberBase)
			tools.POST("/timezone/convert", convertHandler.Timezone)
			tools.GET("/timezone/zones", convertHandler.Zones)
			tools.POST("/timestamp/convert", convertHandler.Timestamp)
			tools.POST("/case/convert", convertHandler.Case)

			tools.POST("/html-entities/encode", textHandler.HtmlEncode)
			tools.POST("/html-entities/decode", textHandler.HtmlDecode)
			tools.POST("/json/format", textHandler.JsonFormat)
			tools.POST("/json/validate", textHandler.JsonValidate)
			tools.POST("/diff/text", textHandler.Diff)
			tools.POST("/hash/calculate", textHandler.Hash)
			tools.POST("/hash/calculate-file", textHandler.HashFile)
			tools.POST("/minify", textHandler.Minify)

			tools.POST("/qrcode/generate", generateHandler.Qrcode)
			tools.POST("/password/generate", generateHandler.Password)
			tools.POST("/lorem/generate", generateHandler.Lorem)

			tools.POST("/solana/keypair", solanaHandler.Keypair)
			tools.POST("/solana/inspect", solanaHandler.Inspect)
			tools.POST("/solana/balance", solanaHandler.Balance)
		}

		// 用户态接口, 强制认证
		auth := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		{
			auth.GET("/user/info", userHandler.UserInfo)
			auth.POST("/user/change_password", userHandler.UserChangePassword)
			auth.POST("/user/export", userHandler.Export)
			auth.GET("/user/favorites", favoriteHandler.List)

			auth.GET("/user/settings", settingHandler.GetAll)
			auth.PUT("/user/settings", settingHandler.PutBatch)
			auth.GET("/user/settings/:key", settingHandler.Get)
			auth.PUT("/user/settings/:key", settingHandler.Put)
			auth.DELETE("/user/settings/:key", settingHandler.Delete)

			auth.GET("/tools/:id/history", historyHandler.List)
			auth.POST("/tools/:id/history", historyHandler.Append)
			auth.DELETE("/tools/:id/history", historyHandler.Clear)
			auth.DELETE("/tools/:id/history/:hid", historyHandler.Delete)
			auth.PUT("/tools/:id/favorite", favoriteHandler.Add)
			auth.DELETE("/tools/:id/favorite", favoriteHandler.Remove)

			// 文件产出类工具必须登录
			auth.POST("/base64/decode-file", base64Handler.DecodeToFile)

			auth.POST("/pdf/merge", pdfHandler.Merge)
			auth.POST("/pdf/extract", pdfHandler.Extract)
			auth.POST("/pdf/watermark", pdfHandler.Watermark)
			auth.POST("/pdf/encrypt", pdfHandler.Encrypt)
			auth.POST("/pdf/info", pdfHandler.Info)

			auth.POST("/image/compress", imageHandler.Compress)
			auth.POST("/image/metadata", imageHandler.Metadata)
			auth.POST("/image/strip", imageHandler.Strip)

			auth.POST("/solana/vanity", solanaHandler.VanitySubmit)
			auth.GET("/solana/vanity", solanaHandler.VanityList)
			auth.GET("/solana/vanity/:jobId", solanaHandler.VanityStatus)
			auth.DELETE("/solana/vanity/:jobId", solanaHandler.VanityCancel)

			auth.GET("/files", outputHandler.List)
			auth.GET("/files/:id/download", outputHandler.Download)
			auth.DELETE("/files/:id", outputHandler.Delete)

			// 管理接口, AdminUID 配置后仅管理员可用
			auth.GET("/admin/config", adminHandler.GetConfig)
			auth.POST("/admin/config", adminHandler.UpdateConfig)
			auth.GET("/admin/config/ngrok", adminHandler.GetNgrokConfig)
			auth.POST("/admin/config/ngrok", adminHandler.UpdateNgrokConfig)
			auth.GET("/admin/systeminfo", adminHandler.SystemInfo)
			auth.GET("/admin/gc", adminHandler.GC)
			auth.POST("/admin/backup", adminHandler.Backup)
			auth.GET("/admin/upgrade", adminHandler.Upgrade)
			auth.GET("/admin/restart", adminHandler.Restart)
		}
	}

	// 本地存储开启 httpfs 时直接挂静态路由, 产物可按保存路径访问
	if cfg.Storage.Type == storage.LOCAL && cfg.Storage.LocalFS.HttpfsIsEnable && cfg.Storage.LocalFS.SavePath != "" {
		r.StaticFS(cfg.Storage.LocalFS.SavePath, http.Dir(cfg.Storage.LocalFS.SavePath))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(middleware.NoFound())

	return r
}
