// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/dao"
	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/service"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage"
	"github.com/haierkeys/dev-toolbox-service/pkg/workerpool"
	"github.com/haierkeys/dev-toolbox-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// 生成文件存储后端，未配置时为 nil
	store storage.Storager

	// Repository 层
	UserRepo       domain.UserRepository
	HistoryRepo    domain.HistoryRepository
	FavoriteRepo   domain.FavoriteRepository
	SettingRepo    domain.SettingRepository
	OutputFileRepo domain.OutputFileRepository
	VanityJobRepo  domain.VanityJobRepository

	// Service 层
	UserService     service.UserService
	HistoryService  service.HistoryService
	FavoriteService service.FavoriteService
	SettingService  service.SettingService
	OutputService   service.OutputService
	NotifyService   service.NotifyService
	ExportService   service.ExportService

	// 工具模块 Service
	Base64Service   service.Base64Service
	JwtService      service.JwtService
	RegexService    service.RegexService
	UuidService     service.UuidService
	CronService     service.CronService
	ConvertService  service.ConvertService
	TextService     service.TextService
	GenerateService service.GenerateService
	PdfService      service.PdfService
	ImageService    service.ImageService
	SolanaService   service.SolanaService
	JobService      service.JobService
	ToolsService    service.ToolsService

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	// 进程启动时间, 供健康检查上报运行时长
	StartTime time.Time

	// UpgradeSignal carries the path of a replacement binary; the run loop
	// swaps binaries and re-execs when it receives a value
	// UpgradeSignal 携带替换二进制的路径, 运行循环收到后换入新二进制并重启进程
	UpgradeSignal chan string

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:        cfg,
		logger:        logger,
		DB:            db,
		StartTime:     time.Now(),
		UpgradeSignal: make(chan string, 1),
		shutdownCh:    make(chan struct{}),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	// 创建 DatabaseConfig 用于 DAO
	dbConfig := &dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(dbConfig),
		dao.WithLogger(logger),
		dao.WithWriteQueueManager(a.writeQueueMgr),
	)

	// 初始化 TokenManager
	tokenConfig := pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
	}
	a.TokenManager = pkgapp.NewTokenManager(tokenConfig)

	// 初始化生成文件存储后端
	// 未启用时保持 nil，OutputService 会拒绝生成类操作
	if uc := cfg.Storage.Unified(); uc != nil && uc.IsEnabled {
		store, err := storage.NewClient(uc)
		if err != nil {
			return nil, fmt.Errorf("failed to init storage backend %s: %w", cfg.Storage.Type, err)
		}
		a.store = store
	} else {
		logger.Warn("Storage backend is disabled, file generating tools will be unavailable",
			zap.String("type", string(cfg.Storage.Type)))
	}

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.HistoryRepo = dao.NewHistoryRepository(a.Dao)
	a.FavoriteRepo = dao.NewFavoriteRepository(a.Dao)
	a.SettingRepo = dao.NewSettingRepository(a.Dao)
	a.OutputFileRepo = dao.NewOutputFileRepository(a.Dao)
	a.VanityJobRepo = dao.NewVanityJobRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
		},
		App: service.AppServiceConfig{
			DefaultPageSize: cfg.App.DefaultPageSize,
			MaxPageSize:     cfg.App.MaxPageSize,
		},
		Tools: service.ToolsServiceConfig{
			HistoryMaxEntries:  cfg.Tools.HistoryMaxEntries,
			PdfMaxUploadSize:   cfg.GetPdfMaxUploadSize(),
			ImageMaxUploadSize: cfg.GetImageMaxUploadSize(),
			SolanaRpcEndpoint:  cfg.Tools.SolanaRpcEndpoint,
			SolanaRpcTimeout:   cfg.GetSolanaRpcTimeout(),
			VanityMaxWorkers:   cfg.GetVanityMaxWorkers(),
			VanityMaxAttempts:  cfg.Tools.VanityMaxAttempts,
			VanityMaxDuration:  cfg.GetVanityMaxDuration(),
			OutputRetention:    cfg.GetOutputRetention(),
		},
		Notify: service.NotifyServiceConfig{
			Enabled:      cfg.Notify.IsEnabled,
			SmtpHost:     cfg.Notify.SmtpHost,
			SmtpPort:     cfg.Notify.SmtpPort,
			SmtpUser:     cfg.Notify.SmtpUser,
			SmtpPassword: cfg.Notify.SmtpPassword,
			From:         cfg.Notify.From,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.SettingService = service.NewSettingService(a.SettingRepo)
	a.HistoryService = service.NewHistoryService(a.HistoryRepo, a.SettingRepo, a.UserRepo, logger, svcConfig)
	a.FavoriteService = service.NewFavoriteService(a.FavoriteRepo)
	a.OutputService = service.NewOutputService(a.OutputFileRepo, a.store, cfg.Storage.Type,
		cfg.Storage.AccessUrlPrefix, cfg.Storage.LocalFS.SavePath, logger, svcConfig)
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)
	a.NotifyService = service.NewNotifyService(a.UserRepo, logger, svcConfig)

	// 工具模块
	a.Base64Service = service.NewBase64Service(a.HistoryService, a.OutputService)
	a.JwtService = service.NewJwtService(a.HistoryService)
	a.RegexService = service.NewRegexService(a.HistoryService)
	a.UuidService = service.NewUuidService(a.HistoryService)
	a.CronService = service.NewCronService(a.HistoryService)
	a.ConvertService = service.NewConvertService(a.HistoryService)
	a.TextService = service.NewTextService(a.HistoryService)
	a.GenerateService = service.NewGenerateService(a.HistoryService, a.OutputService)
	a.PdfService = service.NewPdfService(a.HistoryService, a.OutputService, svcConfig)
	a.ImageService = service.NewImageService(a.HistoryService, a.OutputService, svcConfig)
	a.SolanaService = service.NewSolanaService(a.HistoryService, a.SettingService, svcConfig)
	a.JobService = service.NewJobService(a.VanityJobRepo, a.HistoryService, a.NotifyService,
		a.workerPool, logger, svcConfig)
	a.ExportService = service.NewExportService(a.HistoryService, a.FavoriteService,
		a.SettingService, a.OutputService, logger)
	a.ToolsService = service.NewToolsService(a.FavoriteService, a.Base64Service, a.JwtService,
		a.RegexService, a.UuidService, a.CronService, a.ConvertService, a.TextService,
		a.GenerateService, a.SolanaService)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Store 获取生成文件存储后端，未配置时返回 nil
func (a *App) Store() storage.Storager {
	return a.store
}

// SubmitTask 提交任务到 Worker Pool
// 返回错误如果池已满或已关闭
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// CheckVersion 获取版本检查信息
func (a *App) CheckVersion() pkgapp.CheckVersionInfo {
	a.checkVersionMu.RLock()
	defer a.checkVersionMu.RUnlock()

	cv := a.checkVersion

	// 没有更新时不返回版本名称
	if !cv.VersionIsNew {
		cv.VersionNewName = ""
		cv.VersionNewLink = ""
		return cv
	}

	// 返回给客户端的版本号不带 v 前缀
	cv.VersionNewName = strings.TrimPrefix(cv.VersionNewName, "v")
	// 补充链接信息
	if cv.VersionNewLink == "" && cv.VersionNewName != "" {
		cv.VersionNewLink = "https://github.com/haierkeys/dev-toolbox-service/releases/tag/v" + cv.VersionNewName
	}

	return cv
}

// SetCheckVersionInfo 设置版本检查信息
func (a *App) SetCheckVersionInfo(info pkgapp.CheckVersionInfo) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()
	a.checkVersion = info
}

// TriggerUpgrade hands a new binary path to the run loop for a smooth restart
// 只接受一次待处理的升级, 已有升级在途时直接忽略
// TriggerUpgrade 将新二进制路径交给运行循环执行平滑重启
func (a *App) TriggerUpgrade(newBinaryPath string) {
	select {
	case a.UpgradeSignal <- newBinaryPath:
	default:
		a.logger.Warn("upgrade already pending, ignoring trigger", zap.String("path", newBinaryPath))
	}
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// ExecuteWrite 执行写操作（通过 Write Queue 串行化）
// uid: 用户 ID，用于确定写队列
// fn: 写操作函数
func (a *App) ExecuteWrite(ctx context.Context, uid int64, fn func() error) error {
	return a.writeQueueMgr.Execute(ctx, uid, fn)
}

// WorkerPool 获取 Worker Pool（用于高级操作）
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager（用于高级操作）
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Job Service -> Worker Pool -> Write Queue Manager -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 0. 停止搜索任务（取消所有运行中的靓号搜索并落库）
	if a.JobService != nil {
		a.logger.Info("Shutting down job service...")
		if err := a.JobService.Shutdown(ctx); err != nil {
			a.logger.Warn("Job service shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("job service shutdown: %w", err))
		}
	}

	// 1. 关闭 Worker Pool（停止接受新任务，等待现有任务完成）
	if a.workerPool != nil {
		a.logger.Info("Shutting down worker pool...")
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		} else {
			a.logger.Info("Worker pool shutdown completed")
		}
	}

	// 2. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		} else {
			a.logger.Info("write queue manager shutdown completed")
		}
	}

	// 3. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 4. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
