// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/config"
	"github.com/haierkeys/dev-toolbox-service/pkg/util"
	"github.com/haierkeys/dev-toolbox-service/pkg/workerpool"
	"github.com/haierkeys/dev-toolbox-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string               `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig         `yaml:"server"`
	Log      LogConfig            `yaml:"log"`
	Database DatabaseConfig       `yaml:"database"`
	App      AppSettings          `yaml:"app"`
	User     UserConfig           `yaml:"user"`
	Security SecurityConfig       `yaml:"security"`
	Storage  config.StorageConfig `yaml:"storage"`
	Tools    ToolsConfig          `yaml:"tools"`
	Notify   NotifyConfig         `yaml:"notify"`
	Tracer   TracerConfig         `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":8000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址
	PrivateHttpListen string `yaml:"private-http-listen" default:":8001"`
	// PrivateAuthToken 私有监听共享密钥, 留空时不鉴权
	PrivateAuthToken string `yaml:"private-auth-token"`
	// Ngrok 公网隧道配置
	Ngrok NgrokConfig `yaml:"ngrok"`
}

// NgrokConfig ngrok 隧道配置
type NgrokConfig struct {
	// IsEnabled 是否启用 ngrok 隧道
	IsEnabled bool `yaml:"is-enable" default:"false"`
	// AuthToken ngrok 授权令牌，留空时读取 NGROK_AUTHTOKEN 环境变量
	AuthToken string `yaml:"auth-token"`
	// Domain 绑定的自定义域名
	Domain string `yaml:"domain"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"dev-toolbox-Auth-Token"`
	TokenExpiry  string `yaml:"token-expiry" default:"365d"` // Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// Replicas 只读副本主机列表，仅 mysql/postgres 有效
	Replicas []string `yaml:"replicas"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
	// BackupEnabled 是否启用定时备份，仅支持 sqlite
	BackupEnabled bool `yaml:"backup-enabled" default:"false"`
	// BackupPath 备份文件保存路径
	BackupPath string `yaml:"backup-path" default:"storage/backups"`
	// BackupKeepDays 备份保留天数，超期备份由定时任务清除
	BackupKeepDays int `yaml:"backup-keep-days" default:"7"`
}

// UserConfig 用户配置
type UserConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
	// AdminUID 管理员 UID，0 表示不限制管理员访问
	AdminUID int `yaml:"admin-uid" default:"0"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// TempPath 上传临时路径
	TempPath string `yaml:"temp-path" default:"storage/temp"`
	// UploadSavePath 上传保存路径
	UploadSavePath string `yaml:"upload-save-path" default:"storage/uploads"`
	// OutputSavePath 生成文件保存路径
	OutputSavePath string `yaml:"output-save-path" default:"storage/outputs"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"100"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1000"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// ToolsConfig 工具模块配置
type ToolsConfig struct {
	// HistoryMaxEntries 每个用户每个工具保留的历史条数
	HistoryMaxEntries int `yaml:"history-max-entries" default:"10"`
	// PdfMaxUploadSize PDF 上传大小上限
	PdfMaxUploadSize string `yaml:"pdf-max-upload-size" default:"50MB"`
	// ImageMaxUploadSize 图片上传大小上限
	ImageMaxUploadSize string `yaml:"image-max-upload-size" default:"20MB"`
	// SolanaRpcEndpoint Solana RPC 节点地址
	SolanaRpcEndpoint string `yaml:"solana-rpc-endpoint" default:"https://api.mainnet-beta.solana.com"`
	// SolanaRpcTimeout Solana RPC 请求超时时间
	SolanaRpcTimeout string `yaml:"solana-rpc-timeout" default:"30s"`
	// VanityMaxWorkers 靓号地址搜索并发数，0 表示使用 CPU 核数
	VanityMaxWorkers int `yaml:"vanity-max-workers" default:"0"`
	// VanityMaxAttempts 靓号地址搜索尝试次数上限
	VanityMaxAttempts int64 `yaml:"vanity-max-attempts" default:"5000000"`
	// VanityMaxDuration 靓号地址搜索时长上限
	VanityMaxDuration string `yaml:"vanity-max-duration" default:"60s"`
	// OutputRetention 生成文件保留时间
	OutputRetention string `yaml:"output-retention" default:"24h"`
	// VanityJobRetention 终态搜索任务保留时间，过期后由定时任务清除
	VanityJobRetention string `yaml:"vanity-job-retention" default:"168h"`
}

// NotifyConfig 邮件通知配置
type NotifyConfig struct {
	// IsEnabled 是否启用邮件通知
	IsEnabled bool `yaml:"is-enable" default:"false"`
	// SmtpHost SMTP 服务器地址
	SmtpHost string `yaml:"smtp-host"`
	// SmtpPort SMTP 服务器端口
	SmtpPort int `yaml:"smtp-port" default:"465"`
	// SmtpUser SMTP 用户名
	SmtpUser string `yaml:"smtp-user"`
	// SmtpPassword SMTP 密码
	SmtpPassword string `yaml:"smtp-password"`
	// From 发件人地址
	From string `yaml:"from"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// JaegerAgent jaeger agent 地址，留空时禁用链路上报
	JaegerAgent string `yaml:"jaeger-agent"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	if c.App.WriteQueueIdleTime != "" {
		if idleTime, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
			cfg.IdleTimeout = idleTime
		}
	}

	return cfg
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil {
		return expiry
	}
	return 365 * 24 * time.Hour // 理论上不会走到这里，因为有默认值
}

// GetPdfMaxUploadSize 获取 PDF 上传大小上限（字节）
func (c *AppConfig) GetPdfMaxUploadSize() int64 {
	return util.ParseSize(c.Tools.PdfMaxUploadSize, 50<<20)
}

// GetImageMaxUploadSize 获取图片上传大小上限（字节）
func (c *AppConfig) GetImageMaxUploadSize() int64 {
	return util.ParseSize(c.Tools.ImageMaxUploadSize, 20<<20)
}

// GetSolanaRpcTimeout 获取 Solana RPC 请求超时时间
func (c *AppConfig) GetSolanaRpcTimeout() time.Duration {
	if timeout, err := util.ParseDuration(c.Tools.SolanaRpcTimeout); err == nil {
		return timeout
	}
	return 30 * time.Second
}

// GetVanityMaxWorkers 获取靓号搜索并发数
func (c *AppConfig) GetVanityMaxWorkers() int {
	if c.Tools.VanityMaxWorkers > 0 {
		return c.Tools.VanityMaxWorkers
	}
	return runtime.NumCPU()
}

// GetVanityMaxDuration 获取靓号搜索时长上限
func (c *AppConfig) GetVanityMaxDuration() time.Duration {
	if d, err := util.ParseDuration(c.Tools.VanityMaxDuration); err == nil {
		return d
	}
	return time.Minute
}

// GetOutputRetention 获取生成文件保留时间
func (c *AppConfig) GetOutputRetention() time.Duration {
	if d, err := util.ParseDuration(c.Tools.OutputRetention); err == nil {
		return d
	}
	return 24 * time.Hour
}

// GetVanityJobRetention 获取终态搜索任务保留时间
func (c *AppConfig) GetVanityJobRetention() time.Duration {
	if d, err := util.ParseDuration(c.Tools.VanityJobRetention); err == nil {
		return d
	}
	return 7 * 24 * time.Hour
}
