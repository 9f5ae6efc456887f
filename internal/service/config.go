// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import "time"

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User   UserServiceConfig   // User related config // 用户相关配置
	App    AppServiceConfig    // App related config // 应用相关配置
	Tools  ToolsServiceConfig  // Tool related config // 工具相关配置
	Notify NotifyServiceConfig // Mail notification config // 邮件通知配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool // Whether registration is enabled // 注册是否启用
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	DefaultPageSize int // Default page size // 默认分页大小
	MaxPageSize     int // Max page size // 最大分页大小
}

// NotifyServiceConfig mail notification configuration
// NotifyServiceConfig 邮件通知配置
type NotifyServiceConfig struct {
	Enabled      bool   // Whether mail is enabled // 是否启用
	SmtpHost     string // SMTP server host // SMTP 服务器地址
	SmtpPort     int    // SMTP server port // SMTP 服务器端口
	SmtpUser     string // SMTP username // SMTP 用户名
	SmtpPassword string // SMTP password // SMTP 密码
	From         string // Sender address // 发件人地址
}

// ToolsServiceConfig tool service configuration
// ToolsServiceConfig 工具服务配置
type ToolsServiceConfig struct {
	HistoryMaxEntries  int           // History cap per (uid, tool), 1..100 // 单用户单工具历史上限
	PdfMaxUploadSize   int64         // PDF upload byte cap // PDF 上传字节上限
	ImageMaxUploadSize int64         // Image upload byte cap // 图片上传字节上限
	SolanaRpcEndpoint  string        // Default Solana RPC endpoint // 默认 Solana RPC 端点
	SolanaRpcTimeout   time.Duration // Solana RPC call timeout // RPC 调用超时
	VanityMaxWorkers   int           // Vanity search worker count // 靓号搜索协程数
	VanityMaxAttempts  int64         // Vanity search attempt budget // 靓号搜索尝试上限
	VanityMaxDuration  time.Duration // Vanity search wall clock cap // 靓号搜索时长上限
	OutputRetention    time.Duration // Generated file lifetime // 产物保留时长
}
