package local_fs

import (
	"go.uber.org/zap"

	"github.com/haierkeys/dev-toolbox-service/pkg/fileurl"
)

type Config struct {
	IsEnabled      bool   `yaml:"is-enable" default:"true"`
	IsUserEnabled  bool   `yaml:"is-user-enable"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	SavePath       string `yaml:"save-path" default:"storage/uploads"`
}

type LocalFS struct {
	Config *Config
	logger *zap.Logger
}

// Option configuration option function type
// Option 配置选项函数类型
type Option func(*LocalFS)

// WithLogger sets the logger
// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(l *LocalFS) {
		l.logger = logger
	}
}

// NewClient creates a local filesystem storage instance
// NewClient 创建本地文件系统存储实例
func NewClient(cfg *Config, opts ...Option) (*LocalFS, error) {
	client := &LocalFS{
		Config: cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}
