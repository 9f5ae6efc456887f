// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/model"
	"github.com/haierkeys/dev-toolbox-service/pkg/fileurl"
	"github.com/haierkeys/dev-toolbox-service/pkg/util"
	"github.com/haierkeys/dev-toolbox-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	Replicas        []string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问对象，持有数据库连接和写队列
type Dao struct {
	db         *gorm.DB
	ctx        context.Context
	config     *DatabaseConfig
	logger     *zap.Logger
	writeQueue *writequeue.Manager

	migrated sync.Map // 已迁移的表，key 为模型名
}

// Option Dao 配置选项
type Option func(*Dao)

// WithConfig 设置数据库配置
func WithConfig(c *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = c
	}
}

// WithLogger 设置日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// WithWriteQueueManager 设置写队列管理器
func WithWriteQueueManager(m *writequeue.Manager) Option {
	return func(d *Dao) {
		d.writeQueue = m
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{
		db:     db,
		ctx:    ctx,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB 获取原始数据库连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// Session 获取带上下文的数据库会话
func (d *Dao) Session(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

// AutoMigrateOnce 保证每个模型只执行一次自动迁移
// 仅在配置开启 AutoMigrate 时生效
func (d *Dao) AutoMigrateOnce(key string) {
	if d.config != nil && !d.config.AutoMigrate {
		return
	}
	if _, loaded := d.migrated.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	if err := model.AutoMigrate(d.db, key); err != nil {
		d.logger.Error("auto migrate failed",
			zap.String("model", key),
			zap.Error(err))
	}
}

// ExecuteWrite 通过写队列串行化同一用户的写操作
// 未配置写队列时直接执行
func (d *Dao) ExecuteWrite(ctx context.Context, uid int64, fn func() error) error {
	if d.writeQueue != nil {
		return d.writeQueue.Execute(ctx, uid, fn)
	}
	return fn()
}

// NewDBEngineWithConfig 初始化 GORM 连接
func NewDBEngineWithConfig(c *DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {

	dialector := buildDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`User` 的表名应该是 `t_users`
			SingularTable: true,          // 使用单数表名，启用该选项，此时，`User` 的表名应该是 `t_user`
		},
	})
	if err != nil {
		return nil, err
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	} else {
		db.Config.Logger = logger.Default.LogMode(logger.Silent)
	}

	// 只读副本，仅 mysql/postgres 有效
	if len(c.Replicas) > 0 && (c.Type == "mysql" || c.Type == "postgres") {
		var replicas []gorm.Dialector
		for _, host := range c.Replicas {
			rc := *c
			rc.Host = host
			replicas = append(replicas, buildDialector(&rc))
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, err
		}
		if lg != nil {
			lg.Info("database replicas registered", zap.Int("count", len(replicas)))
		}
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	if lifetime, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	// SetConnMaxIdleTime 设置了连接空闲的最大时间。
	if idleTime, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && idleTime > 0 {
		sqlDB.SetConnMaxIdleTime(idleTime)
	} else {
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	return db, nil
}

func buildDialector(c *DatabaseConfig) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "postgres" {
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	} else if c.Type == "sqlite" {
		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
