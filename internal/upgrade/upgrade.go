// Package upgrade 负责数据库结构与历史数据的版本化升级
package upgrade

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/model"
	"github.com/haierkeys/dev-toolbox-service/pkg/fileurl"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// referenceVersionFile 上一次运行版本的记录文件
const referenceVersionFile = "config/lastVersion"

// defaultReferenceVersion 版本记录引入前的最后一个发布版本
// 没有记录文件时以它为基准, 保证老库能补齐全部迁移
const defaultReferenceVersion = "v0.9.0"

// SchemaVersion 数据库版本记录表
type SchemaVersion struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"not null;uniqueIndex;type:varchar(64)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
}

// TableName 指定表名
func (SchemaVersion) TableName() string {
	return "schema_version"
}

// Migration 定义升级接口
type Migration interface {
	Version() string
	Description() string
	Up(db *gorm.DB, ctx context.Context) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db             *gorm.DB
	logger         *zap.Logger
	runningVersion string
	migrations     []Migration
}

// NewMigrationManager 创建升级管理器
// runningVersion 为当前二进制的版本号
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, runningVersion string) *MigrationManager {
	return &MigrationManager{
		db:             db,
		logger:         logger,
		runningVersion: runningVersion,
		migrations: []Migration{
			// 在这里注册所有的升级脚本
			&ToolIDRenameMigrate{},
			&SettingKeyRenameMigrate{},
		},
	}
}

// Run 执行升级
func (m *MigrationManager) Run(ctx context.Context) error {
	m.logger.Info("Migration started")

	// 先保证所有表结构是最新的
	if err := model.AutoMigrate(m.db, ""); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}

	// 确保 schema_version 表存在
	if err := m.db.AutoMigrate(&SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// 获取已应用的数据库版本
	appliedVersions, err := m.getAppliedVersions()
	if err != nil {
		return fmt.Errorf("failed to get applied versions: %w", err)
	}

	lastVersion := m.getReferenceVersion()
	// semver 库要求 "v" 前缀
	if !strings.HasPrefix(lastVersion, "v") {
		lastVersion = "v" + lastVersion
	}

	if !semver.IsValid(lastVersion) {
		m.logger.Warn("reference version (from config/lastVersion) is not a valid semver, using default",
			zap.String("lastVersion", lastVersion),
			zap.String("default", defaultReferenceVersion))
		lastVersion = defaultReferenceVersion
	}

	m.logger.Info("LastVersion", zap.String("lastVersion", lastVersion))

	// 当前版本与上次运行版本一致时直接跳过
	// 避免每次重启都做不必要的数据库查询
	runningVersion := m.runningVersion
	if !strings.HasPrefix(runningVersion, "v") {
		runningVersion = "v" + runningVersion
	}
	if semver.IsValid(runningVersion) && semver.Compare(runningVersion, lastVersion) <= 0 {
		m.logger.Info("skipping upgrade",
			zap.String("runningVersion", runningVersion),
			zap.String("lastVersion", lastVersion))
		return nil
	}

	// 执行所有未执行的升级
	executed := 0
	for _, migration := range m.migrations {
		scriptVersion := migration.Version()

		currentScriptVersion := scriptVersion
		if !strings.HasPrefix(currentScriptVersion, "v") {
			currentScriptVersion = "v" + currentScriptVersion
		}

		// 脚本版本不高于基准版本时跳过
		if semver.IsValid(lastVersion) && semver.IsValid(currentScriptVersion) {
			if semver.Compare(currentScriptVersion, lastVersion) <= 0 {
				m.logger.Info("skip migration <= lastVersion",
					zap.String("scriptVersion", scriptVersion),
					zap.String("lastVersion", lastVersion))
				continue
			}
		}

		// 检查是否已应用
		if appliedVersions[scriptVersion] {
			continue
		}

		m.logger.Info("applying migration",
			zap.String("scriptVersion", migration.Version()),
			zap.String("desc", migration.Description()))

		// 在事务中执行升级
		if err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx, ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			// 记录版本
			record := &SchemaVersion{
				Version:     migration.Version(),
				Description: migration.Description(),
				AppliedAt:   time.Now(),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record version: %w", err)
			}

			return nil
		}); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version(), err)
		}

		m.logger.Info("migration applied successfully", zap.String("scriptVersion", migration.Version()))
		executed++
	}

	if executed == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", executed))
	}

	// 无论是否执行了升级, 都把当前版本写入记录文件作为下次运行的基准
	if err := m.saveReferenceVersion(m.runningVersion); err != nil {
		m.logger.Error("save lastVersion failed", zap.Error(err))
		// 记录错误但不阻断启动
	} else {
		m.logger.Info("save lastVersion success", zap.String("ver", m.runningVersion))
	}

	return nil
}

// getAppliedVersions 获取已应用的数据库版本
func (m *MigrationManager) getAppliedVersions() (map[string]bool, error) {
	var versions []SchemaVersion
	err := m.db.Find(&versions).Error
	if err != nil {
		return nil, err
	}

	applied := make(map[string]bool)
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}

// getReferenceVersion 获取参考版本号
// 从 config/lastVersion 读取, 文件不存在或为空时返回默认基准版本
func (m *MigrationManager) getReferenceVersion() string {
	content, err := os.ReadFile(referenceVersionFile)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("read config/lastVersion failed", zap.Error(err))
		} else {
			m.logger.Info("config/lastVersion not found, using default", zap.String("default", defaultReferenceVersion))
		}
		return defaultReferenceVersion
	}

	ver := strings.TrimSpace(string(content))

	if ver == "" {
		m.logger.Info("config/lastVersion empty, using default", zap.String("default", defaultReferenceVersion))
		return defaultReferenceVersion
	}
	return ver
}

// saveReferenceVersion 保存当前版本号到 config/lastVersion
func (m *MigrationManager) saveReferenceVersion(version string) error {
	return os.WriteFile(referenceVersionFile, []byte(version), 0644)
}

// Execute 执行升级(便捷方法)
// sqlite 库在迁移前会复制一份快照, 迁移失败时可以手工回滚
func Execute(db *gorm.DB, lg *zap.Logger, version string, dbPath string, dbType string) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	if lg == nil {
		return fmt.Errorf("logger not initialized")
	}

	if dbType == "sqlite" && dbPath != "" && fileurl.IsExist(dbPath) {
		backupPath := dbPath + ".pre-upgrade"
		if err := fileurl.CopyFile(dbPath, backupPath); err != nil {
			return fmt.Errorf("failed to snapshot database before upgrade: %w", err)
		}
		lg.Info("database snapshot created", zap.String("path", backupPath))
	}

	ctx := context.Background()

	manager := NewMigrationManager(db, lg, version)
	return manager.Run(ctx)
}
