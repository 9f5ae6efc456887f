package upgrade

import (
	"context"
	"os"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))

	return db
}

func TestToolIDRenameMigrateUp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seed := []model.HistoryEntry{
		{UID: 1, ToolID: "jwt", Summary: "legacy"},
		{UID: 1, ToolID: "uuid", Summary: "legacy"},
		{UID: 2, ToolID: "jwt-debugger", Summary: "current"},
		{UID: 2, ToolID: "base64", Summary: "untouched"},
	}
	require.NoError(t, db.Create(&seed).Error)

	// uid 3 同时收藏了新旧标识, 迁移后只应剩一条
	favorites := []model.Favorite{
		{UID: 3, ToolID: "jwt"},
		{UID: 3, ToolID: "jwt-debugger"},
		{UID: 4, ToolID: "uuid"},
	}
	require.NoError(t, db.Create(&favorites).Error)

	migrate := &ToolIDRenameMigrate{}
	require.NoError(t, migrate.Up(db, ctx))

	var count int64
	require.NoError(t, db.Model(&model.HistoryEntry{}).Where("tool_id = ?", "jwt").Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.HistoryEntry{}).Where("tool_id = ?", "jwt-debugger").Count(&count).Error)
	assert.EqualValues(t, 2, count)
	require.NoError(t, db.Model(&model.HistoryEntry{}).Where("tool_id = ?", "base64").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.Model(&model.Favorite{}).Where("uid = ?", 3).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	var fav model.Favorite
	require.NoError(t, db.Where("uid = ?", 4).First(&fav).Error)
	assert.Equal(t, "uuid-generator", fav.ToolID)
}

func TestSettingKeyRenameMigrateUp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	settings := []model.UserSetting{
		{UID: 1, Key: "rpc-endpoint", Value: "https://legacy.example.com"},
		{UID: 2, Key: "rpc-endpoint", Value: "https://old.example.com"},
		{UID: 2, Key: "solana-rpc-endpoint", Value: "https://new.example.com"},
		{UID: 3, Key: "max-history", Value: "25"},
		{UID: 3, Key: "locale", Value: "en"},
	}
	require.NoError(t, db.Create(&settings).Error)

	migrate := &SettingKeyRenameMigrate{}
	require.NoError(t, migrate.Up(db, ctx))

	var s model.UserSetting
	require.NoError(t, db.Where("uid = ? AND key = ?", 1, "solana-rpc-endpoint").First(&s).Error)
	assert.Equal(t, "https://legacy.example.com", s.Value)

	// 新旧键并存时保留新值
	require.NoError(t, db.Where("uid = ? AND key = ?", 2, "solana-rpc-endpoint").First(&s).Error)
	assert.Equal(t, "https://new.example.com", s.Value)
	var count int64
	require.NoError(t, db.Model(&model.UserSetting{}).Where("uid = ?", 2).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.Where("uid = ? AND key = ?", 3, "history-cap").First(&s).Error)
	assert.Equal(t, "25", s.Value)
	require.NoError(t, db.Where("uid = ? AND key = ?", 3, "locale").First(&s).Error)
	assert.Equal(t, "en", s.Value)
}

func TestMigrationManagerRun(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("config", 0755))

	db := newTestDB(t)
	lg := zap.NewNop()

	entry := model.HistoryEntry{UID: 1, ToolID: "cron", Summary: "legacy"}
	require.NoError(t, db.Create(&entry).Error)

	manager := NewMigrationManager(db, lg, "1.0.0")
	require.NoError(t, manager.Run(context.Background()))

	var got model.HistoryEntry
	require.NoError(t, db.First(&got, entry.ID).Error)
	assert.Equal(t, "cron-parser", got.ToolID)

	// 迁移版本已落表
	var versions []SchemaVersion
	require.NoError(t, db.Find(&versions).Error)
	assert.Len(t, versions, 2)

	// 基准版本写入文件后, 再次运行直接跳过
	content, err := os.ReadFile("config/lastVersion")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", string(content))

	require.NoError(t, manager.Run(context.Background()))
	require.NoError(t, db.Find(&versions).Error)
	assert.Len(t, versions, 2)
}
