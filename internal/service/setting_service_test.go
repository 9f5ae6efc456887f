package service

import (
	"context"
	"strings"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/dao"
	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newSettingTestService(t *testing.T) SettingService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, "UserSetting"))

	d := dao.New(db, context.Background(), dao.WithConfig(&dao.DatabaseConfig{
		Type:        "sqlite",
		AutoMigrate: false,
	}))
	return NewSettingService(dao.NewSettingRepository(d))
}

func TestValidateSettingKnownKeys(t *testing.T) {
	// RPC 端点必须是 http(s) URL
	assert.NoError(t, validateSetting(domain.SettingKeySolanaRpcEndpoint, "https://api.mainnet-beta.solana.com"))
	assert.NoError(t, validateSetting(domain.SettingKeySolanaRpcEndpoint, "http://localhost:8899"))
	for _, v := range []string{"", "not-a-url", "ftp://host", "https://"} {
		assert.Error(t, validateSetting(domain.SettingKeySolanaRpcEndpoint, v), "value %q", v)
	}

	// 历史上限是 1..100 的整数
	assert.NoError(t, validateSetting(domain.SettingKeyHistoryCap, "1"))
	assert.NoError(t, validateSetting(domain.SettingKeyHistoryCap, "100"))
	for _, v := range []string{"0", "101", "-5", "ten", ""} {
		assert.Error(t, validateSetting(domain.SettingKeyHistoryCap, v), "value %q", v)
	}

	// locale 只认错误字典里的语言
	assert.NoError(t, validateSetting(domain.SettingKeyLocale, "en"))
	assert.NoError(t, validateSetting(domain.SettingKeyLocale, "zh-cn"))
	assert.Error(t, validateSetting(domain.SettingKeyLocale, "fr"))
}

func TestValidateSettingUnknownKeys(t *testing.T) {
	assert.NoError(t, validateSetting("editor-theme", "dark"))
	assert.NoError(t, validateSetting("a1", ""))

	// 键格式: 小写字母数字和中划线, 不能以中划线开头
	for _, key := range []string{"UPPER", "-leading", "has space", "", strings.Repeat("k", 65)} {
		assert.Error(t, validateSetting(key, "v"), "key %q", key)
	}

	// 值长度上限
	assert.NoError(t, validateSetting("big", strings.Repeat("x", settingValueMaxLen)))
	assert.Error(t, validateSetting("big", strings.Repeat("x", settingValueMaxLen+1)))
}

func TestSettingPutGetRoundTrip(t *testing.T) {
	svc := newSettingTestService(t)
	ctx := context.Background()

	saved, err := svc.Put(ctx, 1, &dto.SettingPutRequest{Key: "editor-theme", Value: "dark"})
	require.NoError(t, err)
	assert.Equal(t, "editor-theme", saved.Key)
	assert.Equal(t, "dark", saved.Value)

	got, err := svc.Get(ctx, 1, "editor-theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Value)

	// 同键重写覆盖旧值
	_, err = svc.Put(ctx, 1, &dto.SettingPutRequest{Key: "editor-theme", Value: "light"})
	require.NoError(t, err)

	got, err = svc.Get(ctx, 1, "editor-theme")
	require.NoError(t, err)
	assert.Equal(t, "light", got.Value)
}

func TestSettingGetMissingKey(t *testing.T) {
	svc := newSettingTestService(t)

	_, err := svc.Get(context.Background(), 1, "never-set")
	assert.Error(t, err)
}

func TestSettingPutRejectsInvalid(t *testing.T) {
	svc := newSettingTestService(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, 1, &dto.SettingPutRequest{Key: domain.SettingKeyHistoryCap, Value: "9000"})
	assert.Error(t, err)

	_, err = svc.Put(ctx, 1, &dto.SettingPutRequest{Key: "Bad Key", Value: "v"})
	assert.Error(t, err)
}

func TestSettingPutBatchAllOrNothing(t *testing.T) {
	svc := newSettingTestService(t)
	ctx := context.Background()

	// 任一键非法则整体拒绝, 合法键也不能落库
	_, err := svc.PutBatch(ctx, 1, &dto.SettingsPutRequest{Settings: map[string]string{
		"editor-theme":              "dark",
		domain.SettingKeyHistoryCap: "overflow",
	}})
	require.Error(t, err)

	_, err = svc.Get(ctx, 1, "editor-theme")
	assert.Error(t, err)

	all, err := svc.PutBatch(ctx, 1, &dto.SettingsPutRequest{Settings: map[string]string{
		"editor-theme":              "dark",
		domain.SettingKeyHistoryCap: "50",
	}})
	require.NoError(t, err)
	assert.Equal(t, "dark", all.Settings["editor-theme"])
	assert.Equal(t, "50", all.Settings[domain.SettingKeyHistoryCap])
}

func TestSettingDelete(t *testing.T) {
	svc := newSettingTestService(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, 1, &dto.SettingPutRequest{Key: "editor-theme", Value: "dark"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, &dto.SettingDeleteRequest{Key: "editor-theme"}))

	_, err = svc.Get(ctx, 1, "editor-theme")
	assert.Error(t, err)
}

func TestSettingValueFallback(t *testing.T) {
	svc := newSettingTestService(t)
	ctx := context.Background()

	// 未设置或匿名用户都回退到默认值
	assert.Equal(t, "default", svc.Value(ctx, 1, "missing", "default"))
	assert.Equal(t, "default", svc.Value(ctx, 0, "missing", "default"))

	_, err := svc.Put(ctx, 1, &dto.SettingPutRequest{Key: domain.SettingKeySolanaRpcEndpoint, Value: "https://rpc.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.com", svc.Value(ctx, 1, domain.SettingKeySolanaRpcEndpoint, "default"))

	// 设置按用户隔离
	assert.Equal(t, "default", svc.Value(ctx, 2, domain.SettingKeySolanaRpcEndpoint, "default"))
}
