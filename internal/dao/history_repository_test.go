package dao

import (
	"context"
	"fmt"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	for _, key := range []string{"User", "HistoryEntry", "Favorite", "UserSetting", "VanityJob", "OutputFile"} {
		require.NoError(t, model.AutoMigrate(db, key))
	}

	return New(db, context.Background(), WithConfig(&DatabaseConfig{
		Type:        "sqlite",
		AutoMigrate: false,
	}))
}

func TestHistoryAppendEnforcesCap(t *testing.T) {
	d := newTestDao(t)
	repo := NewHistoryRepository(d)
	ctx := context.Background()
	uid := int64(1)
	cap := 10

	// 写入超过上限的记录
	for i := 0; i < cap+7; i++ {
		_, err := repo.Append(ctx, &domain.HistoryEntry{
			UID:     uid,
			ToolID:  "base64",
			Summary: fmt.Sprintf("entry-%d", i),
			Payload: fmt.Sprintf(`{"input":"value-%d"}`, i),
		}, cap)
		require.NoError(t, err)
	}

	entries, err := repo.ListByTool(ctx, uid, "base64", 0)
	require.NoError(t, err)
	assert.Len(t, entries, cap)

	// 保留的必须是最新的 cap 条, 新的在前
	assert.Equal(t, "entry-16", entries[0].Summary)
	assert.Equal(t, "entry-7", entries[len(entries)-1].Summary)
}

func TestHistoryCapIsPerTool(t *testing.T) {
	d := newTestDao(t)
	repo := NewHistoryRepository(d)
	ctx := context.Background()
	uid := int64(1)
	cap := 5

	for i := 0; i < cap+3; i++ {
		_, err := repo.Append(ctx, &domain.HistoryEntry{
			UID: uid, ToolID: "base64", Summary: fmt.Sprintf("b-%d", i),
		}, cap)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := repo.Append(ctx, &domain.HistoryEntry{
			UID: uid, ToolID: "jwt-debugger", Summary: fmt.Sprintf("j-%d", i),
		}, cap)
		require.NoError(t, err)
	}

	b64, err := repo.ListByTool(ctx, uid, "base64", 0)
	require.NoError(t, err)
	assert.Len(t, b64, cap)

	// 其他工具的历史不受 base64 裁剪影响
	jwt, err := repo.ListByTool(ctx, uid, "jwt-debugger", 0)
	require.NoError(t, err)
	assert.Len(t, jwt, 3)
}

func TestHistoryListSkipsCorruptPayload(t *testing.T) {
	d := newTestDao(t)
	repo := NewHistoryRepository(d)
	ctx := context.Background()
	uid := int64(2)

	_, err := repo.Append(ctx, &domain.HistoryEntry{
		UID: uid, ToolID: "regex-tester", Summary: "good", Payload: `{"pattern":"a+"}`,
	}, 10)
	require.NoError(t, err)

	// 直接往库里塞一条坏载荷, 模拟磁盘损坏或非本服务写入
	err = d.Session(ctx).Create(&model.HistoryEntry{
		UID: uid, ToolID: "regex-tester", Summary: "bad", Payload: `{"pattern":`,
	}).Error
	require.NoError(t, err)

	entries, err := repo.ListByTool(ctx, uid, "regex-tester", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].Summary)
}

func TestHistoryPurgeCorrupt(t *testing.T) {
	d := newTestDao(t)
	repo := NewHistoryRepository(d)
	ctx := context.Background()

	_, err := repo.Append(ctx, &domain.HistoryEntry{
		UID: 1, ToolID: "base64", Summary: "keep", Payload: `{"ok":true}`,
	}, 10)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err = d.Session(ctx).Create(&model.HistoryEntry{
			UID: 1, ToolID: "base64", Summary: "corrupt", Payload: "{broken",
		}).Error
		require.NoError(t, err)
	}

	purged, err := repo.PurgeCorrupt(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)

	all, err := repo.ListAll(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHistoryDeleteScopedToUser(t *testing.T) {
	d := newTestDao(t)
	repo := NewHistoryRepository(d)
	ctx := context.Background()

	entry, err := repo.Append(ctx, &domain.HistoryEntry{
		UID: 1, ToolID: "base64", Summary: "mine",
	}, 10)
	require.NoError(t, err)

	// 其他用户删除不了
	err = repo.Delete(ctx, entry.ID, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, entry.ID, 1)
	assert.NoError(t, err)
}

func TestSettingSetOverwrites(t *testing.T) {
	d := newTestDao(t)
	repo := NewSettingRepository(d)
	ctx := context.Background()

	first, err := repo.Set(ctx, &domain.UserSetting{UID: 1, Key: domain.SettingKeyLocale, Value: "en"})
	require.NoError(t, err)
	assert.Equal(t, "en", first.Value)

	second, err := repo.Set(ctx, &domain.UserSetting{UID: 1, Key: domain.SettingKeyLocale, Value: "zh-CN"})
	require.NoError(t, err)
	assert.Equal(t, "zh-CN", second.Value)
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.ListByUID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFavoriteDuplicateRejected(t *testing.T) {
	d := newTestDao(t)
	repo := NewFavoriteRepository(d)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Favorite{UID: 1, ToolID: "uuid-generator"})
	require.NoError(t, err)

	// 唯一索引拦截重复收藏
	_, err = repo.Create(ctx, &domain.Favorite{UID: 1, ToolID: "uuid-generator"})
	assert.Error(t, err)

	favorites, err := repo.ListByUID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestVanityJobMarkInterrupted(t *testing.T) {
	d := newTestDao(t)
	repo := NewVanityJobRepository(d)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.VanityJob{
		JobID: "job-running", UID: 1, Pattern: "AB",
		Placement: domain.VanityPlacementPrefix,
		Status:    domain.VanityJobStatusRunning,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.VanityJob{
		JobID: "job-done", UID: 1, Pattern: "CD",
		Placement: domain.VanityPlacementPrefix,
		Status:    domain.VanityJobStatusDone,
	})
	require.NoError(t, err)

	n, err := repo.MarkInterrupted(ctx, "server restarted")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	job, err := repo.GetByJobID(ctx, "job-running", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.VanityJobStatusFailed, job.Status)
	assert.Equal(t, "server restarted", job.Error)

	// 终态任务不受影响
	done, err := repo.GetByJobID(ctx, "job-done", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.VanityJobStatusDone, done.Status)
}
