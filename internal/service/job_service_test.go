package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/dao"
	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/internal/model"
	"github.com/haierkeys/dev-toolbox-service/pkg/workerpool"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// notifyStub 收集完成通知, 不发邮件
type notifyStub struct {
	NotifyService
	mu       sync.Mutex
	finished []*domain.VanityJob
}

func (n *notifyStub) Enabled() bool { return false }

func (n *notifyStub) VanityJobFinished(job *domain.VanityJob) {
	n.mu.Lock()
	n.finished = append(n.finished, job)
	n.mu.Unlock()
}

func (n *notifyStub) finishedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.finished)
}

func newJobTestService(t *testing.T, tools ToolsServiceConfig) (JobService, *notifyStub) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, "VanityJob"))

	d := dao.New(db, context.Background(), dao.WithConfig(&dao.DatabaseConfig{
		Type:        "sqlite",
		AutoMigrate: false,
	}))

	pool := workerpool.New(&workerpool.Config{MaxWorkers: 8, QueueSize: 32}, zap.NewNop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		pool.Shutdown(ctx)
	})

	notify := &notifyStub{}
	svc := NewJobService(
		dao.NewVanityJobRepository(d),
		&historyStub{},
		notify,
		pool,
		zap.NewNop(),
		&ServiceConfig{
			App:   AppServiceConfig{DefaultPageSize: 10, MaxPageSize: 50},
			Tools: tools,
		},
	)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		svc.Shutdown(ctx)
	})
	return svc, notify
}

func TestValidateVanityPattern(t *testing.T) {
	assert.NoError(t, validateVanityPattern("abc"))
	assert.NoError(t, validateVanityPattern("Z"))
	assert.NoError(t, validateVanityPattern(strings.Repeat("z", 16)))

	// 空串, 超长, 以及 Base58 字符表之外的字符
	assert.Error(t, validateVanityPattern(""))
	assert.Error(t, validateVanityPattern(strings.Repeat("z", 17)))
	for _, p := range []string{"0abc", "O", "I", "l", "a-b", "a b"} {
		assert.Error(t, validateVanityPattern(p), "pattern %q", p)
	}
}

func TestVanityMatcherPlacements(t *testing.T) {
	prefix := newVanityMatcher("So", domain.VanityPlacementPrefix, true)
	assert.True(t, prefix("SoABC"))
	assert.False(t, prefix("ABCSo"))

	suffix := newVanityMatcher("na", domain.VanityPlacementSuffix, true)
	assert.True(t, suffix("ABCna"))
	assert.False(t, suffix("naABC"))

	anywhere := newVanityMatcher("la", domain.VanityPlacementAnywhere, true)
	assert.True(t, anywhere("ABlaCD"))
	assert.False(t, anywhere("ABCD"))

	// 大小写不敏感匹配
	insensitive := newVanityMatcher("SOL", domain.VanityPlacementPrefix, false)
	assert.True(t, insensitive("solANA"))
	assert.True(t, insensitive("SoLxyz"))
	assert.False(t, insensitive("xSOL"))
}

func TestVanityJobExhaustsAttemptBudget(t *testing.T) {
	svc, notify := newJobTestService(t, ToolsServiceConfig{
		VanityMaxWorkers:  2,
		VanityMaxAttempts: 300,
		VanityMaxDuration: 30 * time.Second,
	})
	ctx := context.Background()

	// 五位前缀在 300 次预算内不可能命中
	job, err := svc.SubmitVanity(ctx, 1, &dto.VanityJobCreateRequest{
		Pattern:       "zzzzz",
		CaseSensitive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.VanityJobStatusRunning), job.Status)

	require.Eventually(t, func() bool {
		current, serr := svc.Status(ctx, 1, job.JobID)
		return serr == nil && current.Status == string(domain.VanityJobStatusNotFound)
	}, 10*time.Second, 20*time.Millisecond)

	final, err := svc.Status(ctx, 1, job.JobID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, final.Attempts, int64(300))
	assert.Contains(t, final.Error, "attempt budget")
	assert.Empty(t, final.PublicKey)

	assert.Eventually(t, func() bool { return notify.finishedCount() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestVanityJobFindsShortPattern(t *testing.T) {
	svc, _ := newJobTestService(t, ToolsServiceConfig{
		VanityMaxWorkers:  2,
		VanityMaxAttempts: 200000,
		VanityMaxDuration: 30 * time.Second,
	})
	ctx := context.Background()

	// 任意位置的单字符忽略大小写, 几次尝试内必然命中
	job, err := svc.SubmitVanity(ctx, 1, &dto.VanityJobCreateRequest{
		Pattern:   "a",
		Placement: "anywhere",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, serr := svc.Status(ctx, 1, job.JobID)
		return serr == nil && current.Status == string(domain.VanityJobStatusDone)
	}, 10*time.Second, 20*time.Millisecond)

	final, err := svc.Status(ctx, 1, job.JobID)
	require.NoError(t, err)
	require.NotEmpty(t, final.PublicKey)
	require.NotEmpty(t, final.PrivateKey)
	assert.Contains(t, strings.ToLower(final.PublicKey), "a")
}

func TestVanityJobCancel(t *testing.T) {
	svc, _ := newJobTestService(t, ToolsServiceConfig{
		VanityMaxWorkers:  2,
		VanityMaxAttempts: 100000000,
		VanityMaxDuration: 60 * time.Second,
	})
	ctx := context.Background()

	job, err := svc.SubmitVanity(ctx, 1, &dto.VanityJobCreateRequest{
		Pattern:       "zzzzzzzz",
		CaseSensitive: true,
	})
	require.NoError(t, err)

	canceled, err := svc.Cancel(ctx, 1, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.VanityJobStatusCanceled), canceled.Status)

	require.Eventually(t, func() bool {
		current, serr := svc.Status(ctx, 1, job.JobID)
		return serr == nil && current.Status == string(domain.VanityJobStatusCanceled)
	}, 10*time.Second, 20*time.Millisecond)

	// 终止后再取消要报错
	_, err = svc.Cancel(ctx, 1, job.JobID)
	assert.Error(t, err)
}

func TestVanityJobRejectsBadParams(t *testing.T) {
	svc, _ := newJobTestService(t, ToolsServiceConfig{
		VanityMaxWorkers:  2,
		VanityMaxAttempts: 100,
		VanityMaxDuration: time.Second,
	})
	ctx := context.Background()

	_, err := svc.SubmitVanity(ctx, 1, &dto.VanityJobCreateRequest{Pattern: "0invalid"})
	assert.Error(t, err)

	_, err = svc.SubmitVanity(ctx, 1, &dto.VanityJobCreateRequest{Pattern: "ab", Placement: "middle"})
	assert.Error(t, err)

	_, err = svc.SubmitVanity(ctx, 1, &dto.VanityJobCreateRequest{Pattern: "ab", MaxDuration: "soon"})
	assert.Error(t, err)
}

func TestVanityJobScopedToOwner(t *testing.T) {
	svc, _ := newJobTestService(t, ToolsServiceConfig{
		VanityMaxWorkers:  1,
		VanityMaxAttempts: 50,
		VanityMaxDuration: 10 * time.Second,
	})
	ctx := context.Background()

	job, err := svc.SubmitVanity(ctx, 1, &dto.VanityJobCreateRequest{Pattern: "zzzzz", CaseSensitive: true})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, serr := svc.Status(ctx, 1, job.JobID)
		return serr == nil && current.Status != string(domain.VanityJobStatusRunning)
	}, 10*time.Second, 20*time.Millisecond)

	// 其他用户查不到这个任务
	_, err = svc.Status(ctx, 2, job.JobID)
	assert.Error(t, err)

	_, err = svc.Status(ctx, 1, "no-such-job")
	assert.Error(t, err)
}

func TestVanitySubscribeUnknownJobIsClosed(t *testing.T) {
	svc, _ := newJobTestService(t, ToolsServiceConfig{
		VanityMaxWorkers:  1,
		VanityMaxAttempts: 10,
		VanityMaxDuration: time.Second,
	})

	ch, unsub := svc.Subscribe("no-such-job")
	defer unsub()

	_, ok := <-ch
	assert.False(t, ok)
}
