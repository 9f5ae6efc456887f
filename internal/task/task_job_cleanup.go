package task

import (
	"context"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"go.uber.org/zap"
)

func init() {
	Register(func(a *app.App) (Task, error) {
		return &VanityJobCleanupTask{
			app:       a,
			retention: a.Config().GetVanityJobRetention(),
		}, nil
	})
}

// VanityJobCleanupTask 终态靓号搜索任务清理
// 完成/失败/取消的任务记录保留一段时间供查询, 超期后删除
type VanityJobCleanupTask struct {
	app       *app.App
	retention time.Duration
}

func (t *VanityJobCleanupTask) Name() string {
	return "vanity_job_cleanup"
}

func (t *VanityJobCleanupTask) LoopInterval() time.Duration {
	return 24 * time.Hour
}

func (t *VanityJobCleanupTask) IsStartupRun() bool {
	return true
}

func (t *VanityJobCleanupTask) Run(ctx context.Context) error {
	before := time.Now().Add(-t.retention)
	removed, err := t.app.JobService.CleanupTerminal(ctx, before)
	if err != nil {
		return err
	}

	if removed > 0 {
		t.app.Logger().Info("terminal vanity jobs removed",
			zap.Int64("removed", removed),
			zap.Time("before", before))
	}
	return nil
}
