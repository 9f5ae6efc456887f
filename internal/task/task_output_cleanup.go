package task

import (
	"context"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"go.uber.org/zap"
)

func init() {
	Register(func(a *app.App) (Task, error) {
		return &OutputCleanupTask{app: a}, nil
	})
}

// OutputCleanupTask 过期生成文件清理任务
// 工具产出的文件只保留配置的时长, 到期后删除存储对象与记录
type OutputCleanupTask struct {
	app *app.App
}

func (t *OutputCleanupTask) Name() string {
	return "output_cleanup"
}

func (t *OutputCleanupTask) LoopInterval() time.Duration {
	return time.Hour
}

func (t *OutputCleanupTask) IsStartupRun() bool {
	return true
}

func (t *OutputCleanupTask) Run(ctx context.Context) error {
	removed, err := t.app.OutputService.CleanupExpired(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		t.app.Logger().Info("expired output files removed", zap.Int("removed", removed))
	}
	return nil
}
