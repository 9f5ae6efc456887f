package task

import (
	"context"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"go.uber.org/zap"
)

func init() {
	Register(func(a *app.App) (Task, error) {
		return &HistoryRetentionTask{app: a}, nil
	})
}

// HistoryRetentionTask 历史记录滚动清理任务
// 每用户每工具的历史上限在写入时已经约束, 这里兜底清除
// 上限调小后遗留的超额记录
type HistoryRetentionTask struct {
	app *app.App
}

func (t *HistoryRetentionTask) Name() string {
	return "history_retention"
}

func (t *HistoryRetentionTask) LoopInterval() time.Duration {
	return 6 * time.Hour
}

func (t *HistoryRetentionTask) IsStartupRun() bool {
	return false
}

func (t *HistoryRetentionTask) Run(ctx context.Context) error {
	removed, err := t.app.HistoryService.RetentionSweep(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		t.app.Logger().Info("history retention sweep completed", zap.Int64("removed", removed))
	}
	return nil
}
