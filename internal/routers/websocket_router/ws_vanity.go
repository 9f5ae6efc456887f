package websocket_router

import (
	"context"
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/logger"

	"go.uber.org/zap"
)

// VanitySub 订阅靓号搜索任务的进度
// 帧格式: VanitySub|<jobID>, 载荷就是任务标识本身
// 先回发当前状态快照, 随后以 VanityProgress 帧持续推送, 连接关闭自动退订
func (h *WSHandler) VanitySub(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	jobID := strings.TrimSpace(string(msg.Data))
	if jobID == "" {
		c.ToResponse(code.ErrorInvalidParams.WithDetails("jobId is required"), msg.Type)
		return
	}

	uid := clientUID(c)

	// 归属校验, 查不到或不属于当前用户直接报错
	job, err := h.App.JobService.Status(context.Background(), uid, jobID)
	if err != nil {
		h.respondError(c, msg.Type, "WSHandler.VanitySub", err)
		return
	}

	c.ToResponse(code.Success.WithData(job), msg.Type)

	ch, unsub := h.App.JobService.Subscribe(jobID)
	h.logInfo(c, "WSHandler.VanitySub",
		zap.Int64(logger.FieldUID, uid),
		zap.String(logger.FieldJobID, jobID))

	go func() {
		defer unsub()
		for {
			select {
			case progress, ok := <-ch:
				if !ok {
					return
				}
				c.SendAction(dto.VanityProgress, progress)
			case <-c.Done():
				return
			}
		}
	}()
}
