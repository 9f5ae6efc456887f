package websocket_router

import (
	"context"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/logger"

	"go.uber.org/zap"
)

// ToolInvoke 在连接上执行一次工具调用
// 帧格式: ToolInvoke|{"tool":"base64","action":"encode","params":{...}}
// 调用路由到与 HTTP 接口相同的 Service 层, 登录连接照常记录历史
func (h *WSHandler) ToolInvoke(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.WsToolInvokeRequest{}
	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()), msg.Type)
		return
	}

	uid := clientUID(c)

	// 升级后的请求上下文已取消, 工具执行使用独立上下文
	result, err := h.App.ToolsService.Execute(context.Background(), uid, params.Tool, params.Action, params.Params)
	if err != nil {
		h.respondError(c, msg.Type, "WSHandler.ToolInvoke", err)
		return
	}

	h.logInfo(c, "WSHandler.ToolInvoke",
		zap.Int64(logger.FieldUID, uid),
		zap.String(logger.FieldTool, params.Tool),
		zap.String(logger.FieldAction, params.Action))
	c.ToResponse(code.Success.WithData(result), msg.Type)
}
