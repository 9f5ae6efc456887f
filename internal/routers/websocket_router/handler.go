// Package websocket_router 提供 WebSocket 路由处理器
package websocket_router

import (
	"context"
	"errors"
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/middleware"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/logger"

	"go.uber.org/zap"
)

// WSHandler WebSocket 基础 Handler 结构体, 封装 App Container
// 所有 WebSocket Handler 都应该嵌入此结构体以获得依赖注入能力
type WSHandler struct {
	App *app.App
}

// NewWSHandler 创建 WebSocket 基础 Handler 实例
func NewWSHandler(a *app.App) *WSHandler {
	return &WSHandler{App: a}
}

// traceID 从升级时保存的请求上下文副本取 Trace ID
func traceID(c *pkgapp.WebsocketClient) string {
	if c == nil || c.Ctx == nil {
		return ""
	}
	return middleware.GetTraceIDFromGin(c.Ctx)
}

// clientUID 连接未认证时返回 0
func clientUID(c *pkgapp.WebsocketClient) int64 {
	if c == nil || c.User == nil {
		return 0
	}
	return c.User.UID
}

// logError 记录错误日志, 连接关闭类错误降级为 Debug
func (h *WSHandler) logError(c *pkgapp.WebsocketClient, method string, err error) {
	if isNetworkClosedError(err) {
		h.App.Logger().Debug(method,
			zap.Error(err),
			zap.String(logger.FieldTraceID, traceID(c)))
		return
	}
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, traceID(c)))
}

// logInfo 记录信息日志, 包含 Trace ID
func (h *WSHandler) logInfo(c *pkgapp.WebsocketClient, method string, fields ...zap.Field) {
	allFields := append([]zap.Field{zap.String(logger.FieldTraceID, traceID(c))}, fields...)
	h.App.Logger().Info(method, allFields...)
}

// respondError 记录错误日志并按动作回发错误帧
// Service 层返回的 *code.Code 原样透传, 其他错误折叠为内部错误
func (h *WSHandler) respondError(c *pkgapp.WebsocketClient, action string, method string, err error) {
	h.logError(c, method, err)

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		c.ToResponse(codeErr, action)
		return
	}
	c.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()), action)
}

// UserDataSelect 连接认证回调, Token 合法后再核对账号仍然存在
func (h *WSHandler) UserDataSelect(c *pkgapp.WebsocketClient, uid int64) (*pkgapp.UserSelectEntity, error) {
	user, err := h.App.UserService.GetInfo(context.Background(), uid)
	if err != nil {
		return nil, err
	}
	return &pkgapp.UserSelectEntity{
		UID:      user.UID,
		Email:    user.Email,
		Nickname: user.Username,
		Avatar:   user.Avatar,
	}, nil
}

// Ping 心跳动作, 直接回发成功帧
func (h *WSHandler) Ping(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	c.ToResponse(code.Success, msg.Type)
}

// isNetworkClosedError 检查是否为网络关闭相关的错误
func isNetworkClosedError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "broken pipe") ||
		errors.Is(err, context.Canceled)
}
