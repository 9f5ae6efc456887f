package dto

import "encoding/json"

// WebSocketAction WebSocket text message type
// WebSocket 文本消息类型
type WebSocketAction = string

const (
	// Ping keepalive
	// Ping 保活
	Ping WebSocketAction = "Ping"

	// ToolInvoke dispatches a registered tool action
	// ToolInvoke 调用一个已注册的工具动作
	ToolInvoke WebSocketAction = "ToolInvoke"

	// VanitySub subscribes to vanity job progress
	// VanitySub 订阅靓号搜索任务进度
	VanitySub WebSocketAction = "VanitySub"

	// VanityProgress server push with job progress frames
	// VanityProgress 服务端推送的任务进度帧
	VanityProgress WebSocketAction = "VanityProgress"
)

// WsToolInvokeRequest ToolInvoke frame payload
// WsToolInvokeRequest ToolInvoke 帧载荷
type WsToolInvokeRequest struct {
	Tool   string          `json:"tool" binding:"required"`   // Tool id // 工具 ID
	Action string          `json:"action" binding:"required"` // Action name // 动作名
	Params json.RawMessage `json:"params"`                    // Action params // 动作参数
}
