// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"encoding/json"

	"github.com/haierkeys/dev-toolbox-service/pkg/timex"
)

// HistoryAppendRequest Manual history append request parameters
// 手动追加历史请求参数
type HistoryAppendRequest struct {
	Summary string          `json:"summary" form:"summary" binding:"required"` // Short human-readable line // 摘要
	Payload json.RawMessage `json:"payload"`                                   // Tool-specific JSON snapshot // 工具载荷
}

// HistoryListRequest History list request parameters
// 历史列表请求参数
type HistoryListRequest struct {
	Limit int `json:"limit" form:"limit"` // Max rows, 0 means cap // 最大条数
}

// ---------------- DTO / Response ----------------

// ToolDTO Tool catalog entry
// 工具目录条目
type ToolDTO struct {
	ID               string `json:"id"`               // Tool identifier // 工具标识
	Name             string `json:"name"`             // Display name // 显示名称
	Category         string `json:"category"`         // encoding generators converters files crypto web3 text // 分类
	Description      string `json:"description"`      // One-line description // 一句话描述
	AnonymousAllowed bool   `json:"anonymousAllowed"` // Usable without login // 允许匿名使用
	McpExposed       bool   `json:"mcpExposed"`       // Served in MCP mode // MCP 模式可用
	IsFavorite       bool   `json:"isFavorite"`       // Favorited by current user // 当前用户已收藏
}

// HistoryEntryDTO Invocation history entry
// 工具调用历史条目
type HistoryEntryDTO struct {
	ID        int64           `json:"id"`        // Entry ID // 记录 ID
	ToolID    string          `json:"toolId"`    // Tool identifier // 工具标识
	Summary   string          `json:"summary"`   // Short human-readable line // 摘要
	Payload   json.RawMessage `json:"payload"`   // Tool-specific JSON snapshot // 工具载荷
	CreatedAt timex.Time      `json:"createdAt"` // Append time // 记录时间
}

// FavoriteDTO Favorite entry
// 收藏条目
type FavoriteDTO struct {
	ToolID    string     `json:"toolId"`    // Tool identifier // 工具标识
	CreatedAt timex.Time `json:"createdAt"` // Favorite time // 收藏时间
}
