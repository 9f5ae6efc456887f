// Package domain 定义领域模型和接口
package domain

import (
	"encoding/json"
	"time"
)

// HistoryEntry 工具调用历史领域模型
type HistoryEntry struct {
	ID        int64
	UID       int64
	ToolID    string
	Summary   string
	Payload   string
	CreatedAt time.Time
}

// PayloadValid 判断载荷是否为合法 JSON
// 损坏的行会在读取时被跳过，由保留任务清理
func (h *HistoryEntry) PayloadValid() bool {
	if h.Payload == "" {
		return true
	}
	return json.Valid([]byte(h.Payload))
}
