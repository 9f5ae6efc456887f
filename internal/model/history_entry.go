package model

import "github.com/haierkeys/dev-toolbox-service/pkg/timex"

const TableNameHistoryEntry = "history_entry"

// HistoryEntry 工具调用历史表
// 每个 (uid, tool_id) 组合保留最近 N 条，超出部分在追加时删除
type HistoryEntry struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;index:idx_uid_tool,priority:1" json:"uid" form:"uid"`
	ToolID    string     `gorm:"column:tool_id;not null;index:idx_uid_tool,priority:2" json:"toolId" form:"toolId"`
	Summary   string     `gorm:"column:summary;not null" json:"summary" form:"summary"`
	Payload   string     `gorm:"column:payload;type:text" json:"payload" form:"payload"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName HistoryEntry's table name
func (*HistoryEntry) TableName() string {
	return TableNameHistoryEntry
}
