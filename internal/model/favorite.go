package model

import "github.com/haierkeys/dev-toolbox-service/pkg/timex"

const TableNameFavorite = "favorite"

// Favorite 工具收藏表
type Favorite struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;uniqueIndex:idx_uid_tool,priority:1" json:"uid" form:"uid"`
	ToolID    string     `gorm:"column:tool_id;not null;uniqueIndex:idx_uid_tool,priority:2" json:"toolId" form:"toolId"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Favorite's table name
func (*Favorite) TableName() string {
	return TableNameFavorite
}
