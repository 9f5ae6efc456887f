package model

import "github.com/haierkeys/dev-toolbox-service/pkg/timex"

const TableNameUserSetting = "user_setting"

// UserSetting 用户设置表
type UserSetting struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;uniqueIndex:idx_uid_key,priority:1" json:"uid" form:"uid"`
	Key       string     `gorm:"column:key;not null;uniqueIndex:idx_uid_key,priority:2" json:"key" form:"key"`
	Value     string     `gorm:"column:value;type:text" json:"value" form:"value"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName UserSetting's table name
func (*UserSetting) TableName() string {
	return TableNameUserSetting
}
