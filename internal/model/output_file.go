package model

import "github.com/haierkeys/dev-toolbox-service/pkg/timex"

const TableNameOutputFile = "output_file"

// OutputFile 生成文件表
// 记录所有通过存储层写出的工具产物，下载接口和清理任务都读取此表
type OutputFile struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID         int64      `gorm:"column:uid;not null;index:idx_uid" json:"uid" form:"uid"`
	ToolID      string     `gorm:"column:tool_id;not null" json:"toolId" form:"toolId"`
	FileName    string     `gorm:"column:file_name;not null" json:"fileName" form:"fileName"`
	StorageType string     `gorm:"column:storage_type;not null" json:"storageType" form:"storageType"`
	FileKey     string     `gorm:"column:file_key;not null" json:"fileKey" form:"fileKey"`
	Size        int64      `gorm:"column:size;not null;default:0" json:"size" form:"size"`
	ContentType string     `gorm:"column:content_type" json:"contentType" form:"contentType"`
	ExpiresAt   timex.Time `gorm:"column:expires_at;type:datetime;default:NULL;index:idx_expires_at" json:"expiresAt" form:"expiresAt"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName OutputFile's table name
func (*OutputFile) TableName() string {
	return TableNameOutputFile
}
