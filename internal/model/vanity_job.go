package model

import "github.com/haierkeys/dev-toolbox-service/pkg/timex"

const TableNameVanityJob = "vanity_job"

// VanityJob 靓号地址搜索任务表
type VanityJob struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	JobID         string     `gorm:"column:job_id;not null;uniqueIndex:idx_job_id" json:"jobId" form:"jobId"`
	UID           int64      `gorm:"column:uid;not null;index:idx_uid" json:"uid" form:"uid"`
	Pattern       string     `gorm:"column:pattern;not null" json:"pattern" form:"pattern"`
	Placement     string     `gorm:"column:placement;not null;default:prefix" json:"placement" form:"placement"`
	CaseSensitive int64      `gorm:"column:case_sensitive;not null;default:0" json:"caseSensitive" form:"caseSensitive"`
	MaxAttempts   int64      `gorm:"column:max_attempts;not null;default:0" json:"maxAttempts" form:"maxAttempts"`
	MaxDurationMs int64      `gorm:"column:max_duration_ms;not null;default:0" json:"maxDurationMs" form:"maxDurationMs"`
	Workers       int64      `gorm:"column:workers;not null;default:0" json:"workers" form:"workers"`
	Status        string     `gorm:"column:status;not null;index:idx_status" json:"status" form:"status"`
	Attempts      int64      `gorm:"column:attempts;not null;default:0" json:"attempts" form:"attempts"`
	ElapsedMs     int64      `gorm:"column:elapsed_ms;not null;default:0" json:"elapsedMs" form:"elapsedMs"`
	PublicKey     string     `gorm:"column:public_key" json:"publicKey" form:"publicKey"`
	PrivateKey    string     `gorm:"column:private_key" json:"privateKey" form:"privateKey"`
	Error         string     `gorm:"column:error" json:"error" form:"error"`
	CreatedAt     timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt     timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName VanityJob's table name
func (*VanityJob) TableName() string {
	return TableNameVanityJob
}
