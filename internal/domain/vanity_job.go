package domain

import "time"

// VanityJobStatus 定义靓号搜索任务状态
type VanityJobStatus string

const (
	VanityJobStatusPending  VanityJobStatus = "pending"
	VanityJobStatusRunning  VanityJobStatus = "running"
	VanityJobStatusDone     VanityJobStatus = "done"
	VanityJobStatusNotFound VanityJobStatus = "not_found"
	VanityJobStatusCanceled VanityJobStatus = "canceled"
	VanityJobStatusFailed   VanityJobStatus = "failed"
)

// VanityPlacement 定义匹配位置
type VanityPlacement string

const (
	VanityPlacementPrefix   VanityPlacement = "prefix"
	VanityPlacementSuffix   VanityPlacement = "suffix"
	VanityPlacementAnywhere VanityPlacement = "anywhere"
)

// VanityJob 靓号地址搜索任务领域模型
type VanityJob struct {
	ID            int64
	JobID         string
	UID           int64
	Pattern       string
	Placement     VanityPlacement
	CaseSensitive bool
	MaxAttempts   int64
	MaxDuration   time.Duration
	Workers       int
	Status        VanityJobStatus
	Attempts      int64
	Elapsed       time.Duration
	PublicKey     string
	PrivateKey    string
	Error         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTerminal 判断任务是否处于终止状态
func (j *VanityJob) IsTerminal() bool {
	switch j.Status {
	case VanityJobStatusDone, VanityJobStatusNotFound, VanityJobStatusCanceled, VanityJobStatusFailed:
		return true
	}
	return false
}

// IsRunning 判断任务是否在运行
func (j *VanityJob) IsRunning() bool {
	return j.Status == VanityJobStatusPending || j.Status == VanityJobStatusRunning
}

// Found 判断任务是否找到结果
func (j *VanityJob) Found() bool {
	return j.Status == VanityJobStatusDone && j.PublicKey != ""
}
