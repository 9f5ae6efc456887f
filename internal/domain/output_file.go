package domain

import "time"

// OutputFile 生成文件领域模型
type OutputFile struct {
	ID          int64
	UID         int64
	ToolID      string
	FileName    string
	StorageType string
	FileKey     string
	Size        int64
	ContentType string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// IsExpired 判断文件是否已过期
func (f *OutputFile) IsExpired(now time.Time) bool {
	return !f.ExpiresAt.IsZero() && f.ExpiresAt.Before(now)
}
