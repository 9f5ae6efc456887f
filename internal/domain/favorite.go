package domain

import "time"

// Favorite 工具收藏领域模型
type Favorite struct {
	ID        int64
	UID       int64
	ToolID    string
	CreatedAt time.Time
}
