// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdatePassword 更新用户密码
	UpdatePassword(ctx context.Context, password string, uid int64) error

	// GetAllUIDs 获取所有用户UID
	GetAllUIDs(ctx context.Context) ([]int64, error)
}

// HistoryRepository 工具调用历史仓储接口
type HistoryRepository interface {
	// Append 追加历史记录并裁剪到上限
	// 同一事务内删除同 (uid, toolID) 超出 cap 的最旧行
	Append(ctx context.Context, entry *HistoryEntry, cap int) (*HistoryEntry, error)

	// ListByTool 获取指定工具的历史记录，新的在前
	// 载荷非法的行被跳过
	ListByTool(ctx context.Context, uid int64, toolID string, limit int) ([]*HistoryEntry, error)

	// Delete 删除指定ID的历史记录
	Delete(ctx context.Context, id, uid int64) error

	// DeleteByTool 清空指定工具的历史记录
	DeleteByTool(ctx context.Context, uid int64, toolID string) error

	// ListAll 获取用户的全部历史记录，新的在前
	ListAll(ctx context.Context, uid int64) ([]*HistoryEntry, error)

	// EnforceCap 将指定用户全部工具的历史裁剪到上限
	EnforceCap(ctx context.Context, uid int64, cap int) error

	// PurgeCorrupt 删除载荷非法的历史行，返回删除数量
	PurgeCorrupt(ctx context.Context) (int64, error)
}

// FavoriteRepository 工具收藏仓储接口
type FavoriteRepository interface {
	// Get 获取指定收藏
	Get(ctx context.Context, uid int64, toolID string) (*Favorite, error)

	// Create 创建收藏
	Create(ctx context.Context, favorite *Favorite) (*Favorite, error)

	// Delete 删除收藏
	Delete(ctx context.Context, uid int64, toolID string) error

	// ListByUID 获取用户的全部收藏
	ListByUID(ctx context.Context, uid int64) ([]*Favorite, error)
}

// SettingRepository 用户设置仓储接口
type SettingRepository interface {
	// Get 获取指定键的设置
	Get(ctx context.Context, uid int64, key string) (*UserSetting, error)

	// Set 写入设置，键已存在时更新
	Set(ctx context.Context, setting *UserSetting) (*UserSetting, error)

	// Delete 删除指定键的设置
	Delete(ctx context.Context, uid int64, key string) error

	// ListByUID 获取用户的全部设置
	ListByUID(ctx context.Context, uid int64) ([]*UserSetting, error)
}

// VanityJobRepository 靓号搜索任务仓储接口
type VanityJobRepository interface {
	// GetByJobID 根据任务ID获取任务
	GetByJobID(ctx context.Context, jobID string, uid int64) (*VanityJob, error)

	// Create 创建任务
	Create(ctx context.Context, job *VanityJob) (*VanityJob, error)

	// UpdateStatus 更新任务状态与进度
	UpdateStatus(ctx context.Context, job *VanityJob) error

	// ListByUID 分页获取用户的任务列表，新的在前
	ListByUID(ctx context.Context, uid int64, page, pageSize int) ([]*VanityJob, int64, error)

	// MarkInterrupted 将非终止状态的任务标记为失败
	// 服务重启后调用，孤儿任务不再有工作协程
	MarkInterrupted(ctx context.Context, reason string) (int64, error)

	// DeleteTerminalBefore 删除指定时间之前的终止状态任务
	DeleteTerminalBefore(ctx context.Context, before time.Time) (int64, error)
}

// OutputFileRepository 生成文件仓储接口
type OutputFileRepository interface {
	// GetByID 根据ID获取文件记录
	GetByID(ctx context.Context, id, uid int64) (*OutputFile, error)

	// Create 创建文件记录
	Create(ctx context.Context, file *OutputFile) (*OutputFile, error)

	// Delete 删除文件记录
	Delete(ctx context.Context, id, uid int64) error

	// ListByUID 分页获取用户的文件列表，新的在前
	ListByUID(ctx context.Context, uid int64, page, pageSize int) ([]*OutputFile, int64, error)

	// ListExpired 获取已过期的文件记录
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*OutputFile, error)
}
