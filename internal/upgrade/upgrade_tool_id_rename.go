package upgrade

import (
	"context"
	"fmt"

	"github.com/haierkeys/dev-toolbox-service/internal/model"

	"gorm.io/gorm"
)

// legacyToolIDs 0.9.5 之前的短工具标识与现行标识的对应关系
// Short tool IDs used before 0.9.5 mapped to the current ones
var legacyToolIDs = map[string]string{
	"jwt":       "jwt-debugger",
	"regex":     "regex-tester",
	"uuid":      "uuid-generator",
	"cron":      "cron-parser",
	"timestamp": "timestamp-converter",
	"hash":      "hash-calculator",
	"password":  "password-generator",
	"diff":      "text-diff",
}

// ToolIDRenameMigrate 将历史记录与收藏中的旧工具标识改写为现行标识
// Rewrite legacy short tool IDs in history entries and favorites
type ToolIDRenameMigrate struct{}

// Version 返回版本号
func (m *ToolIDRenameMigrate) Version() string {
	return "0.9.5"
}

// Description 返回描述
func (m *ToolIDRenameMigrate) Description() string {
	return "Rewrite legacy short tool IDs (jwt, uuid, ...) to the current descriptive IDs"
}

// Up 执行升级
func (m *ToolIDRenameMigrate) Up(db *gorm.DB, ctx context.Context) error {
	for legacy, current := range legacyToolIDs {
		// 历史记录表 uid+tool_id 上只有普通索引, 直接改写即可
		if err := db.WithContext(ctx).Model(&model.HistoryEntry{}).
			Where("tool_id = ?", legacy).
			Update("tool_id", current).Error; err != nil {
			return fmt.Errorf("failed to rewrite history tool id %s: %w", legacy, err)
		}

		// 收藏表 uid+tool_id 是唯一索引, 新旧标识并存的行要先删掉旧的
		if err := db.WithContext(ctx).
			Where("tool_id = ? AND uid IN (?)", legacy,
				db.Model(&model.Favorite{}).Select("uid").Where("tool_id = ?", current),
			).
			Delete(&model.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to drop duplicated favorite %s: %w", legacy, err)
		}
		if err := db.WithContext(ctx).Model(&model.Favorite{}).
			Where("tool_id = ?", legacy).
			Update("tool_id", current).Error; err != nil {
			return fmt.Errorf("failed to rewrite favorite tool id %s: %w", legacy, err)
		}
	}

	return nil
}
