package upgrade

import (
	"context"
	"fmt"

	"github.com/haierkeys/dev-toolbox-service/internal/model"

	"gorm.io/gorm"
)

// legacySettingKeys 0.9.8 之前的设置键与现行键的对应关系
// Setting keys used before 0.9.8 mapped to the current ones
var legacySettingKeys = map[string]string{
	"rpc-endpoint": "solana-rpc-endpoint",
	"max-history":  "history-cap",
}

// SettingKeyRenameMigrate 将用户设置中的旧键名改写为现行键名
// Rewrite legacy user setting keys to the current ones
type SettingKeyRenameMigrate struct{}

// Version 返回版本号
func (m *SettingKeyRenameMigrate) Version() string {
	return "0.9.8"
}

// Description 返回描述
func (m *SettingKeyRenameMigrate) Description() string {
	return "Rewrite legacy user setting keys (rpc-endpoint, max-history) to the current ones"
}

// Up 执行升级
func (m *SettingKeyRenameMigrate) Up(db *gorm.DB, ctx context.Context) error {
	for legacy, current := range legacySettingKeys {
		// uid+key 是唯一索引, 已写过新键的用户保留新值, 丢弃旧行
		if err := db.WithContext(ctx).
			Where("key = ? AND uid IN (?)", legacy,
				db.Model(&model.UserSetting{}).Select("uid").Where("key = ?", current),
			).
			Delete(&model.UserSetting{}).Error; err != nil {
			return fmt.Errorf("failed to drop duplicated setting %s: %w", legacy, err)
		}

		if err := db.WithContext(ctx).Model(&model.UserSetting{}).
			Where("key = ?", legacy).
			Update("key", current).Error; err != nil {
			return fmt.Errorf("failed to rewrite setting key %s: %w", legacy, err)
		}
	}

	return nil
}
