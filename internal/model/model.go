// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名执行自动迁移, key 为空时迁移全部模型
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "":
		return db.AutoMigrate(
			User{},
			HistoryEntry{},
			Favorite{},
			UserSetting{},
			VanityJob{},
			OutputFile{},
		)

	case "User":
		return db.AutoMigrate(User{})

	case "HistoryEntry":
		return db.AutoMigrate(HistoryEntry{})

	case "Favorite":
		return db.AutoMigrate(Favorite{})

	case "UserSetting":
		return db.AutoMigrate(UserSetting{})

	case "VanityJob":
		return db.AutoMigrate(VanityJob{})

	case "OutputFile":
		return db.AutoMigrate(OutputFile{})
	}
	return nil
}
