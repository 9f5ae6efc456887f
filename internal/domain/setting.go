// Package domain 定义领域模型和接口
package domain

import "time"

// 已知设置键
const (
	SettingKeySolanaRpcEndpoint = "solana-rpc-endpoint"
	SettingKeyHistoryCap        = "history-cap"
	SettingKeyLocale            = "locale"
)

// UserSetting 用户设置领域模型
type UserSetting struct {
	ID        int64
	UID       int64
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
