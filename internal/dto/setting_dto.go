// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/dev-toolbox-service/pkg/timex"

// SettingPutRequest Write a single setting key
// 写入单个设置项请求参数
type SettingPutRequest struct {
	Key   string `json:"key" form:"key" binding:"required"` // Setting key // 设置键
	Value string `json:"value" form:"value"`                // Setting value // 设置值
}

// SettingsPutRequest Write multiple setting keys at once
// 批量写入设置请求参数
type SettingsPutRequest struct {
	Settings map[string]string `json:"settings" binding:"required"` // Key/value pairs // 键值对
}

// SettingDeleteRequest Delete a single setting key
// 删除设置项请求参数
type SettingDeleteRequest struct {
	Key string `json:"key" form:"key" binding:"required"` // Setting key // 设置键
}

// ---------------- DTO / Response ----------------

// UserSettingDTO Single setting entry
// 单条设置
type UserSettingDTO struct {
	Key       string     `json:"key"`       // Setting key // 设置键
	Value     string     `json:"value"`     // Setting value // 设置值
	UpdatedAt timex.Time `json:"updatedAt"` // Last write time // 最后写入时间
}

// UserSettingsDTO Whole settings map of a user
// 用户设置全集
type UserSettingsDTO struct {
	Settings map[string]string `json:"settings"` // Key/value pairs // 键值对
}
