// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// UuidGenerateRequest UUID generation request parameters
// UUID 生成请求参数
type UuidGenerateRequest struct {
	Version   string `json:"version" form:"version"`     // v1 v3 v4 v5 v7 nil, default v4 // 版本
	Count     int    `json:"count" form:"count"`         // Number to generate 1..1000 // 生成数量
	Namespace string `json:"namespace" form:"namespace"` // v3/v5 namespace: dns url oid x500 or a UUID // 命名空间
	Name      string `json:"name" form:"name"`           // v3/v5 name input // 名称输入
	Uppercase bool   `json:"uppercase" form:"uppercase"` // Output upper-case hex // 输出大写
}

// UuidValidateRequest UUID validation request parameters
// UUID 校验请求参数
type UuidValidateRequest struct {
	UUID string `json:"uuid" form:"uuid" binding:"required"` // Value to validate // 待校验值
}

// ---------------- DTO / Response ----------------

// UuidGenerateDTO UUID generation result
// UUID 生成结果
type UuidGenerateDTO struct {
	Uuids   []string `json:"uuids"`   // Generated values // 生成结果
	Version string   `json:"version"` // Version generated // 生成版本
	Count   int      `json:"count"`   // Number generated // 生成数量
}

// UuidValidateDTO UUID validation result
// UUID 校验结果
type UuidValidateDTO struct {
	Valid   bool   `json:"valid"`   // Syntactically valid // 是否合法
	Version int    `json:"version"` // RFC 4122 version // 版本号
	Variant string `json:"variant"` // RFC 4122 variant // 变体
}
