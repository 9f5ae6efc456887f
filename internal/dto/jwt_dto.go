// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// JwtDecodeRequest JWT decode request parameters
// JWT 解析请求参数
type JwtDecodeRequest struct {
	Token string `json:"token" form:"token" binding:"required"` // JWT token to decode // 待解析的 JWT
}

// ---------------- DTO / Response ----------------

// JwtClaimStateDTO Time claim evaluation result
// 时间声明检查结果
type JwtClaimStateDTO struct {
	Claim   string `json:"claim"`   // Claim name exp/nbf/iat // 声明名称
	Value   int64  `json:"value"`   // Claim unix timestamp // 声明时间戳
	Time    string `json:"time"`    // Claim time RFC3339 // 声明时间
	Delta   string `json:"delta"`   // Distance from now // 距当前时间
	Expired bool   `json:"expired"` // Past the deadline // 是否已过期
}

// JwtDecodeDTO JWT decode result
// JWT 解析结果
type JwtDecodeDTO struct {
	Header            map[string]any     `json:"header"`            // Decoded header object // 解码后的头部
	Claims            map[string]any     `json:"claims"`            // Decoded claims object // 解码后的载荷
	HeaderJSON        string             `json:"headerJson"`        // Pretty-printed header // 格式化头部 JSON
	ClaimsJSON        string             `json:"claimsJson"`        // Pretty-printed claims // 格式化载荷 JSON
	Signature         string             `json:"signature"`         // Raw signature segment // 原始签名段
	SignatureVerified bool               `json:"signatureVerified"` // Always false, decode only // 恒为 false, 仅解码
	Note              string             `json:"note"`              // Decode-only notice // 仅解码提示
	TimeClaims        []JwtClaimStateDTO `json:"timeClaims"`        // exp/nbf/iat evaluation // 时间声明检查
	Status            string             `json:"status"`            // valid / expired / not_yet_valid // 有效性结论
}
