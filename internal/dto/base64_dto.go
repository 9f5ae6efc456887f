// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// Base64EncodeRequest Base64 text encode request parameters
// Base64 文本编码请求参数
type Base64EncodeRequest struct {
	Text    string `json:"text" form:"text" binding:"required"` // Text to encode // 待编码文本
	URLSafe bool   `json:"urlSafe" form:"urlSafe"`              // Use URL-safe alphabet // 使用 URL 安全字符表
}

// Base64DecodeRequest Base64 text decode request parameters
// Base64 文本解码请求参数
type Base64DecodeRequest struct {
	Encoded string `json:"encoded" form:"encoded" binding:"required"` // Base64 string to decode // 待解码的 Base64 字符串
}

// Base64DecodeToFileRequest Decode base64 into a stored file
// Base64 解码为文件请求参数
type Base64DecodeToFileRequest struct {
	Encoded  string `json:"encoded" form:"encoded" binding:"required"` // Base64 string to decode // 待解码的 Base64 字符串
	FileName string `json:"fileName" form:"fileName"`                  // Output file name // 输出文件名
}

// ---------------- DTO / Response ----------------

// Base64EncodeDTO Base64 encode result
// Base64 编码结果
type Base64EncodeDTO struct {
	Encoded string `json:"encoded"` // Encoded string // 编码结果
	URLSafe bool   `json:"urlSafe"` // URL-safe alphabet used // 是否使用 URL 安全字符表
	Size    int    `json:"size"`    // Source byte size // 原始字节数
}

// Base64DecodeDTO Base64 decode result
// Base64 解码结果
type Base64DecodeDTO struct {
	Text string `json:"text"` // Decoded string // 解码结果
	Size int    `json:"size"` // Decoded byte size // 解码字节数
}

// Base64FileEncodeDTO Base64 file encode result
// Base64 文件编码结果
type Base64FileEncodeDTO struct {
	FileName    string `json:"fileName"`    // Uploaded file name // 上传文件名
	Size        int64  `json:"size"`        // File byte size // 文件字节数
	ContentType string `json:"contentType"` // Detected MIME type // 识别的 MIME 类型
	Encoded     string `json:"encoded"`     // Encoded string // 编码结果
}
