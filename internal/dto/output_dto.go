// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/dev-toolbox-service/pkg/timex"

// FileListRequest 产物文件分页查询参数
type FileListRequest struct {
	Page     int `json:"page" form:"page"`         // Page number, 1-based // 页码
	PageSize int `json:"pageSize" form:"pageSize"` // Page size // 每页数量
}

// ---------------- DTO / Response ----------------

// OutputFileDTO 产物文件信息
type OutputFileDTO struct {
	ID          int64      `json:"id"`          // File ID // 文件 ID
	ToolID      string     `json:"toolId"`      // Producing tool // 产出工具
	FileName    string     `json:"fileName"`    // File name // 文件名
	StorageType string     `json:"storageType"` // Storage backend // 存储后端
	Size        int64      `json:"size"`        // Byte size // 字节数
	ContentType string     `json:"contentType"` // MIME type // MIME 类型
	DownloadURL string     `json:"downloadUrl"` // Download endpoint // 下载地址
	ExpiresAt   timex.Time `json:"expiresAt"`   // Expiry time, zero means keep // 过期时间
	CreatedAt   timex.Time `json:"createdAt"`   // Creation time // 创建时间
}

// OutputFileListDTO 产物文件分页结果
type OutputFileListDTO struct {
	List     []*OutputFileDTO `json:"list"`     // Files on this page // 当前页文件
	Total    int64            `json:"total"`    // Total count // 总数
	Page     int              `json:"page"`     // Page number // 页码
	PageSize int              `json:"pageSize"` // Page size // 每页数量
}
