// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// ImageCompressRequest 图片压缩请求参数, 文件通过 multipart 上传
type ImageCompressRequest struct {
	MaxWidth  int    `json:"maxWidth" form:"maxWidth"`   // Bounding box width, 0 keeps original // 最大宽度
	MaxHeight int    `json:"maxHeight" form:"maxHeight"` // Bounding box height, 0 keeps original // 最大高度
	Quality   int    `json:"quality" form:"quality"`     // JPEG quality 1..100, default 80 // 压缩质量
	Format    string `json:"format" form:"format"`       // Output jpeg or png, default source format // 输出格式
}

// ---------------- DTO / Response ----------------

// ImageCompressDTO 图片压缩结果
type ImageCompressDTO struct {
	File           *OutputFileDTO `json:"file"`           // Stored output // 产物文件
	OriginalSize   int64          `json:"originalSize"`   // Source byte size // 原始字节数
	CompressedSize int64          `json:"compressedSize"` // Output byte size // 压缩后字节数
	Ratio          float64        `json:"ratio"`          // compressed / original // 压缩比
	Width          int            `json:"width"`          // Output width // 输出宽度
	Height         int            `json:"height"`         // Output height // 输出高度
	Format         string         `json:"format"`         // Output format // 输出格式
}

// ImageMetadataDTO 图片元数据
type ImageMetadataDTO struct {
	FileName string            `json:"fileName"` // Uploaded file name // 上传文件名
	Width    int               `json:"width"`    // Pixel width // 宽度
	Height   int               `json:"height"`   // Pixel height // 高度
	Format   string            `json:"format"`   // jpeg png gif // 格式
	Size     int64             `json:"size"`     // Byte size // 字节数
	Exif     map[string]string `json:"exif"`     // EXIF tags when present // EXIF 标签
}
