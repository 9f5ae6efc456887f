// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// PDF 操作的文件通过 multipart 表单上传, 这里只定义表单附带的参数

// PdfExtractRequest PDF 页面提取请求参数
type PdfExtractRequest struct {
	Ranges string `json:"ranges" form:"ranges" binding:"required"` // Page range spec "1-3,5,7-9" // 页码范围
}

// PdfWatermarkRequest PDF 水印请求参数
type PdfWatermarkRequest struct {
	Text     string  `json:"text" form:"text" binding:"required"` // Watermark text // 水印文字
	Position string  `json:"position" form:"position"`            // Anchor: c tl tr bl br, default c // 位置
	Rotation float64 `json:"rotation" form:"rotation"`            // Degrees, default 45 // 旋转角度
	Opacity  float64 `json:"opacity" form:"opacity"`              // 0..1, default 0.3 // 透明度
	FontSize int     `json:"fontSize" form:"fontSize"`            // Points, default 48 // 字号
	Color    string  `json:"color" form:"color"`                  // Hex RGB like #808080 // 颜色
}

// PdfEncryptRequest PDF 加密请求参数
type PdfEncryptRequest struct {
	UserPassword  string `json:"userPassword" form:"userPassword" binding:"required"` // Open password // 打开密码
	OwnerPassword string `json:"ownerPassword" form:"ownerPassword"`                  // Permission password, falls back to user password // 权限密码
}

// ---------------- DTO / Response ----------------

// PdfInfoDTO PDF 文档信息
type PdfInfoDTO struct {
	FileName  string `json:"fileName"`  // Uploaded file name // 上传文件名
	PageCount int    `json:"pageCount"` // Page count // 页数
	Version   string `json:"version"`   // PDF version // PDF 版本
	Encrypted bool   `json:"encrypted"` // Already encrypted // 是否已加密
	Size      int64  `json:"size"`      // Byte size // 字节数
}

// PdfResultDTO PDF 处理结果
type PdfResultDTO struct {
	File      *OutputFileDTO `json:"file"`      // Stored output // 产物文件
	PageCount int            `json:"pageCount"` // Pages in the output // 产物页数
	Pages     []int          `json:"pages"`     // Selected pages for extract // 提取的页码
}
