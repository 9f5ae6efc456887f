// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// QrcodeGenerateRequest 二维码生成请求参数
type QrcodeGenerateRequest struct {
	Content string `json:"content" form:"content" binding:"required"` // Encoded content 1..2048 chars // 编码内容
	Size    int    `json:"size" form:"size"`                          // Pixel size 64..1024, default 256 // 图片边长
	Level   string `json:"level" form:"level"`                        // Recovery level L M Q H, default M // 纠错级别
	Store   bool   `json:"store" form:"store"`                        // Persist PNG as an output file // 是否存为文件
}

// PasswordGenerateRequest 密码生成请求参数
type PasswordGenerateRequest struct {
	Length           int  `json:"length" form:"length"`                     // Password length 4..128, default 16 // 密码长度
	Uppercase        bool `json:"uppercase" form:"uppercase"`               // Include A-Z // 包含大写
	Lowercase        bool `json:"lowercase" form:"lowercase"`               // Include a-z // 包含小写
	Digits           bool `json:"digits" form:"digits"`                     // Include 0-9 // 包含数字
	Symbols          bool `json:"symbols" form:"symbols"`                   // Include punctuation // 包含符号
	ExcludeAmbiguous bool `json:"excludeAmbiguous" form:"excludeAmbiguous"` // Drop 0O1lI| lookalikes // 排除易混淆字符
	Count            int  `json:"count" form:"count"`                       // Passwords to generate 1..100 // 生成数量
}

// LoremGenerateRequest 占位文本生成请求参数
type LoremGenerateRequest struct {
	Unit         string `json:"unit" form:"unit"`                 // paragraphs sentences words, default paragraphs // 生成单位
	Count        int    `json:"count" form:"count"`               // Unit count // 数量
	ClassicStart bool   `json:"classicStart" form:"classicStart"` // Begin with "Lorem ipsum dolor sit amet" // 经典开头
}

// ---------------- DTO / Response ----------------

// QrcodeGenerateDTO 二维码生成结果
type QrcodeGenerateDTO struct {
	DataURL string         `json:"dataUrl"` // PNG as data URL // PNG data URL
	Size    int            `json:"size"`    // Pixel size // 图片边长
	Level   string         `json:"level"`   // Recovery level used // 纠错级别
	File    *OutputFileDTO `json:"file"`    // Stored file when requested // 存储的文件
}

// PasswordGenerateDTO 密码生成结果
type PasswordGenerateDTO struct {
	Passwords   []string `json:"passwords"`   // Generated passwords // 生成的密码
	Length      int      `json:"length"`      // Password length // 密码长度
	EntropyBits float64  `json:"entropyBits"` // log2(charset) * length // 熵位数
	Strength    string   `json:"strength"`    // weak fair strong very_strong // 强度评级
}

// LoremGenerateDTO 占位文本生成结果
type LoremGenerateDTO struct {
	Text  string `json:"text"`  // Generated text // 生成文本
	Unit  string `json:"unit"`  // Unit generated // 生成单位
	Count int    `json:"count"` // Unit count // 数量
}
