// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// HtmlEntitiesEncodeRequest HTML 实体编码请求参数
type HtmlEntitiesEncodeRequest struct {
	Text      string `json:"text" form:"text" binding:"required"` // Text to encode // 待编码文本
	EncodeAll bool   `json:"encodeAll" form:"encodeAll"`          // Also encode non-ASCII to numeric refs // 非 ASCII 也转数字实体
}

// HtmlEntitiesDecodeRequest HTML 实体解码请求参数
type HtmlEntitiesDecodeRequest struct {
	Text string `json:"text" form:"text" binding:"required"` // Text to decode // 待解码文本
}

// JsonFormatRequest JSON 格式化请求参数
type JsonFormatRequest struct {
	JSON     string `json:"json" form:"json" binding:"required"` // JSON text // JSON 文本
	Indent   string `json:"indent" form:"indent"`                // "2" "4" "tab", default "2" // 缩进
	SortKeys bool   `json:"sortKeys" form:"sortKeys"`            // Stable key ordering // 键排序
	Minify   bool   `json:"minify" form:"minify"`                // Strip whitespace instead // 压缩
}

// JsonValidateRequest JSON 校验请求参数
type JsonValidateRequest struct {
	JSON string `json:"json" form:"json" binding:"required"` // JSON text // JSON 文本
}

// TextDiffRequest 文本对比请求参数
type TextDiffRequest struct {
	Text1 string `json:"text1" form:"text1"` // Left text // 左侧文本
	Text2 string `json:"text2" form:"text2"` // Right text // 右侧文本
	Mode  string `json:"mode" form:"mode"`   // line or char, default line // 对比粒度
}

// HashCalculateRequest 哈希计算请求参数
type HashCalculateRequest struct {
	Text    string `json:"text" form:"text" binding:"required"` // Text input // 输入文本
	HmacKey string `json:"hmacKey" form:"hmacKey"`              // Optional HMAC key // HMAC 密钥
}

// HtmlMinifyRequest 压缩请求参数
type HtmlMinifyRequest struct {
	Content string `json:"content" form:"content" binding:"required"` // Document text // 文档内容
	Kind    string `json:"kind" form:"kind"`                          // html css js, default html // 文档类型
}

// ---------------- DTO / Response ----------------

// HtmlEntitiesDTO HTML 实体编解码结果
type HtmlEntitiesDTO struct {
	Result string `json:"result"` // Converted text // 转换结果
}

// JsonFormatDTO JSON 格式化结果
type JsonFormatDTO struct {
	Result string `json:"result"` // Formatted or minified JSON // 处理结果
	Valid  bool   `json:"valid"`  // Input parsed successfully // 输入是否合法
}

// JsonValidateDTO JSON 校验结果
type JsonValidateDTO struct {
	Valid bool   `json:"valid"` // Input parsed successfully // 是否合法
	Error string `json:"error"` // Parser message with offset // 解析错误
}

// TextDiffOpDTO 单条差异操作
type TextDiffOpDTO struct {
	Type string `json:"type"` // equal insert delete // 操作类型
	Text string `json:"text"` // Affected text // 相关文本
}

// TextDiffDTO 文本对比结果
type TextDiffDTO struct {
	Ops       []TextDiffOpDTO `json:"ops"`       // Diff operation list // 差异列表
	Patch     string          `json:"patch"`     // Unified patch text // 补丁文本
	HTML      string          `json:"html"`      // Pretty HTML rendering // HTML 渲染
	Identical bool            `json:"identical"` // Inputs are equal // 两侧相同
}

// HashCalculateDTO 哈希计算结果, 全部为十六进制小写
type HashCalculateDTO struct {
	Md5        string `json:"md5"`
	Sha1       string `json:"sha1"`
	Sha256     string `json:"sha256"`
	Sha512     string `json:"sha512"`
	Sha3_256   string `json:"sha3_256"`
	Blake2b256 string `json:"blake2b_256"`
	Hmac       bool   `json:"hmac"` // Digests are HMACs of the key // 是否为 HMAC
}

// HtmlMinifyDTO 压缩结果
type HtmlMinifyDTO struct {
	Result       string  `json:"result"`       // Minified document // 压缩结果
	OriginalSize int     `json:"originalSize"` // Input byte size // 原始字节数
	MinifiedSize int     `json:"minifiedSize"` // Output byte size // 压缩后字节数
	Savings      float64 `json:"savings"`      // 1 - minified/original // 压缩率
}
