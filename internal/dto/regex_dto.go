// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// RegexTestRequest Regular expression test request parameters
// 正则测试请求参数
type RegexTestRequest struct {
	Pattern string `json:"pattern" form:"pattern" binding:"required"` // Expression pattern // 正则表达式
	Flags   string `json:"flags" form:"flags"`                        // Flag subset i m s g // 标志位
	Text    string `json:"text" form:"text"`                          // Text to match against // 待匹配文本
}

// RegexReplaceRequest Regular expression replace request parameters
// 正则替换请求参数
type RegexReplaceRequest struct {
	Pattern     string `json:"pattern" form:"pattern" binding:"required"` // Expression pattern // 正则表达式
	Flags       string `json:"flags" form:"flags"`                        // Flag subset i m s g // 标志位
	Text        string `json:"text" form:"text"`                          // Text to rewrite // 待替换文本
	Replacement string `json:"replacement" form:"replacement"`            // Replacement template // 替换模板
}

// ---------------- DTO / Response ----------------

// RegexMatchDTO Single match result
// 单条匹配结果
type RegexMatchDTO struct {
	Match  string   `json:"match"`  // Matched text // 匹配文本
	Index  int      `json:"index"`  // Byte offset in input // 输入中的字节偏移
	Groups []string `json:"groups"` // Numbered capture groups // 编号捕获组
}

// RegexTestDTO Regular expression test result
// 正则测试结果
type RegexTestDTO struct {
	Matches []RegexMatchDTO `json:"matches"` // All matches found // 全部匹配
	Count   int             `json:"count"`   // Match count // 匹配数量
}

// RegexReplaceDTO Regular expression replace result
// 正则替换结果
type RegexReplaceDTO struct {
	Result string `json:"result"` // Rewritten text // 替换后的文本
	Count  int    `json:"count"`  // Replacement count // 替换次数
}
