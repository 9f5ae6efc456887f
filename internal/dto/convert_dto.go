// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// NumberBaseConvertRequest 进制转换请求参数
type NumberBaseConvertRequest struct {
	Value      string `json:"value" form:"value" binding:"required"` // Digits with optional sign / 0x 0o 0b prefix // 数字文本
	FromBase   int    `json:"fromBase" form:"fromBase"`              // Source base 2..36, default 10 // 源进制
	TargetBase int    `json:"targetBase" form:"targetBase"`          // Extra target base 2..36, optional // 额外目标进制
}

// TimezoneConvertRequest 时区换算请求参数
type TimezoneConvertRequest struct {
	Time     string   `json:"time" form:"time"`         // Unix seconds, RFC3339, or "now" // 时间输入
	FromZone string   `json:"fromZone" form:"fromZone"` // Source IANA zone, default UTC // 源时区
	ToZones  []string `json:"toZones" form:"toZones"`   // Target IANA zones // 目标时区
}

// TimestampConvertRequest 时间戳转换请求参数
type TimestampConvertRequest struct {
	Value    string `json:"value" form:"value"`       // Unix value or RFC3339 or "now" // 输入值
	Unit     string `json:"unit" form:"unit"`         // s ms ns for numeric input, default s // 数字单位
	Layout   string `json:"layout" form:"layout"`     // Extra Go layout to render // 自定义格式
	Timezone string `json:"timezone" form:"timezone"` // IANA zone for rendering, default UTC // 渲染时区
}

// CaseConvertRequest 命名风格转换请求参数
type CaseConvertRequest struct {
	Text string `json:"text" form:"text" binding:"required"` // Identifier or phrase // 输入文本
}

// ---------------- DTO / Response ----------------

// NumberBaseConvertDTO 进制转换结果
type NumberBaseConvertDTO struct {
	Input      string `json:"input"`      // Normalized input // 规范化输入
	FromBase   int    `json:"fromBase"`   // Source base // 源进制
	Decimal    string `json:"decimal"`    // Base 10 // 十进制
	Binary     string `json:"binary"`     // Base 2 // 二进制
	Octal      string `json:"octal"`      // Base 8 // 八进制
	Hex        string `json:"hex"`        // Base 16 upper-case // 十六进制
	Target     string `json:"target"`     // Requested extra base value // 目标进制结果
	TargetBase int    `json:"targetBase"` // Requested extra base // 目标进制
}

// TimezoneInstantDTO 单时区时间表示
type TimezoneInstantDTO struct {
	Zone         string `json:"zone"`         // IANA zone name // 时区名
	Abbreviation string `json:"abbreviation"` // Zone abbreviation like CST // 缩写
	Offset       string `json:"offset"`       // UTC offset like +08:00 // UTC 偏移
	Time         string `json:"time"`         // Local RFC3339 // 当地时间
	Unix         int64  `json:"unix"`         // Unix seconds // Unix 秒
	IsDST        bool   `json:"isDst"`        // Daylight saving active // 是否夏令时
}

// TimezoneConvertDTO 时区换算结果
type TimezoneConvertDTO struct {
	Source  TimezoneInstantDTO   `json:"source"`  // Source zone rendering // 源时区表示
	Results []TimezoneInstantDTO `json:"results"` // Target zone renderings // 目标时区表示
}

// TimezoneListDTO 常用时区列表
type TimezoneListDTO struct {
	Zones []TimezoneInstantDTO `json:"zones"` // Common zones with current offset // 常用时区
}

// TimestampConvertDTO 时间戳转换结果
type TimestampConvertDTO struct {
	Unix      int64  `json:"unix"`      // Unix seconds // Unix 秒
	UnixMilli int64  `json:"unixMilli"` // Unix milliseconds // Unix 毫秒
	UnixNano  int64  `json:"unixNano"`  // Unix nanoseconds // Unix 纳秒
	Rfc3339   string `json:"rfc3339"`   // RFC3339 rendering // RFC3339 格式
	Formatted string `json:"formatted"` // Custom layout rendering // 自定义格式结果
	Relative  string `json:"relative"`  // Human relative like "3 hours ago" // 相对时间
	Timezone  string `json:"timezone"`  // Zone used // 使用的时区
}

// CaseConvertDTO 命名风格转换结果, 一次返回全部风格
type CaseConvertDTO struct {
	Snake    string `json:"snake"`    // snake_case
	Camel    string `json:"camel"`    // camelCase
	Pascal   string `json:"pascal"`   // PascalCase
	Kebab    string `json:"kebab"`    // kebab-case
	Title    string `json:"title"`    // Title Case
	Upper    string `json:"upper"`    // UPPER CASE
	Lower    string `json:"lower"`    // lower case
	Constant string `json:"constant"` // CONSTANT_CASE
}
