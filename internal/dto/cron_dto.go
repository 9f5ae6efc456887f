// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// CronParseRequest Cron expression parse request parameters
// Cron 表达式解析请求参数
type CronParseRequest struct {
	Expression string `json:"expression" form:"expression" binding:"required"` // 5-field cron expression // 五段 Cron 表达式
	Count      int    `json:"count" form:"count"`                              // Next run times to compute 1..20 // 下次执行时间数量
	Timezone   string `json:"timezone" form:"timezone"`                        // IANA zone for run times // 时区
}

// ---------------- DTO / Response ----------------

// CronFieldDTO Per-field explanation
// 单字段解释
type CronFieldDTO struct {
	Field      string `json:"field"`      // minute hour dom month dow // 字段名
	Expression string `json:"expression"` // Raw field text // 字段原文
	Clause     string `json:"clause"`     // English clause // 英文解释
}

// CronParseDTO Cron expression parse result
// Cron 表达式解析结果
type CronParseDTO struct {
	Expression  string         `json:"expression"`  // Input expression // 输入表达式
	Description string         `json:"description"` // Composed sentence // 组合描述
	Fields      []CronFieldDTO `json:"fields"`      // Per-field clauses // 各字段解释
	NextRuns    []string       `json:"nextRuns"`    // Upcoming run times RFC3339 // 接下来的执行时间
	Timezone    string         `json:"timezone"`    // Zone used for run times // 使用的时区
}
