// Package service 实现业务逻辑层
package service

// 工具分类
const (
	CategoryEncoding   = "encoding"
	CategoryGenerators = "generators"
	CategoryConverters = "converters"
	CategoryFiles      = "files"
	CategoryCrypto     = "crypto"
	CategoryWeb3       = "web3"
	CategoryText       = "text"
)

// 工具标识, 同时是历史记录的键
const (
	ToolBase64       = "base64"
	ToolJwtDebugger  = "jwt-debugger"
	ToolRegexTester  = "regex-tester"
	ToolUuid         = "uuid-generator"
	ToolCronParser   = "cron-parser"
	ToolPdf          = "pdf-tools"
	ToolImage        = "image-compressor"
	ToolSolana       = "solana"
	ToolHtmlEntities = "html-entities"
	ToolQrcode       = "qr-code"
	ToolPassword     = "password-generator"
	ToolLorem        = "lorem-ipsum"
	ToolNumberBase   = "number-base"
	ToolTimezone     = "timezone-converter"
	ToolJsonFormat   = "json-formatter"
	ToolTextDiff     = "text-diff"
	ToolCaseConvert  = "case-converter"
	ToolHash         = "hash-calculator"
	ToolTimestamp    = "timestamp-converter"
	ToolHtmlMinify   = "html-minifier"
)

// ToolMeta Tool catalog entry
// ToolMeta 工具目录条目
type ToolMeta struct {
	ID               string // Tool identifier // 工具标识
	Name             string // Display name // 显示名称
	Category         string // Catalog category // 分类
	Description      string // One-line description // 一句话描述
	AnonymousAllowed bool   // Usable without login // 允许匿名使用
	McpExposed       bool   // Served in MCP mode // MCP 模式可用
}

// toolCatalog 静态工具目录, 顺序即返回顺序
// 文件类工具写出产物, 需要登录; 其余工具匿名可用
var toolCatalog = []ToolMeta{
	{ID: ToolBase64, Name: "Base64 Codec", Category: CategoryEncoding, Description: "Encode and decode Base64 text and files", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolJwtDebugger, Name: "JWT Debugger", Category: CategoryEncoding, Description: "Decode JWT header and claims without verification", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolHtmlEntities, Name: "HTML Entities", Category: CategoryEncoding, Description: "Encode and decode HTML entities", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolUuid, Name: "UUID Generator", Category: CategoryGenerators, Description: "Generate UUIDs v1 v3 v4 v5 v7 and validate them", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolQrcode, Name: "QR Code Generator", Category: CategoryGenerators, Description: "Generate QR code images from text", AnonymousAllowed: true, McpExposed: false},
	{ID: ToolPassword, Name: "Password Generator", Category: CategoryGenerators, Description: "Generate random passwords with charset controls", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolLorem, Name: "Lorem Ipsum", Category: CategoryGenerators, Description: "Generate placeholder paragraphs, sentences and words", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolNumberBase, Name: "Number Base Converter", Category: CategoryConverters, Description: "Convert numbers between bases 2 to 36", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolTimezone, Name: "Timezone Converter", Category: CategoryConverters, Description: "Convert an instant across IANA timezones", AnonymousAllowed: true, McpExposed: false},
	{ID: ToolTimestamp, Name: "Timestamp Converter", Category: CategoryConverters, Description: "Convert between unix timestamps and readable time", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolCronParser, Name: "Cron Parser", Category: CategoryConverters, Description: "Explain cron expressions and compute next run times", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolJsonFormat, Name: "JSON Formatter", Category: CategoryConverters, Description: "Format, minify and validate JSON", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolPdf, Name: "PDF Tools", Category: CategoryFiles, Description: "Merge, extract, watermark and encrypt PDF files", AnonymousAllowed: false, McpExposed: false},
	{ID: ToolImage, Name: "Image Compressor", Category: CategoryFiles, Description: "Compress images and read their metadata", AnonymousAllowed: false, McpExposed: false},
	{ID: ToolHash, Name: "Hash Calculator", Category: CategoryCrypto, Description: "Compute md5 sha1 sha256 sha512 sha3 blake2b digests", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolSolana, Name: "Solana Tools", Category: CategoryWeb3, Description: "Keypairs, address checks, balances and vanity search", AnonymousAllowed: true, McpExposed: false},
	{ID: ToolRegexTester, Name: "Regex Tester", Category: CategoryText, Description: "Test and replace with regular expressions", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolTextDiff, Name: "Text Diff", Category: CategoryText, Description: "Compare two texts line by line or char by char", AnonymousAllowed: true, McpExposed: false},
	{ID: ToolCaseConvert, Name: "Case Converter", Category: CategoryText, Description: "Convert identifiers between naming styles", AnonymousAllowed: true, McpExposed: true},
	{ID: ToolHtmlMinify, Name: "HTML Minifier", Category: CategoryText, Description: "Minify HTML, CSS and JavaScript documents", AnonymousAllowed: true, McpExposed: false},
}

// toolIndex 工具标识到目录条目的索引
var toolIndex = func() map[string]ToolMeta {
	m := make(map[string]ToolMeta, len(toolCatalog))
	for _, t := range toolCatalog {
		m[t.ID] = t
	}
	return m
}()

// Tools 返回全部工具目录条目
func Tools() []ToolMeta {
	out := make([]ToolMeta, len(toolCatalog))
	copy(out, toolCatalog)
	return out
}

// LookupTool 根据标识查找工具
func LookupTool(id string) (ToolMeta, bool) {
	t, ok := toolIndex[id]
	return t, ok
}

// McpTools 返回 MCP 模式下可用的工具
func McpTools() []ToolMeta {
	var out []ToolMeta
	for _, t := range toolCatalog {
		if t.McpExposed {
			out = append(out, t)
		}
	}
	return out
}
