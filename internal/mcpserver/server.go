// Package mcpserver exposes the text-safe toolbox tools over the Model Context Protocol.
// Clients talk JSON-RPC on stdin/stdout, so this transport carries no HTTP auth.
// MCP 服务器, 通过 stdio 向 AI 客户端提供无状态工具调用
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps an MCP stdio server around the tool execution layer.
type Server struct {
	app *app.App
	mcp *server.MCPServer
}

// New builds the MCP server and registers every exposed tool action.
// 构建 MCP 服务器并注册全部可暴露的工具动作
func New(appContainer *app.App) *Server {
	s := &Server{app: appContainer}
	s.mcp = server.NewMCPServer(
		"dev-toolbox-service",
		appContainer.Version().Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, b := range toolBindings() {
		s.mcp.AddTool(b.tool, s.handle(b.toolID, b.action))
	}
	return s
}

// ServeStdio serves MCP requests on stdin/stdout until the client closes the stream.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// handle adapts one tool action to an MCP tool handler. Calls run with uid 0,
// which skips history recording for MCP clients.
// 以匿名身份调用工具, 不产生历史记录
func (s *Server) handle(toolID string, action string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, err := s.app.ToolsService.Execute(ctx, 0, toolID, action, raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// toolBinding ties one declared MCP tool to a toolbox action.
type toolBinding struct {
	tool   mcp.Tool
	toolID string
	action string
}

// toolBindings declares the MCP tool schemas. Parameter names follow the JSON
// request fields of the matching HTTP endpoints, so the two surfaces stay
// interchangeable for clients.
// 工具参数与 HTTP 接口的 JSON 字段同名
func toolBindings() []toolBinding {
	return []toolBinding{
		{
			tool: mcp.NewTool("base64_encode",
				mcp.WithDescription("Encode text to Base64 using the standard or URL-safe alphabet"),
				mcp.WithString("text", mcp.Required(), mcp.Description("Text to encode")),
				mcp.WithBoolean("urlSafe", mcp.Description("Use the URL-safe alphabet without padding")),
			),
			toolID: service.ToolBase64, action: "encode-text",
		},
		{
			tool: mcp.NewTool("base64_decode",
				mcp.WithDescription("Decode a Base64 string back to UTF-8 text"),
				mcp.WithString("encoded", mcp.Required(), mcp.Description("Base64 content, standard or URL-safe, padding optional")),
			),
			toolID: service.ToolBase64, action: "decode-text",
		},
		{
			tool: mcp.NewTool("jwt_decode",
				mcp.WithDescription("Decode a JWT without verifying its signature and report header, claims and timestamps"),
				mcp.WithString("token", mcp.Required(), mcp.Description("JWT in header.payload.signature form")),
			),
			toolID: service.ToolJwtDebugger, action: "decode",
		},
		{
			tool: mcp.NewTool("regex_test",
				mcp.WithDescription("Run a Go regular expression against text and list matches with groups and offsets"),
				mcp.WithString("pattern", mcp.Required(), mcp.Description("RE2 pattern")),
				mcp.WithString("text", mcp.Description("Subject text")),
				mcp.WithString("flags", mcp.Description("Flag letters i m s U")),
			),
			toolID: service.ToolRegexTester, action: "test",
		},
		{
			tool: mcp.NewTool("regex_replace",
				mcp.WithDescription("Replace every regular expression match, $1 style group references allowed"),
				mcp.WithString("pattern", mcp.Required(), mcp.Description("RE2 pattern")),
				mcp.WithString("text", mcp.Description("Subject text")),
				mcp.WithString("replacement", mcp.Description("Replacement template")),
				mcp.WithString("flags", mcp.Description("Flag letters i m s U")),
			),
			toolID: service.ToolRegexTester, action: "replace",
		},
		{
			tool: mcp.NewTool("uuid_generate",
				mcp.WithDescription("Generate UUIDs of version v1, v3, v4, v5, v7 or the nil UUID"),
				mcp.WithString("version", mcp.Description("v1 v3 v4 v5 v7 or nil, default v4")),
				mcp.WithNumber("count", mcp.Description("How many to generate, 1 to 1000")),
				mcp.WithString("namespace", mcp.Description("v3/v5 namespace: dns url oid x500 or a UUID")),
				mcp.WithString("name", mcp.Description("v3/v5 name input")),
				mcp.WithBoolean("uppercase", mcp.Description("Upper-case hex output")),
			),
			toolID: service.ToolUuid, action: "generate",
		},
		{
			tool: mcp.NewTool("uuid_validate",
				mcp.WithDescription("Validate a UUID and report its version and variant"),
				mcp.WithString("uuid", mcp.Required(), mcp.Description("Candidate UUID string")),
			),
			toolID: service.ToolUuid, action: "validate",
		},
		{
			tool: mcp.NewTool("cron_parse",
				mcp.WithDescription("Explain a 5-field cron expression and compute its next run times"),
				mcp.WithString("expression", mcp.Required(), mcp.Description("Cron expression such as */15 9-17 * * 1-5")),
				mcp.WithNumber("count", mcp.Description("Next run times to compute, 1 to 20")),
				mcp.WithString("timezone", mcp.Description("IANA zone for run times, default UTC")),
			),
			toolID: service.ToolCronParser, action: "parse",
		},
		{
			tool: mcp.NewTool("number_base_convert",
				mcp.WithDescription("Convert an integer between bases 2 to 36 with binary, octal, decimal and hex output"),
				mcp.WithString("value", mcp.Required(), mcp.Description("Digits with optional sign or 0x 0o 0b prefix")),
				mcp.WithNumber("fromBase", mcp.Description("Source base 2 to 36, default 10")),
				mcp.WithNumber("targetBase", mcp.Description("Extra target base 2 to 36")),
			),
			toolID: service.ToolNumberBase, action: "convert",
		},
		{
			tool: mcp.NewTool("timestamp_convert",
				mcp.WithDescription("Convert between Unix timestamps and RFC3339 text in any time zone"),
				mcp.WithString("value", mcp.Description("Unix value, RFC3339 text or now")),
				mcp.WithString("unit", mcp.Description("s ms or ns for numeric input, default s")),
				mcp.WithString("layout", mcp.Description("Extra Go layout to render")),
				mcp.WithString("timezone", mcp.Description("IANA zone for rendering, default UTC")),
			),
			toolID: service.ToolTimestamp, action: "convert",
		},
		{
			tool: mcp.NewTool("case_convert",
				mcp.WithDescription("Convert an identifier or phrase to camel, pascal, snake, kebab, constant, title and more"),
				mcp.WithString("text", mcp.Required(), mcp.Description("Identifier or phrase")),
			),
			toolID: service.ToolCaseConvert, action: "convert",
		},
		{
			tool: mcp.NewTool("json_format",
				mcp.WithDescription("Pretty-print or minify JSON, preserving number precision"),
				mcp.WithString("json", mcp.Required(), mcp.Description("JSON text")),
				mcp.WithString("indent", mcp.Description("2 4 or tab, default 2")),
				mcp.WithBoolean("sortKeys", mcp.Description("Sort object keys")),
				mcp.WithBoolean("minify", mcp.Description("Strip whitespace instead of indenting")),
			),
			toolID: service.ToolJsonFormat, action: "format",
		},
		{
			tool: mcp.NewTool("json_validate",
				mcp.WithDescription("Check whether text is valid JSON and point at the first error"),
				mcp.WithString("json", mcp.Required(), mcp.Description("JSON text")),
			),
			toolID: service.ToolJsonFormat, action: "validate",
		},
		{
			tool: mcp.NewTool("hash_calculate",
				mcp.WithDescription("Compute MD5, SHA-1, SHA-256, SHA-512, SHA3-256 and BLAKE2b-256 digests, HMAC when a key is given"),
				mcp.WithString("text", mcp.Required(), mcp.Description("Text input")),
				mcp.WithString("hmacKey", mcp.Description("Optional HMAC key")),
			),
			toolID: service.ToolHash, action: "calculate",
		},
		{
			tool: mcp.NewTool("password_generate",
				mcp.WithDescription("Generate random passwords where every selected character class is represented"),
				mcp.WithNumber("length", mcp.Description("Password length 4 to 128, default 16")),
				mcp.WithBoolean("uppercase", mcp.Description("Include A-Z")),
				mcp.WithBoolean("lowercase", mcp.Description("Include a-z")),
				mcp.WithBoolean("digits", mcp.Description("Include 0-9")),
				mcp.WithBoolean("symbols", mcp.Description("Include punctuation")),
				mcp.WithBoolean("excludeAmbiguous", mcp.Description("Drop 0 O 1 l I | lookalikes")),
				mcp.WithNumber("count", mcp.Description("Passwords to generate, 1 to 100")),
			),
			toolID: service.ToolPassword, action: "generate",
		},
		{
			tool: mcp.NewTool("lorem_generate",
				mcp.WithDescription("Generate lorem ipsum placeholder paragraphs, sentences or words"),
				mcp.WithString("unit", mcp.Description("paragraphs sentences or words, default paragraphs")),
				mcp.WithNumber("count", mcp.Description("How many units to generate")),
				mcp.WithBoolean("classicStart", mcp.Description("Begin with the classic Lorem ipsum opening")),
			),
			toolID: service.ToolLorem, action: "generate",
		},
		{
			tool: mcp.NewTool("html_entities_encode",
				mcp.WithDescription("Escape HTML special characters, optionally every non-ASCII rune as a numeric reference"),
				mcp.WithString("text", mcp.Required(), mcp.Description("Text to encode")),
				mcp.WithBoolean("encodeAll", mcp.Description("Also encode non-ASCII to numeric references")),
			),
			toolID: service.ToolHtmlEntities, action: "encode",
		},
		{
			tool: mcp.NewTool("html_entities_decode",
				mcp.WithDescription("Decode named and numeric HTML entities back to text"),
				mcp.WithString("text", mcp.Required(), mcp.Description("Text to decode")),
			),
			toolID: service.ToolHtmlEntities, action: "decode",
		},
	}
}
