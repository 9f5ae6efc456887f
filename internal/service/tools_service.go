// Package service 实现业务逻辑层
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
)

// ToolsService 工具目录与统一调用入口
// WebSocket 的 ToolInvoke 帧走 Execute, HTTP 走各自 handler
type ToolsService interface {
	// List 获取工具目录, 登录用户附带收藏标记
	List(ctx context.Context, uid int64) ([]*dto.ToolDTO, error)

	// Get 获取单个工具条目
	Get(ctx context.Context, uid int64, toolID string) (*dto.ToolDTO, error)

	// Execute 按 工具标识+动作 调用纯转换类工具
	Execute(ctx context.Context, uid int64, toolID string, action string, params json.RawMessage) (any, error)
}

// toolActionFunc 单个工具动作的调用封装
type toolActionFunc func(ctx context.Context, uid int64, params json.RawMessage) (any, error)

// toolsService 实现 ToolsService 接口
type toolsService struct {
	favoriteService FavoriteService
	actions         map[string]toolActionFunc
}

// NewToolsService 创建 ToolsService 实例
// 文件类工具不注册动作, 多段表单只在 HTTP 层可用
func NewToolsService(
	favoriteSvc FavoriteService,
	base64Svc Base64Service,
	jwtSvc JwtService,
	regexSvc RegexService,
	uuidSvc UuidService,
	cronSvc CronService,
	convertSvc ConvertService,
	textSvc TextService,
	generateSvc GenerateService,
	solanaSvc SolanaService,
) ToolsService {
	s := &toolsService{
		favoriteService: favoriteSvc,
		actions:         make(map[string]toolActionFunc),
	}

	register := func(toolID, name string, fn toolActionFunc) {
		s.actions[toolID+"/"+name] = fn
	}

	register(ToolBase64, "encode-text", toolAction(base64Svc.EncodeText))
	register(ToolBase64, "decode-text", toolAction(base64Svc.DecodeText))
	register(ToolBase64, "decode-to-file", toolAction(base64Svc.DecodeToFile))
	register(ToolJwtDebugger, "decode", toolAction(jwtSvc.Decode))
	register(ToolRegexTester, "test", toolAction(regexSvc.Test))
	register(ToolRegexTester, "replace", toolAction(regexSvc.Replace))
	register(ToolUuid, "generate", toolAction(uuidSvc.Generate))
	register(ToolUuid, "validate", toolAction(uuidSvc.Validate))
	register(ToolCronParser, "parse", toolAction(cronSvc.Parse))
	register(ToolNumberBase, "convert", toolAction(convertSvc.NumberBase))
	register(ToolTimezone, "convert", toolAction(convertSvc.Timezone))
	register(ToolTimezone, "zones", func(ctx context.Context, uid int64, params json.RawMessage) (any, error) {
		return convertSvc.ListZones(ctx)
	})
	register(ToolTimestamp, "convert", toolAction(convertSvc.Timestamp))
	register(ToolCaseConvert, "convert", toolAction(convertSvc.Case))
	register(ToolHtmlEntities, "encode", toolAction(textSvc.HtmlEncode))
	register(ToolHtmlEntities, "decode", toolAction(textSvc.HtmlDecode))
	register(ToolJsonFormat, "format", toolAction(textSvc.JsonFormat))
	register(ToolJsonFormat, "validate", func(ctx context.Context, uid int64, params json.RawMessage) (any, error) {
		var p struct {
			JSON string `json:"json"`
		}
		if err := unmarshalToolParams(params, &p); err != nil {
			return nil, err
		}
		return textSvc.JsonValidate(ctx, uid, p.JSON)
	})
	register(ToolTextDiff, "diff", toolAction(textSvc.Diff))
	register(ToolHash, "calculate", toolAction(textSvc.Hash))
	register(ToolHtmlMinify, "minify", toolAction(textSvc.Minify))
	register(ToolQrcode, "generate", toolAction(generateSvc.Qrcode))
	register(ToolPassword, "generate", toolAction(generateSvc.Password))
	register(ToolLorem, "generate", toolAction(generateSvc.Lorem))
	register(ToolSolana, "keypair", func(ctx context.Context, uid int64, params json.RawMessage) (any, error) {
		return solanaSvc.GenerateKeypair(ctx, uid)
	})
	register(ToolSolana, "inspect", toolAction(solanaSvc.InspectAddress))
	register(ToolSolana, "balance", toolAction(solanaSvc.Balance))

	return s
}

// unmarshalToolParams 解析动作入参, 空参数视为零值结构
func unmarshalToolParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := jsonAPI.Unmarshal(params, out); err != nil {
		return code.ErrorInvalidParams.WithDetails(err.Error())
	}
	return nil
}

// toolAction 把服务方法适配成统一的动作签名
func toolAction[P any, R any](fn func(context.Context, int64, *P) (R, error)) toolActionFunc {
	return func(ctx context.Context, uid int64, params json.RawMessage) (any, error) {
		p := new(P)
		if err := unmarshalToolParams(params, p); err != nil {
			return nil, err
		}
		return fn(ctx, uid, p)
	}
}

// metaToDTO 目录条目转 DTO
func (s *toolsService) metaToDTO(meta ToolMeta, favorites map[string]bool) *dto.ToolDTO {
	return &dto.ToolDTO{
		ID:               meta.ID,
		Name:             meta.Name,
		Category:         meta.Category,
		Description:      meta.Description,
		AnonymousAllowed: meta.AnonymousAllowed,
		McpExposed:       meta.McpExposed,
		IsFavorite:       favorites[meta.ID],
	}
}

// List 获取工具目录, 登录用户附带收藏标记
func (s *toolsService) List(ctx context.Context, uid int64) ([]*dto.ToolDTO, error) {
	favorites, err := s.favoriteService.ToolIDSet(ctx, uid)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ToolDTO, 0, len(toolCatalog))
	for _, meta := range Tools() {
		list = append(list, s.metaToDTO(meta, favorites))
	}
	return list, nil
}

// Get 获取单个工具条目
func (s *toolsService) Get(ctx context.Context, uid int64, toolID string) (*dto.ToolDTO, error) {
	meta, ok := LookupTool(toolID)
	if !ok {
		return nil, code.ErrorNotFoundTool
	}

	favorites, err := s.favoriteService.ToolIDSet(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.metaToDTO(meta, favorites), nil
}

// Execute 按 工具标识+动作 调用纯转换类工具
func (s *toolsService) Execute(ctx context.Context, uid int64, toolID string, action string, params json.RawMessage) (any, error) {
	if _, ok := LookupTool(toolID); !ok {
		return nil, code.ErrorNotFoundTool
	}
	fn, ok := s.actions[toolID+"/"+action]
	if !ok {
		return nil, code.ErrorNotFoundTool.WithDetails(fmt.Sprintf("tool %q has no action %q", toolID, action))
	}
	return fn(ctx, uid, params)
}

// 确保 toolsService 实现了 ToolsService 接口
var _ ToolsService = (*toolsService)(nil)
