// Package service 实现业务逻辑层
package service

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"html"
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/diff"
	"github.com/bytedance/sonic"
	"github.com/tdewolff/minify/v2"
	minifycss "github.com/tdewolff/minify/v2/css"
	minifyhtml "github.com/tdewolff/minify/v2/html"
	minifyjs "github.com/tdewolff/minify/v2/js"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// jsonAPI 保留数字精度的 JSON 编解码器
var jsonAPI = sonic.Config{UseNumber: true}.Froze()

// jsonSortedAPI 键排序版本, 格式化的稳定输出用
var jsonSortedAPI = sonic.Config{UseNumber: true, SortMapKeys: true}.Froze()

// minifyMediaTypes 文档类型到 MIME 的映射
var minifyMediaTypes = map[string]string{
	"html": "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
}

// TextService 文本类工具服务接口
// 覆盖 HTML 实体 / JSON 格式化 / 文本对比 / 哈希计算 / 文档压缩
type TextService interface {
	// HtmlEncode HTML 实体编码
	HtmlEncode(ctx context.Context, uid int64, params *dto.HtmlEntitiesEncodeRequest) (*dto.HtmlEntitiesDTO, error)

	// HtmlDecode HTML 实体解码
	HtmlDecode(ctx context.Context, uid int64, params *dto.HtmlEntitiesDecodeRequest) (*dto.HtmlEntitiesDTO, error)

	// JsonFormat 格式化或压缩 JSON
	JsonFormat(ctx context.Context, uid int64, params *dto.JsonFormatRequest) (*dto.JsonFormatDTO, error)

	// JsonValidate 校验 JSON, 解析错误原样返回
	JsonValidate(ctx context.Context, uid int64, jsonText string) (*dto.JsonValidateDTO, error)

	// Diff 对比两段文本
	Diff(ctx context.Context, uid int64, params *dto.TextDiffRequest) (*dto.TextDiffDTO, error)

	// Hash 计算文本摘要
	Hash(ctx context.Context, uid int64, params *dto.HashCalculateRequest) (*dto.HashCalculateDTO, error)

	// HashBytes 计算文件摘要
	HashBytes(ctx context.Context, uid int64, fileName string, content []byte, hmacKey string) (*dto.HashCalculateDTO, error)

	// Minify 压缩 HTML/CSS/JS 文档
	Minify(ctx context.Context, uid int64, params *dto.HtmlMinifyRequest) (*dto.HtmlMinifyDTO, error)
}

// textService 实现 TextService 接口
type textService struct {
	historyService HistoryService
	minifier       *minify.M
}

// NewTextService 创建 TextService 实例
func NewTextService(historySvc HistoryService) TextService {
	m := minify.New()
	m.AddFunc("text/html", minifyhtml.Minify)
	m.AddFunc("text/css", minifycss.Minify)
	m.AddFunc("application/javascript", minifyjs.Minify)

	return &textService{
		historyService: historySvc,
		minifier:       m,
	}
}

// HtmlEncode HTML 实体编码
// 基础五个字符始终编码, encodeAll 时非 ASCII 转数字实体
func (s *textService) HtmlEncode(ctx context.Context, uid int64, params *dto.HtmlEntitiesEncodeRequest) (*dto.HtmlEntitiesDTO, error) {
	encoded := html.EscapeString(params.Text)
	if params.EncodeAll {
		var b strings.Builder
		for _, r := range encoded {
			if r > 0x7f {
				fmt.Fprintf(&b, "&#%d;", r)
			} else {
				b.WriteRune(r)
			}
		}
		encoded = b.String()
	}

	s.historyService.Record(ctx, uid, ToolHtmlEntities,
		fmt.Sprintf("Encoded %d chars to HTML entities", len([]rune(params.Text))),
		map[string]any{"mode": "encode", "text": previewText(params.Text)})

	return &dto.HtmlEntitiesDTO{Result: encoded}, nil
}

// HtmlDecode HTML 实体解码
func (s *textService) HtmlDecode(ctx context.Context, uid int64, params *dto.HtmlEntitiesDecodeRequest) (*dto.HtmlEntitiesDTO, error) {
	decoded := html.UnescapeString(params.Text)

	s.historyService.Record(ctx, uid, ToolHtmlEntities,
		fmt.Sprintf("Decoded %d chars of HTML entities", len([]rune(params.Text))),
		map[string]any{"mode": "decode", "text": previewText(params.Text)})

	return &dto.HtmlEntitiesDTO{Result: decoded}, nil
}

// JsonFormat 格式化或压缩 JSON
func (s *textService) JsonFormat(ctx context.Context, uid int64, params *dto.JsonFormatRequest) (*dto.JsonFormatDTO, error) {
	api := jsonAPI
	if params.SortKeys {
		api = jsonSortedAPI
	}

	var value any
	if err := api.UnmarshalFromString(params.JSON, &value); err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	var out []byte
	var err error
	if params.Minify {
		out, err = api.Marshal(value)
	} else {
		indent := "  "
		switch params.Indent {
		case "", "2":
		case "4":
			indent = "    "
		case "tab":
			indent = "\t"
		default:
			return nil, code.ErrorInvalidParams.WithDetails("indent must be 2, 4 or tab")
		}
		out, err = api.MarshalIndent(value, "", indent)
	}
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	mode := "format"
	if params.Minify {
		mode = "minify"
	}
	s.historyService.Record(ctx, uid, ToolJsonFormat,
		fmt.Sprintf("Formatted %d bytes of JSON", len(params.JSON)),
		map[string]any{"mode": mode, "json": previewText(params.JSON)})

	return &dto.JsonFormatDTO{Result: string(out), Valid: true}, nil
}

// JsonValidate 校验 JSON, 解析错误原样返回
func (s *textService) JsonValidate(ctx context.Context, uid int64, jsonText string) (*dto.JsonValidateDTO, error) {
	var value any
	if err := jsonAPI.UnmarshalFromString(jsonText, &value); err != nil {
		return &dto.JsonValidateDTO{Valid: false, Error: err.Error()}, nil
	}

	s.historyService.Record(ctx, uid, ToolJsonFormat,
		fmt.Sprintf("Validated %d bytes of JSON", len(jsonText)),
		map[string]any{"mode": "validate", "json": previewText(jsonText)})

	return &dto.JsonValidateDTO{Valid: true}, nil
}

// Diff 对比两段文本
func (s *textService) Diff(ctx context.Context, uid int64, params *dto.TextDiffRequest) (*dto.TextDiffDTO, error) {
	mode := params.Mode
	if mode == "" {
		mode = "line"
	}
	if mode != "line" && mode != "char" {
		return nil, code.ErrorInvalidParams.WithDetails("mode must be line or char")
	}

	compared := diff.Compare(params.Text1, params.Text2, mode == "line")

	ops := make([]dto.TextDiffOpDTO, 0, len(compared.Ops))
	for _, op := range compared.Ops {
		ops = append(ops, dto.TextDiffOpDTO{Type: op.Type, Text: op.Text})
	}

	result := &dto.TextDiffDTO{
		Ops:       ops,
		Patch:     compared.Patch,
		HTML:      compared.HTML,
		Identical: compared.Identical,
	}

	s.historyService.Record(ctx, uid, ToolTextDiff,
		fmt.Sprintf("Compared texts with %d diff ops", len(ops)),
		map[string]any{"mode": mode, "text1": previewText(params.Text1), "text2": previewText(params.Text2)})

	return result, nil
}

// hexDigest 计算十六进制摘要, 提供 key 时计算 HMAC
func hexDigest(newHash func() hash.Hash, hmacKey []byte, data []byte) string {
	var h hash.Hash
	if len(hmacKey) > 0 {
		h = hmac.New(newHash, hmacKey)
	} else {
		h = newHash()
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// computeDigests 计算全部算法的摘要
func computeDigests(data []byte, hmacKey string) *dto.HashCalculateDTO {
	key := []byte(hmacKey)
	blake2bNew := func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	}

	return &dto.HashCalculateDTO{
		Md5:        hexDigest(md5.New, key, data),
		Sha1:       hexDigest(sha1.New, key, data),
		Sha256:     hexDigest(sha256.New, key, data),
		Sha512:     hexDigest(sha512.New, key, data),
		Sha3_256:   hexDigest(sha3.New256, key, data),
		Blake2b256: hexDigest(blake2bNew, key, data),
		Hmac:       len(key) > 0,
	}
}

// Hash 计算文本摘要
func (s *textService) Hash(ctx context.Context, uid int64, params *dto.HashCalculateRequest) (*dto.HashCalculateDTO, error) {
	result := computeDigests([]byte(params.Text), params.HmacKey)

	s.historyService.Record(ctx, uid, ToolHash,
		fmt.Sprintf("Hashed %d bytes of text", len(params.Text)),
		map[string]any{"text": previewText(params.Text), "hmac": result.Hmac, "sha256": result.Sha256})

	return result, nil
}

// HashBytes 计算文件摘要
func (s *textService) HashBytes(ctx context.Context, uid int64, fileName string, content []byte, hmacKey string) (*dto.HashCalculateDTO, error) {
	result := computeDigests(content, hmacKey)

	s.historyService.Record(ctx, uid, ToolHash,
		fmt.Sprintf("Hashed file %s", fileName),
		map[string]any{"fileName": fileName, "size": len(content), "sha256": result.Sha256})

	return result, nil
}

// Minify 压缩 HTML/CSS/JS 文档
func (s *textService) Minify(ctx context.Context, uid int64, params *dto.HtmlMinifyRequest) (*dto.HtmlMinifyDTO, error) {
	kind := params.Kind
	if kind == "" {
		kind = "html"
	}
	mediaType, ok := minifyMediaTypes[kind]
	if !ok {
		return nil, code.ErrorInvalidParams.WithDetails("kind must be html, css or js")
	}

	out, err := s.minifier.String(mediaType, params.Content)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	result := &dto.HtmlMinifyDTO{
		Result:       out,
		OriginalSize: len(params.Content),
		MinifiedSize: len(out),
	}
	if result.OriginalSize > 0 {
		result.Savings = 1 - float64(result.MinifiedSize)/float64(result.OriginalSize)
	}

	s.historyService.Record(ctx, uid, ToolHtmlMinify,
		fmt.Sprintf("Minified %s from %d to %d bytes", kind, result.OriginalSize, result.MinifiedSize),
		map[string]any{"kind": kind, "originalSize": result.OriginalSize, "minifiedSize": result.MinifiedSize})

	return result, nil
}

// 确保 textService 实现了 TextService 接口
var _ TextService = (*textService)(nil)
