// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
)

// RegexService 正则测试服务接口
type RegexService interface {
	// Test 执行匹配, 返回匹配文本/偏移/捕获组
	Test(ctx context.Context, uid int64, params *dto.RegexTestRequest) (*dto.RegexTestDTO, error)

	// Replace 执行替换
	Replace(ctx context.Context, uid int64, params *dto.RegexReplaceRequest) (*dto.RegexReplaceDTO, error)
}

// regexService 实现 RegexService 接口
type regexService struct {
	historyService HistoryService
}

// NewRegexService 创建 RegexService 实例
func NewRegexService(historySvc HistoryService) RegexService {
	return &regexService{historyService: historySvc}
}

// compilePattern 编译带标志的表达式
// i m s 转成内联组, g 决定是否全局匹配; 编译错误原样返回
func compilePattern(pattern string, flags string) (*regexp.Regexp, bool, error) {
	var inline strings.Builder
	global := false
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		case 'g':
			global = true
		default:
			return nil, false, fmt.Errorf("unknown flag %q, supported flags are i m s g", string(f))
		}
	}

	expr := pattern
	if inline.Len() > 0 {
		expr = "(?" + inline.String() + ")" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false, err
	}
	return re, global, nil
}

// Test 执行匹配, 返回匹配文本/偏移/捕获组
func (s *regexService) Test(ctx context.Context, uid int64, params *dto.RegexTestRequest) (*dto.RegexTestDTO, error) {
	re, global, err := compilePattern(params.Pattern, params.Flags)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	limit := 1
	if global {
		limit = -1
	}

	indexes := re.FindAllStringSubmatchIndex(params.Text, limit)
	matches := make([]dto.RegexMatchDTO, 0, len(indexes))
	for _, idx := range indexes {
		m := dto.RegexMatchDTO{
			Match:  params.Text[idx[0]:idx[1]],
			Index:  idx[0],
			Groups: make([]string, 0, len(idx)/2-1),
		}
		// 编号捕获组从 1 开始, 未参与匹配的组保留为空串
		for g := 1; g < len(idx)/2; g++ {
			if idx[2*g] < 0 {
				m.Groups = append(m.Groups, "")
			} else {
				m.Groups = append(m.Groups, params.Text[idx[2*g]:idx[2*g+1]])
			}
		}
		matches = append(matches, m)
	}

	result := &dto.RegexTestDTO{
		Matches: matches,
		Count:   len(matches),
	}

	s.historyService.Record(ctx, uid, ToolRegexTester,
		fmt.Sprintf("Tested /%s/%s with %d matches", previewText(params.Pattern), params.Flags, result.Count),
		map[string]any{"pattern": params.Pattern, "flags": params.Flags, "text": previewText(params.Text), "count": result.Count})

	return result, nil
}

// Replace 执行替换
func (s *regexService) Replace(ctx context.Context, uid int64, params *dto.RegexReplaceRequest) (*dto.RegexReplaceDTO, error) {
	re, global, err := compilePattern(params.Pattern, params.Flags)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	var replaced string
	var count int
	if global {
		count = len(re.FindAllStringIndex(params.Text, -1))
		replaced = re.ReplaceAllString(params.Text, params.Replacement)
	} else {
		// 非全局只替换第一处
		if idx := re.FindStringSubmatchIndex(params.Text); idx != nil {
			count = 1
			expanded := re.ExpandString(nil, params.Replacement, params.Text, idx)
			replaced = params.Text[:idx[0]] + string(expanded) + params.Text[idx[1]:]
		} else {
			replaced = params.Text
		}
	}

	result := &dto.RegexReplaceDTO{
		Result: replaced,
		Count:  count,
	}

	s.historyService.Record(ctx, uid, ToolRegexTester,
		fmt.Sprintf("Replaced %d occurrences of /%s/%s", count, previewText(params.Pattern), params.Flags),
		map[string]any{"pattern": params.Pattern, "flags": params.Flags, "replacement": previewText(params.Replacement), "count": count})

	return result, nil
}

// 确保 regexService 实现了 RegexService 接口
var _ RegexService = (*regexService)(nil)
