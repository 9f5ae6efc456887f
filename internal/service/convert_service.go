// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/gookit/goutil/strutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// commonTimezones 常用时区列表, ListZones 返回顺序
var commonTimezones = []string{
	"UTC",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Sao_Paulo",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Moscow",
	"Africa/Cairo",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Shanghai",
	"Asia/Singapore",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Pacific/Auckland",
}

// ConvertService 转换类工具服务接口
// 覆盖进制转换 / 时区换算 / 时间戳转换 / 命名风格转换
type ConvertService interface {
	// NumberBase 任意精度进制转换
	NumberBase(ctx context.Context, uid int64, params *dto.NumberBaseConvertRequest) (*dto.NumberBaseConvertDTO, error)

	// Timezone 将一个时刻换算到多个时区
	Timezone(ctx context.Context, uid int64, params *dto.TimezoneConvertRequest) (*dto.TimezoneConvertDTO, error)

	// ListZones 常用时区列表和当前偏移
	ListZones(ctx context.Context) (*dto.TimezoneListDTO, error)

	// Timestamp 时间戳与可读时间互转
	Timestamp(ctx context.Context, uid int64, params *dto.TimestampConvertRequest) (*dto.TimestampConvertDTO, error)

	// Case 命名风格转换, 一次返回全部风格
	Case(ctx context.Context, uid int64, params *dto.CaseConvertRequest) (*dto.CaseConvertDTO, error)
}

// convertService 实现 ConvertService 接口
type convertService struct {
	historyService HistoryService
}

// NewConvertService 创建 ConvertService 实例
func NewConvertService(historySvc HistoryService) ConvertService {
	return &convertService{historyService: historySvc}
}

// formatInBase 按进制输出, 大于 10 的进制用大写数字
func formatInBase(n *big.Int, base int) string {
	s := n.Text(base)
	if base > 10 {
		return strings.ToUpper(s)
	}
	return s
}

// hasBasePrefix 判断输入是否带 0x/0o/0b 前缀, 符号后判断
func hasBasePrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

// NumberBase 任意精度进制转换
func (s *convertService) NumberBase(ctx context.Context, uid int64, params *dto.NumberBaseConvertRequest) (*dto.NumberBaseConvertDTO, error) {
	input := strings.TrimSpace(params.Value)
	fromBase := params.FromBase
	if fromBase == 0 {
		fromBase = 10
	}
	if fromBase < 2 || fromBase > 36 {
		return nil, code.ErrorInvalidParams.WithDetails("fromBase must be between 2 and 36")
	}
	if params.TargetBase != 0 && (params.TargetBase < 2 || params.TargetBase > 36) {
		return nil, code.ErrorInvalidParams.WithDetails("targetBase must be between 2 and 36")
	}

	n := new(big.Int)
	var ok bool
	if hasBasePrefix(input) {
		// SetString base 0 识别 0x/0o/0b 前缀
		_, ok = n.SetString(input, 0)
	} else {
		_, ok = n.SetString(input, fromBase)
	}
	if !ok {
		return nil, code.ErrorToolExecuteFailed.WithDetails(fmt.Sprintf("%q is not a valid base %d number", input, fromBase))
	}

	result := &dto.NumberBaseConvertDTO{
		Input:    input,
		FromBase: fromBase,
		Decimal:  n.Text(10),
		Binary:   n.Text(2),
		Octal:    n.Text(8),
		Hex:      formatInBase(n, 16),
	}
	if params.TargetBase != 0 {
		result.Target = formatInBase(n, params.TargetBase)
		result.TargetBase = params.TargetBase
	}

	s.historyService.Record(ctx, uid, ToolNumberBase,
		fmt.Sprintf("Converted %s from base %d", previewText(input), fromBase),
		map[string]any{"value": previewText(input), "fromBase": fromBase, "decimal": previewText(result.Decimal)})

	return result, nil
}

// instantInZone 将时刻渲染到指定时区
func instantInZone(t time.Time, zone string) (dto.TimezoneInstantDTO, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return dto.TimezoneInstantDTO{}, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	local := t.In(loc)
	abbr, offset := local.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	return dto.TimezoneInstantDTO{
		Zone:         zone,
		Abbreviation: abbr,
		Offset:       fmt.Sprintf("%s%02d:%02d", sign, offset/3600, (offset%3600)/60),
		Time:         local.Format(time.RFC3339),
		Unix:         local.Unix(),
		IsDST:        local.IsDST(),
	}, nil
}

// parseInstant 解析时间输入: now / unix 秒 / RFC3339 / 常见布局
func parseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "now") {
		return time.Now(), nil
	}

	if unix, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(unix, 0), nil
	}

	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as unix seconds or RFC3339 time", value)
}

// Timezone 将一个时刻换算到多个时区
func (s *convertService) Timezone(ctx context.Context, uid int64, params *dto.TimezoneConvertRequest) (*dto.TimezoneConvertDTO, error) {
	fromZone := params.FromZone
	if fromZone == "" {
		fromZone = "UTC"
	}
	fromLoc, err := time.LoadLocation(fromZone)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	instant, err := parseInstant(params.Time, fromLoc)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	source, err := instantInZone(instant, fromZone)
	if err != nil {
		return nil, err
	}

	toZones := params.ToZones
	if len(toZones) == 0 {
		toZones = []string{"UTC"}
	}
	results := make([]dto.TimezoneInstantDTO, 0, len(toZones))
	for _, zone := range toZones {
		r, err := instantInZone(instant, zone)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	s.historyService.Record(ctx, uid, ToolTimezone,
		fmt.Sprintf("Converted time from %s to %d zones", fromZone, len(results)),
		map[string]any{"time": params.Time, "fromZone": fromZone, "toZones": toZones})

	return &dto.TimezoneConvertDTO{Source: source, Results: results}, nil
}

// ListZones 常用时区列表和当前偏移
func (s *convertService) ListZones(ctx context.Context) (*dto.TimezoneListDTO, error) {
	now := time.Now()
	zones := make([]dto.TimezoneInstantDTO, 0, len(commonTimezones))
	for _, zone := range commonTimezones {
		r, err := instantInZone(now, zone)
		if err != nil {
			continue
		}
		zones = append(zones, r)
	}
	return &dto.TimezoneListDTO{Zones: zones}, nil
}

// relativeTime 渲染相对时间, 过去用 ago 未来用 in
func relativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}

	var phrase string
	switch {
	case d < 10*time.Second:
		return "just now"
	case d < time.Minute:
		phrase = fmt.Sprintf("%d seconds", int(d.Seconds()))
	case d < 2*time.Minute:
		phrase = "a minute"
	case d < time.Hour:
		phrase = fmt.Sprintf("%d minutes", int(d.Minutes()))
	case d < 2*time.Hour:
		phrase = "an hour"
	case d < 24*time.Hour:
		phrase = fmt.Sprintf("%d hours", int(d.Hours()))
	case d < 48*time.Hour:
		phrase = "a day"
	default:
		phrase = fmt.Sprintf("%d days", int(d.Hours()/24))
	}

	if future {
		return "in " + phrase
	}
	return phrase + " ago"
}

// Timestamp 时间戳与可读时间互转
func (s *convertService) Timestamp(ctx context.Context, uid int64, params *dto.TimestampConvertRequest) (*dto.TimestampConvertDTO, error) {
	zone := params.Timezone
	if zone == "" {
		zone = "UTC"
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	value := strings.TrimSpace(params.Value)
	var instant time.Time
	if value == "" || strings.EqualFold(value, "now") {
		instant = time.Now()
	} else if n, numErr := strconv.ParseInt(value, 10, 64); numErr == nil {
		switch strings.ToLower(params.Unit) {
		case "", "s":
			instant = time.Unix(n, 0)
		case "ms":
			instant = time.UnixMilli(n)
		case "ns":
			instant = time.Unix(0, n)
		default:
			return nil, code.ErrorInvalidParams.WithDetails("unit must be s, ms or ns")
		}
	} else {
		instant, err = parseInstant(value, loc)
		if err != nil {
			return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
		}
	}

	local := instant.In(loc)
	result := &dto.TimestampConvertDTO{
		Unix:      instant.Unix(),
		UnixMilli: instant.UnixMilli(),
		UnixNano:  instant.UnixNano(),
		Rfc3339:   local.Format(time.RFC3339),
		Relative:  relativeTime(instant, time.Now()),
		Timezone:  zone,
	}
	if params.Layout != "" {
		result.Formatted = local.Format(params.Layout)
	}

	s.historyService.Record(ctx, uid, ToolTimestamp,
		fmt.Sprintf("Converted timestamp %d", result.Unix),
		map[string]any{"value": value, "unix": result.Unix, "timezone": zone})

	return result, nil
}

// caseTokens 把任意风格的输入拆成小写单词
// 分隔符和驼峰边界都是切分点
func caseTokens(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r):
			// 大写字母开启新单词, 连续大写视为缩写保持在一起
			if unicode.IsUpper(r) && current.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					flush()
				}
			}
			current.WriteRune(r)
		case unicode.IsDigit(r):
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// Case 命名风格转换, 一次返回全部风格
func (s *convertService) Case(ctx context.Context, uid int64, params *dto.CaseConvertRequest) (*dto.CaseConvertDTO, error) {
	tokens := caseTokens(params.Text)
	if len(tokens) == 0 {
		return nil, code.ErrorToolExecuteFailed.WithDetails("input contains no letters or digits")
	}

	pascalParts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		pascalParts = append(pascalParts, strutil.UpperFirst(t))
	}

	spaced := strings.Join(tokens, " ")
	result := &dto.CaseConvertDTO{
		Snake:    strings.Join(tokens, "_"),
		Camel:    tokens[0] + strings.Join(pascalParts[1:], ""),
		Pascal:   strings.Join(pascalParts, ""),
		Kebab:    strings.Join(tokens, "-"),
		Title:    cases.Title(language.English).String(spaced),
		Upper:    strings.ToUpper(spaced),
		Lower:    spaced,
		Constant: strings.ToUpper(strings.Join(tokens, "_")),
	}

	s.historyService.Record(ctx, uid, ToolCaseConvert,
		fmt.Sprintf("Converted %s to 8 naming styles", previewText(params.Text)),
		map[string]any{"text": previewText(params.Text), "snake": previewText(result.Snake)})

	return result, nil
}

// 确保 convertService 实现了 ConvertService 接口
var _ ConvertService = (*convertService)(nil)
