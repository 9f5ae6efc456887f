// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/robfig/cron/v3"
)

// 下次执行时间数量上限
const cronMaxNextRuns = 20

// cronFieldNames 五段表达式的字段名
var cronFieldNames = []string{"minute", "hour", "day of month", "month", "day of week"}

// cronFieldNouns 字段在解释语句里的名词
var cronFieldNouns = []string{"minute", "hour", "day of the month", "month", "day of the week"}

var cronMonthNames = map[string]string{
	"1": "January", "2": "February", "3": "March", "4": "April",
	"5": "May", "6": "June", "7": "July", "8": "August",
	"9": "September", "10": "October", "11": "November", "12": "December",
	"JAN": "January", "FEB": "February", "MAR": "March", "APR": "April",
	"MAY": "May", "JUN": "June", "JUL": "July", "AUG": "August",
	"SEP": "September", "OCT": "October", "NOV": "November", "DEC": "December",
}

var cronDowNames = map[string]string{
	"0": "Sunday", "1": "Monday", "2": "Tuesday", "3": "Wednesday",
	"4": "Thursday", "5": "Friday", "6": "Saturday", "7": "Sunday",
	"SUN": "Sunday", "MON": "Monday", "TUE": "Tuesday", "WED": "Wednesday",
	"THU": "Thursday", "FRI": "Friday", "SAT": "Saturday",
}

// CronService Cron 表达式解析服务接口
type CronService interface {
	// Parse 解析五段表达式, 生成逐字段解释和接下来的执行时间
	Parse(ctx context.Context, uid int64, params *dto.CronParseRequest) (*dto.CronParseDTO, error)
}

// cronService 实现 CronService 接口
type cronService struct {
	historyService HistoryService
	parser         cron.Parser
}

// NewCronService 创建 CronService 实例
func NewCronService(historySvc HistoryService) CronService {
	return &cronService{
		historyService: historySvc,
		parser:         cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

// cronValueName 把字段值翻译成可读名, 月份和星期使用英文名
func cronValueName(fieldIdx int, value string) string {
	upper := strings.ToUpper(value)
	switch fieldIdx {
	case 3:
		if name, ok := cronMonthNames[upper]; ok {
			return name
		}
	case 4:
		if name, ok := cronDowNames[upper]; ok {
			return name
		}
	}
	return value
}

// cronPartClause 解释单个字段片段: * a a-b */n a-b/n
func cronPartClause(fieldIdx int, part string) string {
	noun := cronFieldNouns[fieldIdx]

	base := part
	step := ""
	if idx := strings.Index(part, "/"); idx >= 0 {
		base = part[:idx]
		step = part[idx+1:]
	}

	if base == "*" {
		if step != "" {
			return fmt.Sprintf("every %s %ss", step, noun)
		}
		return fmt.Sprintf("every %s", noun)
	}

	if idx := strings.Index(base, "-"); idx >= 0 {
		from := cronValueName(fieldIdx, base[:idx])
		to := cronValueName(fieldIdx, base[idx+1:])
		if step != "" {
			return fmt.Sprintf("every %s %ss from %s through %s", step, noun, from, to)
		}
		return fmt.Sprintf("from %s %s through %s", noun, from, to)
	}

	value := cronValueName(fieldIdx, base)
	if step != "" {
		return fmt.Sprintf("every %s %ss starting at %s", step, noun, value)
	}
	switch fieldIdx {
	case 3:
		return fmt.Sprintf("in %s", value)
	case 4:
		return fmt.Sprintf("on %s", value)
	default:
		return fmt.Sprintf("at %s %s", noun, value)
	}
}

// cronFieldClause 解释完整字段, 逗号列表拼接为 and
func cronFieldClause(fieldIdx int, field string) string {
	parts := strings.Split(field, ",")
	clauses := make([]string, 0, len(parts))
	for _, p := range parts {
		clauses = append(clauses, cronPartClause(fieldIdx, p))
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return strings.Join(clauses[:len(clauses)-1], ", ") + " and " + clauses[len(clauses)-1]
}

// Parse 解析五段表达式, 生成逐字段解释和接下来的执行时间
func (s *cronService) Parse(ctx context.Context, uid int64, params *dto.CronParseRequest) (*dto.CronParseDTO, error) {
	expression := strings.TrimSpace(params.Expression)
	fields := strings.Fields(expression)
	if len(fields) != 5 {
		return nil, code.ErrorToolExecuteFailed.WithDetails(fmt.Sprintf("expected exactly 5 fields, found %d: %s", len(fields), expression))
	}

	schedule, err := s.parser.Parse(expression)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	zone := params.Timezone
	if zone == "" {
		zone = "UTC"
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	count := params.Count
	if count <= 0 {
		count = 5
	}
	if count > cronMaxNextRuns {
		count = cronMaxNextRuns
	}

	fieldDTOs := make([]dto.CronFieldDTO, 0, 5)
	clauses := make([]string, 0, 5)
	for i, field := range fields {
		clause := cronFieldClause(i, field)
		fieldDTOs = append(fieldDTOs, dto.CronFieldDTO{
			Field:      cronFieldNames[i],
			Expression: field,
			Clause:     clause,
		})
		clauses = append(clauses, clause)
	}

	nextRuns := make([]string, 0, count)
	t := time.Now().In(loc)
	for i := 0; i < count; i++ {
		t = schedule.Next(t)
		if t.IsZero() {
			break
		}
		nextRuns = append(nextRuns, t.Format(time.RFC3339))
	}

	result := &dto.CronParseDTO{
		Expression:  expression,
		Description: "Runs " + strings.Join(clauses, ", "),
		Fields:      fieldDTOs,
		NextRuns:    nextRuns,
		Timezone:    zone,
	}

	s.historyService.Record(ctx, uid, ToolCronParser,
		fmt.Sprintf("Parsed cron %s", expression),
		map[string]any{"expression": expression, "timezone": zone})

	return result, nil
}

// 确保 cronService 实现了 CronService 接口
var _ CronService = (*cronService)(nil)
