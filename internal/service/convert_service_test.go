package service

import (
	"context"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 255 的各进制表示

func TestNumberBaseConvert255(t *testing.T) {
	svc := NewConvertService(&historyStub{})

	result, err := svc.NumberBase(context.Background(), 0, &dto.NumberBaseConvertRequest{Value: "255"})
	require.NoError(t, err)

	assert.Equal(t, "255", result.Decimal)
	assert.Equal(t, "FF", result.Hex)
	assert.Equal(t, "377", result.Octal)
	assert.Equal(t, "11111111", result.Binary)
	assert.Equal(t, 10, result.FromBase)
}

func TestNumberBasePrefixesAndTargets(t *testing.T) {
	svc := NewConvertService(&historyStub{})
	ctx := context.Background()

	// 0x 前缀覆盖 fromBase
	result, err := svc.NumberBase(ctx, 0, &dto.NumberBaseConvertRequest{Value: "0xFF"})
	require.NoError(t, err)
	assert.Equal(t, "255", result.Decimal)

	// 显式 fromBase
	result, err = svc.NumberBase(ctx, 0, &dto.NumberBaseConvertRequest{Value: "FF", FromBase: 16})
	require.NoError(t, err)
	assert.Equal(t, "255", result.Decimal)

	// 额外目标进制
	result, err = svc.NumberBase(ctx, 0, &dto.NumberBaseConvertRequest{Value: "255", TargetBase: 36})
	require.NoError(t, err)
	assert.Equal(t, "73", result.Target)
	assert.Equal(t, 36, result.TargetBase)

	// 负数
	result, err = svc.NumberBase(ctx, 0, &dto.NumberBaseConvertRequest{Value: "-255"})
	require.NoError(t, err)
	assert.Equal(t, "-FF", result.Hex)

	// 超大数走 big.Int, 不丢精度
	result, err = svc.NumberBase(ctx, 0, &dto.NumberBaseConvertRequest{Value: "340282366920938463463374607431768211456"})
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000000000000000000", result.Hex)
}

func TestNumberBaseRejectsInvalidInput(t *testing.T) {
	svc := NewConvertService(&historyStub{})
	ctx := context.Background()

	_, err := svc.NumberBase(ctx, 0, &dto.NumberBaseConvertRequest{Value: "22", FromBase: 2})
	require.Error(t, err)

	_, err = svc.NumberBase(ctx, 0, &dto.NumberBaseConvertRequest{Value: "10", FromBase: 1})
	require.Error(t, err)

	_, err = svc.NumberBase(ctx, 0, &dto.NumberBaseConvertRequest{Value: "10", TargetBase: 37})
	require.Error(t, err)
}

func TestTimestampConvert(t *testing.T) {
	svc := NewConvertService(&historyStub{})
	ctx := context.Background()

	// Unix 秒输入
	result, err := svc.Timestamp(ctx, 0, &dto.TimestampConvertRequest{Value: "1700000000"})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), result.Unix)
	assert.Equal(t, int64(1700000000000), result.UnixMilli)
	assert.Equal(t, "2023-11-14T22:13:20Z", result.Rfc3339)

	// 毫秒单位
	result, err = svc.Timestamp(ctx, 0, &dto.TimestampConvertRequest{Value: "1700000000000", Unit: "ms"})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), result.Unix)

	// RFC3339 文本输入加自定义格式
	result, err = svc.Timestamp(ctx, 0, &dto.TimestampConvertRequest{
		Value:  "2023-11-14T22:13:20Z",
		Layout: "2006-01-02",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), result.Unix)
	assert.Equal(t, "2023-11-14", result.Formatted)

	// 时区渲染
	result, err = svc.Timestamp(ctx, 0, &dto.TimestampConvertRequest{
		Value:    "1700000000",
		Timezone: "Asia/Shanghai",
	})
	require.NoError(t, err)
	assert.Equal(t, "2023-11-15T06:13:20+08:00", result.Rfc3339)

	_, err = svc.Timestamp(ctx, 0, &dto.TimestampConvertRequest{Value: "10", Unit: "weeks"})
	require.Error(t, err)
}

func TestTimezoneConvert(t *testing.T) {
	svc := NewConvertService(&historyStub{})

	result, err := svc.Timezone(context.Background(), 0, &dto.TimezoneConvertRequest{
		Time:     "1700000000",
		FromZone: "UTC",
		ToZones:  []string{"Asia/Shanghai", "America/New_York"},
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "Asia/Shanghai", result.Results[0].Zone)
	assert.Equal(t, "+08:00", result.Results[0].Offset)
	assert.Equal(t, int64(1700000000), result.Results[0].Unix)
	// 11 月纽约已回到标准时
	assert.Equal(t, "-05:00", result.Results[1].Offset)
}

func TestCaseConvert(t *testing.T) {
	svc := NewConvertService(&historyStub{})

	result, err := svc.Case(context.Background(), 0, &dto.CaseConvertRequest{Text: "dev toolbox service"})
	require.NoError(t, err)

	assert.Equal(t, "dev_toolbox_service", result.Snake)
	assert.Equal(t, "devToolboxService", result.Camel)
	assert.Equal(t, "DevToolboxService", result.Pascal)
	assert.Equal(t, "dev-toolbox-service", result.Kebab)
	assert.Equal(t, "DEV_TOOLBOX_SERVICE", result.Constant)

	// 驼峰输入按词边界拆开
	result, err = svc.Case(context.Background(), 0, &dto.CaseConvertRequest{Text: "parseHTTPResponse"})
	require.NoError(t, err)
	assert.Equal(t, "parse_http_response", result.Snake)
}
