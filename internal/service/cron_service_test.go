package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 工作日白天每 15 分钟的表达式解析出五段解释和递增的执行时间

func TestProperty_CronParseWorkdaySchedule(t *testing.T) {
	svc := NewCronService(&historyStub{})

	result, err := svc.Parse(context.Background(), 0, &dto.CronParseRequest{
		Expression: "*/15 9-17 * * 1-5",
		Count:      5,
	})
	require.NoError(t, err)

	require.Len(t, result.Fields, 5)
	for _, field := range result.Fields {
		assert.NotEmpty(t, field.Clause, "field %s has empty clause", field.Field)
	}
	assert.NotEmpty(t, result.Description)

	require.Len(t, result.NextRuns, 5)
	var prev time.Time
	for i, raw := range result.NextRuns {
		run, err := time.Parse(time.RFC3339, raw)
		require.NoError(t, err)

		if i > 0 {
			assert.True(t, run.After(prev), "next runs must be strictly increasing")
		}
		prev = run

		// 命中调度: 分钟是 15 的倍数, 小时 9..17, 周一到周五
		assert.Zero(t, run.Minute()%15, "minute %d not on a 15 minute step", run.Minute())
		assert.GreaterOrEqual(t, run.Hour(), 9)
		assert.LessOrEqual(t, run.Hour(), 17)
		dow := run.Weekday()
		assert.True(t, dow >= time.Monday && dow <= time.Friday, "run on %s", dow)
	}
}

func TestCronParseRejectsWrongFieldCount(t *testing.T) {
	svc := NewCronService(&historyStub{})
	ctx := context.Background()

	for _, expression := range []string{"* * * *", "* * * * * *", ""} {
		_, err := svc.Parse(ctx, 0, &dto.CronParseRequest{Expression: expression})
		require.Error(t, err, "expression %q", expression)
	}
}

func TestCronParseRejectsInvalidValues(t *testing.T) {
	svc := NewCronService(&historyStub{})

	_, err := svc.Parse(context.Background(), 0, &dto.CronParseRequest{Expression: "61 * * * *"})
	require.Error(t, err)
}

func TestCronParseTimezone(t *testing.T) {
	svc := NewCronService(&historyStub{})
	ctx := context.Background()

	result, err := svc.Parse(ctx, 0, &dto.CronParseRequest{
		Expression: "0 12 * * *",
		Count:      1,
		Timezone:   "Asia/Shanghai",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", result.Timezone)

	run, err := time.Parse(time.RFC3339, result.NextRuns[0])
	require.NoError(t, err)
	assert.Equal(t, 12, run.Hour())

	_, err = svc.Parse(ctx, 0, &dto.CronParseRequest{Expression: "0 12 * * *", Timezone: "Mars/Olympus"})
	require.Error(t, err)
}

func TestCronParseDefaultsToFiveRuns(t *testing.T) {
	svc := NewCronService(&historyStub{})

	result, err := svc.Parse(context.Background(), 0, &dto.CronParseRequest{Expression: "30 3 * * *"})
	require.NoError(t, err)
	assert.Len(t, result.NextRuns, 5)
	assert.Equal(t, "UTC", result.Timezone)
}
