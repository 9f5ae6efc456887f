package service

import (
	"context"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 全局匹配返回全部命中并带字节偏移

func TestProperty_RegexGlobalMatchesWithOffsets(t *testing.T) {
	svc := NewRegexService(&historyStub{})

	result, err := svc.Test(context.Background(), 0, &dto.RegexTestRequest{
		Pattern: "[a-z]+",
		Flags:   "g",
		Text:    "abc 123 def",
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)

	assert.Equal(t, "abc", result.Matches[0].Match)
	assert.Equal(t, 0, result.Matches[0].Index)
	assert.Equal(t, "def", result.Matches[1].Match)
	assert.Equal(t, 8, result.Matches[1].Index)
}

func TestRegexTestWithoutGlobalStopsAtFirst(t *testing.T) {
	svc := NewRegexService(&historyStub{})

	result, err := svc.Test(context.Background(), 0, &dto.RegexTestRequest{
		Pattern: "[a-z]+",
		Text:    "abc 123 def",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "abc", result.Matches[0].Match)
}

func TestRegexTestCaptureGroups(t *testing.T) {
	svc := NewRegexService(&historyStub{})

	result, err := svc.Test(context.Background(), 0, &dto.RegexTestRequest{
		Pattern: `(\w+)@(\w+)\.com`,
		Flags:   "g",
		Text:    "mail me at dev@example.com or ops@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, []string{"dev", "example"}, result.Matches[0].Groups)
	assert.Equal(t, []string{"ops", "example"}, result.Matches[1].Groups)
}

func TestRegexCaseInsensitiveFlag(t *testing.T) {
	svc := NewRegexService(&historyStub{})

	result, err := svc.Test(context.Background(), 0, &dto.RegexTestRequest{
		Pattern: "hello",
		Flags:   "ig",
		Text:    "Hello HELLO hello",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
}

func TestRegexRejectsUnknownFlagAndBadPattern(t *testing.T) {
	svc := NewRegexService(&historyStub{})
	ctx := context.Background()

	_, err := svc.Test(ctx, 0, &dto.RegexTestRequest{Pattern: "a", Flags: "x", Text: "a"})
	require.Error(t, err)

	_, err = svc.Test(ctx, 0, &dto.RegexTestRequest{Pattern: "(", Text: "a"})
	require.Error(t, err)
}

func TestRegexReplace(t *testing.T) {
	svc := NewRegexService(&historyStub{})
	ctx := context.Background()

	result, err := svc.Replace(ctx, 0, &dto.RegexReplaceRequest{
		Pattern:     `(\d+)`,
		Flags:       "g",
		Text:        "a1 b22 c333",
		Replacement: "[$1]",
	})
	require.NoError(t, err)
	assert.Equal(t, "a[1] b[22] c[333]", result.Result)
	assert.Equal(t, 3, result.Count)

	// 非全局只替换第一处
	result, err = svc.Replace(ctx, 0, &dto.RegexReplaceRequest{
		Pattern:     `\d+`,
		Text:        "a1 b22",
		Replacement: "#",
	})
	require.NoError(t, err)
	assert.Equal(t, "a# b22", result.Result)
	assert.Equal(t, 1, result.Count)
}
