package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRangesSinglesAndRanges(t *testing.T) {
	pages, err := parsePageRanges("1,3-5,8", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 5, 8}, pages)
}

// 重叠区间去重后升序输出

func TestParsePageRangesDeduplicates(t *testing.T) {
	pages, err := parsePageRanges("3-5,4,1-3", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pages)
}

// 越界页码裁剪到文档页数, 不报错

func TestParsePageRangesClampsToPageCount(t *testing.T) {
	pages, err := parsePageRanges("0,8-99", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 8, 9, 10}, pages)
}

func TestParsePageRangesWhitespaceTolerant(t *testing.T) {
	pages, err := parsePageRanges(" 2 , 4 - 6 ", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 5, 6}, pages)
}

func TestParsePageRangesRejectsMalformedSpec(t *testing.T) {
	for _, spec := range []string{"", "1,,3", "a", "1-b", "5-3"} {
		_, err := parsePageRanges(spec, 10)
		assert.Error(t, err, "spec %q", spec)
	}
}
