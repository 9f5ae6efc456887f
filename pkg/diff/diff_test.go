package diff

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdentical(t *testing.T) {
	result := Compare("same text", "same text", true)

	assert.True(t, result.Identical)
	require.Len(t, result.Ops, 1)
	assert.Equal(t, "equal", result.Ops[0].Type)
	assert.Equal(t, "same text", result.Ops[0].Text)
	assert.Empty(t, result.Patch)
}

func TestCompareCharMode(t *testing.T) {
	result := Compare("the quick fox", "the slow fox", false)

	assert.False(t, result.Identical)

	var hasInsert, hasDelete bool
	for _, op := range result.Ops {
		switch op.Type {
		case "insert":
			hasInsert = true
		case "delete":
			hasDelete = true
		}
	}
	assert.True(t, hasInsert)
	assert.True(t, hasDelete)
	assert.NotEmpty(t, result.Patch)
	assert.Contains(t, result.HTML, "<del")
	assert.Contains(t, result.HTML, "<ins")
}

func TestCompareLineMode(t *testing.T) {
	text1 := "alpha\nbeta\ngamma\n"
	text2 := "alpha\nBETA\ngamma\n"

	result := Compare(text1, text2, true)

	assert.False(t, result.Identical)
	// 行模式下操作按整行切分
	for _, op := range result.Ops {
		if op.Type == "delete" {
			assert.Equal(t, "beta\n", op.Text)
		}
		if op.Type == "insert" {
			assert.Equal(t, "BETA\n", op.Text)
		}
	}
}

// 验证差异操作可以无损还原两侧文本
func TestCompareReconstruction(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("ops reconstruct both sides", prop.ForAll(
		func(text1, text2 string) bool {
			result := Compare(text1, text2, false)

			var left, right strings.Builder
			for _, op := range result.Ops {
				switch op.Type {
				case "equal":
					left.WriteString(op.Text)
					right.WriteString(op.Text)
				case "delete":
					left.WriteString(op.Text)
				case "insert":
					right.WriteString(op.Text)
				}
			}

			return left.String() == text1 && right.String() == text2
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("identical inputs produce no edits", prop.ForAll(
		func(text string) bool {
			result := Compare(text, text, true)
			if !result.Identical {
				return false
			}
			for _, op := range result.Ops {
				if op.Type != "equal" {
					return false
				}
			}
			return true
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
