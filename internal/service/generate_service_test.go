package service

import (
	"context"
	"strings"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 每个启用的字符类在每个密码里至少出现一次

func TestProperty_PasswordClassGuarantee(t *testing.T) {
	svc := NewGenerateService(&historyStub{}, &outputStub{})
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every enabled class appears at least once", prop.ForAll(
		func(length int, excludeAmbiguous bool) bool {
			result, err := svc.Password(ctx, 0, &dto.PasswordGenerateRequest{
				Length:           length,
				Uppercase:        true,
				Lowercase:        true,
				Digits:           true,
				Symbols:          true,
				ExcludeAmbiguous: excludeAmbiguous,
				Count:            3,
			})
			if err != nil {
				t.Logf("password failed: %v", err)
				return false
			}

			for _, p := range result.Passwords {
				if len(p) != length {
					return false
				}
				if !strings.ContainsAny(p, passwordUppercase) ||
					!strings.ContainsAny(p, passwordLowercase) ||
					!strings.ContainsAny(p, passwordDigits) ||
					!strings.ContainsAny(p, passwordSymbols) {
					return false
				}
				if excludeAmbiguous && strings.ContainsAny(p, passwordAmbiguous) {
					return false
				}
			}
			return true
		},
		gen.IntRange(4, 64),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestPasswordDefaults(t *testing.T) {
	svc := NewGenerateService(&historyStub{}, &outputStub{})

	// 全部开关关闭时默认大小写加数字
	result, err := svc.Password(context.Background(), 0, &dto.PasswordGenerateRequest{})
	require.NoError(t, err)
	require.Len(t, result.Passwords, 1)

	p := result.Passwords[0]
	assert.Len(t, p, 16)
	assert.False(t, strings.ContainsAny(p, passwordSymbols))
	assert.Equal(t, 16, result.Length)
	assert.NotEmpty(t, result.Strength)
	assert.Greater(t, result.EntropyBits, 0.0)
}

func TestPasswordRejectsBadLength(t *testing.T) {
	svc := NewGenerateService(&historyStub{}, &outputStub{})

	for _, length := range []int{1, 3, 129} {
		_, err := svc.Password(context.Background(), 0, &dto.PasswordGenerateRequest{Length: length})
		assert.Error(t, err, "length %d", length)
	}
}

func TestPasswordCountIsCapped(t *testing.T) {
	svc := NewGenerateService(&historyStub{}, &outputStub{})

	result, err := svc.Password(context.Background(), 0, &dto.PasswordGenerateRequest{Count: 1000})
	require.NoError(t, err)
	assert.Len(t, result.Passwords, 100)
}

func TestQrcodeGenerate(t *testing.T) {
	svc := NewGenerateService(&historyStub{}, &outputStub{})

	result, err := svc.Qrcode(context.Background(), 0, &dto.QrcodeGenerateRequest{Content: "https://example.com"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.DataURL, "data:image/png;base64,"))
	assert.Equal(t, 256, result.Size)
	assert.Equal(t, "M", result.Level)
}

func TestQrcodeStoresOutputFile(t *testing.T) {
	output := &outputStub{}
	svc := NewGenerateService(&historyStub{}, output)

	result, err := svc.Qrcode(context.Background(), 0, &dto.QrcodeGenerateRequest{Content: "hello", Store: true})
	require.NoError(t, err)
	require.NotNil(t, result.File)

	require.Len(t, output.stored, 1)
	assert.Equal(t, ToolQrcode, output.stored[0].toolID)
	assert.Equal(t, "image/png", output.stored[0].contentType)
}

func TestQrcodeRejectsBadParams(t *testing.T) {
	svc := NewGenerateService(&historyStub{}, &outputStub{})
	ctx := context.Background()

	_, err := svc.Qrcode(ctx, 0, &dto.QrcodeGenerateRequest{Content: "x", Size: 32})
	assert.Error(t, err)

	_, err = svc.Qrcode(ctx, 0, &dto.QrcodeGenerateRequest{Content: "x", Size: 2048})
	assert.Error(t, err)

	_, err = svc.Qrcode(ctx, 0, &dto.QrcodeGenerateRequest{Content: "x", Level: "Z"})
	assert.Error(t, err)

	_, err = svc.Qrcode(ctx, 0, &dto.QrcodeGenerateRequest{Content: strings.Repeat("徽", 2049)})
	assert.Error(t, err)
}

func TestLoremUnits(t *testing.T) {
	svc := NewGenerateService(&historyStub{}, &outputStub{})
	ctx := context.Background()

	words, err := svc.Lorem(ctx, 0, &dto.LoremGenerateRequest{Unit: "words", Count: 5})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(words.Text), 5)

	sentences, err := svc.Lorem(ctx, 0, &dto.LoremGenerateRequest{Unit: "sentences", Count: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, sentences.Text)

	// 默认按段落生成
	paragraphs, err := svc.Lorem(ctx, 0, &dto.LoremGenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "paragraphs", paragraphs.Unit)
	assert.NotEmpty(t, paragraphs.Text)

	_, err = svc.Lorem(ctx, 0, &dto.LoremGenerateRequest{Unit: "pages"})
	assert.Error(t, err)
}

func TestLoremClassicStart(t *testing.T) {
	svc := NewGenerateService(&historyStub{}, &outputStub{})

	result, err := svc.Lorem(context.Background(), 0, &dto.LoremGenerateRequest{Unit: "sentences", Count: 1, ClassicStart: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Text, "Lorem ipsum dolor sit amet"))

	words, err := svc.Lorem(context.Background(), 0, &dto.LoremGenerateRequest{Unit: "words", Count: 3, ClassicStart: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(words.Text, "lorem ipsum dolor sit amet"))
}
