package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 编码后解码必须还原任意可打印 ASCII 输入

func TestProperty_Base64RoundTrip(t *testing.T) {
	svc := NewBase64Service(&historyStub{}, &outputStub{})
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(s)) == s", prop.ForAll(
		func(text string, urlSafe bool) bool {
			encoded, err := svc.EncodeText(ctx, 0, &dto.Base64EncodeRequest{Text: text, URLSafe: urlSafe})
			if err != nil {
				t.Logf("encode failed: %v", err)
				return false
			}
			decoded, err := svc.DecodeText(ctx, 0, &dto.Base64DecodeRequest{Encoded: encoded.Encoded})
			if err != nil {
				t.Logf("decode failed: %v", err)
				return false
			}
			return decoded.Text == text
		},
		gen.SliceOf(gen.RuneRange(0x20, 0x7e)).Map(func(rs []rune) string { return string(rs) }),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestBase64EncodeText(t *testing.T) {
	hist := &historyStub{}
	svc := NewBase64Service(hist, &outputStub{})
	ctx := context.Background()

	result, err := svc.EncodeText(ctx, 7, &dto.Base64EncodeRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", result.Encoded)
	assert.Equal(t, 5, result.Size)
	assert.False(t, result.URLSafe)

	// URL 安全字符表
	result, err = svc.EncodeText(ctx, 7, &dto.Base64EncodeRequest{Text: "a?b>c", URLSafe: true})
	require.NoError(t, err)
	assert.Equal(t, base64.URLEncoding.EncodeToString([]byte("a?b>c")), result.Encoded)
	assert.True(t, result.URLSafe)

	assert.Len(t, hist.records, 2)
	assert.Equal(t, ToolBase64, hist.records[0].toolID)
}

func TestBase64DecodeTextRejectsInvalidInput(t *testing.T) {
	svc := NewBase64Service(&historyStub{}, &outputStub{})

	_, err := svc.DecodeText(context.Background(), 0, &dto.Base64DecodeRequest{Encoded: "!!! not base64 !!!"})
	require.Error(t, err)
}

func TestBase64DecodeTextAcceptsBothAlphabets(t *testing.T) {
	svc := NewBase64Service(&historyStub{}, &outputStub{})
	ctx := context.Background()

	raw := []byte{0xfb, 0xff, 0x00, 0x10}
	for _, encoded := range []string{
		base64.StdEncoding.EncodeToString(raw),
		base64.URLEncoding.EncodeToString(raw),
	} {
		result, err := svc.DecodeText(ctx, 0, &dto.Base64DecodeRequest{Encoded: encoded})
		require.NoError(t, err)
		assert.Equal(t, string(raw), result.Text)
	}
}

func TestBase64DecodeToFileStoresOutput(t *testing.T) {
	out := &outputStub{}
	svc := NewBase64Service(&historyStub{}, out)

	payload := []byte("file payload")
	result, err := svc.DecodeToFile(context.Background(), 3, &dto.Base64DecodeToFileRequest{
		Encoded:  base64.StdEncoding.EncodeToString(payload),
		FileName: "decoded.bin",
	})
	require.NoError(t, err)
	require.Len(t, out.stored, 1)
	assert.Equal(t, ToolBase64, out.stored[0].toolID)
	assert.Equal(t, payload, out.stored[0].content)
	assert.Equal(t, "decoded.bin", result.FileName)
}
