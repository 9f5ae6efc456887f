package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTextService() TextService {
	return NewTextService(&historyStub{})
}

func TestHtmlEncodeBasicEntities(t *testing.T) {
	svc := newTestTextService()

	result, err := svc.HtmlEncode(context.Background(), 0, &dto.HtmlEntitiesEncodeRequest{Text: `<a href="x">&'`})
	require.NoError(t, err)
	assert.Equal(t, "&lt;a href=&#34;x&#34;&gt;&amp;&#39;", result.Result)
}

func TestHtmlEncodeAllConvertsNonASCII(t *testing.T) {
	svc := newTestTextService()

	// encodeAll 时非 ASCII 转数字实体
	result, err := svc.HtmlEncode(context.Background(), 0, &dto.HtmlEntitiesEncodeRequest{Text: "café", EncodeAll: true})
	require.NoError(t, err)
	assert.Equal(t, "caf&#233;", result.Result)

	// 默认保留原字符
	plain, err := svc.HtmlEncode(context.Background(), 0, &dto.HtmlEntitiesEncodeRequest{Text: "café"})
	require.NoError(t, err)
	assert.Equal(t, "café", plain.Result)
}

// 编码后解码必须还原任意输入

func TestProperty_HtmlEntitiesRoundTrip(t *testing.T) {
	svc := newTestTextService()
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(s)) == s", prop.ForAll(
		func(text string, encodeAll bool) bool {
			encoded, err := svc.HtmlEncode(ctx, 0, &dto.HtmlEntitiesEncodeRequest{Text: text, EncodeAll: encodeAll})
			if err != nil {
				return false
			}
			decoded, err := svc.HtmlDecode(ctx, 0, &dto.HtmlEntitiesDecodeRequest{Text: encoded.Result})
			if err != nil {
				return false
			}
			return decoded.Result == text
		},
		gen.AnyString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestJsonFormatIndentVariants(t *testing.T) {
	svc := newTestTextService()
	ctx := context.Background()

	two, err := svc.JsonFormat(ctx, 0, &dto.JsonFormatRequest{JSON: `{"a":1}`})
	require.NoError(t, err)
	assert.True(t, two.Valid)
	assert.Contains(t, two.Result, "\n  \"a\"")

	four, err := svc.JsonFormat(ctx, 0, &dto.JsonFormatRequest{JSON: `{"a":1}`, Indent: "4"})
	require.NoError(t, err)
	assert.Contains(t, four.Result, "\n    \"a\"")

	tab, err := svc.JsonFormat(ctx, 0, &dto.JsonFormatRequest{JSON: `{"a":1}`, Indent: "tab"})
	require.NoError(t, err)
	assert.Contains(t, tab.Result, "\n\t\"a\"")

	_, err = svc.JsonFormat(ctx, 0, &dto.JsonFormatRequest{JSON: `{"a":1}`, Indent: "8"})
	assert.Error(t, err)
}

func TestJsonFormatMinifyAndSort(t *testing.T) {
	svc := newTestTextService()
	ctx := context.Background()

	minified, err := svc.JsonFormat(ctx, 0, &dto.JsonFormatRequest{JSON: "{\n  \"b\": 1,\n  \"a\": 2\n}", Minify: true, SortKeys: true})
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"b":1}`, minified.Result)
}

// 大整数不能丢精度

func TestJsonFormatKeepsNumberPrecision(t *testing.T) {
	svc := newTestTextService()

	result, err := svc.JsonFormat(context.Background(), 0, &dto.JsonFormatRequest{JSON: `{"id":9007199254740993}`, Minify: true})
	require.NoError(t, err)
	assert.Equal(t, `{"id":9007199254740993}`, result.Result)
}

func TestJsonFormatRejectsInvalidJSON(t *testing.T) {
	svc := newTestTextService()

	_, err := svc.JsonFormat(context.Background(), 0, &dto.JsonFormatRequest{JSON: `{"a":`})
	assert.Error(t, err)
}

func TestJsonValidate(t *testing.T) {
	svc := newTestTextService()
	ctx := context.Background()

	ok, err := svc.JsonValidate(ctx, 0, `[1, 2, 3]`)
	require.NoError(t, err)
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Error)

	// 解析失败不是服务错误, 错误文本进返回体
	bad, err := svc.JsonValidate(ctx, 0, `{broken`)
	require.NoError(t, err)
	assert.False(t, bad.Valid)
	assert.NotEmpty(t, bad.Error)
}

func TestDiffModes(t *testing.T) {
	svc := newTestTextService()
	ctx := context.Background()

	same, err := svc.Diff(ctx, 0, &dto.TextDiffRequest{Text1: "x", Text2: "x"})
	require.NoError(t, err)
	assert.True(t, same.Identical)

	lineDiff, err := svc.Diff(ctx, 0, &dto.TextDiffRequest{Text1: "a\nb\n", Text2: "a\nc\n"})
	require.NoError(t, err)
	assert.False(t, lineDiff.Identical)
	assert.NotEmpty(t, lineDiff.Ops)
	assert.NotEmpty(t, lineDiff.Patch)

	charDiff, err := svc.Diff(ctx, 0, &dto.TextDiffRequest{Text1: "kitten", Text2: "sitting", Mode: "char"})
	require.NoError(t, err)
	assert.NotEmpty(t, charDiff.HTML)

	_, err = svc.Diff(ctx, 0, &dto.TextDiffRequest{Text1: "a", Text2: "b", Mode: "word"})
	assert.Error(t, err)
}

func TestHashKnownVectors(t *testing.T) {
	svc := newTestTextService()

	result, err := svc.Hash(context.Background(), 0, &dto.HashCalculateRequest{Text: "abc"})
	require.NoError(t, err)

	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", result.Md5)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", result.Sha1)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", result.Sha256)
	assert.Equal(t, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f", result.Sha512)
	assert.Equal(t, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532", result.Sha3_256)
	assert.False(t, result.Hmac)

	hexPattern := regexp.MustCompile(`^[0-9a-f]{64}$`)
	assert.Regexp(t, hexPattern, result.Blake2b256)
	assert.NotEqual(t, result.Sha256, result.Blake2b256)
}

func TestHashHmacMode(t *testing.T) {
	svc := newTestTextService()
	ctx := context.Background()

	keyed, err := svc.Hash(ctx, 0, &dto.HashCalculateRequest{
		Text:    "The quick brown fox jumps over the lazy dog",
		HmacKey: "key",
	})
	require.NoError(t, err)
	assert.True(t, keyed.Hmac)
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", keyed.Sha256)

	plain, err := svc.Hash(ctx, 0, &dto.HashCalculateRequest{Text: "The quick brown fox jumps over the lazy dog"})
	require.NoError(t, err)
	assert.NotEqual(t, plain.Sha256, keyed.Sha256)
}

func TestHashBytesMatchesTextHash(t *testing.T) {
	svc := newTestTextService()
	ctx := context.Background()

	fromText, err := svc.Hash(ctx, 0, &dto.HashCalculateRequest{Text: "abc"})
	require.NoError(t, err)

	fromBytes, err := svc.HashBytes(ctx, 0, "input.txt", []byte("abc"), "")
	require.NoError(t, err)
	assert.Equal(t, fromText.Sha256, fromBytes.Sha256)
}

func TestMinifyKinds(t *testing.T) {
	svc := newTestTextService()
	ctx := context.Background()

	css, err := svc.Minify(ctx, 0, &dto.HtmlMinifyRequest{Content: "body {  color:  red; }", Kind: "css"})
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", css.Result)
	assert.Less(t, css.MinifiedSize, css.OriginalSize)
	assert.Greater(t, css.Savings, 0.0)

	// 默认按 HTML 处理
	html, err := svc.Minify(ctx, 0, &dto.HtmlMinifyRequest{Content: "<p>  hello   world  </p>"})
	require.NoError(t, err)
	assert.Contains(t, html.Result, "hello world")
	assert.Less(t, html.MinifiedSize, html.OriginalSize)

	js, err := svc.Minify(ctx, 0, &dto.HtmlMinifyRequest{Content: "var answer = 1 + 2 ;", Kind: "js"})
	require.NoError(t, err)
	assert.Less(t, js.MinifiedSize, js.OriginalSize)

	_, err = svc.Minify(ctx, 0, &dto.HtmlMinifyRequest{Content: "x", Kind: "xml"})
	assert.Error(t, err)
}
