package service

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// 大批量 v4 全部符合规范格式且互不重复

func TestProperty_UuidV4DistinctAndCanonical(t *testing.T) {
	svc := NewUuidService(&historyStub{})
	ctx := context.Background()

	seen := make(map[string]struct{}, 100000)
	// 单次生成上限 1000, 分批拿满 10 万个
	for i := 0; i < 100; i++ {
		result, err := svc.Generate(ctx, 0, &dto.UuidGenerateRequest{Version: "v4", Count: 1000})
		require.NoError(t, err)
		require.Equal(t, 1000, result.Count)

		for _, v := range result.Uuids {
			require.Regexp(t, uuidV4Pattern, v)
			if _, dup := seen[v]; dup {
				t.Fatalf("duplicate uuid generated: %s", v)
			}
			seen[v] = struct{}{}
		}
	}
	assert.Len(t, seen, 100000)
}

func TestUuidNameBasedVersionsAreDeterministic(t *testing.T) {
	svc := NewUuidService(&historyStub{})
	ctx := context.Background()

	// RFC 4122 名字派生的已知值
	v5, err := svc.Generate(ctx, 0, &dto.UuidGenerateRequest{
		Version: "v5", Namespace: "dns", Name: "www.example.com",
	})
	require.NoError(t, err)
	require.Equal(t, 1, v5.Count)
	assert.Equal(t, "2ed6657d-e927-568b-95e3-50c10662a7ad", v5.Uuids[0])

	v3, err := svc.Generate(ctx, 0, &dto.UuidGenerateRequest{
		Version: "v3", Namespace: "dns", Name: "www.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "5df41881-3aed-3515-88a7-2f4a814cf09e", v3.Uuids[0])

	// name 缺失时拒绝
	_, err = svc.Generate(ctx, 0, &dto.UuidGenerateRequest{Version: "v5", Namespace: "dns"})
	require.Error(t, err)
}

func TestUuidGenerateDefaultsAndLimits(t *testing.T) {
	svc := NewUuidService(&historyStub{})
	ctx := context.Background()

	// 默认 v4 一个
	result, err := svc.Generate(ctx, 0, &dto.UuidGenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "v4", result.Version)
	assert.Equal(t, 1, result.Count)

	// 大写输出
	result, err = svc.Generate(ctx, 0, &dto.UuidGenerateRequest{Uppercase: true})
	require.NoError(t, err)
	assert.Equal(t, result.Uuids[0], strings.ToUpper(result.Uuids[0]))

	// nil 版本恒定
	result, err = svc.Generate(ctx, 0, &dto.UuidGenerateRequest{Version: "nil", Count: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"00000000-0000-0000-0000-000000000000"}, result.Uuids)

	// 未知版本报错
	_, err = svc.Generate(ctx, 0, &dto.UuidGenerateRequest{Version: "v9"})
	require.Error(t, err)
}

func TestUuidValidate(t *testing.T) {
	svc := NewUuidService(&historyStub{})
	ctx := context.Background()

	result, err := svc.Validate(ctx, 0, &dto.UuidValidateRequest{UUID: "2ed6657d-e927-568b-95e3-50c10662a7ad"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 5, result.Version)
	assert.Equal(t, "RFC4122", result.Variant)

	result, err = svc.Validate(ctx, 0, &dto.UuidValidateRequest{UUID: "not-a-uuid"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
