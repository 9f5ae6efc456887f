package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestToken 拼一个结构合法但签名随意的 JWT
func buildTestToken(t *testing.T, header, claims map[string]any) string {
	t.Helper()
	h, err := json.Marshal(header)
	require.NoError(t, err)
	c, err := json.Marshal(claims)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(h) + "." +
		base64.RawURLEncoding.EncodeToString(c) + "." +
		"c2lnbmF0dXJl"
}

// 三段式且两段为合法 JSON 时解码结果与输入一致

func TestProperty_JwtDecodeMatchesInput(t *testing.T) {
	svc := NewJwtService(&historyStub{})
	ctx := context.Background()

	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	claims := map[string]any{"sub": "user-42", "name": "Dev Toolbox"}
	token := buildTestToken(t, header, claims)

	result, err := svc.Decode(ctx, 0, &dto.JwtDecodeRequest{Token: token})
	require.NoError(t, err)

	assert.Equal(t, "HS256", result.Header["alg"])
	assert.Equal(t, "JWT", result.Header["typ"])
	assert.Equal(t, "user-42", result.Claims["sub"])
	assert.Equal(t, "Dev Toolbox", result.Claims["name"])
	assert.Equal(t, "c2lnbmF0dXJl", result.Signature)
	assert.False(t, result.SignatureVerified)
	assert.Equal(t, "valid", result.Status)
}

func TestJwtDecodeRejectsWrongSegmentCount(t *testing.T) {
	svc := NewJwtService(&historyStub{})
	ctx := context.Background()

	token := buildTestToken(t, map[string]any{"alg": "none"}, map[string]any{"sub": "x"})

	// 两段
	twoSegments := strings.Join(strings.Split(token, ".")[:2], ".")
	_, err := svc.Decode(ctx, 0, &dto.JwtDecodeRequest{Token: twoSegments})
	require.Error(t, err)

	// 四段
	_, err = svc.Decode(ctx, 0, &dto.JwtDecodeRequest{Token: token + ".extra"})
	require.Error(t, err)
}

func TestJwtDecodeRejectsNonJSONSegments(t *testing.T) {
	svc := NewJwtService(&historyStub{})

	notJSON := base64.RawURLEncoding.EncodeToString([]byte("plain text"))
	_, err := svc.Decode(context.Background(), 0, &dto.JwtDecodeRequest{
		Token: notJSON + "." + notJSON + ".sig",
	})
	require.Error(t, err)
}

func TestJwtDecodeEvaluatesTimeClaims(t *testing.T) {
	svc := NewJwtService(&historyStub{})
	ctx := context.Background()

	past := time.Now().Add(-time.Hour).Unix()
	token := buildTestToken(t,
		map[string]any{"alg": "HS256"},
		map[string]any{"exp": past, "iat": past})

	result, err := svc.Decode(ctx, 0, &dto.JwtDecodeRequest{Token: token})
	require.NoError(t, err)
	assert.Equal(t, "expired", result.Status)

	var expClaim *dto.JwtClaimStateDTO
	for i := range result.TimeClaims {
		if result.TimeClaims[i].Claim == "exp" {
			expClaim = &result.TimeClaims[i]
		}
	}
	require.NotNil(t, expClaim)
	assert.True(t, expClaim.Expired)
	assert.Equal(t, past, expClaim.Value)

	// 未来的 nbf 报 not_yet_valid
	future := time.Now().Add(time.Hour).Unix()
	token = buildTestToken(t,
		map[string]any{"alg": "HS256"},
		map[string]any{"nbf": future})
	result, err = svc.Decode(ctx, 0, &dto.JwtDecodeRequest{Token: token})
	require.NoError(t, err)
	assert.Equal(t, "not_yet_valid", result.Status)
}
