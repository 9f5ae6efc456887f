// Package service 实现业务逻辑层
package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
)

// jwtDecodeNote 解码提示, 工具只解码不校验签名
const jwtDecodeNote = "signature is not verified, decode only"

// JwtService JWT 调试服务接口
type JwtService interface {
	// Decode 解析 JWT 的头部和载荷, 不校验签名
	Decode(ctx context.Context, uid int64, params *dto.JwtDecodeRequest) (*dto.JwtDecodeDTO, error)
}

// jwtService 实现 JwtService 接口
type jwtService struct {
	historyService HistoryService
}

// NewJwtService 创建 JwtService 实例
func NewJwtService(historySvc HistoryService) JwtService {
	return &jwtService{historyService: historySvc}
}

// decodeSegment 解码单个 base64url 段为 JSON 对象
func decodeSegment(segment string, name string) (map[string]any, string, error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
	if err != nil {
		return nil, "", fmt.Errorf("%s segment is not valid base64url: %s", name, err.Error())
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, "", fmt.Errorf("%s segment is not a JSON object: %s", name, err.Error())
	}

	pretty, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return obj, string(pretty), nil
}

// claimDelta 渲染声明时间与当前时间的距离
func claimDelta(t time.Time, now time.Time) string {
	if t.After(now) {
		return "in " + t.Sub(now).Round(time.Second).String()
	}
	return now.Sub(t).Round(time.Second).String() + " ago"
}

// Decode 解析 JWT 的头部和载荷, 不校验签名
func (s *jwtService) Decode(ctx context.Context, uid int64, params *dto.JwtDecodeRequest) (*dto.JwtDecodeDTO, error) {
	token := strings.TrimSpace(params.Token)
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil, code.ErrorToolExecuteFailed.WithDetails("token must have 3 segments")
	}

	header, headerJSON, err := decodeSegment(segments[0], "header")
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}
	claims, claimsJSON, err := decodeSegment(segments[1], "claims")
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	result := &dto.JwtDecodeDTO{
		Header:            header,
		Claims:            claims,
		HeaderJSON:        headerJSON,
		ClaimsJSON:        claimsJSON,
		Signature:         segments[2],
		SignatureVerified: false,
		Note:              jwtDecodeNote,
		Status:            "valid",
	}

	// exp/nbf/iat 与当前时间比较, 缺失的声明直接跳过
	now := time.Now()
	for _, claim := range []string{"exp", "nbf", "iat"} {
		raw, ok := claims[claim]
		if !ok {
			continue
		}
		seconds, ok := raw.(float64)
		if !ok {
			continue
		}
		instant := time.Unix(int64(seconds), 0)
		result.TimeClaims = append(result.TimeClaims, dto.JwtClaimStateDTO{
			Claim:   claim,
			Value:   int64(seconds),
			Time:    instant.UTC().Format(time.RFC3339),
			Delta:   claimDelta(instant, now),
			Expired: instant.Before(now),
		})

		switch claim {
		case "exp":
			if instant.Before(now) {
				result.Status = "expired"
			}
		case "nbf":
			if instant.After(now) && result.Status == "valid" {
				result.Status = "not_yet_valid"
			}
		}
	}

	summary := "Decoded JWT"
	if alg, ok := header["alg"].(string); ok && alg != "" {
		summary = fmt.Sprintf("Decoded JWT with alg %s", alg)
	}
	s.historyService.Record(ctx, uid, ToolJwtDebugger, summary,
		map[string]any{"token": previewText(token), "status": result.Status})

	return result, nil
}

// 确保 jwtService 实现了 JwtService 接口
var _ JwtService = (*jwtService)(nil)
