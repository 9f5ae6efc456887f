// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/google/uuid"
)

// UUID 生成数量上限
const uuidMaxCount = 1000

// uuidNamespaces 预设命名空间
var uuidNamespaces = map[string]uuid.UUID{
	"dns":  uuid.NameSpaceDNS,
	"url":  uuid.NameSpaceURL,
	"oid":  uuid.NameSpaceOID,
	"x500": uuid.NameSpaceX500,
}

// UuidService UUID 生成服务接口
type UuidService interface {
	// Generate 生成指定版本的 UUID
	Generate(ctx context.Context, uid int64, params *dto.UuidGenerateRequest) (*dto.UuidGenerateDTO, error)

	// Validate 校验 UUID 并报告版本与变体
	Validate(ctx context.Context, uid int64, params *dto.UuidValidateRequest) (*dto.UuidValidateDTO, error)
}

// uuidService 实现 UuidService 接口
type uuidService struct {
	historyService HistoryService
}

// NewUuidService 创建 UuidService 实例
func NewUuidService(historySvc HistoryService) UuidService {
	return &uuidService{historyService: historySvc}
}

// namespaceFor 解析命名空间, 预设名或自定义 UUID
func namespaceFor(namespace string) (uuid.UUID, error) {
	if ns, ok := uuidNamespaces[strings.ToLower(namespace)]; ok {
		return ns, nil
	}
	ns, err := uuid.Parse(namespace)
	if err != nil {
		return uuid.Nil, fmt.Errorf("namespace must be dns, url, oid, x500 or a UUID: %s", err.Error())
	}
	return ns, nil
}

// Generate 生成指定版本的 UUID
func (s *uuidService) Generate(ctx context.Context, uid int64, params *dto.UuidGenerateRequest) (*dto.UuidGenerateDTO, error) {
	version := strings.ToLower(params.Version)
	if version == "" {
		version = "v4"
	}

	count := params.Count
	if count <= 0 {
		count = 1
	}
	if count > uuidMaxCount {
		count = uuidMaxCount
	}

	// 名字派生和 nil 是确定性的, 重复生成没有意义
	switch version {
	case "v3", "v5", "nil":
		count = 1
	}

	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var u uuid.UUID
		var err error
		switch version {
		case "v1":
			u, err = uuid.NewUUID()
		case "v3", "v5":
			if params.Name == "" {
				return nil, code.ErrorInvalidParams.WithDetails("name is required for v3 and v5")
			}
			ns, nsErr := namespaceFor(params.Namespace)
			if nsErr != nil {
				return nil, code.ErrorInvalidParams.WithDetails(nsErr.Error())
			}
			if version == "v3" {
				u = uuid.NewMD5(ns, []byte(params.Name))
			} else {
				u = uuid.NewSHA1(ns, []byte(params.Name))
			}
		case "v4":
			u, err = uuid.NewRandom()
		case "v7":
			u, err = uuid.NewV7()
		case "nil":
			u = uuid.Nil
		default:
			return nil, code.ErrorInvalidParams.WithDetails(fmt.Sprintf("unsupported version %q, expected v1 v3 v4 v5 v7 or nil", params.Version))
		}
		if err != nil {
			return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
		}

		value := u.String()
		if params.Uppercase {
			value = strings.ToUpper(value)
		}
		values = append(values, value)
	}

	result := &dto.UuidGenerateDTO{
		Uuids:   values,
		Version: version,
		Count:   len(values),
	}

	s.historyService.Record(ctx, uid, ToolUuid,
		fmt.Sprintf("Generated %d %s UUIDs", result.Count, version),
		map[string]any{"version": version, "count": result.Count, "first": values[0]})

	return result, nil
}

// Validate 校验 UUID 并报告版本与变体
func (s *uuidService) Validate(ctx context.Context, uid int64, params *dto.UuidValidateRequest) (*dto.UuidValidateDTO, error) {
	u, err := uuid.Parse(strings.TrimSpace(params.UUID))
	if err != nil {
		return &dto.UuidValidateDTO{Valid: false}, nil
	}

	result := &dto.UuidValidateDTO{
		Valid:   true,
		Version: int(u.Version()),
		Variant: u.Variant().String(),
	}

	s.historyService.Record(ctx, uid, ToolUuid,
		fmt.Sprintf("Validated UUID v%d", result.Version),
		map[string]any{"uuid": params.UUID, "version": result.Version, "variant": result.Variant})

	return result, nil
}

// 确保 uuidService 实现了 UuidService 接口
var _ UuidService = (*uuidService)(nil)
