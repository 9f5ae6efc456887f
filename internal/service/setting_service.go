// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/convert"
	"gorm.io/gorm"
)

// 设置键与值的通用约束
const settingValueMaxLen = 4096

var settingKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// 可选 locale 值, 与错误字典的语言一致
var settingLocales = map[string]bool{
	"en":    true,
	"zh-cn": true,
}

// SettingService 用户设置服务接口
type SettingService interface {
	// Get 获取单个设置项
	Get(ctx context.Context, uid int64, key string) (*dto.UserSettingDTO, error)

	// GetAll 获取用户设置全集
	GetAll(ctx context.Context, uid int64) (*dto.UserSettingsDTO, error)

	// Put 写入单个设置项, 已知键做类型校验
	Put(ctx context.Context, uid int64, params *dto.SettingPutRequest) (*dto.UserSettingDTO, error)

	// PutBatch 批量写入设置, 任一键校验失败则整体拒绝
	PutBatch(ctx context.Context, uid int64, params *dto.SettingsPutRequest) (*dto.UserSettingsDTO, error)

	// Delete 删除单个设置项
	Delete(ctx context.Context, uid int64, params *dto.SettingDeleteRequest) error

	// Value 读取设置值, 缺省或出错时返回 fallback
	Value(ctx context.Context, uid int64, key string, fallback string) string
}

// settingService 实现 SettingService 接口
type settingService struct {
	settingRepo domain.SettingRepository
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(settingRepo domain.SettingRepository) SettingService {
	return &settingService{settingRepo: settingRepo}
}

// domainToDTO 将领域模型转换为 DTO
func (s *settingService) domainToDTO(setting *domain.UserSetting) *dto.UserSettingDTO {
	if setting == nil {
		return nil
	}
	out := &dto.UserSettingDTO{}
	convert.StructAssign(setting, out)
	return out
}

// validateSetting 校验设置键值
// 已知键有类型约束, 其余键只限制格式和长度
func validateSetting(key, value string) error {
	switch key {
	case domain.SettingKeySolanaRpcEndpoint:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return code.ErrorSettingKeyNotValid.WithDetails(fmt.Sprintf("%s must be an http(s) URL", key))
		}
	case domain.SettingKeyHistoryCap:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 100 {
			return code.ErrorSettingKeyNotValid.WithDetails(fmt.Sprintf("%s must be an integer between 1 and 100", key))
		}
	case domain.SettingKeyLocale:
		if !settingLocales[value] {
			return code.ErrorSettingKeyNotValid.WithDetails(fmt.Sprintf("%s must be one of en, zh-cn", key))
		}
	default:
		if !settingKeyPattern.MatchString(key) {
			return code.ErrorSettingKeyNotValid.WithDetails("key must match [a-z0-9-] and start with a letter or digit")
		}
		if len(value) > settingValueMaxLen {
			return code.ErrorSettingKeyNotValid.WithDetails(fmt.Sprintf("value exceeds %d bytes", settingValueMaxLen))
		}
	}
	return nil
}

// Get 获取单个设置项
func (s *settingService) Get(ctx context.Context, uid int64, key string) (*dto.UserSettingDTO, error) {
	setting, err := s.settingRepo.Get(ctx, uid, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorSettingNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(setting), nil
}

// GetAll 获取用户设置全集
func (s *settingService) GetAll(ctx context.Context, uid int64) (*dto.UserSettingsDTO, error) {
	settings, err := s.settingRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	result := &dto.UserSettingsDTO{Settings: make(map[string]string, len(settings))}
	for _, setting := range settings {
		result.Settings[setting.Key] = setting.Value
	}
	return result, nil
}

// Put 写入单个设置项, 已知键做类型校验
func (s *settingService) Put(ctx context.Context, uid int64, params *dto.SettingPutRequest) (*dto.UserSettingDTO, error) {
	if err := validateSetting(params.Key, params.Value); err != nil {
		return nil, err
	}

	saved, err := s.settingRepo.Set(ctx, &domain.UserSetting{
		UID:   uid,
		Key:   params.Key,
		Value: params.Value,
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(saved), nil
}

// PutBatch 批量写入设置, 任一键校验失败则整体拒绝
func (s *settingService) PutBatch(ctx context.Context, uid int64, params *dto.SettingsPutRequest) (*dto.UserSettingsDTO, error) {
	for key, value := range params.Settings {
		if err := validateSetting(key, value); err != nil {
			return nil, err
		}
	}

	for key, value := range params.Settings {
		if _, err := s.settingRepo.Set(ctx, &domain.UserSetting{
			UID:   uid,
			Key:   key,
			Value: value,
		}); err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
	}
	return s.GetAll(ctx, uid)
}

// Delete 删除单个设置项
func (s *settingService) Delete(ctx context.Context, uid int64, params *dto.SettingDeleteRequest) error {
	if err := s.settingRepo.Delete(ctx, uid, params.Key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorSettingNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// Value 读取设置值, 缺省或出错时返回 fallback
func (s *settingService) Value(ctx context.Context, uid int64, key string, fallback string) string {
	if uid <= 0 {
		return fallback
	}
	setting, err := s.settingRepo.Get(ctx, uid, key)
	if err != nil || setting == nil || setting.Value == "" {
		return fallback
	}
	return setting.Value
}

// 确保 settingService 实现了 SettingService 接口
var _ SettingService = (*settingService)(nil)
