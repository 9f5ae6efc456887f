// Package service 实现业务逻辑层
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/logger"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HistoryService 工具调用历史服务接口
type HistoryService interface {
	// Record 在工具调用成功后追加一条历史
	// 匿名调用 (uid <= 0) 直接跳过; 写入失败只记日志, 不影响工具结果
	Record(ctx context.Context, uid int64, toolID string, summary string, payload any)

	// Append 手动追加一条历史
	Append(ctx context.Context, uid int64, toolID string, params *dto.HistoryAppendRequest) (*dto.HistoryEntryDTO, error)

	// List 获取指定工具的历史, 新的在前
	List(ctx context.Context, uid int64, toolID string, params *dto.HistoryListRequest) ([]*dto.HistoryEntryDTO, error)

	// Delete 删除单条历史
	Delete(ctx context.Context, uid int64, toolID string, id int64) error

	// Clear 清空指定工具的历史
	Clear(ctx context.Context, uid int64, toolID string) error

	// ListAll 获取用户全部历史, 导出用
	ListAll(ctx context.Context, uid int64) ([]*dto.HistoryEntryDTO, error)

	// RetentionSweep 保留任务入口: 全量裁剪到上限并清理损坏行
	RetentionSweep(ctx context.Context) (int64, error)
}

// historyService 实现 HistoryService 接口
type historyService struct {
	historyRepo domain.HistoryRepository
	settingRepo domain.SettingRepository
	userRepo    domain.UserRepository
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewHistoryService 创建 HistoryService 实例
func NewHistoryService(historyRepo domain.HistoryRepository, settingRepo domain.SettingRepository, userRepo domain.UserRepository, logger *zap.Logger, config *ServiceConfig) HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		settingRepo: settingRepo,
		userRepo:    userRepo,
		logger:      logger,
		config:      config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *historyService) domainToDTO(e *domain.HistoryEntry) *dto.HistoryEntryDTO {
	if e == nil {
		return nil
	}
	d := &dto.HistoryEntryDTO{
		ID:        e.ID,
		ToolID:    e.ToolID,
		Summary:   e.Summary,
		CreatedAt: timex.Time(e.CreatedAt),
	}
	if e.Payload != "" {
		d.Payload = json.RawMessage(e.Payload)
	}
	return d
}

// capFor 解析用户的历史上限设置, 非法或缺省时回退到服务配置
func (s *historyService) capFor(ctx context.Context, uid int64) int {
	capacity := s.config.Tools.HistoryMaxEntries
	setting, err := s.settingRepo.Get(ctx, uid, domain.SettingKeyHistoryCap)
	if err != nil || setting == nil {
		return capacity
	}
	if n, err := strconv.Atoi(setting.Value); err == nil && n >= 1 && n <= 100 {
		return n
	}
	return capacity
}

// Record 在工具调用成功后追加一条历史
func (s *historyService) Record(ctx context.Context, uid int64, toolID string, summary string, payload any) {
	if uid <= 0 {
		return
	}

	var payloadStr string
	switch v := payload.(type) {
	case nil:
	case string:
		payloadStr = v
	case json.RawMessage:
		payloadStr = string(v)
	case []byte:
		payloadStr = string(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			s.logger.Warn("history payload marshal failed",
				zap.Int64(logger.FieldUID, uid),
				zap.String(logger.FieldTool, toolID),
				zap.Error(err))
			return
		}
		payloadStr = string(b)
	}

	entry := &domain.HistoryEntry{
		UID:     uid,
		ToolID:  toolID,
		Summary: summary,
		Payload: payloadStr,
	}
	if _, err := s.historyRepo.Append(ctx, entry, s.capFor(ctx, uid)); err != nil {
		s.logger.Warn("history append failed",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldTool, toolID),
			zap.Error(err))
	}
}

// Append 手动追加一条历史
func (s *historyService) Append(ctx context.Context, uid int64, toolID string, params *dto.HistoryAppendRequest) (*dto.HistoryEntryDTO, error) {
	if _, ok := LookupTool(toolID); !ok {
		return nil, code.ErrorNotFoundTool
	}
	if len(params.Payload) > 0 && !json.Valid(params.Payload) {
		return nil, code.ErrorInvalidParams.WithDetails("payload must be valid JSON")
	}

	entry := &domain.HistoryEntry{
		UID:     uid,
		ToolID:  toolID,
		Summary: params.Summary,
		Payload: string(params.Payload),
	}
	created, err := s.historyRepo.Append(ctx, entry, s.capFor(ctx, uid))
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(created), nil
}

// List 获取指定工具的历史, 新的在前
func (s *historyService) List(ctx context.Context, uid int64, toolID string, params *dto.HistoryListRequest) ([]*dto.HistoryEntryDTO, error) {
	if _, ok := LookupTool(toolID); !ok {
		return nil, code.ErrorNotFoundTool
	}

	capacity := s.capFor(ctx, uid)
	limit := capacity
	if params != nil && params.Limit > 0 && params.Limit < capacity {
		limit = params.Limit
	}

	entries, err := s.historyRepo.ListByTool(ctx, uid, toolID, limit)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	results := make([]*dto.HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		results = append(results, s.domainToDTO(e))
	}
	return results, nil
}

// Delete 删除单条历史
func (s *historyService) Delete(ctx context.Context, uid int64, toolID string, id int64) error {
	if _, ok := LookupTool(toolID); !ok {
		return code.ErrorNotFoundTool
	}
	if err := s.historyRepo.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorHistoryNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// Clear 清空指定工具的历史
func (s *historyService) Clear(ctx context.Context, uid int64, toolID string) error {
	if _, ok := LookupTool(toolID); !ok {
		return code.ErrorNotFoundTool
	}
	if err := s.historyRepo.DeleteByTool(ctx, uid, toolID); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// ListAll 获取用户全部历史, 导出用
func (s *historyService) ListAll(ctx context.Context, uid int64) ([]*dto.HistoryEntryDTO, error) {
	entries, err := s.historyRepo.ListAll(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	results := make([]*dto.HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		results = append(results, s.domainToDTO(e))
	}
	return results, nil
}

// RetentionSweep 保留任务入口: 全量裁剪到上限并清理损坏行
func (s *historyService) RetentionSweep(ctx context.Context) (int64, error) {
	uids, err := s.userRepo.GetAllUIDs(ctx)
	if err != nil {
		return 0, err
	}

	for _, uid := range uids {
		if err := s.historyRepo.EnforceCap(ctx, uid, s.capFor(ctx, uid)); err != nil {
			s.logger.Warn("history cap enforcement failed",
				zap.Int64(logger.FieldUID, uid),
				zap.Error(err))
		}
	}

	purged, err := s.historyRepo.PurgeCorrupt(ctx)
	if err != nil {
		return purged, err
	}
	return purged, nil
}

// previewText 截断长文本用于历史载荷, 历史是回放入口而不是结果存档
func previewText(s string) string {
	const max = 120
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// 确保 historyService 实现了 HistoryService 接口
var _ HistoryService = (*historyService)(nil)
