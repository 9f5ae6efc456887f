package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/model"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"

	"gorm.io/gorm"
)

// historyRepository 实现 domain.HistoryRepository 接口
type historyRepository struct {
	dao *Dao
}

// NewHistoryRepository 创建 HistoryRepository 实例
func NewHistoryRepository(dao *Dao) domain.HistoryRepository {
	return &historyRepository{dao: dao}
}

// db 获取历史表会话
func (r *historyRepository) db(ctx context.Context) *gorm.DB {
	r.dao.AutoMigrateOnce("HistoryEntry")
	return r.dao.Session(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *historyRepository) toDomain(m *model.HistoryEntry) *domain.HistoryEntry {
	if m == nil {
		return nil
	}
	return &domain.HistoryEntry{
		ID:        m.ID,
		UID:       m.UID,
		ToolID:    m.ToolID,
		Summary:   m.Summary,
		Payload:   m.Payload,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *historyRepository) toModel(entry *domain.HistoryEntry) *model.HistoryEntry {
	if entry == nil {
		return nil
	}
	return &model.HistoryEntry{
		ID:        entry.ID,
		UID:       entry.UID,
		ToolID:    entry.ToolID,
		Summary:   entry.Summary,
		Payload:   entry.Payload,
		CreatedAt: timex.Time(entry.CreatedAt),
	}
}

// trimTool 在事务内将 (uid, toolID) 的历史裁剪到 cap 条
// 以第 cap 条最新记录的 ID 为界删除更旧的行
func (r *historyRepository) trimTool(tx *gorm.DB, uid int64, toolID string, cap int) error {
	var cutoff int64
	err := tx.Model(&model.HistoryEntry{}).
		Select("id").
		Where("uid = ? AND tool_id = ?", uid, toolID).
		Order("id DESC").
		Limit(1).Offset(cap - 1).
		Scan(&cutoff).Error
	if err != nil {
		return err
	}
	if cutoff <= 0 {
		return nil
	}
	return tx.Where("uid = ? AND tool_id = ? AND id < ?", uid, toolID, cutoff).
		Delete(&model.HistoryEntry{}).Error
}

// Append 追加历史记录并裁剪到上限
func (r *historyRepository) Append(ctx context.Context, entry *domain.HistoryEntry, cap int) (*domain.HistoryEntry, error) {
	if cap <= 0 {
		cap = 10
	}

	m := r.toModel(entry)
	m.ID = 0
	m.CreatedAt = timex.Now()

	err := r.dao.ExecuteWrite(ctx, entry.UID, func() error {
		return r.db(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			return r.trimTool(tx, entry.UID, entry.ToolID, cap)
		})
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByTool 获取指定工具的历史记录，新的在前
// 载荷非法的行被跳过
func (r *historyRepository) ListByTool(ctx context.Context, uid int64, toolID string, limit int) ([]*domain.HistoryEntry, error) {
	var ms []model.HistoryEntry
	q := r.db(ctx).
		Where("uid = ? AND tool_id = ?", uid, toolID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.HistoryEntry, 0, len(ms))
	for i := range ms {
		entry := r.toDomain(&ms[i])
		if !entry.PayloadValid() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Delete 删除指定ID的历史记录
func (r *historyRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		result := r.db(ctx).Where("id = ? AND uid = ?", id, uid).Delete(&model.HistoryEntry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteByTool 清空指定工具的历史记录
func (r *historyRepository) DeleteByTool(ctx context.Context, uid int64, toolID string) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		return r.db(ctx).Where("uid = ? AND tool_id = ?", uid, toolID).
			Delete(&model.HistoryEntry{}).Error
	})
}

// ListAll 获取用户的全部历史记录，新的在前
func (r *historyRepository) ListAll(ctx context.Context, uid int64) ([]*domain.HistoryEntry, error) {
	var ms []model.HistoryEntry
	err := r.db(ctx).Where("uid = ?", uid).Order("id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.HistoryEntry, 0, len(ms))
	for i := range ms {
		entry := r.toDomain(&ms[i])
		if !entry.PayloadValid() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// EnforceCap 将指定用户全部工具的历史裁剪到上限
func (r *historyRepository) EnforceCap(ctx context.Context, uid int64, cap int) error {
	if cap <= 0 {
		cap = 10
	}

	var toolIDs []string
	err := r.db(ctx).Model(&model.HistoryEntry{}).
		Where("uid = ?", uid).
		Distinct().
		Pluck("tool_id", &toolIDs).Error
	if err != nil {
		return err
	}

	return r.dao.ExecuteWrite(ctx, uid, func() error {
		return r.db(ctx).Transaction(func(tx *gorm.DB) error {
			for _, toolID := range toolIDs {
				if err := r.trimTool(tx, uid, toolID, cap); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// PurgeCorrupt 删除载荷非法的历史行，返回删除数量
func (r *historyRepository) PurgeCorrupt(ctx context.Context) (int64, error) {
	var corruptIDs []int64
	var batch []model.HistoryEntry

	err := r.db(ctx).Select("id", "payload").FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
		for i := range batch {
			entry := domain.HistoryEntry{Payload: batch[i].Payload}
			if !entry.PayloadValid() {
				corruptIDs = append(corruptIDs, batch[i].ID)
			}
		}
		return nil
	}).Error
	if err != nil {
		return 0, err
	}
	if len(corruptIDs) == 0 {
		return 0, nil
	}

	result := r.db(ctx).Where("id IN ?", corruptIDs).Delete(&model.HistoryEntry{})
	return result.RowsAffected, result.Error
}

// 确保 historyRepository 实现了 domain.HistoryRepository 接口
var _ domain.HistoryRepository = (*historyRepository)(nil)
