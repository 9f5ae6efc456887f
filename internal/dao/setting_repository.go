package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/model"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingRepository 实现 domain.SettingRepository 接口
type settingRepository struct {
	dao *Dao
}

// NewSettingRepository 创建 SettingRepository 实例
func NewSettingRepository(dao *Dao) domain.SettingRepository {
	return &settingRepository{dao: dao}
}

// db 获取用户设置表会话
func (r *settingRepository) db(ctx context.Context) *gorm.DB {
	r.dao.AutoMigrateOnce("UserSetting")
	return r.dao.Session(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *settingRepository) toDomain(m *model.UserSetting) *domain.UserSetting {
	if m == nil {
		return nil
	}
	return &domain.UserSetting{
		ID:        m.ID,
		UID:       m.UID,
		Key:       m.Key,
		Value:     m.Value,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// Get 获取指定设置项
func (r *settingRepository) Get(ctx context.Context, uid int64, key string) (*domain.UserSetting, error) {
	var m model.UserSetting
	err := r.db(ctx).Where("uid = ? AND key = ?", uid, key).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Set 写入设置项, 同键覆盖
func (r *settingRepository) Set(ctx context.Context, setting *domain.UserSetting) (*domain.UserSetting, error) {
	m := &model.UserSetting{
		UID:       setting.UID,
		Key:       setting.Key,
		Value:     setting.Value,
		CreatedAt: timex.Now(),
		UpdatedAt: timex.Now(),
	}

	err := r.dao.ExecuteWrite(ctx, setting.UID, func() error {
		return r.db(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uid"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(m).Error
	})
	if err != nil {
		return nil, err
	}

	// 回读以拿到冲突路径下的真实主键和创建时间
	return r.Get(ctx, setting.UID, setting.Key)
}

// Delete 删除设置项
func (r *settingRepository) Delete(ctx context.Context, uid int64, key string) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		result := r.db(ctx).Where("uid = ? AND key = ?", uid, key).Delete(&model.UserSetting{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByUID 获取用户的全部设置
func (r *settingRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.UserSetting, error) {
	var ms []model.UserSetting
	err := r.db(ctx).Where("uid = ?", uid).Order("key ASC").Find(&ms).Error
	if err != nil {
		return nil, err
	}

	settings := make([]*domain.UserSetting, 0, len(ms))
	for i := range ms {
		settings = append(settings, r.toDomain(&ms[i]))
	}
	return settings, nil
}

// 确保 settingRepository 实现了 domain.SettingRepository 接口
var _ domain.SettingRepository = (*settingRepository)(nil)
