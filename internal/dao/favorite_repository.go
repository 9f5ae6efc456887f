package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/model"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"

	"gorm.io/gorm"
)

// favoriteRepository 实现 domain.FavoriteRepository 接口
type favoriteRepository struct {
	dao *Dao
}

// NewFavoriteRepository 创建 FavoriteRepository 实例
func NewFavoriteRepository(dao *Dao) domain.FavoriteRepository {
	return &favoriteRepository{dao: dao}
}

// db 获取收藏表会话
func (r *favoriteRepository) db(ctx context.Context) *gorm.DB {
	r.dao.AutoMigrateOnce("Favorite")
	return r.dao.Session(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *favoriteRepository) toDomain(m *model.Favorite) *domain.Favorite {
	if m == nil {
		return nil
	}
	return &domain.Favorite{
		ID:        m.ID,
		UID:       m.UID,
		ToolID:    m.ToolID,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// Get 获取指定收藏
func (r *favoriteRepository) Get(ctx context.Context, uid int64, toolID string) (*domain.Favorite, error) {
	var m model.Favorite
	err := r.db(ctx).Where("uid = ? AND tool_id = ?", uid, toolID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建收藏
func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	m := &model.Favorite{
		UID:       favorite.UID,
		ToolID:    favorite.ToolID,
		CreatedAt: timex.Now(),
	}
	err := r.dao.ExecuteWrite(ctx, favorite.UID, func() error {
		return r.db(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除收藏
func (r *favoriteRepository) Delete(ctx context.Context, uid int64, toolID string) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		result := r.db(ctx).Where("uid = ? AND tool_id = ?", uid, toolID).Delete(&model.Favorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByUID 获取用户的全部收藏
func (r *favoriteRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Favorite, error) {
	var ms []model.Favorite
	err := r.db(ctx).Where("uid = ?", uid).Order("id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}

	favorites := make([]*domain.Favorite, 0, len(ms))
	for i := range ms {
		favorites = append(favorites, r.toDomain(&ms[i]))
	}
	return favorites, nil
}

// 确保 favoriteRepository 实现了 domain.FavoriteRepository 接口
var _ domain.FavoriteRepository = (*favoriteRepository)(nil)
