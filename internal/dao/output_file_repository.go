package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/model"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"

	"gorm.io/gorm"
)

// outputFileRepository 实现 domain.OutputFileRepository 接口
type outputFileRepository struct {
	dao *Dao
}

// NewOutputFileRepository 创建 OutputFileRepository 实例
func NewOutputFileRepository(dao *Dao) domain.OutputFileRepository {
	return &outputFileRepository{dao: dao}
}

// db 获取生成文件表会话
func (r *outputFileRepository) db(ctx context.Context) *gorm.DB {
	r.dao.AutoMigrateOnce("OutputFile")
	return r.dao.Session(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *outputFileRepository) toDomain(m *model.OutputFile) *domain.OutputFile {
	if m == nil {
		return nil
	}
	return &domain.OutputFile{
		ID:          m.ID,
		UID:         m.UID,
		ToolID:      m.ToolID,
		FileName:    m.FileName,
		StorageType: m.StorageType,
		FileKey:     m.FileKey,
		Size:        m.Size,
		ContentType: m.ContentType,
		ExpiresAt:   time.Time(m.ExpiresAt),
		CreatedAt:   time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取文件记录, 只能取到自己的记录
func (r *outputFileRepository) GetByID(ctx context.Context, id, uid int64) (*domain.OutputFile, error) {
	var m model.OutputFile
	err := r.db(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建文件记录
func (r *outputFileRepository) Create(ctx context.Context, file *domain.OutputFile) (*domain.OutputFile, error) {
	m := &model.OutputFile{
		UID:         file.UID,
		ToolID:      file.ToolID,
		FileName:    file.FileName,
		StorageType: file.StorageType,
		FileKey:     file.FileKey,
		Size:        file.Size,
		ContentType: file.ContentType,
		ExpiresAt:   timex.Time(file.ExpiresAt),
		CreatedAt:   timex.Now(),
	}

	err := r.dao.ExecuteWrite(ctx, file.UID, func() error {
		return r.db(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除文件记录
func (r *outputFileRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func() error {
		result := r.db(ctx).Where("id = ? AND uid = ?", id, uid).Delete(&model.OutputFile{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByUID 分页获取用户的文件列表, 新的在前
func (r *outputFileRepository) ListByUID(ctx context.Context, uid int64, page, pageSize int) ([]*domain.OutputFile, int64, error) {
	var total int64
	if err := r.db(ctx).Model(&model.OutputFile{}).Where("uid = ?", uid).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	var ms []model.OutputFile
	err := r.db(ctx).Where("uid = ?", uid).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	files := make([]*domain.OutputFile, 0, len(ms))
	for i := range ms {
		files = append(files, r.toDomain(&ms[i]))
	}
	return files, total, nil
}

// ListExpired 获取已过期的文件记录
func (r *outputFileRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*domain.OutputFile, error) {
	var ms []model.OutputFile
	query := r.db(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", timex.Time(now))
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	files := make([]*domain.OutputFile, 0, len(ms))
	for i := range ms {
		files = append(files, r.toDomain(&ms[i]))
	}
	return files, nil
}

// 确保 outputFileRepository 实现了 domain.OutputFileRepository 接口
var _ domain.OutputFileRepository = (*outputFileRepository)(nil)
