package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/model"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"

	"gorm.io/gorm"
)

// vanityJobRepository 实现 domain.VanityJobRepository 接口
type vanityJobRepository struct {
	dao *Dao
}

// NewVanityJobRepository 创建 VanityJobRepository 实例
func NewVanityJobRepository(dao *Dao) domain.VanityJobRepository {
	return &vanityJobRepository{dao: dao}
}

// db 获取靓号任务表会话
func (r *vanityJobRepository) db(ctx context.Context) *gorm.DB {
	r.dao.AutoMigrateOnce("VanityJob")
	return r.dao.Session(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *vanityJobRepository) toDomain(m *model.VanityJob) *domain.VanityJob {
	if m == nil {
		return nil
	}
	return &domain.VanityJob{
		ID:            m.ID,
		JobID:         m.JobID,
		UID:           m.UID,
		Pattern:       m.Pattern,
		Placement:     domain.VanityPlacement(m.Placement),
		CaseSensitive: m.CaseSensitive != 0,
		MaxAttempts:   m.MaxAttempts,
		MaxDuration:   time.Duration(m.MaxDurationMs) * time.Millisecond,
		Workers:       int(m.Workers),
		Status:        domain.VanityJobStatus(m.Status),
		Attempts:      m.Attempts,
		Elapsed:       time.Duration(m.ElapsedMs) * time.Millisecond,
		PublicKey:     m.PublicKey,
		PrivateKey:    m.PrivateKey,
		Error:         m.Error,
		CreatedAt:     time.Time(m.CreatedAt),
		UpdatedAt:     time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *vanityJobRepository) toModel(job *domain.VanityJob) *model.VanityJob {
	caseSensitive := int64(0)
	if job.CaseSensitive {
		caseSensitive = 1
	}
	return &model.VanityJob{
		ID:            job.ID,
		JobID:         job.JobID,
		UID:           job.UID,
		Pattern:       job.Pattern,
		Placement:     string(job.Placement),
		CaseSensitive: caseSensitive,
		MaxAttempts:   job.MaxAttempts,
		MaxDurationMs: job.MaxDuration.Milliseconds(),
		Workers:       int64(job.Workers),
		Status:        string(job.Status),
		Attempts:      job.Attempts,
		ElapsedMs:     job.Elapsed.Milliseconds(),
		PublicKey:     job.PublicKey,
		PrivateKey:    job.PrivateKey,
		Error:         job.Error,
	}
}

// GetByJobID 根据任务标识获取任务, 只能取到自己的任务
func (r *vanityJobRepository) GetByJobID(ctx context.Context, jobID string, uid int64) (*domain.VanityJob, error) {
	var m model.VanityJob
	err := r.db(ctx).Where("job_id = ? AND uid = ?", jobID, uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建任务记录
func (r *vanityJobRepository) Create(ctx context.Context, job *domain.VanityJob) (*domain.VanityJob, error) {
	m := r.toModel(job)
	m.ID = 0
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	err := r.dao.ExecuteWrite(ctx, job.UID, func() error {
		return r.db(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdateStatus 持久化任务的最新状态与进度
func (r *vanityJobRepository) UpdateStatus(ctx context.Context, job *domain.VanityJob) error {
	return r.dao.ExecuteWrite(ctx, job.UID, func() error {
		return r.db(ctx).Model(&model.VanityJob{}).
			Where("job_id = ? AND uid = ?", job.JobID, job.UID).
			Updates(map[string]interface{}{
				"status":      string(job.Status),
				"attempts":    job.Attempts,
				"elapsed_ms":  job.Elapsed.Milliseconds(),
				"public_key":  job.PublicKey,
				"private_key": job.PrivateKey,
				"error":       job.Error,
				"updated_at":  timex.Now(),
			}).Error
	})
}

// ListByUID 分页获取用户的任务, 新任务在前
func (r *vanityJobRepository) ListByUID(ctx context.Context, uid int64, page, pageSize int) ([]*domain.VanityJob, int64, error) {
	var total int64
	query := r.db(ctx).Model(&model.VanityJob{}).Where("uid = ?", uid)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	var ms []model.VanityJob
	err := r.db(ctx).Where("uid = ?", uid).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	jobs := make([]*domain.VanityJob, 0, len(ms))
	for i := range ms {
		jobs = append(jobs, r.toDomain(&ms[i]))
	}
	return jobs, total, nil
}

// MarkInterrupted 将所有残留的 pending/running 任务标记为失败
// 服务重启后调用, 清理上次进程遗留的中间状态
func (r *vanityJobRepository) MarkInterrupted(ctx context.Context, reason string) (int64, error) {
	result := r.db(ctx).Model(&model.VanityJob{}).
		Where("status IN ?", []string{
			string(domain.VanityJobStatusPending),
			string(domain.VanityJobStatusRunning),
		}).
		Updates(map[string]interface{}{
			"status":     string(domain.VanityJobStatusFailed),
			"error":      reason,
			"updated_at": timex.Now(),
		})
	return result.RowsAffected, result.Error
}

// DeleteTerminalBefore 删除指定时间之前更新的终态任务
func (r *vanityJobRepository) DeleteTerminalBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db(ctx).
		Where("status IN ?", []string{
			string(domain.VanityJobStatusDone),
			string(domain.VanityJobStatusNotFound),
			string(domain.VanityJobStatusCanceled),
			string(domain.VanityJobStatusFailed),
		}).
		Where("updated_at < ?", timex.Time(before)).
		Delete(&model.VanityJob{})
	return result.RowsAffected, result.Error
}

// 确保 vanityJobRepository 实现了 domain.VanityJobRepository 接口
var _ domain.VanityJobRepository = (*vanityJobRepository)(nil)
