// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/fileurl"
	"github.com/haierkeys/dev-toolbox-service/pkg/logger"
	"github.com/haierkeys/dev-toolbox-service/pkg/storage"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DownloadResult 描述产物文件的下载方式
// 本地存储走文件流, 云存储走公开地址重定向
type DownloadResult struct {
	File        *dto.OutputFileDTO
	LocalPath   string // Stream source on disk // 本地文件路径
	RedirectURL string // Public URL to redirect to // 重定向地址
}

// OutputService 生成文件服务接口
// 工具产物统一经此落盘并登记, 由清理任务按过期时间回收
type OutputService interface {
	// Store 写入产物到存储后端并登记记录
	Store(ctx context.Context, uid int64, toolID string, fileName string, content []byte, contentType string) (*dto.OutputFileDTO, error)

	// List 分页获取用户的产物文件
	List(ctx context.Context, uid int64, params *dto.FileListRequest) (*dto.OutputFileListDTO, error)

	// Download 解析下载方式
	Download(ctx context.Context, uid int64, id int64) (*DownloadResult, error)

	// Delete 删除产物文件和记录
	Delete(ctx context.Context, uid int64, id int64) error

	// CleanupExpired 清理任务入口: 删除过期产物的存储对象和记录
	CleanupExpired(ctx context.Context) (int, error)
}

// outputService 实现 OutputService 接口
type outputService struct {
	outputRepo      domain.OutputFileRepository
	store           storage.Storager
	storageType     storage.Type
	accessUrlPrefix string
	localSavePath   string
	logger          *zap.Logger
	config          *ServiceConfig
}

// NewOutputService 创建 OutputService 实例
// store 为 nil 表示存储未启用, 所有产出类操作会拒绝
func NewOutputService(outputRepo domain.OutputFileRepository, store storage.Storager, storageType storage.Type, accessUrlPrefix string, localSavePath string, logger *zap.Logger, config *ServiceConfig) OutputService {
	return &outputService{
		outputRepo:      outputRepo,
		store:           store,
		storageType:     storageType,
		accessUrlPrefix: accessUrlPrefix,
		localSavePath:   localSavePath,
		logger:          logger,
		config:          config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *outputService) domainToDTO(f *domain.OutputFile) *dto.OutputFileDTO {
	if f == nil {
		return nil
	}
	return &dto.OutputFileDTO{
		ID:          f.ID,
		ToolID:      f.ToolID,
		FileName:    f.FileName,
		StorageType: f.StorageType,
		Size:        f.Size,
		ContentType: f.ContentType,
		DownloadURL: fmt.Sprintf("/api/files/%d/download", f.ID),
		ExpiresAt:   timex.Time(f.ExpiresAt),
		CreatedAt:   timex.Time(f.CreatedAt),
	}
}

// sanitizeFileName 去掉路径部分和分隔符, 防止键注入
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "..", "-")
	if name == "" || name == "." || name == "/" {
		name = "output.bin"
	}
	return name
}

// Store 写入产物到存储后端并登记记录
func (s *outputService) Store(ctx context.Context, uid int64, toolID string, fileName string, content []byte, contentType string) (*dto.OutputFileDTO, error) {
	if s.store == nil {
		return nil, code.ErrorStorageNotFound
	}

	fileName = sanitizeFileName(fileName)
	fileKey := fmt.Sprintf("outputs/%d/%s%d-%s", uid, fileurl.GetDatePath(""), time.Now().UnixNano(), fileName)

	if _, err := s.store.SendContent(fileKey, content, time.Now()); err != nil {
		return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}

	file := &domain.OutputFile{
		UID:         uid,
		ToolID:      toolID,
		FileName:    fileName,
		StorageType: s.storageType,
		FileKey:     fileKey,
		Size:        int64(len(content)),
		ContentType: contentType,
	}
	if s.config.Tools.OutputRetention > 0 {
		file.ExpiresAt = time.Now().Add(s.config.Tools.OutputRetention)
	}

	created, err := s.outputRepo.Create(ctx, file)
	if err != nil {
		// 记录写失败时回收已写入的对象, 避免孤儿文件
		if derr := s.store.Delete(fileKey); derr != nil {
			s.logger.Warn("orphan output cleanup failed",
				zap.String("fileKey", fileKey),
				zap.Error(derr))
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("output file stored",
		zap.Int64(logger.FieldUID, uid),
		zap.String(logger.FieldTool, toolID),
		zap.String("fileKey", fileKey),
		zap.Int64(logger.FieldSize, created.Size))

	return s.domainToDTO(created), nil
}

// List 分页获取用户的产物文件
func (s *outputService) List(ctx context.Context, uid int64, params *dto.FileListRequest) (*dto.OutputFileListDTO, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = s.config.App.DefaultPageSize
	}
	if pageSize > s.config.App.MaxPageSize {
		pageSize = s.config.App.MaxPageSize
	}

	files, total, err := s.outputRepo.ListByUID(ctx, uid, page, pageSize)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	list := make([]*dto.OutputFileDTO, 0, len(files))
	for _, f := range files {
		list = append(list, s.domainToDTO(f))
	}
	return &dto.OutputFileListDTO{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Download 解析下载方式
func (s *outputService) Download(ctx context.Context, uid int64, id int64) (*DownloadResult, error) {
	file, err := s.outputRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorFileNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if file.IsExpired(time.Now()) {
		return nil, code.ErrorFileNotFound
	}

	result := &DownloadResult{File: s.domainToDTO(file)}
	if file.StorageType == storage.LOCAL {
		result.LocalPath = fileurl.PathSuffixCheckAdd(s.localSavePath, "/") + file.FileKey
		if !fileurl.IsExist(result.LocalPath) {
			return nil, code.ErrorFileNotFound
		}
		return result, nil
	}

	if s.accessUrlPrefix == "" {
		return nil, code.ErrorFileReadFailed.WithDetails("storage access-url-prefix is not configured")
	}
	result.RedirectURL = fileurl.PathSuffixCheckAdd(s.accessUrlPrefix, "/") + file.FileKey
	return result, nil
}

// Delete 删除产物文件和记录
func (s *outputService) Delete(ctx context.Context, uid int64, id int64) error {
	file, err := s.outputRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorFileNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if s.store != nil {
		if err := s.store.Delete(file.FileKey); err != nil {
			s.logger.Warn("storage object delete failed",
				zap.String("fileKey", file.FileKey),
				zap.Error(err))
		}
	}

	if err := s.outputRepo.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorFileNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// CleanupExpired 清理任务入口: 删除过期产物的存储对象和记录
func (s *outputService) CleanupExpired(ctx context.Context) (int, error) {
	files, err := s.outputRepo.ListExpired(ctx, time.Now(), 500)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, f := range files {
		if s.store != nil {
			if err := s.store.Delete(f.FileKey); err != nil {
				s.logger.Warn("expired object delete failed",
					zap.String("fileKey", f.FileKey),
					zap.Error(err))
			}
		}
		if err := s.outputRepo.Delete(ctx, f.ID, f.UID); err != nil {
			s.logger.Warn("expired record delete failed",
				zap.Int64("fileId", f.ID),
				zap.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}

// 确保 outputService 实现了 OutputService 接口
var _ OutputService = (*outputService)(nil)
