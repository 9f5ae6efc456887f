// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/util"
	"go.uber.org/zap"
)

// exportToolID 导出产物在文件表里的归属标识
const exportToolID = "export"

// ExportService 用户数据导出服务接口
type ExportService interface {
	// Export 打包用户的历史/收藏/设置为 zip 产物
	Export(ctx context.Context, uid int64) (*dto.OutputFileDTO, error)
}

// exportService 实现 ExportService 接口
type exportService struct {
	historyService  HistoryService
	favoriteService FavoriteService
	settingService  SettingService
	outputService   OutputService
	logger          *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(
	historySvc HistoryService,
	favoriteSvc FavoriteService,
	settingSvc SettingService,
	outputSvc OutputService,
	logger *zap.Logger,
) ExportService {
	return &exportService{
		historyService:  historySvc,
		favoriteService: favoriteSvc,
		settingService:  settingSvc,
		outputService:   outputSvc,
		logger:          logger,
	}
}

// exportManifest zip 内的导出说明
type exportManifest struct {
	ExportedAt string `json:"exportedAt"` // Export time RFC3339 // 导出时间
	UID        int64  `json:"uid"`        // Owner uid // 所属用户
	Histories  int    `json:"histories"`  // History entry count // 历史条数
	Favorites  int    `json:"favorites"`  // Favorite count // 收藏条数
	Settings   int    `json:"settings"`   // Setting count // 设置条数
}

// Export 打包用户的历史/收藏/设置为 zip 产物
func (s *exportService) Export(ctx context.Context, uid int64) (*dto.OutputFileDTO, error) {
	histories, err := s.historyService.ListAll(ctx, uid)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favoriteService.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingService.GetAll(ctx, uid)
	if err != nil {
		return nil, err
	}

	manifest := &exportManifest{
		ExportedAt: time.Now().Format(time.RFC3339),
		UID:        uid,
		Histories:  len(histories),
		Favorites:  len(favorites),
		Settings:   len(settings.Settings),
	}

	files := make(map[string][]byte, 4)
	for name, v := range map[string]any{
		"manifest.json":  manifest,
		"history.json":   histories,
		"favorites.json": favorites,
		"settings.json":  settings,
	} {
		data, merr := jsonAPI.MarshalIndent(v, "", "  ")
		if merr != nil {
			return nil, code.ErrorExportFailed.WithDetails(merr.Error())
		}
		files[name] = data
	}

	archive, err := util.ZipContent(files)
	if err != nil {
		return nil, code.ErrorExportFailed.WithDetails(err.Error())
	}

	fileName := fmt.Sprintf("export-%d-%d.zip", uid, time.Now().Unix())
	stored, err := s.outputService.Store(ctx, uid, exportToolID, fileName, archive, "application/zip")
	if err != nil {
		return nil, err
	}

	s.logger.Info("user data exported",
		zap.Int64("uid", uid),
		zap.String("file", fileName),
		zap.Int("bytes", len(archive)))

	return stored, nil
}

// 确保 exportService 实现了 ExportService 接口
var _ ExportService = (*exportService)(nil)
