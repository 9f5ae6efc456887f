// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"
	"gorm.io/gorm"
)

// FavoriteService 工具收藏服务接口
type FavoriteService interface {
	// Add 收藏工具, 重复收藏返回错误
	Add(ctx context.Context, uid int64, toolID string) (*dto.FavoriteDTO, error)

	// Remove 取消收藏, 取消不存在的收藏视为成功
	Remove(ctx context.Context, uid int64, toolID string) error

	// List 获取用户全部收藏
	List(ctx context.Context, uid int64) ([]*dto.FavoriteDTO, error)

	// ToolIDSet 获取用户收藏的工具标识集合, 目录打标用
	ToolIDSet(ctx context.Context, uid int64) (map[string]bool, error)
}

// favoriteService 实现 FavoriteService 接口
type favoriteService struct {
	favoriteRepo domain.FavoriteRepository
}

// NewFavoriteService 创建 FavoriteService 实例
func NewFavoriteService(favoriteRepo domain.FavoriteRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo}
}

// domainToDTO 将领域模型转换为 DTO
func (s *favoriteService) domainToDTO(f *domain.Favorite) *dto.FavoriteDTO {
	if f == nil {
		return nil
	}
	return &dto.FavoriteDTO{
		ToolID:    f.ToolID,
		CreatedAt: timex.Time(f.CreatedAt),
	}
}

// Add 收藏工具, 重复收藏返回错误
func (s *favoriteService) Add(ctx context.Context, uid int64, toolID string) (*dto.FavoriteDTO, error) {
	if _, ok := LookupTool(toolID); !ok {
		return nil, code.ErrorNotFoundTool
	}

	if existing, err := s.favoriteRepo.Get(ctx, uid, toolID); err == nil && existing != nil {
		return nil, code.ErrorFavoriteExists
	}

	created, err := s.favoriteRepo.Create(ctx, &domain.Favorite{UID: uid, ToolID: toolID})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(created), nil
}

// Remove 取消收藏, 取消不存在的收藏视为成功
func (s *favoriteService) Remove(ctx context.Context, uid int64, toolID string) error {
	if _, ok := LookupTool(toolID); !ok {
		return code.ErrorNotFoundTool
	}

	if err := s.favoriteRepo.Delete(ctx, uid, toolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// List 获取用户全部收藏
func (s *favoriteService) List(ctx context.Context, uid int64) ([]*dto.FavoriteDTO, error) {
	favorites, err := s.favoriteRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	results := make([]*dto.FavoriteDTO, 0, len(favorites))
	for _, f := range favorites {
		results = append(results, s.domainToDTO(f))
	}
	return results, nil
}

// ToolIDSet 获取用户收藏的工具标识集合, 目录打标用
func (s *favoriteService) ToolIDSet(ctx context.Context, uid int64) (map[string]bool, error) {
	if uid <= 0 {
		return map[string]bool{}, nil
	}
	favorites, err := s.favoriteRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	set := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		set[f.ToolID] = true
	}
	return set, nil
}

// 确保 favoriteService 实现了 FavoriteService 接口
var _ FavoriteService = (*favoriteService)(nil)
