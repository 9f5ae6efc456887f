package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"
)

// FavoriteHandler favorite API router handler
// FavoriteHandler 工具收藏 API 路由处理器
type FavoriteHandler struct {
	*Handler
}

// NewFavoriteHandler creates FavoriteHandler instance
// NewFavoriteHandler 创建 FavoriteHandler 实例
func NewFavoriteHandler(a *app.App) *FavoriteHandler {
	return &FavoriteHandler{
		Handler: NewHandler(a),
	}
}

// Add favorites a tool
// @Summary Favorite a tool
// @Description Mark a tool as favorite for the current user. Favoriting twice returns an error.
// @Description 将工具加入当前用户的收藏。重复收藏返回错误。
// @Tags Favorite
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param id path string true "Tool ID"
// @Success 200 {object} pkgapp.Res{data=dto.FavoriteDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Tool Not Found / Already Favorited"
// @Router /api/tools/{id}/favorite [put]
func (h *FavoriteHandler) Add(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	favorite, err := h.App.FavoriteService.Add(ctx, uid, c.Param("id"))
	if err != nil {
		h.logError(ctx, "FavoriteHandler.Add", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(favorite))
}

// Remove unfavorites a tool
// @Summary Unfavorite a tool
// @Description Remove a tool from the current user's favorites. Removing a non-favorite is a no-op success.
// @Description 将工具移出当前用户的收藏。移除不存在的收藏视为成功。
// @Tags Favorite
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param id path string true "Tool ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Tool Not Found"
// @Router /api/tools/{id}/favorite [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	if err := h.App.FavoriteService.Remove(ctx, uid, c.Param("id")); err != nil {
		h.logError(ctx, "FavoriteHandler.Remove", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List lists the current user's favorites
// @Summary List favorites
// @Description List all favorites of the current user.
// @Description 获取当前用户的全部收藏。
// @Tags Favorite
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Success 200 {object} pkgapp.Res{data=[]dto.FavoriteDTO} "Success"
// @Router /api/user/favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	favorites, err := h.App.FavoriteService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "FavoriteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(favorites))
}
