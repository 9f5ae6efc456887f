package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/convert"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"
	"go.uber.org/zap"
)

// HistoryHandler invocation history API router handler
// HistoryHandler 工具调用历史 API 路由处理器
type HistoryHandler struct {
	*Handler
}

// NewHistoryHandler creates HistoryHandler instance
// NewHistoryHandler 创建 HistoryHandler 实例
func NewHistoryHandler(a *app.App) *HistoryHandler {
	return &HistoryHandler{
		Handler: NewHandler(a),
	}
}

// List lists history entries of a tool
// @Summary List tool history
// @Description List the current user's invocation history for one tool, newest first, bounded by the history cap.
// @Description 获取当前用户在某个工具下的调用历史，新的在前，受历史上限约束。
// @Tags History
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param id path string true "Tool ID"
// @Param limit query int false "Max rows"
// @Success 200 {object} pkgapp.Res{data=[]dto.HistoryEntryDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Tool Not Found"
// @Router /api/tools/{id}/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	entries, err := h.App.HistoryService.List(ctx, uid, c.Param("id"), params)
	if err != nil {
		h.logError(ctx, "HistoryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entries))
}

// Append appends a history entry manually
// @Summary Append tool history
// @Description Append one history entry for a tool. Tool operations already record history on success, this endpoint lets a client write its own entries.
// @Description 手动追加一条工具历史。工具操作成功时已自动记录，此接口供客户端写入自定义条目。
// @Tags History
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param id path string true "Tool ID"
// @Param params body dto.HistoryAppendRequest true "Append Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.HistoryEntryDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Tool Not Found"
// @Router /api/tools/{id}/history [post]
func (h *HistoryHandler) Append(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryAppendRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("HistoryHandler.Append.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	entry, err := h.App.HistoryService.Append(ctx, uid, c.Param("id"), params)
	if err != nil {
		h.logError(ctx, "HistoryHandler.Append", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// Delete deletes one history entry
// @Summary Delete history entry
// @Description Delete a single history entry of the current user by entry id.
// @Description 按记录 ID 删除当前用户的单条历史。
// @Tags History
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param id path string true "Tool ID"
// @Param hid path int true "History Entry ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Entry Not Found"
// @Router /api/tools/{id}/history/{hid} [delete]
func (h *HistoryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	hid := convert.StrTo(c.Param("hid")).MustInt64()
	if hid <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("hid must be a positive integer"))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	if err := h.App.HistoryService.Delete(ctx, uid, c.Param("id"), hid); err != nil {
		h.logError(ctx, "HistoryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Clear clears the history of a tool
// @Summary Clear tool history
// @Description Delete all history entries of the current user for one tool.
// @Description 清空当前用户在某个工具下的全部历史。
// @Tags History
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param id path string true "Tool ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Tool Not Found"
// @Router /api/tools/{id}/history [delete]
func (h *HistoryHandler) Clear(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	if err := h.App.HistoryService.Clear(ctx, uid, c.Param("id")); err != nil {
		h.logError(ctx, "HistoryHandler.Clear", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
