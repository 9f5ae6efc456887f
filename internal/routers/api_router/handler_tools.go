package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"
)

// ToolsHandler tool catalog API router handler
// ToolsHandler 工具目录 API 路由处理器
type ToolsHandler struct {
	*Handler
}

// NewToolsHandler creates ToolsHandler instance
// NewToolsHandler 创建 ToolsHandler 实例
func NewToolsHandler(a *app.App) *ToolsHandler {
	return &ToolsHandler{
		Handler: NewHandler(a),
	}
}

// List lists the tool catalog
// @Summary List tools
// @Description List the tool catalog. Logged-in users get favorite markers on the entries.
// @Description 获取工具目录。登录用户的条目带收藏标记。
// @Tags Tools
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.ToolDTO} "Success"
// @Router /api/tools [get]
func (h *ToolsHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	// 匿名访问时 uid 为 0，不带收藏标记
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	tools, err := h.App.ToolsService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "ToolsHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tools))
}

// Get retrieves a single tool entry
// @Summary Get tool
// @Description Get a single catalog entry by tool id.
// @Description 按工具标识获取单个目录条目。
// @Tags Tools
// @Produce json
// @Param id path string true "Tool ID"
// @Success 200 {object} pkgapp.Res{data=dto.ToolDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Tool Not Found"
// @Router /api/tools/{id} [get]
func (h *ToolsHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	tool, err := h.App.ToolsService.Get(ctx, uid, c.Param("id"))
	if err != nil {
		h.logError(ctx, "ToolsHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tool))
}
