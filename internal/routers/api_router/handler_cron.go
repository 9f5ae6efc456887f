package api_router

import (
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CronHandler cron expression tool API router handler
// CronHandler Cron 表达式工具 API 路由处理器
type CronHandler struct {
	*Handler
}

// NewCronHandler creates CronHandler instance
// NewCronHandler 创建 CronHandler 实例
func NewCronHandler(a *app.App) *CronHandler {
	return &CronHandler{
		Handler: NewHandler(a),
	}
}

// Parse explains a cron expression
// @Summary Parse cron expression
// @Description Explain a 5-field cron expression in plain English and compute the next run times.
// @Description 解析五段 Cron 表达式为英文描述, 并计算接下来的执行时间。
// @Tags Cron
// @Accept json
// @Produce json
// @Param body body dto.CronParseRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.CronParseDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Bad Expression"
// @Router /api/cron/parse [post]
func (h *CronHandler) Parse(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.CronParseRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.CronService.Parse(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "CronHandler.Parse", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
