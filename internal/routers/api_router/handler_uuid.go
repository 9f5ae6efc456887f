package api_router

import (
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UuidHandler UUID tool API router handler
// UuidHandler UUID 工具 API 路由处理器
type UuidHandler struct {
	*Handler
}

// NewUuidHandler creates UuidHandler instance
// NewUuidHandler 创建 UuidHandler 实例
func NewUuidHandler(a *app.App) *UuidHandler {
	return &UuidHandler{
		Handler: NewHandler(a),
	}
}

// Generate generates UUIDs
// @Summary Generate UUIDs
// @Description Generate v1/v3/v4/v5/v7 or nil UUIDs, up to 1000 per request.
// @Description 生成 v1/v3/v4/v5/v7 或 nil UUID, 单次最多 1000 个。
// @Tags Uuid
// @Accept json
// @Produce json
// @Param body body dto.UuidGenerateRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.UuidGenerateDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/uuid/generate [post]
func (h *UuidHandler) Generate(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.UuidGenerateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.UuidService.Generate(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "UuidHandler.Generate", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Validate validates a UUID
// @Summary Validate UUID
// @Description Check whether a value is a valid UUID and report version and variant.
// @Description 校验 UUID 是否合法, 并报告版本与变体。
// @Tags Uuid
// @Accept json
// @Produce json
// @Param body body dto.UuidValidateRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.UuidValidateDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/uuid/validate [post]
func (h *UuidHandler) Validate(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.UuidValidateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.UuidService.Validate(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "UuidHandler.Validate", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
