package api_router

import (
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ConvertHandler conversion tools API router handler
// ConvertHandler 转换类工具 API 路由处理器
type ConvertHandler struct {
	*Handler
}

// NewConvertHandler creates ConvertHandler instance
// NewConvertHandler 创建 ConvertHandler 实例
func NewConvertHandler(a *app.App) *ConvertHandler {
	return &ConvertHandler{
		Handler: NewHandler(a),
	}
}

// NumberBase converts a number between bases
// @Summary Number base convert
// @Description Convert a number between bases 2..36, always returns binary, octal, decimal and hex.
// @Description 在 2..36 进制之间转换数字, 总是返回二/八/十/十六进制。
// @Tags Convert
// @Accept json
// @Produce json
// @Param body body dto.NumberBaseConvertRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.NumberBaseConvertDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Bad Digits"
// @Router /api/number-base/convert [post]
func (h *ConvertHandler) NumberBase(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.NumberBaseConvertRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.ConvertService.NumberBase(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "ConvertHandler.NumberBase", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Timezone renders an instant in multiple time zones
// @Summary Timezone convert
// @Description Render one instant in a source zone and any number of target IANA zones.
// @Description 将同一时刻渲染为源时区与任意多个目标 IANA 时区的当地时间。
// @Tags Convert
// @Accept json
// @Produce json
// @Param body body dto.TimezoneConvertRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.TimezoneConvertDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Unknown Zone"
// @Router /api/timezone/convert [post]
func (h *ConvertHandler) Timezone(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.TimezoneConvertRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.ConvertService.Timezone(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "ConvertHandler.Timezone", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Zones lists common time zones
// @Summary List common time zones
// @Description List common IANA zones with their current offset and DST state.
// @Description 列出常用 IANA 时区及其当前偏移与夏令时状态。
// @Tags Convert
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.TimezoneListDTO} "Success"
// @Router /api/timezone/zones [get]
func (h *ConvertHandler) Zones(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()
	result, err := h.App.ConvertService.ListZones(ctx)
	if err != nil {
		h.logError(ctx, "ConvertHandler.Zones", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Timestamp converts between unix timestamps and readable time
// @Summary Timestamp convert
// @Description Convert unix seconds/millis/nanos or RFC3339 text, "now" is accepted.
// @Description 在 Unix 秒/毫秒/纳秒与可读时间之间转换, 支持 "now"。
// @Tags Convert
// @Accept json
// @Produce json
// @Param body body dto.TimestampConvertRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.TimestampConvertDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Bad Input"
// @Router /api/timestamp/convert [post]
func (h *ConvertHandler) Timestamp(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.TimestampConvertRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.ConvertService.Timestamp(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "ConvertHandler.Timestamp", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Case converts an identifier between naming styles
// @Summary Case convert
// @Description Convert an identifier or phrase to snake, camel, pascal, kebab and other styles at once.
// @Description 将标识符或短语一次性转换为 snake/camel/pascal/kebab 等全部命名风格。
// @Tags Convert
// @Accept json
// @Produce json
// @Param body body dto.CaseConvertRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.CaseConvertDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/case/convert [post]
func (h *ConvertHandler) Case(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.CaseConvertRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.ConvertService.Case(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "ConvertHandler.Case", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
