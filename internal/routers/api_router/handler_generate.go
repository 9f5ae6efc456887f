package api_router

import (
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// GenerateHandler generator tools API router handler
// GenerateHandler 生成类工具 API 路由处理器
type GenerateHandler struct {
	*Handler
}

// NewGenerateHandler creates GenerateHandler instance
// NewGenerateHandler 创建 GenerateHandler 实例
func NewGenerateHandler(a *app.App) *GenerateHandler {
	return &GenerateHandler{
		Handler: NewHandler(a),
	}
}

// Qrcode generates a QR code PNG
// @Summary Generate QR code
// @Description Generate a QR code PNG and return it as a data URL, optionally persisted as an output file.
// @Description 生成二维码 PNG 并以 data URL 返回, 可选存为产物文件。
// @Tags Generate
// @Accept json
// @Produce json
// @Param body body dto.QrcodeGenerateRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.QrcodeGenerateDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Content Too Long"
// @Router /api/qrcode/generate [post]
func (h *GenerateHandler) Qrcode(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.QrcodeGenerateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.GenerateService.Qrcode(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "GenerateHandler.Qrcode", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Password generates random passwords
// @Summary Generate passwords
// @Description Generate random passwords from the selected character classes, every selected class is guaranteed present.
// @Description 按所选字符类生成随机密码, 每个选中的字符类都保证出现。
// @Tags Generate
// @Accept json
// @Produce json
// @Param body body dto.PasswordGenerateRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.PasswordGenerateDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/password/generate [post]
func (h *GenerateHandler) Password(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.PasswordGenerateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.GenerateService.Password(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "GenerateHandler.Password", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Lorem generates placeholder text
// @Summary Generate lorem ipsum
// @Description Generate placeholder paragraphs, sentences or words.
// @Description 生成占位文本的段落、句子或单词。
// @Tags Generate
// @Accept json
// @Produce json
// @Param body body dto.LoremGenerateRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.LoremGenerateDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/lorem/generate [post]
func (h *GenerateHandler) Lorem(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.LoremGenerateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.GenerateService.Lorem(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "GenerateHandler.Lorem", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
