package api_router

import (
	"io"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TextHandler text tools API router handler
// TextHandler 文本类工具 API 路由处理器
type TextHandler struct {
	*Handler
}

// NewTextHandler creates TextHandler instance
// NewTextHandler 创建 TextHandler 实例
func NewTextHandler(a *app.App) *TextHandler {
	return &TextHandler{
		Handler: NewHandler(a),
	}
}

// HtmlEncode escapes text into HTML entities
// @Summary HTML entities encode
// @Description Escape HTML special characters, optionally all non-ASCII as numeric references.
// @Description 转义 HTML 特殊字符, 可选将非 ASCII 一并转为数字实体。
// @Tags Text
// @Accept json
// @Produce json
// @Param body body dto.HtmlEntitiesEncodeRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.HtmlEntitiesDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/html-entities/encode [post]
func (h *TextHandler) HtmlEncode(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.HtmlEntitiesEncodeRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.TextService.HtmlEncode(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "TextHandler.HtmlEncode", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// HtmlDecode resolves HTML entities back to text
// @Summary HTML entities decode
// @Description Resolve named and numeric HTML entities back to plain text.
// @Description 将命名与数字 HTML 实体还原为普通文本。
// @Tags Text
// @Accept json
// @Produce json
// @Param body body dto.HtmlEntitiesDecodeRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.HtmlEntitiesDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/html-entities/decode [post]
func (h *TextHandler) HtmlDecode(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.HtmlEntitiesDecodeRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.TextService.HtmlDecode(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "TextHandler.HtmlDecode", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// JsonFormat pretty-prints or minifies JSON
// @Summary JSON format
// @Description Pretty-print or minify JSON, with optional stable key ordering.
// @Description 格式化或压缩 JSON, 可选键排序。
// @Tags Text
// @Accept json
// @Produce json
// @Param body body dto.JsonFormatRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.JsonFormatDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Bad JSON"
// @Router /api/json/format [post]
func (h *TextHandler) JsonFormat(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.JsonFormatRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.TextService.JsonFormat(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "TextHandler.JsonFormat", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// JsonValidate checks JSON syntax
// @Summary JSON validate
// @Description Check JSON syntax, a parse failure is reported in the result body, not as an error.
// @Description 校验 JSON 语法, 解析失败在结果体中报告而非作为错误返回。
// @Tags Text
// @Accept json
// @Produce json
// @Param body body dto.JsonValidateRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.JsonValidateDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/json/validate [post]
func (h *TextHandler) JsonValidate(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.JsonValidateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.TextService.JsonValidate(ctx, pkgapp.GetUID(c), params.JSON)
	if err != nil {
		h.logError(ctx, "TextHandler.JsonValidate", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Diff compares two texts
// @Summary Text diff
// @Description Compare two texts line by line or character by character.
// @Description 按行或按字符对比两段文本。
// @Tags Text
// @Accept json
// @Produce json
// @Param body body dto.TextDiffRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.TextDiffDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/diff/text [post]
func (h *TextHandler) Diff(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.TextDiffRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.TextService.Diff(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "TextHandler.Diff", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Hash calculates digests of a text
// @Summary Hash calculate
// @Description Calculate MD5, SHA-1, SHA-256, SHA-512, SHA3-256 and BLAKE2b-256 of a text, HMAC when a key is given.
// @Description 计算文本的 MD5/SHA-1/SHA-256/SHA-512/SHA3-256/BLAKE2b-256, 给定密钥时输出 HMAC。
// @Tags Text
// @Accept json
// @Produce json
// @Param body body dto.HashCalculateRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.HashCalculateDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/hash/calculate [post]
func (h *TextHandler) Hash(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.HashCalculateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.TextService.Hash(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "TextHandler.Hash", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// HashFile calculates digests of an uploaded file
// @Summary Hash calculate file
// @Description Calculate the same digest set over an uploaded file's bytes.
// @Description 对上传文件的字节计算同一组摘要。
// @Tags Text
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to hash"
// @Param hmacKey formData string false "Optional HMAC key"
// @Success 200 {object} pkgapp.Res{data=dto.HashCalculateDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/hash/calculate-file [post]
func (h *TextHandler) HashFile(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	file, fileHeader, errf := c.Request.FormFile("file")
	if errf != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("form file field is required: file"))
		return
	}
	defer file.Close()

	ctx := c.Request.Context()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logError(ctx, "TextHandler.HashFile", err)
		response.ToResponse(code.ErrorFileReadFailed.WithDetails(err.Error()))
		return
	}

	result, err := h.App.TextService.HashBytes(ctx, pkgapp.GetUID(c), fileHeader.Filename, content, c.PostForm("hmacKey"))
	if err != nil {
		h.logError(ctx, "TextHandler.HashFile", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Minify minifies HTML, CSS or JS
// @Summary Minify document
// @Description Minify an HTML, CSS or JS document and report the size savings.
// @Description 压缩 HTML/CSS/JS 文档并报告压缩率。
// @Tags Text
// @Accept json
// @Produce json
// @Param body body dto.HtmlMinifyRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.HtmlMinifyDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Minify Failed"
// @Router /api/minify [post]
func (h *TextHandler) Minify(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.HtmlMinifyRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.TextService.Minify(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "TextHandler.Minify", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
