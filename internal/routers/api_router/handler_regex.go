package api_router

import (
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RegexHandler regular expression tool API router handler
// RegexHandler 正则工具 API 路由处理器
type RegexHandler struct {
	*Handler
}

// NewRegexHandler creates RegexHandler instance
// NewRegexHandler 创建 RegexHandler 实例
func NewRegexHandler(a *app.App) *RegexHandler {
	return &RegexHandler{
		Handler: NewHandler(a),
	}
}

// Test runs a regular expression against a text
// @Summary Regex test
// @Description Match a pattern against a text, returns matches with byte offsets and capture groups.
// @Description 用正则匹配文本, 返回匹配结果及字节偏移与捕获组。
// @Tags Regex
// @Accept json
// @Produce json
// @Param body body dto.RegexTestRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.RegexTestDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Bad Pattern"
// @Router /api/regex/test [post]
func (h *RegexHandler) Test(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.RegexTestRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.RegexService.Test(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "RegexHandler.Test", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Replace rewrites a text with a regular expression
// @Summary Regex replace
// @Description Replace pattern matches in a text with a template, $1 style group references supported.
// @Description 用模板替换文本中的正则匹配, 支持 $1 形式的组引用。
// @Tags Regex
// @Accept json
// @Produce json
// @Param body body dto.RegexReplaceRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.RegexReplaceDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Bad Pattern"
// @Router /api/regex/replace [post]
func (h *RegexHandler) Replace(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.RegexReplaceRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.RegexService.Replace(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "RegexHandler.Replace", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
