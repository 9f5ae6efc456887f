package api_router

import (
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// JwtHandler JWT tool API router handler
// JwtHandler JWT 工具 API 路由处理器
type JwtHandler struct {
	*Handler
}

// NewJwtHandler creates JwtHandler instance
// NewJwtHandler 创建 JwtHandler 实例
func NewJwtHandler(a *app.App) *JwtHandler {
	return &JwtHandler{
		Handler: NewHandler(a),
	}
}

// Decode decodes a JWT without verifying its signature
// @Summary Decode JWT
// @Description Decode header and claims of a JWT and evaluate exp/nbf/iat. The signature is never verified.
// @Description 解析 JWT 的头部与载荷并检查 exp/nbf/iat 时间声明, 不校验签名。
// @Tags Jwt
// @Accept json
// @Produce json
// @Param body body dto.JwtDecodeRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.JwtDecodeDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Malformed Token"
// @Router /api/jwt/decode [post]
func (h *JwtHandler) Decode(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.JwtDecodeRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.JwtService.Decode(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "JwtHandler.Decode", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
