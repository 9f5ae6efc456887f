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

// Base64Handler base64 tool API router handler
// Base64Handler Base64 工具 API 路由处理器
type Base64Handler struct {
	*Handler
}

// NewBase64Handler creates Base64Handler instance
// NewBase64Handler 创建 Base64Handler 实例
func NewBase64Handler(a *app.App) *Base64Handler {
	return &Base64Handler{
		Handler: NewHandler(a),
	}
}

// EncodeText encodes text to base64
// @Summary Base64 encode text
// @Description Encode UTF-8 text to base64, standard or URL-safe alphabet.
// @Description 将 UTF-8 文本编码为 Base64, 支持标准与 URL 安全字符表。
// @Tags Base64
// @Accept json
// @Produce json
// @Param body body dto.Base64EncodeRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.Base64EncodeDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/base64/encode [post]
func (h *Base64Handler) EncodeText(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.Base64EncodeRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.Base64Service.EncodeText(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "Base64Handler.EncodeText", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// DecodeText decodes base64 to text
// @Summary Base64 decode text
// @Description Decode a base64 string, both alphabets and missing padding accepted.
// @Description 解码 Base64 字符串, 兼容两种字符表与缺失的填充。
// @Tags Base64
// @Accept json
// @Produce json
// @Param body body dto.Base64DecodeRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.Base64DecodeDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Not Valid Base64"
// @Router /api/base64/decode [post]
func (h *Base64Handler) DecodeText(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.Base64DecodeRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.Base64Service.DecodeText(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "Base64Handler.DecodeText", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// EncodeFile encodes an uploaded file to base64
// @Summary Base64 encode file
// @Description Encode an uploaded file to a base64 string.
// @Description 将上传文件编码为 Base64 字符串。
// @Tags Base64
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to encode"
// @Success 200 {object} pkgapp.Res{data=dto.Base64FileEncodeDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / File Too Large"
// @Router /api/base64/encode-file [post]
func (h *Base64Handler) EncodeFile(c *gin.Context) {
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
		h.logError(ctx, "Base64Handler.EncodeFile", err)
		response.ToResponse(code.ErrorFileReadFailed.WithDetails(err.Error()))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.App.Base64Service.EncodeFile(ctx, pkgapp.GetUID(c), fileHeader.Filename, content, contentType)
	if err != nil {
		h.logError(ctx, "Base64Handler.EncodeFile", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// DecodeToFile decodes base64 into a stored output file
// @Summary Base64 decode to file
// @Description Decode a base64 string and persist the bytes as a downloadable output file.
// @Description 解码 Base64 并将字节保存为可下载的产物文件。
// @Tags Base64
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param body body dto.Base64DecodeToFileRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.OutputFileDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Storage Not Configured"
// @Router /api/base64/decode-file [post]
func (h *Base64Handler) DecodeToFile(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.Base64DecodeToFileRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.Base64Service.DecodeToFile(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "Base64Handler.DecodeToFile", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
