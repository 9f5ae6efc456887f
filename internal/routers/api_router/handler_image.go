package api_router

import (
	"io"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/internal/service"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ImageHandler image tools API router handler
// ImageHandler 图片工具 API 路由处理器
type ImageHandler struct {
	*Handler
}

// NewImageHandler creates ImageHandler instance
// NewImageHandler 创建 ImageHandler 实例
func NewImageHandler(a *app.App) *ImageHandler {
	return &ImageHandler{
		Handler: NewHandler(a),
	}
}

// formImageFile pulls the single "file" upload out of the request
// formImageFile 从请求中取出单个 "file" 上传
func (h *ImageHandler) formImageFile(c *gin.Context, response *pkgapp.Response) (service.ImageUpload, bool) {
	file, fileHeader, errf := c.Request.FormFile("file")
	if errf != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("form file field is required: file"))
		return service.ImageUpload{}, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logError(c.Request.Context(), "ImageHandler.formImageFile", err)
		response.ToResponse(code.ErrorFileReadFailed.WithDetails(err.Error()))
		return service.ImageUpload{}, false
	}
	return service.ImageUpload{FileName: fileHeader.Filename, Content: content}, true
}

// Compress compresses an uploaded image
// @Summary Compress image
// @Description Scale an image into a bounding box and re-encode it, never upscales.
// @Description 将图片等比缩放到边界框内并重新编码, 不放大。
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param file formData file true "Image file"
// @Param quality formData int false "JPEG quality 1..100"
// @Success 200 {object} pkgapp.Res{data=dto.ImageCompressDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Not An Image"
// @Router /api/image/compress [post]
func (h *ImageHandler) Compress(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.ImageCompressRequest{}
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

	upload, ok := h.formImageFile(c, response)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.ImageService.Compress(ctx, uid, upload, params)
	if err != nil {
		h.logError(ctx, "ImageHandler.Compress", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Metadata reads image dimensions, format and EXIF
// @Summary Image metadata
// @Description Read pixel dimensions, format and EXIF tags of an uploaded image.
// @Description 读取上传图片的尺寸、格式与 EXIF 标签。
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param file formData file true "Image file"
// @Success 200 {object} pkgapp.Res{data=dto.ImageMetadataDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Not An Image"
// @Router /api/image/metadata [post]
func (h *ImageHandler) Metadata(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	upload, ok := h.formImageFile(c, response)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.ImageService.Metadata(ctx, uid, upload)
	if err != nil {
		h.logError(ctx, "ImageHandler.Metadata", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Strip removes EXIF metadata by re-encoding
// @Summary Strip image metadata
// @Description Re-encode an image without its EXIF metadata and store the result.
// @Description 重新编码图片以去除 EXIF 元数据并保存结果。
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param file formData file true "Image file"
// @Success 200 {object} pkgapp.Res{data=dto.ImageCompressDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Not An Image"
// @Router /api/image/strip [post]
func (h *ImageHandler) Strip(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	upload, ok := h.formImageFile(c, response)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.ImageService.StripMetadata(ctx, uid, upload)
	if err != nil {
		h.logError(ctx, "ImageHandler.Strip", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
