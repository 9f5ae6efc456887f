package api_router

import (
	"io"
	"mime/multipart"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/internal/service"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// PdfHandler PDF tools API router handler
// PdfHandler PDF 工具 API 路由处理器
type PdfHandler struct {
	*Handler
}

// NewPdfHandler creates PdfHandler instance
// NewPdfHandler 创建 PdfHandler 实例
func NewPdfHandler(a *app.App) *PdfHandler {
	return &PdfHandler{
		Handler: NewHandler(a),
	}
}

// readPdfUpload reads one multipart file into memory
// readPdfUpload 读取单个 multipart 文件到内存
func readPdfUpload(fh *multipart.FileHeader) (service.PdfUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return service.PdfUpload{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return service.PdfUpload{}, err
	}
	return service.PdfUpload{FileName: fh.Filename, Content: content}, nil
}

// formPdfFile pulls the single "file" upload out of the request
// formPdfFile 从请求中取出单个 "file" 上传
func (h *PdfHandler) formPdfFile(c *gin.Context, response *pkgapp.Response) (service.PdfUpload, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("form file field is required: file"))
		return service.PdfUpload{}, false
	}

	upload, err := readPdfUpload(fh)
	if err != nil {
		h.logError(c.Request.Context(), "PdfHandler.formPdfFile", err)
		response.ToResponse(code.ErrorFileReadFailed.WithDetails(err.Error()))
		return service.PdfUpload{}, false
	}
	return upload, true
}

// Merge merges uploaded PDFs into one
// @Summary Merge PDFs
// @Description Merge two or more uploaded PDFs into a single document, upload order preserved.
// @Description 按上传顺序合并多个 PDF 为一个文档。
// @Tags Pdf
// @Accept multipart/form-data
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param files formData file true "PDF files, repeat the field"
// @Success 200 {object} pkgapp.Res{data=dto.PdfResultDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / File Too Large"
// @Router /api/pdf/merge [post]
func (h *PdfHandler) Merge(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	headers := form.File["files"]
	if len(headers) < 2 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("at least two files are required: files"))
		return
	}

	ctx := c.Request.Context()

	files := make([]service.PdfUpload, 0, len(headers))
	for _, fh := range headers {
		upload, rerr := readPdfUpload(fh)
		if rerr != nil {
			h.logError(ctx, "PdfHandler.Merge", rerr)
			response.ToResponse(code.ErrorFileReadFailed.WithDetails(rerr.Error()))
			return
		}
		files = append(files, upload)
	}

	result, err := h.App.PdfService.Merge(ctx, uid, files)
	if err != nil {
		h.logError(ctx, "PdfHandler.Merge", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Extract extracts a page range into a new PDF
// @Summary Extract PDF pages
// @Description Extract the pages named by a range spec like "1-3,5,7-9" into a new document.
// @Description 按 "1-3,5,7-9" 形式的页码范围提取页面为新文档。
// @Tags Pdf
// @Accept multipart/form-data
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param file formData file true "PDF file"
// @Param ranges formData string true "Page range spec"
// @Success 200 {object} pkgapp.Res{data=dto.PdfResultDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Bad Range"
// @Router /api/pdf/extract [post]
func (h *PdfHandler) Extract(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.PdfExtractRequest{}
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

	upload, ok := h.formPdfFile(c, response)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.PdfService.ExtractPages(ctx, uid, upload, params.Ranges)
	if err != nil {
		h.logError(ctx, "PdfHandler.Extract", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Watermark stamps a text watermark on every page
// @Summary Watermark PDF
// @Description Stamp a text watermark on every page with position, rotation, opacity and color control.
// @Description 在每一页加盖文字水印, 支持位置/旋转/透明度/颜色。
// @Tags Pdf
// @Accept multipart/form-data
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param file formData file true "PDF file"
// @Param text formData string true "Watermark text"
// @Success 200 {object} pkgapp.Res{data=dto.PdfResultDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/pdf/watermark [post]
func (h *PdfHandler) Watermark(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.PdfWatermarkRequest{}
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

	upload, ok := h.formPdfFile(c, response)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.PdfService.Watermark(ctx, uid, upload, params)
	if err != nil {
		h.logError(ctx, "PdfHandler.Watermark", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Encrypt password-protects a PDF
// @Summary Encrypt PDF
// @Description Protect a PDF with AES-256, owner password falls back to the user password.
// @Description 用 AES-256 为 PDF 设置密码, 权限密码缺省与打开密码一致。
// @Tags Pdf
// @Accept multipart/form-data
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param file formData file true "PDF file"
// @Param userPassword formData string true "Open password"
// @Param ownerPassword formData string false "Permission password"
// @Success 200 {object} pkgapp.Res{data=dto.PdfResultDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/pdf/encrypt [post]
func (h *PdfHandler) Encrypt(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.PdfEncryptRequest{}
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

	upload, ok := h.formPdfFile(c, response)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.PdfService.Encrypt(ctx, uid, upload, params)
	if err != nil {
		h.logError(ctx, "PdfHandler.Encrypt", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Info reads PDF document properties
// @Summary PDF info
// @Description Report page count, PDF version and encryption state of an uploaded document.
// @Description 报告上传文档的页数、PDF 版本与加密状态。
// @Tags Pdf
// @Accept multipart/form-data
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param file formData file true "PDF file"
// @Success 200 {object} pkgapp.Res{data=dto.PdfInfoDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Not A PDF"
// @Router /api/pdf/info [post]
func (h *PdfHandler) Info(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	upload, ok := h.formPdfFile(c, response)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.PdfService.Info(ctx, uid, upload)
	if err != nil {
		h.logError(ctx, "PdfHandler.Info", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
