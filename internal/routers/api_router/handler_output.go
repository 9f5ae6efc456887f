package api_router

import (
	"net/http"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/convert"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// OutputHandler output file API router handler
// OutputHandler 产物文件 API 路由处理器
type OutputHandler struct {
	*Handler
}

// NewOutputHandler creates OutputHandler instance
// NewOutputHandler 创建 OutputHandler 实例
func NewOutputHandler(a *app.App) *OutputHandler {
	return &OutputHandler{
		Handler: NewHandler(a),
	}
}

// List pages through the user's output files
// @Summary List output files
// @Description Page through files produced by tools for the current user, newest first.
// @Description 分页获取当前用户的工具产物文件, 最新在前。
// @Tags File
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} pkgapp.Res{data=dto.OutputFileListDTO} "Success"
// @Router /api/files [get]
func (h *OutputHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.FileListRequest{}
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
	list, err := h.App.OutputService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "OutputHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Download streams or redirects to an output file
// @Summary Download output file
// @Description Stream a locally stored file, cloud-stored files redirect to their public URL.
// @Description 本地存储的文件以文件流返回, 云存储的文件重定向到公开地址。
// @Tags File
// @Produce octet-stream
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param id path int true "File ID"
// @Success 200 {file} binary "File stream"
// @Success 302 {string} string "Redirect to public URL"
// @Failure 400 {object} pkgapp.Res "File Not Found"
// @Router /api/files/{id}/download [get]
func (h *OutputHandler) Download(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("id must be a positive integer"))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.OutputService.Download(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "OutputHandler.Download", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	switch {
	case result.LocalPath != "":
		c.FileAttachment(result.LocalPath, result.File.FileName)
	case result.RedirectURL != "":
		c.Redirect(http.StatusFound, result.RedirectURL)
	default:
		response.ToResponse(code.ErrorFileNotFound)
	}
}

// Delete removes an output file and its record
// @Summary Delete output file
// @Description Delete an output file from storage together with its record.
// @Description 从存储中删除产物文件并移除记录。
// @Tags File
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param id path int true "File ID"
// @Success 200 {object} pkgapp.Res "Deleted"
// @Failure 400 {object} pkgapp.Res "File Not Found"
// @Router /api/files/{id} [delete]
func (h *OutputHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("id must be a positive integer"))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.OutputService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "OutputHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
