package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"
	"go.uber.org/zap"
)

// SettingHandler user setting API router handler
// SettingHandler 用户设置 API 路由处理器
type SettingHandler struct {
	*Handler
}

// NewSettingHandler creates SettingHandler instance
// NewSettingHandler 创建 SettingHandler 实例
func NewSettingHandler(a *app.App) *SettingHandler {
	return &SettingHandler{
		Handler: NewHandler(a),
	}
}

// GetAll retrieves the whole settings map
// @Summary Get all settings
// @Description Get the current user's whole settings map.
// @Description 获取当前用户的设置全集。
// @Tags Setting
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Success 200 {object} pkgapp.Res{data=dto.UserSettingsDTO} "Success"
// @Router /api/user/settings [get]
func (h *SettingHandler) GetAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	settings, err := h.App.SettingService.GetAll(ctx, uid)
	if err != nil {
		h.logError(ctx, "SettingHandler.GetAll", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(settings))
}

// Get retrieves one setting key
// @Summary Get one setting
// @Description Get a single setting entry by key.
// @Description 按键获取单条设置。
// @Tags Setting
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param key path string true "Setting Key"
// @Success 200 {object} pkgapp.Res{data=dto.UserSettingDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Key Not Found"
// @Router /api/user/settings/{key} [get]
func (h *SettingHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	setting, err := h.App.SettingService.Get(ctx, uid, c.Param("key"))
	if err != nil {
		h.logError(ctx, "SettingHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(setting))
}

// PutBatch writes the whole settings map
// @Summary Put settings
// @Description Write multiple setting keys at once. Known keys are validated, one bad key rejects the whole batch.
// @Description 批量写入设置。已知键做类型校验，任一键校验失败则整体拒绝。
// @Tags Setting
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param params body dto.SettingsPutRequest true "Settings Map"
// @Success 200 {object} pkgapp.Res{data=dto.UserSettingsDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Invalid Setting Value"
// @Router /api/user/settings [put]
func (h *SettingHandler) PutBatch(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SettingsPutRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SettingHandler.PutBatch.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	settings, err := h.App.SettingService.PutBatch(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "SettingHandler.PutBatch", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(settings))
}

// Put writes one setting key
// @Summary Put one setting
// @Description Write a single setting key. The key comes from the path, the value from the body.
// @Description 写入单条设置。键来自路径，值来自请求体。
// @Tags Setting
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param key path string true "Setting Key"
// @Param params body dto.SettingPutRequest true "Setting Value"
// @Success 200 {object} pkgapp.Res{data=dto.UserSettingDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Setting Value"
// @Router /api/user/settings/{key} [put]
func (h *SettingHandler) Put(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	// 键以路径参数为准，请求体只携带值
	var body struct {
		Value string `json:"value" form:"value"`
	}
	if err := c.ShouldBind(&body); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}
	params := &dto.SettingPutRequest{Key: c.Param("key"), Value: body.Value}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	setting, err := h.App.SettingService.Put(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "SettingHandler.Put", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(setting))
}

// Delete removes one setting key
// @Summary Delete one setting
// @Description Delete a single setting key of the current user.
// @Description 删除当前用户的单条设置。
// @Tags Setting
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param key path string true "Setting Key"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/user/settings/{key} [delete]
func (h *SettingHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	params := &dto.SettingDeleteRequest{Key: c.Param("key")}
	if err := h.App.SettingService.Delete(ctx, uid, params); err != nil {
		h.logError(ctx, "SettingHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
