package api_router

import (
	"strings"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	apperrors "github.com/haierkeys/dev-toolbox-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SolanaHandler solana tools API router handler
// SolanaHandler Solana 工具 API 路由处理器
type SolanaHandler struct {
	*Handler
}

// NewSolanaHandler creates SolanaHandler instance
// NewSolanaHandler 创建 SolanaHandler 实例
func NewSolanaHandler(a *app.App) *SolanaHandler {
	return &SolanaHandler{
		Handler: NewHandler(a),
	}
}

// Keypair generates an ed25519 keypair
// @Summary Generate Solana keypair
// @Description Generate a fresh ed25519 keypair, both keys base58 encoded. Nothing is stored.
// @Description 生成全新的 ed25519 密钥对, 两个密钥均为 Base58 编码, 服务端不保存。
// @Tags Solana
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SolanaKeypairDTO} "Success"
// @Router /api/solana/keypair [post]
func (h *SolanaHandler) Keypair(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()
	result, err := h.App.SolanaService.GenerateKeypair(ctx, pkgapp.GetUID(c))
	if err != nil {
		h.logError(ctx, "SolanaHandler.Keypair", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Inspect checks a base58 address
// @Summary Inspect Solana address
// @Description Check base58 validity, decoded length and ed25519 curve membership of an address.
// @Description 检查地址的 Base58 合法性、解码长度与 ed25519 曲线归属。
// @Tags Solana
// @Accept json
// @Produce json
// @Param body body dto.SolanaAddressRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.SolanaAddressDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params"
// @Router /api/solana/inspect [post]
func (h *SolanaHandler) Inspect(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.SolanaAddressRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.SolanaService.InspectAddress(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "SolanaHandler.Inspect", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Balance queries the lamport balance of an address
// @Summary Solana balance
// @Description Query the balance of an address over JSON-RPC, endpoint from user setting or config.
// @Description 通过 JSON-RPC 查询地址余额, RPC 端点取自用户设置或配置。
// @Tags Solana
// @Accept json
// @Produce json
// @Param body body dto.SolanaBalanceRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.SolanaBalanceDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Params / RPC Failed"
// @Router /api/solana/balance [post]
func (h *SolanaHandler) Balance(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.SolanaBalanceRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.SolanaService.Balance(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "SolanaHandler.Balance", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// VanitySubmit submits a vanity address search job
// @Summary Submit vanity search
// @Description Submit a background search for a keypair whose address matches a base58 pattern.
// @Description 提交后台任务, 搜索地址匹配 Base58 目标串的密钥对。
// @Tags Solana
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param body body dto.VanityJobCreateRequest true "body"
// @Success 200 {object} pkgapp.Res{data=dto.VanityJobDTO} "Job Submitted"
// @Failure 400 {object} pkgapp.Res "Invalid Params / Bad Pattern"
// @Router /api/solana/vanity [post]
func (h *SolanaHandler) VanitySubmit(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.VanityJobCreateRequest{}
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
	job, err := h.App.JobService.SubmitVanity(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "SolanaHandler.VanitySubmit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessJobSubmit.WithData(job))
}

// VanityList pages through the user's vanity jobs
// @Summary List vanity jobs
// @Description Page through the current user's vanity search jobs, newest first.
// @Description 分页获取当前用户的靓号搜索任务, 最新在前。
// @Tags Solana
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} pkgapp.Res{data=dto.VanityJobListDTO} "Success"
// @Router /api/solana/vanity [get]
func (h *SolanaHandler) VanityList(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.VanityJobListRequest{}
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
	list, err := h.App.JobService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "SolanaHandler.VanityList", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// VanityStatus reports the state of one vanity job
// @Summary Vanity job status
// @Description Report the state and live progress of one vanity search job.
// @Description 查询单个靓号搜索任务的状态与实时进度。
// @Tags Solana
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param jobId path string true "Job ID"
// @Success 200 {object} pkgapp.Res{data=dto.VanityJobDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Job Not Found"
// @Router /api/solana/vanity/{jobId} [get]
func (h *SolanaHandler) VanityStatus(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	jobID := strings.TrimSpace(c.Param("jobId"))
	if jobID == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("jobId is required"))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	job, err := h.App.JobService.Status(ctx, uid, jobID)
	if err != nil {
		h.logError(ctx, "SolanaHandler.VanityStatus", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(job))
}

// VanityCancel cancels a running vanity job
// @Summary Cancel vanity job
// @Description Cancel a running vanity search job, finished jobs cannot be canceled.
// @Description 取消运行中的靓号搜索任务, 已结束的任务无法取消。
// @Tags Solana
// @Produce json
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Param jobId path string true "Job ID"
// @Success 200 {object} pkgapp.Res{data=dto.VanityJobDTO} "Job Canceled"
// @Failure 400 {object} pkgapp.Res "Job Not Found / Not Cancelable"
// @Router /api/solana/vanity/{jobId} [delete]
func (h *SolanaHandler) VanityCancel(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	jobID := strings.TrimSpace(c.Param("jobId"))
	if jobID == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("jobId is required"))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	job, err := h.App.JobService.Cancel(ctx, uid, jobID)
	if err != nil {
		h.logError(ctx, "SolanaHandler.VanityCancel", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessJobCancel.WithData(job))
}
