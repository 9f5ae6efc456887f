// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/logger"
	"github.com/haierkeys/dev-toolbox-service/pkg/timex"
	"github.com/haierkeys/dev-toolbox-service/pkg/workerpool"
	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// base58Alphabet Solana 地址使用的 Base58 字符表
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// vanityPatternMaxLen 目标串长度上限, 更长的串在预算内基本不可能命中
const vanityPatternMaxLen = 16

// vanityProgressEvery 每个工作协程发布进度的尝试间隔
const vanityProgressEvery = 1000

// JobService 靓号搜索任务服务接口
// Vanity address search job manager
type JobService interface {
	// SubmitVanity 提交靓号搜索任务
	SubmitVanity(ctx context.Context, uid int64, params *dto.VanityJobCreateRequest) (*dto.VanityJobDTO, error)

	// Status 查询任务状态, 运行中的任务返回实时进度
	Status(ctx context.Context, uid int64, jobID string) (*dto.VanityJobDTO, error)

	// Cancel 取消运行中的任务, 终止状态的任务返回错误
	Cancel(ctx context.Context, uid int64, jobID string) (*dto.VanityJobDTO, error)

	// List 分页获取用户的任务列表
	List(ctx context.Context, uid int64, params *dto.VanityJobListRequest) (*dto.VanityJobListDTO, error)

	// Subscribe 订阅任务进度, 任务不在运行时返回已关闭的通道
	// 返回的函数用于退订
	Subscribe(jobID string) (<-chan *dto.VanityJobDTO, func())

	// RecoverInterrupted 将重启前遗留的非终止任务标记为失败
	RecoverInterrupted(ctx context.Context) (int64, error)

	// CleanupTerminal 删除指定时间之前的终止状态任务
	CleanupTerminal(ctx context.Context, before time.Time) (int64, error)

	// Shutdown 停止所有运行中的任务并等待协程退出
	Shutdown(ctx context.Context) error
}

// jobService 实现 JobService 接口
type jobService struct {
	jobRepo        domain.VanityJobRepository
	historyService HistoryService
	notifyService  NotifyService
	pool           *workerpool.Pool
	logger         *zap.Logger
	config         *ServiceConfig

	mu   sync.Mutex
	runs map[string]*vanityRun

	baseCtx    context.Context
	baseCancel context.CancelFunc
	runWg      sync.WaitGroup
}

// NewJobService 创建 JobService 实例
func NewJobService(
	jobRepo domain.VanityJobRepository,
	historySvc HistoryService,
	notifySvc NotifyService,
	pool *workerpool.Pool,
	logger *zap.Logger,
	config *ServiceConfig,
) JobService {
	baseCtx, baseCancel := context.WithCancel(context.Background())
	return &jobService{
		jobRepo:        jobRepo,
		historyService: historySvc,
		notifyService:  notifySvc,
		pool:           pool,
		logger:         logger,
		config:         config,
		runs:           make(map[string]*vanityRun),
		baseCtx:        baseCtx,
		baseCancel:     baseCancel,
	}
}

// vanityRun 一次运行中任务的内存状态
type vanityRun struct {
	job     *domain.VanityJob
	started time.Time
	cancel  context.CancelFunc

	attempts atomic.Int64
	canceled atomic.Bool

	failMu  sync.Mutex
	failErr error

	resultOnce sync.Once
	resultPub  string
	resultPriv string
	found      atomic.Bool

	subMu sync.Mutex
	subs  map[chan *dto.VanityJobDTO]struct{}
}

// setResult 记录首个命中结果并取消其余工作协程
func (r *vanityRun) setResult(pub, priv string) {
	r.resultOnce.Do(func() {
		r.resultPub = pub
		r.resultPriv = priv
		r.found.Store(true)
		r.cancel()
	})
}

// setFailure 记录工作协程内部错误
func (r *vanityRun) setFailure(err error) {
	r.failMu.Lock()
	if r.failErr == nil {
		r.failErr = err
	}
	r.failMu.Unlock()
	r.cancel()
}

// failure 读取已记录的内部错误
func (r *vanityRun) failure() error {
	r.failMu.Lock()
	defer r.failMu.Unlock()
	return r.failErr
}

// snapshot 构造当前进度的 DTO
func (r *vanityRun) snapshot(status domain.VanityJobStatus) *dto.VanityJobDTO {
	return &dto.VanityJobDTO{
		JobID:         r.job.JobID,
		Pattern:       r.job.Pattern,
		Placement:     string(r.job.Placement),
		CaseSensitive: r.job.CaseSensitive,
		Status:        string(status),
		Attempts:      r.attempts.Load(),
		ElapsedMs:     time.Since(r.started).Milliseconds(),
		CreatedAt:     timex.Time(r.job.CreatedAt),
		UpdatedAt:     timex.Time(time.Now()),
	}
}

// subscribe 注册进度订阅者
func (r *vanityRun) subscribe() (<-chan *dto.VanityJobDTO, func()) {
	ch := make(chan *dto.VanityJobDTO, 16)
	r.subMu.Lock()
	r.subs[ch] = struct{}{}
	r.subMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			r.subMu.Lock()
			if _, ok := r.subs[ch]; ok {
				delete(r.subs, ch)
				close(ch)
			}
			r.subMu.Unlock()
		})
	}
	return ch, unsubscribe
}

// publish 向所有订阅者发送进度, 慢订阅者丢弃本帧
func (r *vanityRun) publish(d *dto.VanityJobDTO) {
	r.subMu.Lock()
	for ch := range r.subs {
		select {
		case ch <- d:
		default:
		}
	}
	r.subMu.Unlock()
}

// closeSubs 发送最终帧后关闭所有订阅通道
func (r *vanityRun) closeSubs(final *dto.VanityJobDTO) {
	r.subMu.Lock()
	for ch := range r.subs {
		select {
		case ch <- final:
		default:
		}
		delete(r.subs, ch)
		close(ch)
	}
	r.subMu.Unlock()
}

// validateVanityPattern 校验目标串非空且只包含 Base58 字符
func validateVanityPattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if len(pattern) > vanityPatternMaxLen {
		return fmt.Errorf("pattern too long, max %d characters", vanityPatternMaxLen)
	}
	for _, c := range pattern {
		if !strings.ContainsRune(base58Alphabet, c) {
			return fmt.Errorf("pattern contains non-base58 character %q", c)
		}
	}
	return nil
}

// newVanityMatcher 构造地址匹配函数, 大小写不敏感时预先转小写
func newVanityMatcher(pattern string, placement domain.VanityPlacement, caseSensitive bool) func(string) bool {
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return func(addr string) bool {
		if !caseSensitive {
			addr = strings.ToLower(addr)
		}
		switch placement {
		case domain.VanityPlacementSuffix:
			return strings.HasSuffix(addr, pattern)
		case domain.VanityPlacementAnywhere:
			return strings.Contains(addr, pattern)
		default:
			return strings.HasPrefix(addr, pattern)
		}
	}
}

// SubmitVanity 提交靓号搜索任务
func (s *jobService) SubmitVanity(ctx context.Context, uid int64, params *dto.VanityJobCreateRequest) (*dto.VanityJobDTO, error) {
	if err := validateVanityPattern(params.Pattern); err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	placement := domain.VanityPlacement(params.Placement)
	switch placement {
	case domain.VanityPlacementPrefix, domain.VanityPlacementSuffix, domain.VanityPlacementAnywhere:
	case "":
		placement = domain.VanityPlacementPrefix
	default:
		return nil, code.ErrorInvalidParams.WithDetails(fmt.Sprintf("placement must be prefix, suffix or anywhere, got %q", params.Placement))
	}

	maxAttempts := params.MaxAttempts
	if maxAttempts <= 0 || maxAttempts > s.config.Tools.VanityMaxAttempts {
		maxAttempts = s.config.Tools.VanityMaxAttempts
	}

	maxDuration := s.config.Tools.VanityMaxDuration
	if params.MaxDuration != "" {
		d, err := time.ParseDuration(params.MaxDuration)
		if err != nil {
			return nil, code.ErrorInvalidParams.WithDetails(fmt.Sprintf("maxDuration: %s", err.Error()))
		}
		if d > 0 && d < maxDuration {
			maxDuration = d
		}
	}

	workers := params.Workers
	if workers <= 0 || workers > s.config.Tools.VanityMaxWorkers {
		workers = s.config.Tools.VanityMaxWorkers
	}

	job := &domain.VanityJob{
		JobID:         uuid.NewString(),
		UID:           uid,
		Pattern:       params.Pattern,
		Placement:     placement,
		CaseSensitive: params.CaseSensitive,
		MaxAttempts:   maxAttempts,
		MaxDuration:   maxDuration,
		Workers:       workers,
		Status:        domain.VanityJobStatusPending,
	}

	created, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, code.ErrorJobSubmitFailed.WithDetails(err.Error())
	}
	job = created

	runCtx, runCancel := context.WithTimeout(s.baseCtx, maxDuration)
	run := &vanityRun{
		job:     job,
		started: time.Now(),
		cancel:  runCancel,
		subs:    make(map[chan *dto.VanityJobDTO]struct{}),
	}

	matcher := newVanityMatcher(job.Pattern, job.Placement, job.CaseSensitive)

	var workerWg sync.WaitGroup
	submitted := 0
	for i := 0; i < workers; i++ {
		workerWg.Add(1)
		err := s.pool.SubmitAsync(runCtx, func(wctx context.Context) error {
			defer workerWg.Done()
			s.searchLoop(wctx, run, matcher, maxAttempts)
			return nil
		})
		if err != nil {
			workerWg.Done()
			s.logger.Warn("vanity worker submit rejected",
				zap.String(logger.FieldJobID, job.JobID),
				zap.Error(err))
			continue
		}
		submitted++
	}

	if submitted == 0 {
		runCancel()
		job.Status = domain.VanityJobStatusFailed
		job.Error = workerpool.ErrWorkerPoolFull.Error()
		if uerr := s.jobRepo.UpdateStatus(ctx, job); uerr != nil {
			s.logger.Error("vanity job status update failed",
				zap.String(logger.FieldJobID, job.JobID),
				zap.Error(uerr))
		}
		return nil, code.ErrorJobSubmitFailed.WithDetails(workerpool.ErrWorkerPoolFull.Error())
	}

	job.Status = domain.VanityJobStatusRunning
	if uerr := s.jobRepo.UpdateStatus(ctx, job); uerr != nil {
		s.logger.Error("vanity job status update failed",
			zap.String(logger.FieldJobID, job.JobID),
			zap.Error(uerr))
	}

	s.mu.Lock()
	s.runs[job.JobID] = run
	s.mu.Unlock()

	s.runWg.Add(1)
	go s.finalize(run, runCtx, &workerWg)

	s.logger.Info("vanity job started",
		zap.Int64(logger.FieldUID, uid),
		zap.String(logger.FieldJobID, job.JobID),
		zap.String("pattern", job.Pattern),
		zap.String("placement", string(job.Placement)),
		zap.Int("workers", submitted))

	s.historyService.Record(ctx, uid, ToolSolana,
		fmt.Sprintf("Submitted vanity search for %q", job.Pattern),
		map[string]any{"mode": "vanity", "jobId": job.JobID, "pattern": job.Pattern, "placement": string(job.Placement)})

	return run.snapshot(domain.VanityJobStatusRunning), nil
}

// searchLoop 单个工作协程的生成-匹配循环
// 每次迭代检查取消信号和尝试预算
func (s *jobService) searchLoop(ctx context.Context, run *vanityRun, matcher func(string) bool, maxAttempts int64) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if run.attempts.Load() >= maxAttempts {
			return
		}

		priv, err := solana.NewRandomPrivateKey()
		if err != nil {
			run.setFailure(err)
			return
		}

		n := run.attempts.Add(1)
		addr := priv.PublicKey().String()
		if matcher(addr) {
			run.setResult(addr, priv.String())
			return
		}

		if n%vanityProgressEvery == 0 {
			run.publish(run.snapshot(domain.VanityJobStatusRunning))
		}
	}
}

// finalize 等待工作协程结束并落库终止状态
func (s *jobService) finalize(run *vanityRun, runCtx context.Context, workerWg *sync.WaitGroup) {
	defer s.runWg.Done()
	workerWg.Wait()
	run.cancel()

	job := run.job
	job.Attempts = run.attempts.Load()
	job.Elapsed = time.Since(run.started)

	switch {
	case run.found.Load():
		job.Status = domain.VanityJobStatusDone
		job.PublicKey = run.resultPub
		job.PrivateKey = run.resultPriv
	case run.failure() != nil:
		job.Status = domain.VanityJobStatusFailed
		job.Error = run.failure().Error()
	case run.canceled.Load():
		job.Status = domain.VanityJobStatusCanceled
	case s.baseCtx.Err() != nil:
		job.Status = domain.VanityJobStatusFailed
		job.Error = "server shutting down"
	case runCtx.Err() == context.DeadlineExceeded:
		job.Status = domain.VanityJobStatusNotFound
		job.Error = "time budget exhausted"
	case job.Attempts >= job.MaxAttempts:
		job.Status = domain.VanityJobStatusNotFound
		job.Error = "attempt budget exhausted"
	default:
		job.Status = domain.VanityJobStatusFailed
		job.Error = "workers exited unexpectedly"
	}

	// 落库用独立 context, 请求早已返回
	persistCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.jobRepo.UpdateStatus(persistCtx, job); err != nil {
		s.logger.Error("vanity job status update failed",
			zap.String(logger.FieldJobID, job.JobID),
			zap.Error(err))
	}

	final := run.snapshot(job.Status)
	final.PublicKey = job.PublicKey
	final.PrivateKey = job.PrivateKey
	final.Error = job.Error
	run.closeSubs(final)

	s.mu.Lock()
	delete(s.runs, job.JobID)
	s.mu.Unlock()

	s.logger.Info("vanity job finished",
		zap.Int64(logger.FieldUID, job.UID),
		zap.String(logger.FieldJobID, job.JobID),
		zap.String("status", string(job.Status)),
		zap.Int64(logger.FieldAttempts, job.Attempts),
		zap.Duration("elapsed", job.Elapsed))

	s.notifyService.VanityJobFinished(job)
}

// Status 查询任务状态, 运行中的任务返回实时进度
func (s *jobService) Status(ctx context.Context, uid int64, jobID string) (*dto.VanityJobDTO, error) {
	s.mu.Lock()
	run, ok := s.runs[jobID]
	s.mu.Unlock()
	if ok && run.job.UID == uid {
		return run.snapshot(domain.VanityJobStatusRunning), nil
	}

	job, err := s.jobRepo.GetByJobID(ctx, jobID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorJobNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.jobToDTO(job), nil
}

// Cancel 取消运行中的任务, 终止状态的任务返回错误
func (s *jobService) Cancel(ctx context.Context, uid int64, jobID string) (*dto.VanityJobDTO, error) {
	s.mu.Lock()
	run, ok := s.runs[jobID]
	s.mu.Unlock()
	if ok && run.job.UID == uid {
		run.canceled.Store(true)
		run.cancel()
		s.logger.Info("vanity job cancel requested",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldJobID, jobID))
		return run.snapshot(domain.VanityJobStatusCanceled), nil
	}

	job, err := s.jobRepo.GetByJobID(ctx, jobID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorJobNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if job.IsTerminal() {
		return nil, code.ErrorJobNotCancelable
	}

	// 落库状态是 running 但没有对应协程, 说明是重启遗留的孤儿任务
	job.Status = domain.VanityJobStatusFailed
	job.Error = "no active worker for job"
	if uerr := s.jobRepo.UpdateStatus(ctx, job); uerr != nil {
		return nil, code.ErrorDBQuery.WithDetails(uerr.Error())
	}
	return s.jobToDTO(job), nil
}

// List 分页获取用户的任务列表
func (s *jobService) List(ctx context.Context, uid int64, params *dto.VanityJobListRequest) (*dto.VanityJobListDTO, error) {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = s.config.App.DefaultPageSize
	}
	if pageSize > s.config.App.MaxPageSize {
		pageSize = s.config.App.MaxPageSize
	}

	jobs, total, err := s.jobRepo.ListByUID(ctx, uid, page, pageSize)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	list := make([]*dto.VanityJobDTO, 0, len(jobs))
	for _, job := range jobs {
		s.mu.Lock()
		run, ok := s.runs[job.JobID]
		s.mu.Unlock()
		if ok {
			list = append(list, run.snapshot(domain.VanityJobStatusRunning))
			continue
		}
		list = append(list, s.jobToDTO(job))
	}

	return &dto.VanityJobListDTO{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Subscribe 订阅任务进度, 任务不在运行时返回已关闭的通道
func (s *jobService) Subscribe(jobID string) (<-chan *dto.VanityJobDTO, func()) {
	s.mu.Lock()
	run, ok := s.runs[jobID]
	s.mu.Unlock()
	if !ok {
		ch := make(chan *dto.VanityJobDTO)
		close(ch)
		return ch, func() {}
	}
	return run.subscribe()
}

// RecoverInterrupted 将重启前遗留的非终止任务标记为失败
func (s *jobService) RecoverInterrupted(ctx context.Context) (int64, error) {
	count, err := s.jobRepo.MarkInterrupted(ctx, "server restarted")
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Warn("marked interrupted vanity jobs as failed", zap.Int64("count", count))
	}
	return count, nil
}

// CleanupTerminal 删除指定时间之前的终止状态任务
func (s *jobService) CleanupTerminal(ctx context.Context, before time.Time) (int64, error) {
	return s.jobRepo.DeleteTerminalBefore(ctx, before)
}

// Shutdown 停止所有运行中的任务并等待协程退出
func (s *jobService) Shutdown(ctx context.Context) error {
	s.baseCancel()

	done := make(chan struct{})
	go func() {
		s.runWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// jobToDTO 领域模型转 DTO
func (s *jobService) jobToDTO(job *domain.VanityJob) *dto.VanityJobDTO {
	return &dto.VanityJobDTO{
		JobID:         job.JobID,
		Pattern:       job.Pattern,
		Placement:     string(job.Placement),
		CaseSensitive: job.CaseSensitive,
		Status:        string(job.Status),
		Attempts:      job.Attempts,
		ElapsedMs:     job.Elapsed.Milliseconds(),
		PublicKey:     job.PublicKey,
		PrivateKey:    job.PrivateKey,
		Error:         job.Error,
		CreatedAt:     timex.Time(job.CreatedAt),
		UpdatedAt:     timex.Time(job.UpdatedAt),
	}
}

// 确保 jobService 实现了 JobService 接口
var _ JobService = (*jobService)(nil)
