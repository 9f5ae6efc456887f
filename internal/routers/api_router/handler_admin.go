package api_router

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/task"
	pkgapp "github.com/haierkeys/dev-toolbox-service/pkg/app"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/haierkeys/dev-toolbox-service/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// serviceBinaryName release archives and binaries use this name
// serviceBinaryName 发布包与二进制使用的名称
const serviceBinaryName = "dev-toolbox-service"

// AdminHandler 管理接口路由处理器
// 使用 App Container 注入依赖
type AdminHandler struct {
	*Handler
}

// NewAdminHandler 创建 AdminHandler 实例
func NewAdminHandler(a *app.App) *AdminHandler {
	return &AdminHandler{
		Handler: NewHandler(a),
	}
}

// adminConfig admin configuration structure
// adminConfig 管理员可调的配置结构
type adminConfig struct {
	RegisterIsEnable   bool   `json:"registerIsEnable" form:"registerIsEnable"`               // Registration enablement // 是否开启注册
	AdminUID           int    `json:"adminUid" form:"adminUid"`                               // Admin UID // 管理员 UID
	TokenExpiry        string `json:"tokenExpiry" form:"tokenExpiry"`                         // Token expiry // Token 有效期
	HistoryMaxEntries  int    `json:"historyMaxEntries" form:"historyMaxEntries"`             // History cap per user per tool // 单用户单工具历史上限
	PdfMaxUploadSize   string `json:"pdfMaxUploadSize,omitempty" form:"pdfMaxUploadSize"`     // PDF upload cap // PDF 上传上限
	ImageMaxUploadSize string `json:"imageMaxUploadSize,omitempty" form:"imageMaxUploadSize"` // Image upload cap // 图片上传上限
	SolanaRpcEndpoint  string `json:"solanaRpcEndpoint,omitempty" form:"solanaRpcEndpoint"`   // Solana RPC endpoint // Solana RPC 节点
	VanityMaxWorkers   int    `json:"vanityMaxWorkers,omitempty" form:"vanityMaxWorkers"`     // Vanity search workers // 靓号搜索并发数
	VanityMaxAttempts  int64  `json:"vanityMaxAttempts,omitempty" form:"vanityMaxAttempts"`   // Vanity attempt budget // 靓号尝试上限
	VanityMaxDuration  string `json:"vanityMaxDuration,omitempty" form:"vanityMaxDuration"`   // Vanity wall clock cap // 靓号时长上限
	OutputRetention    string `json:"outputRetention,omitempty" form:"outputRetention"`       // Output file retention // 生成文件保留时长
}

// ngrokConfig Ngrok tunnel configuration
// ngrokConfig Ngrok 隧道配置
type ngrokConfig struct {
	Enabled   bool   `json:"enabled" form:"enabled"`     // Whether to enable ngrok tunnel // 是否启用 ngrok 隧道
	AuthToken string `json:"authToken" form:"authToken"` // ngrok auth token // ngrok 认证令牌
	Domain    string `json:"domain" form:"domain"`       // Custom domain // 自定义域名
}

// SystemInfo system information response structure
// SystemInfo 系统信息响应结构
type SystemInfo struct {
	StartTime     time.Time   `json:"startTime"`     // Start time // 启动时间
	Uptime        float64     `json:"uptime"`        // Uptime (seconds) // 运行时间（秒）
	RuntimeStatus RuntimeInfo `json:"runtimeStatus"` // Go runtime status // Go 运行时状态
	CPU           CPUInfo     `json:"cpu"`           // CPU information // CPU 信息
	Memory        MemoryInfo  `json:"memory"`        // Memory information // 内存信息
	Host          HostInfo    `json:"host"`          // Host information // 主机信息
	Process       ProcessInfo `json:"process"`       // Process information // 进程信息
}

// CPUInfo CPU information
// CPUInfo CPU 信息
type CPUInfo struct {
	ModelName     string    `json:"modelName"`     // Model name // 型号
	PhysicalCores int       `json:"physicalCores"` // Physical cores // 物理核心数
	LogicalCores  int       `json:"logicalCores"`  // Logical cores // 逻辑核心数
	Percent       []float64 `json:"percent"`       // Usage percentage per core // 每个核心的使用率
	LoadAvg       *LoadInfo `json:"loadAvg"`       // Load average // 平均负载
}

// LoadInfo system load information
type LoadInfo struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// MemoryInfo memory information
type MemoryInfo struct {
	Total           uint64  `json:"total"`           // Total physical memory // 系统总内存
	Available       uint64  `json:"available"`       // Available memory // 可用内存
	Used            uint64  `json:"used"`            // Used memory // 已用内存
	UsedPercent     float64 `json:"usedPercent"`     // Memory usage percentage // 内存使用率
	SwapTotal       uint64  `json:"swapTotal"`       // Total swap space // 交换区总量
	SwapUsed        uint64  `json:"swapUsed"`        // Used swap space // 交换区已用
	SwapUsedPercent float64 `json:"swapUsedPercent"` // Swap usage percentage // 交换区使用率
}

// HostInfo host identification information
type HostInfo struct {
	Hostname       string    `json:"hostname"`       // Hostname // 主机名
	OS             string    `json:"os"`             // Operating system // 操作系统
	OSPretty       string    `json:"osPretty"`       // Detailed OS name // 详细操作系统名称
	Platform       string    `json:"platform"`       // Platform name // 平台
	Arch           string    `json:"arch"`           // Architecture // 架构
	KernelVersion  string    `json:"kernelVersion"`  // Kernel version // 内核版本
	Uptime         uint64    `json:"uptime"`         // System uptime // 系统运行时间
	CurrentTime    time.Time `json:"currentTime"`    // Current system time // 当前系统时间
	TimeZone       string    `json:"timezone"`       // Time zone name // 时区名称
	TimeZoneOffset int       `json:"timezoneOffset"` // Time zone offset in seconds // 时区偏移（秒）
}

// ProcessInfo current process information
type ProcessInfo struct {
	PID           int32   `json:"pid"`           // Process ID
	PPID          int32   `json:"ppid"`          // Parent Process ID
	Name          string  `json:"name"`          // Process Name
	CPUPercent    float64 `json:"cpuPercent"`    // CPU Usage percentage
	MemoryPercent float32 `json:"memoryPercent"` // Memory Usage percentage
}

// RuntimeInfo Go runtime information
// RuntimeInfo Go 运行时信息
type RuntimeInfo struct {
	NumGoroutine int    `json:"numGoroutine"` // Number of goroutines // Goroutine 数量
	MemAlloc     uint64 `json:"memAlloc"`     // Allocated memory (bytes) // 已分配内存（字节）
	MemTotal     uint64 `json:"memTotal"`     // Total memory allocated (bytes) // 累计分配内存（字节）
	MemSys       uint64 `json:"memSys"`       // Memory obtained from system (bytes) // 从系统获取的内存（字节）
	HeapSys      uint64 `json:"heapSys"`      // Memory obtained from system for heap (bytes) // 堆占用的系统内存
	HeapIdle     uint64 `json:"heapIdle"`     // Memory in idle spans (bytes) // 空闲 Span 占用的内存
	HeapInuse    uint64 `json:"heapInuse"`    // Memory in in-use spans (bytes) // 正在使用的 Span 占用的内存
	HeapReleased uint64 `json:"heapReleased"` // Memory released to OS (bytes) // 释放回操作系统的内存（字节）
	StackSys     uint64 `json:"stackSys"`     // Memory obtained from system for stack (bytes) // 栈占用的系统内存
	GCSys        uint64 `json:"gcSys"`        // Memory obtained from system for GC metadata (bytes) // GC 元数据占用的系统内存
	NextGC       uint64 `json:"nextGc"`       // Target heap size for the next GC cycle // 下次 GC 的目标堆大小
	NumGC        uint32 `json:"numGc"`        // Number of completed GC cycles // GC 次数
}

// adminGuard 校验管理员身份
// AdminUID 为 0 时任何已登录用户都可访问管理接口
func (h *AdminHandler) adminGuard(c *gin.Context, response *pkgapp.Response) (int64, bool) {
	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return 0, false
	}

	cfg := h.App.Config()
	if cfg.User.AdminUID != 0 && uid != int64(cfg.User.AdminUID) {
		response.ToResponse(code.ErrorUserIsNotAdmin)
		return 0, false
	}

	return uid, true
}

// GetConfig retrieves admin configuration (requires admin privileges)
// @Summary Get admin config
// @Description Get adjustable system configuration, requires admin privileges
// @Description 获取可调的系统配置，需要管理员权限
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=adminConfig} "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/config [get]
func (h *AdminHandler) GetConfig(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	cfg := h.App.Config()
	data := &adminConfig{
		RegisterIsEnable:   cfg.User.RegisterIsEnable,
		AdminUID:           cfg.User.AdminUID,
		TokenExpiry:        cfg.Security.TokenExpiry,
		HistoryMaxEntries:  cfg.Tools.HistoryMaxEntries,
		PdfMaxUploadSize:   cfg.Tools.PdfMaxUploadSize,
		ImageMaxUploadSize: cfg.Tools.ImageMaxUploadSize,
		SolanaRpcEndpoint:  cfg.Tools.SolanaRpcEndpoint,
		VanityMaxWorkers:   cfg.Tools.VanityMaxWorkers,
		VanityMaxAttempts:  cfg.Tools.VanityMaxAttempts,
		VanityMaxDuration:  cfg.Tools.VanityMaxDuration,
		OutputRetention:    cfg.Tools.OutputRetention,
	}

	response.ToResponse(code.Success.WithData(data))
}

// UpdateConfig updates admin configuration (requires admin privileges)
// @Summary Update admin config
// @Description Modify system configuration and persist to file, requires admin privileges
// @Description 修改系统配置并持久化到文件，需要管理员权限
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body adminConfig true "Config Parameters"
// @Success 200 {object} pkgapp.Res{data=adminConfig} "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/config [post]
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	params := &adminConfig{}
	response := pkgapp.NewResponse(c)

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	if params.HistoryMaxEntries < 1 || params.HistoryMaxEntries > 100 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("historyMaxEntries must be between 1 and 100"))
		return
	}

	if params.VanityMaxAttempts < 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("vanityMaxAttempts must not be negative"))
		return
	}

	for name, value := range map[string]string{
		"tokenExpiry":       params.TokenExpiry,
		"vanityMaxDuration": params.VanityMaxDuration,
		"outputRetention":   params.OutputRetention,
	} {
		if value == "" {
			continue
		}
		if _, err := util.ParseDuration(value); err != nil {
			response.ToResponse(code.ErrorInvalidParams.WithDetails(name + " format invalid, e.g. 30s, 10m, 24h, 7d"))
			return
		}
	}

	cfg := h.App.Config()
	cfg.User.RegisterIsEnable = params.RegisterIsEnable
	cfg.User.AdminUID = params.AdminUID
	cfg.Security.TokenExpiry = params.TokenExpiry
	cfg.Tools.HistoryMaxEntries = params.HistoryMaxEntries
	cfg.Tools.PdfMaxUploadSize = params.PdfMaxUploadSize
	cfg.Tools.ImageMaxUploadSize = params.ImageMaxUploadSize
	cfg.Tools.SolanaRpcEndpoint = params.SolanaRpcEndpoint
	cfg.Tools.VanityMaxWorkers = params.VanityMaxWorkers
	cfg.Tools.VanityMaxAttempts = params.VanityMaxAttempts
	cfg.Tools.VanityMaxDuration = params.VanityMaxDuration
	cfg.Tools.OutputRetention = params.OutputRetention

	// 服务层在启动时拷贝了这些参数, 部分修改需要重启后生效
	if err := cfg.Save(); err != nil {
		h.logError(c.Request.Context(), "AdminHandler.UpdateConfig.Save", err)
		response.ToResponse(code.ErrorConfigSaveFailed)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(params))
}

// GetNgrokConfig retrieves Ngrok tunnel configuration (requires admin privileges)
// @Summary Get Ngrok config
// @Description Get Ngrok tunnel configuration, requires admin privileges
// @Description 获取 Ngrok 隧道配置，需要管理员权限
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=ngrokConfig} "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/config/ngrok [get]
func (h *AdminHandler) GetNgrokConfig(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	cfg := h.App.Config()
	data := &ngrokConfig{
		Enabled:   cfg.Server.Ngrok.IsEnabled,
		AuthToken: cfg.Server.Ngrok.AuthToken,
		Domain:    cfg.Server.Ngrok.Domain,
	}

	response.ToResponse(code.Success.WithData(data))
}

// UpdateNgrokConfig updates Ngrok tunnel configuration (requires admin privileges)
// @Summary Update Ngrok config
// @Description Modify Ngrok tunnel configuration, takes effect after restart
// @Description 修改 Ngrok 隧道配置，重启后生效
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body ngrokConfig true "Config Parameters"
// @Success 200 {object} pkgapp.Res{data=ngrokConfig} "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/config/ngrok [post]
func (h *AdminHandler) UpdateNgrokConfig(c *gin.Context) {
	params := &ngrokConfig{}
	response := pkgapp.NewResponse(c)

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	cfg := h.App.Config()
	cfg.Server.Ngrok.IsEnabled = params.Enabled
	cfg.Server.Ngrok.AuthToken = params.AuthToken
	cfg.Server.Ngrok.Domain = params.Domain

	if err := cfg.Save(); err != nil {
		h.logError(c.Request.Context(), "AdminHandler.UpdateNgrokConfig.Save", err)
		response.ToResponse(code.ErrorConfigSaveFailed)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(params))
}

// SystemInfo retrieves system and runtime information (requires admin privileges)
// @Summary Get system and runtime info
// @Description Get host, process and Go runtime metrics, requires admin privileges
// @Description 获取主机、进程与 Go 运行时指标，需要管理员权限
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=SystemInfo} "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/systeminfo [get]
func (h *AdminHandler) SystemInfo(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cpuInfoList, _ := cpu.Info()
	cpuModel := ""
	if len(cpuInfoList) > 0 {
		cpuModel = cpuInfoList[0].ModelName
	}
	physCores, _ := cpu.Counts(false)
	logicCores, _ := cpu.Counts(true)
	cpuPercents, _ := cpu.Percent(time.Second, true)

	var loadAvg *LoadInfo
	if loadStat, err := load.Avg(); err == nil {
		loadAvg = &LoadInfo{
			Load1:  loadStat.Load1,
			Load5:  loadStat.Load5,
			Load15: loadStat.Load15,
		}
	}

	vMem, _ := mem.VirtualMemory()
	swapMem, _ := mem.SwapMemory()
	hInfo, _ := host.Info()

	p, _ := process.NewProcess(int32(os.Getpid()))
	pName, _ := p.Name()
	pPPid, _ := p.Ppid()
	pCPU, _ := p.CPUPercent()
	pMem, _ := p.MemoryPercent()

	data := SystemInfo{
		StartTime: h.App.StartTime,
		Uptime:    time.Since(h.App.StartTime).Seconds(),
		RuntimeStatus: RuntimeInfo{
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     m.Alloc,
			MemTotal:     m.TotalAlloc,
			MemSys:       m.Sys,
			HeapSys:      m.HeapSys,
			HeapIdle:     m.HeapIdle,
			HeapInuse:    m.HeapInuse,
			HeapReleased: m.HeapReleased,
			StackSys:     m.StackSys,
			GCSys:        m.GCSys,
			NextGC:       m.NextGC,
			NumGC:        m.NumGC,
		},
		CPU: CPUInfo{
			ModelName:     cpuModel,
			PhysicalCores: physCores,
			LogicalCores:  logicCores,
			Percent:       cpuPercents,
			LoadAvg:       loadAvg,
		},
		Memory: MemoryInfo{
			Total:           vMem.Total,
			Available:       vMem.Available,
			Used:            vMem.Used,
			UsedPercent:     vMem.UsedPercent,
			SwapTotal:       swapMem.Total,
			SwapUsed:        swapMem.Used,
			SwapUsedPercent: swapMem.UsedPercent,
		},
		Host: HostInfo{
			Hostname:      hInfo.Hostname,
			OS:            hInfo.OS,
			OSPretty:      util.GetOSPrettyName(),
			Platform:      hInfo.Platform,
			Arch:          hInfo.KernelArch,
			KernelVersion: hInfo.KernelVersion,
			Uptime:        hInfo.Uptime,
			CurrentTime:   time.Now(),
			TimeZone:      time.Now().Location().String(),
			TimeZoneOffset: func() int {
				_, offset := time.Now().Zone()
				return offset
			}(),
		},
		Process: ProcessInfo{
			PID:           p.Pid,
			PPID:          pPPid,
			Name:          pName,
			CPUPercent:    pCPU,
			MemoryPercent: pMem,
		},
	}

	response.ToResponse(code.Success.WithData(data))
}

// GC triggers manual garbage collection and releases memory to OS (requires admin privileges)
// GC 手动触发垃圾回收并释放内存给操作系统（需要管理员权限）
// @Summary Trigger manual GC
// @Description Manually run Go runtime GC and release memory to OS, requires admin privileges
// @Description 手动执行 GC 并将内存归还操作系统，需要管理员权限
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/gc [get]
func (h *AdminHandler) GC(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	var mBefore, mAfter runtime.MemStats
	runtime.ReadMemStats(&mBefore)

	startTime := time.Now()
	runtime.GC()
	debug.FreeOSMemory()
	duration := time.Since(startTime)

	runtime.ReadMemStats(&mAfter)

	memReleased := int64(mBefore.Alloc) - int64(mAfter.Alloc)
	h.App.Logger().Info("Manual GC completed",
		zap.Duration("duration", duration),
		zap.Uint64("allocBefore", mBefore.Alloc),
		zap.Uint64("allocAfter", mAfter.Alloc),
		zap.Int64("released", memReleased),
	)

	data := gin.H{
		"duration":    duration.String(),
		"allocBefore": mBefore.Alloc,
		"allocAfter":  mAfter.Alloc,
		"released":    memReleased,
	}

	response.ToResponse(code.Success.WithData(data))
}

// Backup triggers an immediate database backup (requires admin privileges)
// @Summary Trigger database backup
// @Description Create a database snapshot archive right now, requires admin privileges
// @Description 立即创建数据库备份，需要管理员权限
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/backup [post]
func (h *AdminHandler) Backup(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	ctx := c.Request.Context()
	path, err := task.RunBackupNow(ctx, h.App)
	if err != nil {
		h.logError(ctx, "AdminHandler.Backup", err)
		response.ToResponse(code.Failed.WithDetails(err.Error()))
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"path": path}))
}

// upgradeParams upgrade request parameters
// upgradeParams 升级请求参数
type upgradeParams struct {
	Version string `json:"version" form:"version" binding:"required"` // Target version or "latest" // 目标版本或 "latest"
}

// Upgrade triggers server automatic upgrade (requires admin privileges)
// @Summary Trigger server upgrade
// @Description Download the requested release and restart the server with it
// @Description 下载指定版本并用其重启服务，需要管理员权限
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param version query string true "Version to upgrade (e.g. 1.2.0 or latest)"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/upgrade [get]
func (h *AdminHandler) Upgrade(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	params := &upgradeParams{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	version := params.Version
	if version == "latest" {
		checkInfo := h.App.CheckVersion()
		if !checkInfo.VersionIsNew {
			response.ToResponse(code.Success.WithDetails("Current version is already up to date"))
			return
		}
		version = checkInfo.VersionNewName
	}

	versionRaw := strings.TrimPrefix(version, "v")

	// Release archives are named <binary>-<version>-<goos>-<goarch>.tar.gz
	// 发布包命名为 <binary>-<version>-<goos>-<goarch>.tar.gz
	fileName := fmt.Sprintf("%s-%s-%s-%s.tar.gz", serviceBinaryName, versionRaw, runtime.GOOS, runtime.GOARCH)
	downloadURL := fmt.Sprintf("https://github.com/haierkeys/%s/releases/download/%s/%s", serviceBinaryName, versionRaw, fileName)

	h.App.Logger().Info("Starting upgrade download", zap.String("url", downloadURL), zap.String("version", versionRaw))

	// Stage the download under the temp path; the run loop removes it after the swap
	// 下载暂存到临时目录, 运行循环完成替换后清理
	tempDir := filepath.Join(h.App.Config().App.TempPath, "upgrade")
	_ = os.RemoveAll(tempDir)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		response.ToResponse(code.Failed.WithDetails("Failed to create temp directory: " + err.Error()))
		return
	}

	tarPath := filepath.Join(tempDir, fileName)
	if err := h.downloadFile(downloadURL, tarPath); err != nil {
		response.ToResponse(code.Failed.WithDetails("Download failed: " + err.Error()))
		return
	}

	binaryName := serviceBinaryName
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}

	if err := h.extractBinary(tarPath, tempDir, binaryName); err != nil {
		response.ToResponse(code.Failed.WithDetails("Extract failed: " + err.Error()))
		return
	}

	h.App.TriggerUpgrade(filepath.Join(tempDir, binaryName))

	response.ToResponse(code.Success.WithDetails("Upgrade triggered, server is restarting..."))
}

// Restart triggers server automatic restart (requires admin privileges)
// @Summary Trigger server restart
// @Description Gracefully restart the server
// @Description 优雅重启服务，需要管理员权限
// @Tags Admin
// @Security UserAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 403 {object} pkgapp.Res "Insufficient privileges"
// @Router /api/admin/restart [get]
func (h *AdminHandler) Restart(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if _, ok := h.adminGuard(c, response); !ok {
		return
	}

	currentBinary, err := os.Executable()
	if err != nil {
		response.ToResponse(code.Failed.WithDetails("Failed to get current executable path: " + err.Error()))
		return
	}

	h.App.TriggerUpgrade(currentBinary)

	response.ToResponse(code.Success.WithDetails("Restart triggered, server is restarting..."))
}

func (h *AdminHandler) downloadFile(url string, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func (h *AdminHandler) extractBinary(tarPath string, destDir string, binaryName string) error {
	f, err := os.Open(tarPath)
	if err != nil {
		return err
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		// Archive entries may live in a subdirectory, match on the base name
		// 压缩包内文件可能在子目录下, 按文件名匹配
		if filepath.Base(header.Name) == binaryName {
			target := filepath.Join(destDir, binaryName)
			out, err := os.OpenFile(target, os.O_CREATE|os.O_RDWR, os.FileMode(header.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			out.Close()
			return nil
		}
	}

	return fmt.Errorf("binary %s not found in archive", binaryName)
}
