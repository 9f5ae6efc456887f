// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/dev-toolbox-service/pkg/timex"

// SolanaAddressRequest 地址检查请求参数
type SolanaAddressRequest struct {
	Address string `json:"address" form:"address" binding:"required"` // Base58 address // Base58 地址
}

// SolanaBalanceRequest 余额查询请求参数
type SolanaBalanceRequest struct {
	Address string `json:"address" form:"address" binding:"required"` // Base58 address // Base58 地址
}

// VanityJobCreateRequest 靓号搜索任务提交参数
type VanityJobCreateRequest struct {
	Pattern       string `json:"pattern" form:"pattern" binding:"required"` // Base58 pattern to find // 目标串
	Placement     string `json:"placement" form:"placement"`                // prefix suffix anywhere, default prefix // 匹配位置
	CaseSensitive bool   `json:"caseSensitive" form:"caseSensitive"`        // Case sensitive match // 区分大小写
	MaxAttempts   int64  `json:"maxAttempts" form:"maxAttempts"`            // Attempt budget, default from config // 尝试次数上限
	MaxDuration   string `json:"maxDuration" form:"maxDuration"`            // Wall clock budget like "60s" // 时长上限
	Workers       int    `json:"workers" form:"workers"`                    // Worker count, default from config // 协程数量
}

// VanityJobListRequest 靓号任务列表分页参数
type VanityJobListRequest struct {
	Page     int `json:"page" form:"page"`         // Page number, 1-based // 页码
	PageSize int `json:"pageSize" form:"pageSize"` // Page size // 每页数量
}

// ---------------- DTO / Response ----------------

// SolanaKeypairDTO 密钥对生成结果
type SolanaKeypairDTO struct {
	PublicKey  string `json:"publicKey"`  // Base58 public key // Base58 公钥
	PrivateKey string `json:"privateKey"` // Base58 private key // Base58 私钥
}

// SolanaAddressDTO 地址检查结果
type SolanaAddressDTO struct {
	Address string `json:"address"` // Input address // 输入地址
	Valid   bool   `json:"valid"`   // Base58 and 32 bytes // 是否合法
	Length  int    `json:"length"`  // Decoded byte length // 解码字节长度
	OnCurve bool   `json:"onCurve"` // Lies on ed25519 curve // 是否在曲线上
	Reason  string `json:"reason"`  // Failure reason when invalid // 不合法原因
}

// SolanaBalanceDTO 余额查询结果
type SolanaBalanceDTO struct {
	Address  string  `json:"address"`  // Queried address // 查询地址
	Lamports uint64  `json:"lamports"` // Balance in lamports // lamports 余额
	Sol      float64 `json:"sol"`      // Balance in SOL // SOL 余额
	Endpoint string  `json:"endpoint"` // RPC endpoint used // 使用的 RPC 端点
}

// VanityJobDTO 靓号搜索任务状态
type VanityJobDTO struct {
	JobID         string     `json:"jobId"`         // Job identifier // 任务标识
	Pattern       string     `json:"pattern"`       // Target pattern // 目标串
	Placement     string     `json:"placement"`     // prefix suffix anywhere // 匹配位置
	CaseSensitive bool       `json:"caseSensitive"` // Case sensitive match // 区分大小写
	Status        string     `json:"status"`        // pending running done not_found canceled failed // 任务状态
	Attempts      int64      `json:"attempts"`      // Attempts so far // 已尝试次数
	ElapsedMs     int64      `json:"elapsedMs"`     // Elapsed milliseconds // 已耗时毫秒
	PublicKey     string     `json:"publicKey"`     // Found public key // 命中的公钥
	PrivateKey    string     `json:"privateKey"`    // Found private key // 命中的私钥
	Error         string     `json:"error"`         // Failure reason // 失败原因
	CreatedAt     timex.Time `json:"createdAt"`     // Submit time // 提交时间
	UpdatedAt     timex.Time `json:"updatedAt"`     // Last transition time // 最后变更时间
}

// VanityJobListDTO 靓号任务分页列表
type VanityJobListDTO struct {
	List     []*VanityJobDTO `json:"list"`     // Current page // 本页任务
	Total    int64           `json:"total"`    // Total job count // 总数
	Page     int             `json:"page"`     // Page number // 页码
	PageSize int             `json:"pageSize"` // Page size // 每页数量
}
