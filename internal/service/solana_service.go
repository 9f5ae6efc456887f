// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/haierkeys/dev-toolbox-service/internal/domain"
	"github.com/haierkeys/dev-toolbox-service/internal/dto"
	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/mr-tron/base58"
	"golang.org/x/sync/singleflight"
)

// SolanaService Solana 工具服务接口
type SolanaService interface {
	// GenerateKeypair 生成 ed25519 密钥对
	GenerateKeypair(ctx context.Context, uid int64) (*dto.SolanaKeypairDTO, error)

	// InspectAddress 检查地址合法性和曲线归属
	InspectAddress(ctx context.Context, uid int64, params *dto.SolanaAddressRequest) (*dto.SolanaAddressDTO, error)

	// Balance 查询余额, 端点取自用户设置
	Balance(ctx context.Context, uid int64, params *dto.SolanaBalanceRequest) (*dto.SolanaBalanceDTO, error)
}

// solanaService 实现 SolanaService 接口
type solanaService struct {
	historyService HistoryService
	settingService SettingService
	config         *ServiceConfig

	sf singleflight.Group

	mu      sync.Mutex
	clients map[string]*rpc.Client
}

// NewSolanaService 创建 SolanaService 实例
func NewSolanaService(historySvc HistoryService, settingSvc SettingService, config *ServiceConfig) SolanaService {
	return &solanaService{
		historyService: historySvc,
		settingService: settingSvc,
		config:         config,
		clients:        make(map[string]*rpc.Client),
	}
}

// client 按端点复用 RPC 客户端
func (s *solanaService) client(endpoint string) *rpc.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[endpoint]; ok {
		return c
	}
	c := rpc.New(endpoint)
	s.clients[endpoint] = c
	return c
}

// endpointFor 解析用户的 RPC 端点设置, 缺省用服务配置
func (s *solanaService) endpointFor(ctx context.Context, uid int64) string {
	return s.settingService.Value(ctx, uid, domain.SettingKeySolanaRpcEndpoint, s.config.Tools.SolanaRpcEndpoint)
}

// GenerateKeypair 生成 ed25519 密钥对
func (s *solanaService) GenerateKeypair(ctx context.Context, uid int64) (*dto.SolanaKeypairDTO, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	result := &dto.SolanaKeypairDTO{
		PublicKey:  priv.PublicKey().String(),
		PrivateKey: priv.String(),
	}

	// 私钥不进历史
	s.historyService.Record(ctx, uid, ToolSolana,
		fmt.Sprintf("Generated keypair %s", result.PublicKey),
		map[string]any{"mode": "keypair", "publicKey": result.PublicKey})

	return result, nil
}

// InspectAddress 检查地址合法性和曲线归属
func (s *solanaService) InspectAddress(ctx context.Context, uid int64, params *dto.SolanaAddressRequest) (*dto.SolanaAddressDTO, error) {
	result := &dto.SolanaAddressDTO{Address: params.Address}

	raw, err := base58.Decode(params.Address)
	if err != nil {
		result.Reason = fmt.Sprintf("not valid base58: %s", err.Error())
		return result, nil
	}
	result.Length = len(raw)
	if len(raw) != 32 {
		result.Reason = fmt.Sprintf("decoded to %d bytes, expected 32", len(raw))
		return result, nil
	}

	pub := solana.PublicKeyFromBytes(raw)
	result.Valid = true
	result.OnCurve = pub.IsOnCurve()

	s.historyService.Record(ctx, uid, ToolSolana,
		fmt.Sprintf("Inspected address %s", params.Address),
		map[string]any{"mode": "inspect", "address": params.Address, "onCurve": result.OnCurve})

	return result, nil
}

// Balance 查询余额, 端点取自用户设置
// 同一 地址+端点 的并发查询合并为一次 RPC
func (s *solanaService) Balance(ctx context.Context, uid int64, params *dto.SolanaBalanceRequest) (*dto.SolanaBalanceDTO, error) {
	pub, err := solana.PublicKeyFromBase58(params.Address)
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	endpoint := s.endpointFor(ctx, uid)
	key := endpoint + "|" + pub.String()

	v, err, _ := s.sf.Do(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.config.Tools.SolanaRpcTimeout)
		defer cancel()

		out, err := s.client(endpoint).GetBalance(callCtx, pub, rpc.CommitmentFinalized)
		if err != nil {
			return nil, err
		}
		return out.Value, nil
	})
	if err != nil {
		return nil, code.ErrorToolExecuteFailed.WithDetails(err.Error())
	}

	lamports := v.(uint64)
	result := &dto.SolanaBalanceDTO{
		Address:  pub.String(),
		Lamports: lamports,
		Sol:      float64(lamports) / float64(solana.LAMPORTS_PER_SOL),
		Endpoint: endpoint,
	}

	s.historyService.Record(ctx, uid, ToolSolana,
		fmt.Sprintf("Fetched balance of %s", result.Address),
		map[string]any{"mode": "balance", "address": result.Address, "lamports": lamports})

	return result, nil
}

// 确保 solanaService 实现了 SolanaService 接口
var _ SolanaService = (*solanaService)(nil)
