// Package limiter provides token-bucket rate limiting keyed by request path
// Package limiter 提供按请求路径划分的令牌桶限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 单个令牌桶规则
type BucketRule struct {
	// Key 桶标识（路由前缀）
	Key string
	// FillInterval 放入令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数
	Quantum int64
}

// Limiter 持有已注册的令牌桶
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}
