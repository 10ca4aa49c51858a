package redis

import (
	"context"
	"errors"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/pkg/circuitbreaker"
	"github.com/xiebiao/library-inventory/pkg/logger"
	"github.com/xiebiao/library-inventory/pkg/metrics"
)

// GuardedBookCache 带熔断的图书缓存
//
// Redis不可用时每次请求都会等到读超时，熔断打开后：
//   - Get 直接返回未命中，用例回源数据库
//   - Set 直接跳过
//   - Delete 仍返回错误，由用例记录"缓存失效失败"日志（TTL兜底）
//
// 缓存未命中(nil, nil)不算失败
type GuardedBookCache struct {
	next    port.BookCache
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedBookCache 包装BookCache
func NewGuardedBookCache(next port.BookCache, breaker *circuitbreaker.CircuitBreaker) *GuardedBookCache {
	return &GuardedBookCache{next: next, breaker: breaker}
}

// NewCacheBreaker 创建Redis缓存熔断器，状态变化写日志和circuit_breaker_state指标
func NewCacheBreaker(failures uint32, cfg circuitbreaker.Config, log *logger.Logger) *circuitbreaker.CircuitBreaker {
	if log == nil {
		log = logger.Nop()
	}

	cfg.ReadyToTrip = circuitbreaker.ConsecutiveFailures(failures)
	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		log.Warn(log.WithFields(context.Background(), map[string]any{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		}), "缓存熔断器状态变化", nil)
	}
	return circuitbreaker.New("redis_book_cache", cfg)
}

// Get 熔断时视为未命中
func (c *GuardedBookCache) Get(ctx context.Context, barcode string) (*book.Book, error) {
	var cached *book.Book
	err := c.breaker.Execute(func() error {
		var err error
		cached, err = c.next.Get(ctx, barcode)
		return err
	})
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return nil, nil
	}
	return cached, err
}

// Set 熔断时跳过回填
func (c *GuardedBookCache) Set(ctx context.Context, b *book.Book) error {
	err := c.breaker.Execute(func() error {
		return c.next.Set(ctx, b)
	})
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return nil
	}
	return err
}

// Delete 熔断时返回ErrOpenState
func (c *GuardedBookCache) Delete(ctx context.Context, barcode string) error {
	return c.breaker.Execute(func() error {
		return c.next.Delete(ctx, barcode)
	})
}
