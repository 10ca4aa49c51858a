package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	"github.com/xiebiao/library-inventory/pkg/circuitbreaker"
	"github.com/xiebiao/library-inventory/pkg/logger"
)

// NewClient 创建Redis客户端
// 设计说明：
// 1. 配置连接池参数（PoolSize、MinIdleConns）
// 2. 配置超时参数（DialTimeout、ReadTimeout、WriteTimeout）
// 3. 测试连接可用性
func NewClient(cfg *config.Config, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Info(log.WithField(context.Background(), "addr", cfg.Redis.Addr()), "Redis连接成功")
	return client, nil
}

// NewBookCacheFromConfig 按配置创建图书缓存
// redis.enabled=false时返回no-op实现;启用时外层包一层熔断;cleanup负责关闭连接
func NewBookCacheFromConfig(cfg *config.Config, log *logger.Logger) (port.BookCache, func(), error) {
	if !cfg.Redis.Enabled {
		return port.NoopBookCache{}, func() {}, nil
	}

	client, err := NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Warn(context.Background(), "关闭Redis连接失败", err)
		}
	}
	breaker := NewCacheBreaker(cfg.Redis.BreakerFailures, circuitbreaker.Config{
		Timeout: cfg.Redis.BreakerTimeout,
	}, log)
	return NewGuardedBookCache(NewBookCache(client, cfg.Redis.BookTTL), breaker), cleanup, nil
}
