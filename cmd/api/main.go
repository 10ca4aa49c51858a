package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	"github.com/xiebiao/library-inventory/pkg/logger"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

// @title           图书库存服务API
// @version         1.0
// @description     图书登记、上架、借出与扫码接口。所有接口返回HTTP 200,业务结果见code字段。
// @host            localhost:8080
// @BasePath        /

// main 主程序入口
// 依赖由Wire组装（wire_gen.go），main只负责生命周期：
// 加载配置 → 初始化日志/追踪 → 组装应用 → 启动HTTP → 收到信号后优雅关闭
func main() {
	configPath := flag.String("config", "", "配置文件路径(默认查找./config/config.yaml)")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log := logger.New(logger.Options{
		ServiceName: cfg.Server.Name,
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
	})
	ctx := context.Background()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "服务异常退出", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// 3. 初始化追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Server.Name, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn(ctx, "关闭Tracer失败", err)
			}
		}()
	}

	// 初始化Prometheus指标(用例和中间件直接使用，不再各自初始化)
	metrics.InitMetrics()

	// 4. 依赖注入(Wire生成)
	engine, cleanup, err := InitializeApp(cfg, log)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	// 5. 启动HTTP服务
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(log.WithFields(ctx, map[string]any{
			"addr":     srv.Addr,
			"database": cfg.Database.Driver,
			"redis":    cfg.Redis.Enabled,
			"mq":       cfg.MQ.Enabled,
		}), "服务启动成功")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info(log.WithField(ctx, "signal", sig.String()), "收到关闭信号，开始优雅关闭")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("优雅关闭失败: %w", err)
	}

	log.Info(ctx, "服务已安全关闭")
	return nil
}
