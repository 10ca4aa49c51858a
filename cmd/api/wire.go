//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. Provider可以返回cleanup函数，Wire按创建的逆序组合成一个cleanup
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/library-inventory/internal/application/book"
	applocation "github.com/xiebiao/library-inventory/internal/application/location"
	"github.com/xiebiao/library-inventory/internal/application/port"
	appscan "github.com/xiebiao/library-inventory/internal/application/scan"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	"github.com/xiebiao/library-inventory/internal/infrastructure/messaging"
	"github.com/xiebiao/library-inventory/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library-inventory/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library-inventory/internal/infrastructure/scanner"
	"github.com/xiebiao/library-inventory/internal/interface/http/handler"
	"github.com/xiebiao/library-inventory/internal/interface/http/router"
	"github.com/xiebiao/library-inventory/pkg/logger"
)

// infrastructureSet 基础设施层依赖
// 包含：数据库、缓存、消息队列、扫码设备
var infrastructureSet = wire.NewSet(
	provideDB,
	redis.NewBookCacheFromConfig,
	messaging.NewFromConfig,
	scanner.NewFromConfig,
	wire.Bind(new(appscan.Adapter), new(*scanner.Scanner)),
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewLocationLedger,
	mysql.NewTxManager,
	wire.Bind(new(port.TxRunner), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	port.NewSideEffects,
	appbook.NewAddBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewModifyBookUseCase,
	appbook.NewRetrieveBookUseCase,
	appbook.NewLendBookUseCase,
	appbook.NewListBooksUseCase,
	provideRackBookUseCase,
	applocation.NewListAssignmentsUseCase,
	appscan.NewScanBarcodeUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewLocationHandler,
	handler.NewScanHandler,
	router.New,
)

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎和cleanup（关闭数据库、Redis、RabbitMQ连接）
func InitializeApp(cfg *config.Config, log *logger.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
