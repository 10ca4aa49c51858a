package main

import (
	"context"

	"gorm.io/gorm"

	applocation "github.com/xiebiao/library-inventory/internal/application/location"
	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/internal/domain/location"
	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	"github.com/xiebiao/library-inventory/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library-inventory/pkg/logger"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 教学说明：
// 构造函数参数需要从Config中提取，或者需要返回cleanup函数时，
// 编写自定义Provider。放在普通文件里，wire.go和wire_gen.go都能引用

// provideDB 创建数据库连接，cleanup关闭连接池
func provideDB(cfg *config.Config, log *logger.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn(context.Background(), "关闭数据库连接失败", err)
			}
		}
	}
	return db, cleanup, nil
}

// provideRackBookUseCase 上架用例需要inventory.rack_requires_book开关
func provideRackBookUseCase(
	cfg *config.Config,
	tx port.TxRunner,
	ledger location.Ledger,
	bookService book.Service,
	effects *port.SideEffects,
) *applocation.RackBookUseCase {
	return applocation.NewRackBookUseCase(tx, ledger, bookService, effects, cfg.Inventory.RackRequiresBook)
}
