package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

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
	"github.com/xiebiao/library-inventory/pkg/logger"
	"github.com/xiebiao/library-inventory/pkg/metrics"
)

// app 命令行的依赖容器（手动依赖注入）
// 数据库等资源在第一次使用时才创建，scan、events等命令不需要连接数据库
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	out      io.Writer
	cleanups []func()

	inventory *inventoryUseCases
}

// inventoryUseCases 依赖数据库的用例
type inventoryUseCases struct {
	addBook         *appbook.AddBookUseCase
	deleteBook      *appbook.DeleteBookUseCase
	modifyBook      *appbook.ModifyBookUseCase
	retrieveBook    *appbook.RetrieveBookUseCase
	lendBook        *appbook.LendBookUseCase
	listBooks       *appbook.ListBooksUseCase
	rackBook        *applocation.RackBookUseCase
	listAssignments *applocation.ListAssignmentsUseCase
}

func newApp(configPath string, verbose bool, out io.Writer) (*app, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	level := logger.ParseLevel("warn")
	if verbose {
		level = logger.ParseLevel("debug")
	}
	log := logger.New(logger.Options{
		ServiceName: "inventoryctl",
		Level:       level,
		Format:      "console",
		Output:      os.Stderr,
	})

	// CLI进程不暴露/metrics，用例里的计数只在进程内累加
	metrics.InitMetrics()

	return &app{cfg: cfg, log: log, out: out}, nil
}

// useCases 组装依赖数据库的用例
// Repository ← Service ← UseCase
func (a *app) useCases() (*inventoryUseCases, error) {
	if a.inventory != nil {
		return a.inventory, nil
	}

	db, err := mysql.NewDB(a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.cleanups = append(a.cleanups, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cache, closeCache, err := redis.NewBookCacheFromConfig(a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.cleanups = append(a.cleanups, closeCache)

	publisher, closePublisher, err := messaging.NewFromConfig(a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.cleanups = append(a.cleanups, closePublisher)

	bookService := book.NewService(mysql.NewBookRepository(db))
	ledger := mysql.NewLocationLedger(db)
	effects := port.NewSideEffects(cache, publisher, a.log)

	a.inventory = &inventoryUseCases{
		addBook:         appbook.NewAddBookUseCase(bookService, effects),
		deleteBook:      appbook.NewDeleteBookUseCase(bookService, effects),
		modifyBook:      appbook.NewModifyBookUseCase(bookService, effects),
		retrieveBook:    appbook.NewRetrieveBookUseCase(bookService, effects),
		lendBook:        appbook.NewLendBookUseCase(bookService, effects),
		listBooks:       appbook.NewListBooksUseCase(bookService),
		rackBook:        applocation.NewRackBookUseCase(mysql.NewTxManager(db), ledger, bookService, effects, a.cfg.Inventory.RackRequiresBook),
		listAssignments: applocation.NewListAssignmentsUseCase(ledger),
	}
	return a.inventory, nil
}

func (a *app) scanUseCase() *appscan.ScanBarcodeUseCase {
	return appscan.NewScanBarcodeUseCase(scanner.NewFromConfig(a.cfg, a.log), a.log)
}

// close 按创建的逆序释放资源
func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// printJSON 输出缩进的JSON
func (a *app) printJSON(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

func (a *app) printOK(msg string) {
	fmt.Fprintln(a.out, msg)
}
