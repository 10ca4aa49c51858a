// Package location 上架与台账用例
package location

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/internal/domain/location"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

const tracerName = "library-inventory/location"

// RackBookUseCase 上架用例
// 设计说明:
// 1. 台账追加和目录覆盖在同一个事务里完成
// 2. 默认不要求图书已登记:图书不存在时只写台账,记录警告日志
// 3. RequireBook=true时先校验图书存在,不存在直接返回NotFound,不写任何数据
// 4. 上架是整体覆盖(数量和位置),不是累加
type RackBookUseCase struct {
	tx          port.TxRunner
	ledger      location.Ledger
	bookService book.Service
	effects     *port.SideEffects
	requireBook bool
}

// NewRackBookUseCase 创建上架用例
func NewRackBookUseCase(tx port.TxRunner, ledger location.Ledger, bookService book.Service, effects *port.SideEffects, requireBook bool) *RackBookUseCase {
	return &RackBookUseCase{
		tx:          tx,
		ledger:      ledger,
		bookService: bookService,
		effects:     effects,
		requireBook: requireBook,
	}
}

// RackBookRequest 上架请求DTO
// Quantity为nil表示请求中没有提供(0是合法值)
type RackBookRequest struct {
	LocationBarcode string
	BookBarcode     string
	Quantity        *int
}

// Execute 执行上架
func (uc *RackBookUseCase) Execute(ctx context.Context, req RackBookRequest) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "RackBook")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation("rack", start, err)
	}()

	// 1. 参数校验(在开启事务之前)
	if req.Quantity == nil {
		return location.MissingField("quantity")
	}
	assignment, err := location.NewAssignment(req.LocationBarcode, req.BookBarcode, *req.Quantity)
	if err != nil {
		return err
	}

	ctx = uc.effects.Log.WithFields(ctx, map[string]any{
		"book_barcode":     assignment.BookBarcode,
		"location_barcode": assignment.LocationBarcode,
		"quantity":         assignment.Quantity,
	})

	// 2. 严格模式:图书必须已登记
	if uc.requireBook {
		if _, err = uc.bookService.Retrieve(ctx, assignment.BookBarcode); err != nil {
			return err
		}
	}

	// 3. 事务:追加台账 + 覆盖目录
	catalogUpdated := true
	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.appendLedger(ctx, assignment); err != nil {
			return err
		}

		err := uc.bookService.ApplyRack(ctx, assignment.BookBarcode, assignment.LocationBarcode, assignment.Quantity)
		if errors.Is(err, book.ErrBookNotFound) && !uc.requireBook {
			catalogUpdated = false
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	if !catalogUpdated {
		uc.effects.Log.Warn(ctx, "图书未登记,只记录上架台账", book.ErrBookNotFound)
		return nil
	}

	// 4. 副作用
	uc.effects.Invalidate(ctx, assignment.BookBarcode)
	event := port.NewInventoryEvent(port.EventBookRacked, assignment.BookBarcode)
	event.LocationBarcode = assignment.LocationBarcode
	event.Quantity = &assignment.Quantity
	uc.effects.Emit(ctx, event)

	uc.effects.Log.Info(ctx, "图书已上架")
	return nil
}

func (uc *RackBookUseCase) appendLedger(ctx context.Context, assignment *location.Assignment) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ledger.Append")
	defer func() { tracing.EndSpan(span, err) }()

	return uc.ledger.Append(ctx, assignment)
}
