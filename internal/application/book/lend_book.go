package book

import (
	"context"
	"time"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

// LendBookUseCase 借出用例
type LendBookUseCase struct {
	bookService book.Service
	effects     *port.SideEffects
}

// NewLendBookUseCase 创建借出用例
func NewLendBookUseCase(bookService book.Service, effects *port.SideEffects) *LendBookUseCase {
	return &LendBookUseCase{bookService: bookService, effects: effects}
}

// Execute 借出一本
// 数量检查和扣减由仓储的条件UPDATE原子完成
func (uc *LendBookUseCase) Execute(ctx context.Context, barcode string) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "LendBook")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation("lend", start, err)
	}()

	if err = uc.bookService.Lend(ctx, barcode); err != nil {
		return err
	}

	barcode = book.NormalizeBarcode(barcode)
	metrics.IncCounter(metrics.BooksLentTotal)
	uc.effects.Invalidate(ctx, barcode)
	uc.effects.Emit(ctx, port.NewInventoryEvent(port.EventBookLent, barcode))
	return nil
}
