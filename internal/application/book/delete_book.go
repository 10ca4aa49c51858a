package book

import (
	"context"
	"time"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
	effects     *port.SideEffects
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, effects *port.SideEffects) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, effects: effects}
}

// Execute 删除图书
// 台账记录保留,不级联删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, barcode string) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation("delete", start, err)
	}()

	if err = uc.bookService.Delete(ctx, barcode); err != nil {
		return err
	}

	barcode = book.NormalizeBarcode(barcode)
	uc.effects.Invalidate(ctx, barcode)
	uc.effects.Emit(ctx, port.NewInventoryEvent(port.EventBookDeleted, barcode))
	return nil
}
