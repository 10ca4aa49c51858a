package book

import (
	"context"
	"time"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

// ModifyBookUseCase 修改图书描述信息用例
type ModifyBookUseCase struct {
	bookService book.Service
	effects     *port.SideEffects
}

// NewModifyBookUseCase 创建修改用例
func NewModifyBookUseCase(bookService book.Service, effects *port.SideEffects) *ModifyBookUseCase {
	return &ModifyBookUseCase{bookService: bookService, effects: effects}
}

// ModifyBookRequest 修改请求DTO
// 指针字段为nil表示不修改
type ModifyBookRequest struct {
	Barcode       string
	Name          *string
	Author        *string
	PublishedDate *string
	Genre         *string
}

// Execute 部分更新,数量和位置不在可修改范围内
func (uc *ModifyBookUseCase) Execute(ctx context.Context, req ModifyBookRequest) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "ModifyBook")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation("modify", start, err)
	}()

	fields := book.BookFields{
		Name:          req.Name,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
		Genre:         req.Genre,
	}
	if err = uc.bookService.Modify(ctx, req.Barcode, fields); err != nil {
		return err
	}

	if fields.IsEmpty() {
		return nil
	}
	barcode := book.NormalizeBarcode(req.Barcode)
	uc.effects.Invalidate(ctx, barcode)
	uc.effects.Emit(ctx, port.NewInventoryEvent(port.EventBookModified, barcode))
	return nil
}
