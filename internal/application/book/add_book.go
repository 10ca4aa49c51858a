package book

import (
	"context"
	"time"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

// AddBookUseCase 登记图书用例
type AddBookUseCase struct {
	bookService book.Service
	effects     *port.SideEffects
}

// NewAddBookUseCase 创建登记用例
func NewAddBookUseCase(bookService book.Service, effects *port.SideEffects) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
		effects:     effects,
	}
}

// AddBookRequest 登记请求DTO
type AddBookRequest struct {
	Barcode       string // 图书条码(必填)
	Name          string // 书名
	Author        string // 作者
	PublishedDate string // 出版日期
	Genre         string // 类别,可为空
}

// AddBookResponse 登记响应DTO
type AddBookResponse struct {
	ID uint `json:"id"`
}

// Execute 执行登记用例
// 新图书数量和位置都未设置,需要Rack后才能借出
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (resp *AddBookResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "AddBook")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation("add", start, err)
	}()

	b, err := uc.bookService.Add(ctx, book.AddParams{
		Barcode:       req.Barcode,
		Name:          req.Name,
		Author:        req.Author,
		PublishedDate: req.PublishedDate,
		Genre:         req.Genre,
	})
	if err != nil {
		return nil, err
	}

	uc.effects.Log.Info(uc.effects.Log.WithField(ctx, "barcode", b.Barcode), "图书已登记")
	uc.effects.Emit(ctx, port.NewInventoryEvent(port.EventBookAdded, b.Barcode))

	return &AddBookResponse{ID: b.ID}, nil
}
