package book

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

const (
	// QuantityUnset 尚未上架时quantity字段的取值
	QuantityUnset = "unset"
	// LocationUnassigned 尚未上架时location字段的取值
	LocationUnassigned = "unassigned"
)

// RetrieveBookUseCase 查询图书用例
// 设计说明:
// 1. Cache-Aside:先查Redis,未命中再查数据库并回填
// 2. Redis故障时降级为直接查库
// 3. 写操作(Modify/Delete/Rack/Lend)负责删除缓存
// 4. 命中时用数据库中的修订(id+version)校验,过期缓存不会返回给调用方
type RetrieveBookUseCase struct {
	bookService book.Service
	effects     *port.SideEffects
}

// NewRetrieveBookUseCase 创建查询用例
func NewRetrieveBookUseCase(bookService book.Service, effects *port.SideEffects) *RetrieveBookUseCase {
	return &RetrieveBookUseCase{bookService: bookService, effects: effects}
}

// BookView 图书完整视图
// Quantity为int或"unset",Location为位置条码或"unassigned"
type BookView struct {
	Barcode       string `json:"barcode"`
	Name          string `json:"name"`
	Author        string `json:"author"`
	PublishedDate string `json:"publishedDate"`
	Genre         string `json:"genre"`
	Quantity      any    `json:"quantity" swaggertype:"string"`
	Location      string `json:"location"`
}

// NewBookView 实体转换为视图
func NewBookView(b *book.Book) *BookView {
	view := &BookView{
		Barcode:       b.Barcode,
		Name:          b.Name,
		Author:        b.Author,
		PublishedDate: b.PublishedDate,
		Genre:         b.Genre,
		Quantity:      QuantityUnset,
		Location:      LocationUnassigned,
	}
	if b.Quantity != nil {
		view.Quantity = *b.Quantity
	}
	if b.Location != nil {
		view.Location = *b.Location
	}
	return view
}

// Execute 查询图书
func (uc *RetrieveBookUseCase) Execute(ctx context.Context, barcode string) (view *BookView, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "RetrieveBook")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation("retrieve", start, err)
	}()

	barcode = book.NormalizeBarcode(barcode)
	if barcode == "" {
		return nil, book.MissingField("barcode")
	}

	// 1. 查缓存，命中后和数据库中的修订比对
	cached, err := uc.fromCache(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return NewBookView(cached), nil
	}

	// 2. 查数据库
	b, err := uc.bookService.Retrieve(ctx, barcode)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	if err := uc.effects.Cache.Set(ctx, b); err != nil {
		uc.effects.Log.Warn(uc.effects.Log.WithField(ctx, "barcode", barcode), "写入图书缓存失败", err)
	}

	return NewBookView(b), nil
}

// fromCache 返回仍然有效的缓存值
//
// 缓存删除是尽力而为的，Redis抖动或"查库→别的请求写库并删缓存→回填"的竞争
// 都会留下旧值。命中后只查一次id+version(走barcode唯一索引)：
//   - 图书已删除：返回ErrBookNotFound
//   - 修订不一致：按过期处理，回源数据库
func (uc *RetrieveBookUseCase) fromCache(ctx context.Context, barcode string) (*book.Book, error) {
	log := uc.effects.Log

	cached, err := uc.effects.Cache.Get(ctx, barcode)
	switch {
	case err != nil:
		countCache("error")
		log.Warn(log.WithField(ctx, "barcode", barcode), "读取图书缓存失败,降级查库", err)
		return nil, nil
	case cached == nil:
		countCache("miss")
		return nil, nil
	}

	current, err := uc.bookService.Revision(ctx, barcode)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			countCache("stale")
			uc.effects.Invalidate(ctx, barcode)
		}
		return nil, err
	}
	if current != cached.Revision() {
		countCache("stale")
		log.Debug(log.WithFields(ctx, map[string]any{
			"barcode":        barcode,
			"cached_version": cached.Version,
			"version":        current.Version,
		}), "图书缓存已过期")
		return nil, nil
	}

	countCache("hit")
	return cached, nil
}

func countCache(result string) {
	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"result": result})
}
