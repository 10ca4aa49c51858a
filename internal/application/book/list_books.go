package book

import (
	"context"
	"time"

	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持分页、关键词搜索(书名/作者/条码)、类别过滤、排序
// 2. 列表项复用BookView,未上架的图书同样显示"unset"/"unassigned"
// 3. 列表不走缓存
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索书名、作者、条码)
	Genre    string // 类别精确匹配
	SortBy   string // 排序方式(name_asc, quantity_desc, 默认创建时间倒序)
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List     []*BookView
	Total    int64
	Page     int
	PageSize int
}

// Execute 执行列表查询用例
// 学习要点:
// 1. 参数默认值与范围限制由领域层ListParams.Normalize统一处理
// 2. 响应里回传规范化后的page/pageSize,分页信息由HTTP层组装
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp *ListBooksResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation("list", start, err)
	}()

	params := book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Genre:    req.Genre,
		SortBy:   req.SortBy,
	}
	params.Normalize()

	books, total, err := uc.bookService.List(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]*BookView, len(books))
	for i, b := range books {
		list[i] = NewBookView(b)
	}

	return &ListBooksResponse{
		List:     list,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}
