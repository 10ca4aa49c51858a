package location

import "context"

// Ledger 上架台账仓储接口
type Ledger interface {
	// Append 追加一条记录(不校验图书是否存在)
	Append(ctx context.Context, assignment *Assignment) error

	// ListByBook 按图书条码查询,最新的在前
	ListByBook(ctx context.Context, bookBarcode string) ([]*Assignment, error)

	// ListByLocation 按位置条码查询,最新的在前
	ListByLocation(ctx context.Context, locationBarcode string) ([]*Assignment, error)
}
