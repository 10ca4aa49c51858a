package port

import (
	"context"

	"github.com/xiebiao/library-inventory/internal/domain/book"
)

// BookCache 图书视图缓存(Cache-Aside)
// 缓存失败只影响性能，用例层记录日志后继续访问数据库
type BookCache interface {
	// Get 未命中返回(nil, nil)
	Get(ctx context.Context, barcode string) (*book.Book, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, barcode string) error
}

// NoopBookCache 未启用Redis时使用
type NoopBookCache struct{}

func (NoopBookCache) Get(context.Context, string) (*book.Book, error) { return nil, nil }
func (NoopBookCache) Set(context.Context, *book.Book) error          { return nil }
func (NoopBookCache) Delete(context.Context, string) error           { return nil }
