package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 每个方法在单条记录上原子执行
// 3. 条码是唯一键,所有方法按条码定位图书
type Repository interface {
	// FindByBarcode 根据条码查找图书,不存在返回ErrBookNotFound
	FindByBarcode(ctx context.Context, barcode string) (*Book, error)

	// Revision 只查询修订标识(ID+Version),不存在返回ErrBookNotFound
	// 用于校验缓存是否过期
	Revision(ctx context.Context, barcode string) (Revision, error)

	// Create 创建图书,条码已存在返回ErrBarcodeDuplicate
	// 唯一索引是判重的最终依据(并发Add也只有一个成功)
	Create(ctx context.Context, book *Book) error

	// 以下写操作都会把version加1

	// UpdateFields 合并描述性字段,从不修改quantity和location
	UpdateFields(ctx context.Context, barcode string, fields BookFields) error

	// SetLocationAndQuantity 覆盖位置和数量(上架)
	SetLocationAndQuantity(ctx context.Context, barcode, location string, quantity int) error

	// IncrementQuantity 原子增减数量
	// 单条UPDATE完成条件判断和修改:
	//   UPDATE books SET quantity = quantity + ? WHERE barcode = ? AND quantity IS NOT NULL AND quantity + ? >= 0
	// 图书不存在返回ErrBookNotFound;数量未设置或结果为负返回ErrInvalidState
	IncrementQuantity(ctx context.Context, barcode string, delta int) error

	// Delete 物理删除图书
	Delete(ctx context.Context, barcode string) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索书名、作者、条码)
	Genre    string // 按类别精确过滤
	SortBy   string // 排序字段(name_asc, created_at_desc, quantity_desc)
}

// Normalize 填充分页默认值
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}
