package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务负责前置条件校验(必填字段、存在性)和状态转换规则
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 所有失败都以*AppError返回,调用方按错误码区分
type Service interface {
	// Add 登记新图书
	// 业务规则:条码必填;条码不能重复;新图书数量和位置均未设置
	Add(ctx context.Context, params AddParams) (*Book, error)

	// Delete 删除图书(物理删除)
	Delete(ctx context.Context, barcode string) error

	// Modify 部分更新描述性字段
	// 业务规则:只修改请求中提供的字段,从不修改数量和位置
	Modify(ctx context.Context, barcode string, fields BookFields) error

	// Retrieve 查询图书完整信息
	Retrieve(ctx context.Context, barcode string) (*Book, error)

	// Revision 查询图书当前修订标识
	Revision(ctx context.Context, barcode string) (Revision, error)

	// Lend 借出一本
	// 业务规则:数量已设置且>0才能借出,每次恰好减1
	// 图书不存在、未上架、数量为0统一返回ErrUnavailable
	Lend(ctx context.Context, barcode string) error

	// ApplyRack 上架:覆盖图书的位置和数量
	// 只修改目录,不写台账(台账由location用例在同一事务中追加)
	ApplyRack(ctx context.Context, bookBarcode, locationBarcode string, quantity int) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// AddParams 登记图书参数
type AddParams struct {
	Barcode       string
	Name          string
	Author        string
	PublishedDate string
	Genre         string
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Add 登记新图书
func (s *service) Add(ctx context.Context, params AddParams) (*Book, error) {
	barcode := NormalizeBarcode(params.Barcode)
	if barcode == "" {
		return nil, MissingField("barcode")
	}

	// 1. 先查重,给出明确的冲突错误
	existing, err := s.repo.FindByBarcode(ctx, barcode)
	if err == nil && existing != nil {
		return nil, ErrBarcodeDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}

	// 2. 创建(并发Add时由唯一索引兜底,Create返回ErrBarcodeDuplicate)
	book := NewBook(barcode, params.Name, params.Author, params.PublishedDate, params.Genre)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, barcode string) error {
	barcode = NormalizeBarcode(barcode)
	if barcode == "" {
		return MissingField("barcode")
	}
	return s.repo.Delete(ctx, barcode)
}

// Modify 部分更新
func (s *service) Modify(ctx context.Context, barcode string, fields BookFields) error {
	barcode = NormalizeBarcode(barcode)
	if barcode == "" {
		return MissingField("barcode")
	}

	// 没有提供任何字段时只校验图书存在
	if fields.IsEmpty() {
		_, err := s.repo.FindByBarcode(ctx, barcode)
		return err
	}
	return s.repo.UpdateFields(ctx, barcode, fields)
}

// Retrieve 查询图书
func (s *service) Retrieve(ctx context.Context, barcode string) (*Book, error) {
	barcode = NormalizeBarcode(barcode)
	if barcode == "" {
		return nil, MissingField("barcode")
	}
	return s.repo.FindByBarcode(ctx, barcode)
}

// Revision 查询修订标识
func (s *service) Revision(ctx context.Context, barcode string) (Revision, error) {
	barcode = NormalizeBarcode(barcode)
	if barcode == "" {
		return Revision{}, MissingField("barcode")
	}
	return s.repo.Revision(ctx, barcode)
}

// Lend 借出一本
// 不先查后改:条件判断和扣减在仓储的同一条UPDATE里完成,并发借阅不会把数量扣成负数
func (s *service) Lend(ctx context.Context, barcode string) error {
	barcode = NormalizeBarcode(barcode)
	if barcode == "" {
		return MissingField("barcode")
	}

	err := s.repo.IncrementQuantity(ctx, barcode, -1)
	if errors.Is(err, ErrBookNotFound) || errors.Is(err, ErrInvalidState) {
		return ErrUnavailable
	}
	return err
}

// ApplyRack 上架
func (s *service) ApplyRack(ctx context.Context, bookBarcode, locationBarcode string, quantity int) error {
	bookBarcode = NormalizeBarcode(bookBarcode)
	locationBarcode = NormalizeBarcode(locationBarcode)
	if bookBarcode == "" {
		return MissingField("bookBarcode")
	}
	if locationBarcode == "" {
		return MissingField("locationBarcode")
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	return s.repo.SetLocationAndQuantity(ctx, bookBarcode, locationBarcode, quantity)
}

// List 分页查询
func (s *service) List(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}
