package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library-inventory/internal/domain/book"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如条码重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// FindByBarcode 根据条码查找图书
func (r *bookRepository) FindByBarcode(ctx context.Context, barcode string) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).Where("barcode = ?", barcode).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Revision 只查询id和version
func (r *bookRepository) Revision(ctx context.Context, barcode string) (book.Revision, error) {
	var model BookModel
	err := r.getDB(ctx).Select("id", "version").Where("barcode = ?", barcode).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return book.Revision{}, book.ErrBookNotFound
		}
		return book.Revision{}, dbError(err, "查询图书修订失败")
	}
	return book.Revision{ID: model.ID, Version: model.Version}, nil
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Barcode:       b.Barcode,
		Name:          b.Name,
		Author:        b.Author,
		PublishedDate: b.PublishedDate,
		Genre:         b.Genre,
		Quantity:      b.Quantity,
		Location:      b.Location,
		Version:       1,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrBarcodeDuplicate
		}
		return dbError(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.Version = model.Version
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// UpdateFields 合并描述性字段
// 使用map更新:只写入提供的字段,空字符串也会被写入
func (r *bookRepository) UpdateFields(ctx context.Context, barcode string, fields book.BookFields) error {
	updates := make(map[string]interface{}, 4)
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Author != nil {
		updates["author"] = *fields.Author
	}
	if fields.PublishedDate != nil {
		updates["published_date"] = *fields.PublishedDate
	}
	if fields.Genre != nil {
		updates["genre"] = *fields.Genre
	}
	if len(updates) == 0 {
		return r.ensureExists(ctx, barcode)
	}
	updates["version"] = nextVersion()

	result := r.getDB(ctx).Model(&BookModel{}).Where("barcode = ?", barcode).Updates(updates)
	if result.Error != nil {
		return dbError(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		// MySQL在值未变化时RowsAffected为0,需要再查一次区分"不存在"
		return r.ensureExists(ctx, barcode)
	}
	return nil
}

// SetLocationAndQuantity 覆盖位置和数量
func (r *bookRepository) SetLocationAndQuantity(ctx context.Context, barcode, location string, quantity int) error {
	result := r.getDB(ctx).Model(&BookModel{}).
		Where("barcode = ?", barcode).
		Updates(map[string]interface{}{
			"location": location,
			"quantity": quantity,
			"version":  nextVersion(),
		})
	if result.Error != nil {
		return dbError(result.Error, "更新图书位置失败")
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, barcode)
	}
	return nil
}

// IncrementQuantity 原子增减数量
// 教学要点:
// 1. 条件写在WHERE里,判断和修改是同一条SQL,不存在"先查后改"的竞态
// 2. quantity IS NOT NULL:未上架的图书不能借出
// 3. 必须使用getDB(ctx)参与事务
func (r *bookRepository) IncrementQuantity(ctx context.Context, barcode string, delta int) error {
	db := r.getDB(ctx)
	result := db.Model(&BookModel{}).
		Where("barcode = ?", barcode).
		Where("quantity IS NOT NULL").
		Where("quantity + ? >= 0", delta).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", delta),
			"version":  nextVersion(),
		})

	if result.Error != nil {
		return dbError(result.Error, "更新库存数量失败")
	}

	if result.RowsAffected == 0 {
		// 图书不存在,或者数量未设置/不足,再查一次确定原因
		if err := r.ensureExists(ctx, barcode); err != nil {
			return err
		}
		return book.ErrInvalidState
	}

	return nil
}

// Delete 物理删除图书
func (r *bookRepository) Delete(ctx context.Context, barcode string) error {
	result := r.getDB(ctx).Where("barcode = ?", barcode).Delete(&BookModel{})
	if result.Error != nil {
		return dbError(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.getDB(ctx).Model(&BookModel{})

	// 关键词搜索(书名、作者、条码)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR author LIKE ? OR barcode LIKE ?", keyword, keyword, keyword)
	}
	if params.Genre != "" {
		query = query.Where("genre = ?", params.Genre)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case "name_asc":
		query = query.Order("name ASC")
	case "quantity_desc":
		query = query.Order("quantity DESC")
	default:
		query = query.Order("created_at DESC")
	}
	query = query.Order("id DESC")

	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, dbError(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// ensureExists 图书不存在时返回ErrBookNotFound
func (r *bookRepository) ensureExists(ctx context.Context, barcode string) error {
	var count int64
	if err := r.getDB(ctx).Model(&BookModel{}).Where("barcode = ?", barcode).Count(&count).Error; err != nil {
		return dbError(err, "查询图书失败")
	}
	if count == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Barcode:       model.Barcode,
		Name:          model.Name,
		Author:        model.Author,
		PublishedDate: model.PublishedDate,
		Genre:         model.Genre,
		Quantity:      model.Quantity,
		Location:      model.Location,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// nextVersion 写操作统一使用的version自增表达式
func nextVersion() clause.Expr {
	return gorm.Expr("version + 1")
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
