package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library-inventory/internal/domain/location"
)

// locationLedger 上架台账实现
// 只提供插入和查询,没有更新/删除方法
type locationLedger struct {
	db *gorm.DB
}

// NewLocationLedger 创建上架台账
func NewLocationLedger(db *gorm.DB) location.Ledger {
	return &locationLedger{db: db}
}

// Append 追加记录
func (l *locationLedger) Append(ctx context.Context, a *location.Assignment) error {
	model := &LocationAssignmentModel{
		LocationBarcode: a.LocationBarcode,
		BookBarcode:     a.BookBarcode,
		Quantity:        a.Quantity,
		CreatedAt:       a.CreatedAt,
	}

	if err := dbFromContext(ctx, l.db).Create(model).Error; err != nil {
		return dbError(err, "写入上架台账失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	return nil
}

// ListByBook 按图书条码查询
func (l *locationLedger) ListByBook(ctx context.Context, bookBarcode string) ([]*location.Assignment, error) {
	return l.list(ctx, "book_barcode = ?", bookBarcode)
}

// ListByLocation 按位置条码查询
func (l *locationLedger) ListByLocation(ctx context.Context, locationBarcode string) ([]*location.Assignment, error) {
	return l.list(ctx, "location_barcode = ?", locationBarcode)
}

func (l *locationLedger) list(ctx context.Context, cond string, value string) ([]*location.Assignment, error) {
	var models []LocationAssignmentModel
	// 自增ID与插入顺序一致,比created_at更适合做"最新在前"的排序
	err := dbFromContext(ctx, l.db).Where(cond, value).Order("id DESC").Find(&models).Error
	if err != nil {
		return nil, dbError(err, "查询上架台账失败")
	}

	result := make([]*location.Assignment, len(models))
	for i := range models {
		result[i] = toAssignmentEntity(&models[i])
	}
	return result, nil
}

// toAssignmentEntity GORM模型 → 领域实体
func toAssignmentEntity(model *LocationAssignmentModel) *location.Assignment {
	return &location.Assignment{
		ID:              model.ID,
		LocationBarcode: model.LocationBarcode,
		BookBarcode:     model.BookBarcode,
		Quantity:        model.Quantity,
		CreatedAt:       model.CreatedAt,
	}
}
