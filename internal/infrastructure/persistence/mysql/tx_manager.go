package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中存放事务DB的键
type txKey struct{}

// TxManager 事务管理器
// 教学要点:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn内通过ctx调用的所有Repository操作都在同一事务中执行,
// fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//
// 使用示例(上架):
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := ledger.Append(ctx, assignment); err != nil {
//	        return err
//	    }
//	    return bookService.ApplyRack(ctx, bookBarcode, locationBarcode, quantity)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext 从context获取事务DB,如果没有则使用默认DB
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
