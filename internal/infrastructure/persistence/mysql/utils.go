package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
)

// dbError 驱动错误统一包装为DatabaseError(50001)，原始错误只进日志
func dbError(err error, message string) error {
	return apperrors.WrapWithCode(err, apperrors.ErrCodeDatabaseError, message)
}

// isDuplicateError 唯一索引冲突
//
//	MySQL 1062: Duplicate entry 'B1' for key 'books.idx_books_barcode'
//	SQLite:     UNIQUE constraint failed: books.barcode
//
// 只有打开TranslateError时GORM才会返回ErrDuplicatedKey，所以还要匹配错误文本
func isDuplicateError(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
