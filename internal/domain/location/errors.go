package location

import (
	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
)

var (
	// ErrMissingField 缺少必填字段
	ErrMissingField = apperrors.ErrMissingField

	// ErrInvalidQuantity 上架数量不能为负数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "上架数量不能为负数")

	// ErrFilterRequired 查询台账需要图书条码或位置条码
	ErrFilterRequired = apperrors.New(apperrors.ErrCodeMissingField, "缺少必填字段: bookBarcode或locationBarcode")
)

// MissingField 返回指明字段名的缺少字段错误
func MissingField(field string) *apperrors.AppError {
	return ErrMissingField.WithMessage("缺少必填字段: " + field)
}
