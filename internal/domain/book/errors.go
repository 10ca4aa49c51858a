package book

import (
	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrMissingField 缺少必填字段(使用MissingField生成带字段名的错误)
	ErrMissingField = apperrors.ErrMissingField

	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBarcodeDuplicate 条码已存在
	ErrBarcodeDuplicate = apperrors.New(apperrors.ErrCodeBarcodeDuplicate, "图书条码已存在")

	// ErrUnavailable 无可借副本(图书不存在、未上架或数量为0)
	ErrUnavailable = apperrors.New(apperrors.ErrCodeUnavailable, "暂无可借副本")

	// ErrInvalidState 库存状态不允许此操作(数量未设置或将变为负数)
	// 仓储层返回,由Lend转换为ErrUnavailable
	ErrInvalidState = apperrors.New(apperrors.ErrCodeInvalidState, "库存状态不允许此操作")

	// ErrInvalidQuantity 数量不能为负数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量不能为负数")
)

// MissingField 返回指明字段名的缺少字段错误
func MissingField(field string) *apperrors.AppError {
	return ErrMissingField.WithMessage("缺少必填字段: " + field)
}
