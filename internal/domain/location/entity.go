package location

import (
	"strings"
	"time"
)

// Assignment 上架台账记录(只追加,从不修改或删除)
// 设计说明:
// 1. 每次Rack追加一条,重复上架同一本书也会追加新记录
// 2. 不校验图书是否存在(台账与目录之间没有外键)
// 3. Quantity记录上架当时的数量,之后借出不会回写台账
type Assignment struct {
	ID              uint
	LocationBarcode string // 位置条码(书架/书库)
	BookBarcode     string // 图书条码
	Quantity        int    // 上架数量(>=0)
	CreatedAt       time.Time
}

// NewAssignment 创建台账记录
func NewAssignment(locationBarcode, bookBarcode string, quantity int) (*Assignment, error) {
	locationBarcode = strings.TrimSpace(locationBarcode)
	bookBarcode = strings.TrimSpace(bookBarcode)

	if locationBarcode == "" {
		return nil, MissingField("locationBarcode")
	}
	if bookBarcode == "" {
		return nil, MissingField("bookBarcode")
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	return &Assignment{
		LocationBarcode: locationBarcode,
		BookBarcode:     bookBarcode,
		Quantity:        quantity,
		CreatedAt:       time.Now(),
	}, nil
}
