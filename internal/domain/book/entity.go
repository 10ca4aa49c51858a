package book

import (
	"strings"
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. Barcode是业务唯一标识,创建后不可修改(数据库层唯一索引保证)
// 2. Quantity/Location使用指针:nil表示"尚未上架",与数量0(已上架但无可借副本)区分
// 3. 每次上架(Rack)整体覆盖Quantity和Location,不做累加
type Book struct {
	ID            uint
	Barcode       string  // 图书条码
	Name          string  // 书名
	Author        string  // 作者
	PublishedDate string  // 出版日期(原样保存,不解析)
	Genre         string  // 类别,默认空字符串
	Quantity      *int    // 可借副本数,nil表示未上架
	Location      *string // 最近一次上架的位置条码,nil表示未分配
	Version       uint    // 每次写操作递增,缓存命中时用于校验是否过期
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建新图书(工厂方法)
// 新图书总是处于"未上架"状态
func NewBook(barcode, name, author, publishedDate, genre string) *Book {
	now := time.Now()
	return &Book{
		Barcode:       barcode,
		Name:          name,
		Author:        author,
		PublishedDate: publishedDate,
		Genre:         genre,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsStocked 是否已上架(数量已设置)
func (b *Book) IsStocked() bool {
	return b.Quantity != nil
}

// CanLend 是否有可借副本
func (b *Book) CanLend() bool {
	return b.Quantity != nil && *b.Quantity > 0
}

// Revision 图书记录的修订标识
// 删除后重新登记同一条码会得到新ID,所以需要ID和Version一起比较
type Revision struct {
	ID      uint
	Version uint
}

// Revision 当前修订
func (b *Book) Revision() Revision {
	return Revision{ID: b.ID, Version: b.Version}
}

// Rack 上架(领域行为),整体覆盖位置与数量
func (b *Book) Rack(location string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	b.Location = &location
	b.Quantity = &quantity
	b.Version++
	b.UpdatedAt = time.Now()
	return nil
}

// ApplyFields 合并描述性字段(只覆盖请求中提供的字段)
// 不会修改Quantity和Location
func (b *Book) ApplyFields(f BookFields) {
	if f.Name != nil {
		b.Name = *f.Name
	}
	if f.Author != nil {
		b.Author = *f.Author
	}
	if f.PublishedDate != nil {
		b.PublishedDate = *f.PublishedDate
	}
	if f.Genre != nil {
		b.Genre = *f.Genre
	}
	b.Version++
	b.UpdatedAt = time.Now()
}

// BookFields 可修改的描述性字段
// nil表示"未提供,保持原值";空字符串是合法的新值
type BookFields struct {
	Name          *string
	Author        *string
	PublishedDate *string
	Genre         *string
}

// IsEmpty 是否一个字段都没有提供
func (f BookFields) IsEmpty() bool {
	return f.Name == nil && f.Author == nil && f.PublishedDate == nil && f.Genre == nil
}

// NormalizeBarcode 去除条码首尾空白
// 扫码枪和表单输入经常带换行或空格
func NormalizeBarcode(barcode string) string {
	return strings.TrimSpace(barcode)
}
