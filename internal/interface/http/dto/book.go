package dto

// AddBookRequest HTTP登记图书请求
// barcode不加binding:"required",缺失时由领域层返回带字段名的MissingField
type AddBookRequest struct {
	Barcode       string `json:"barcode" example:"9787111544937"`
	Name          string `json:"name" binding:"max=200" example:"Go程序设计语言"`
	Author        string `json:"author" binding:"max=100" example:"Alan A. A. Donovan"`
	PublishedDate string `json:"publishedDate" binding:"max=32" example:"2016-01-01"`
	Genre         string `json:"genre" binding:"max=64" example:"编程"`
}

// AddBookResponse HTTP登记图书响应
type AddBookResponse struct {
	ID uint `json:"id" example:"1"`
}

// ModifyBookRequest HTTP修改图书请求
// 字段为null或不出现表示不修改;空字符串是合法的新值
type ModifyBookRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=200" example:"Go语言圣经"`
	Author        *string `json:"author" binding:"omitempty,max=100"`
	PublishedDate *string `json:"publishedDate" binding:"omitempty,max=32"`
	Genre         *string `json:"genre" binding:"omitempty,max=64"`
}

// BookResponse HTTP图书详情
// quantity未上架时为"unset",location未上架时为"unassigned"
type BookResponse struct {
	Barcode       string `json:"barcode" example:"9787111544937"`
	Name          string `json:"name" example:"Go程序设计语言"`
	Author        string `json:"author" example:"Alan A. A. Donovan"`
	PublishedDate string `json:"publishedDate" example:"2016-01-01"`
	Genre         string `json:"genre" example:"编程"`
	Quantity      any    `json:"quantity" swaggertype:"string" example:"3"`
	Location      string `json:"location" example:"L1"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	Genre    string `form:"genre" binding:"omitempty,max=64"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=name_asc quantity_desc created_at_desc" example:"created_at_desc"`
}
