package dto

// RackBookRequest HTTP上架请求
// quantity使用指针区分"未提供"和0
type RackBookRequest struct {
	LocationBarcode string `json:"locationBarcode" example:"L1"`
	BookBarcode     string `json:"bookBarcode" example:"9787111544937"`
	Quantity        *int   `json:"quantity" example:"3"`
}

// ListAssignmentsRequest HTTP台账查询请求
type ListAssignmentsRequest struct {
	BookBarcode     string `form:"book_barcode" example:"9787111544937"`
	LocationBarcode string `form:"location_barcode" example:"L1"`
}

// AssignmentResponse HTTP台账记录
type AssignmentResponse struct {
	ID              uint   `json:"id" example:"1"`
	LocationBarcode string `json:"locationBarcode" example:"L1"`
	BookBarcode     string `json:"bookBarcode" example:"9787111544937"`
	Quantity        int    `json:"quantity" example:"3"`
	CreatedAt       string `json:"createdAt" example:"2024-01-15 10:30:00"`
}
