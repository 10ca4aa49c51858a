package dto

// ScanRequest HTTP扫码请求
type ScanRequest struct {
	Timeout string `form:"timeout" example:"5s"` // Go duration格式,为空使用默认值
}

// ScanResponse HTTP扫码响应
type ScanResponse struct {
	Barcode string `json:"barcode" example:"9787111544937"`
}
