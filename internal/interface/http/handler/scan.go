package handler

import (
	"image"
	// 注册PNG/JPEG解码器
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/gin-gonic/gin"

	appscan "github.com/xiebiao/library-inventory/internal/application/scan"
	"github.com/xiebiao/library-inventory/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
	"github.com/xiebiao/library-inventory/pkg/response"
)

// maxImageSize 上传图片大小上限
const maxImageSize = 8 << 20

// ScanHandler 扫码HTTP处理器
type ScanHandler struct {
	scanUseCase *appscan.ScanBarcodeUseCase
}

// NewScanHandler 创建扫码处理器
func NewScanHandler(scanUseCase *appscan.ScanBarcodeUseCase) *ScanHandler {
	return &ScanHandler{scanUseCase: scanUseCase}
}

// Scan 从采集设备扫一次码
// @Summary      扫码
// @Description  在超时时间内持续读取采集设备的画面,返回第一个识别到的条码;只识别,不查询目录
// @Tags         扫码
// @Produce      json
// @Param        timeout query string false "超时(Go duration,如5s)"
// @Success      200 {object} response.Response{data=dto.ScanResponse}
// @Failure      200 {object} response.Response "40008未识别到条码 / 50003设备错误"
// @Router       /api/v1/scan [get]
func (h *ScanHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	var timeout time.Duration
	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil || d < 0 {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "timeout格式错误: "+req.Timeout)
			return
		}
		timeout = d
	}

	result, err := h.scanUseCase.Execute(c.Request.Context(), appscan.ScanRequest{Timeout: timeout})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.ScanResponse{Barcode: result.Barcode})
}

// ScanImage 识别上传图片中的条码
// @Summary      识别图片
// @Tags         扫码
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "PNG或JPEG图片"
// @Success      200 {object} response.Response{data=dto.ScanResponse}
// @Failure      200 {object} response.Response "40008未识别到条码 / 40901图片无效"
// @Router       /api/v1/scan/image [post]
func (h *ScanHandler) ScanImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		bindError(c, err)
		return
	}
	if fileHeader.Size > maxImageSize {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "图片过大")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "读取上传图片失败"))
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "图片格式错误: "+err.Error())
		return
	}

	result, err := h.scanUseCase.DecodeImage(c.Request.Context(), img)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.ScanResponse{Barcode: result.Barcode})
}
