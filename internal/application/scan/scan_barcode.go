package scan

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/xiebiao/library-inventory/internal/domain/book"
	"github.com/xiebiao/library-inventory/pkg/logger"
	"github.com/xiebiao/library-inventory/pkg/metrics"
	"github.com/xiebiao/library-inventory/pkg/tracing"
)

const tracerName = "library-inventory/scan"

// ScanBarcodeUseCase 扫码用例
type ScanBarcodeUseCase struct {
	adapter Adapter
	log     *logger.Logger
}

// NewScanBarcodeUseCase 创建扫码用例
func NewScanBarcodeUseCase(adapter Adapter, log *logger.Logger) *ScanBarcodeUseCase {
	return &ScanBarcodeUseCase{adapter: adapter, log: log}
}

// ScanRequest 扫码请求DTO
type ScanRequest struct {
	Timeout time.Duration // <=0使用配置的默认超时
}

// ScanResponse 扫码响应DTO
type ScanResponse struct {
	Barcode string `json:"barcode"`
}

// Execute 从采集设备扫一次码
func (uc *ScanBarcodeUseCase) Execute(ctx context.Context, req ScanRequest) (resp *ScanResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ScanBarcode")
	defer func() { tracing.EndSpan(span, err) }()

	barcode, err := uc.adapter.ScanOnce(ctx, req.Timeout)
	return uc.finish(ctx, barcode, err)
}

// DecodeImage 识别上传的图片
func (uc *ScanBarcodeUseCase) DecodeImage(ctx context.Context, img image.Image) (resp *ScanResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DecodeImage")
	defer func() { tracing.EndSpan(span, err) }()

	barcode, err := uc.adapter.DecodeImage(img)
	return uc.finish(ctx, barcode, err)
}

func (uc *ScanBarcodeUseCase) finish(ctx context.Context, barcode string, err error) (*ScanResponse, error) {
	switch {
	case err == nil:
		barcode = book.NormalizeBarcode(barcode)
		metrics.IncCounterVec(metrics.ScanAttemptsTotal, map[string]string{"result": "detected"})
		uc.log.Debug(uc.log.WithField(ctx, "barcode", barcode), "识别到条码")
		return &ScanResponse{Barcode: barcode}, nil
	case errors.Is(err, ErrNoneDetected):
		metrics.IncCounterVec(metrics.ScanAttemptsTotal, map[string]string{"result": "none_detected"})
	case errors.Is(err, ErrDeviceError):
		metrics.IncCounterVec(metrics.ScanAttemptsTotal, map[string]string{"result": "device_error"})
		uc.log.Warn(ctx, "扫码设备错误", err)
	default:
		metrics.IncCounterVec(metrics.ScanAttemptsTotal, map[string]string{"result": "error"})
	}
	return nil, err
}
