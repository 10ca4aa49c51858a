package scan

import (
	"context"
	"image"
	"time"

	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
)

var (
	// ErrNoneDetected 超时前未识别到条码
	ErrNoneDetected = apperrors.New(apperrors.ErrCodeNoneDetected, "未识别到条码")

	// ErrDeviceError 图像采集设备不可用
	ErrDeviceError = apperrors.New(apperrors.ErrCodeDeviceError, "扫码设备错误")
)

// Adapter 扫码适配器
// 设计说明:
// 1. 只负责"图像 → 条码字符串",从不读写图书目录
// 2. ScanOnce在timeout或ctx取消时返回,不依赖任何界面循环
type Adapter interface {
	// ScanOnce 持续读取帧直到识别出条码
	// 返回ErrNoneDetected(超时/取消)或ErrDeviceError(设备故障)
	ScanOnce(ctx context.Context, timeout time.Duration) (string, error)

	// DecodeImage 识别一张已有图像(如上传的照片)
	DecodeImage(img image.Image) (string, error)
}
