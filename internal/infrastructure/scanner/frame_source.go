package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"time"
)

var (
	// errFrameNotReady 暂时没有可用帧(采集进程尚未写完或正在替换文件)
	errFrameNotReady = errors.New("frame not ready")

	// errFrameStale 帧早于本次扫码开始时间(采集进程停止，或还是上一次扫到的画面)
	errFrameStale = errors.New("frame is stale")
)

// FrameSource 图像帧来源
type FrameSource interface {
	// NextFrame 返回since之后采集的最新一帧
	// 暂时无帧返回errFrameNotReady，帧过旧返回errFrameStale(扫描器都会继续轮询)，
	// 其他错误视为设备故障
	NextFrame(ctx context.Context, since time.Time) (image.Image, error)
}

// FileFrameSource 从文件读取外部采集进程写入的最新帧
// 采集进程(如摄像头快照守护进程)周期性覆盖同一路径的PNG/JPEG文件
type FileFrameSource struct {
	path string
}

// NewFileFrameSource 创建文件帧来源
func NewFileFrameSource(path string) *FileFrameSource {
	return &FileFrameSource{path: path}
}

// NextFrame 读取并解码当前帧
// 文件修改时间早于since时不读取内容，返回errFrameStale
func (s *FileFrameSource) NextFrame(ctx context.Context, since time.Time) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// 采集进程未启动或目录不存在，属于设备故障
			return nil, fmt.Errorf("帧文件不存在: %w", err)
		}
		return nil, fmt.Errorf("打开帧文件失败: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("读取帧文件信息失败: %w", err)
	}
	if info.ModTime().Before(since) {
		return nil, errFrameStale
	}

	img, _, err := image.Decode(f)
	if err != nil {
		// 文件正在被覆盖时可能读到不完整的图像
		return nil, errFrameNotReady
	}
	return img, nil
}
