package scanner

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/xiebiao/library-inventory/internal/application/scan"
	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
	"github.com/xiebiao/library-inventory/pkg/logger"
)

// Scanner 扫码适配器实现
// 按poll_interval轮询帧来源并解码，直到识别成功、超时或ctx取消
type Scanner struct {
	source         FrameSource
	decoder        Decoder
	pollInterval   time.Duration
	defaultTimeout time.Duration
	maxTimeout     time.Duration
	log            *logger.Logger
}

var _ scan.Adapter = (*Scanner)(nil)

// Options 扫描参数
type Options struct {
	PollInterval   time.Duration
	DefaultTimeout time.Duration
	MaxTimeout     time.Duration
}

// New 创建扫描器
func New(source FrameSource, decoder Decoder, opts Options, log *logger.Logger) *Scanner {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 200 * time.Millisecond
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scanner{
		source:         source,
		decoder:        decoder,
		pollInterval:   opts.PollInterval,
		defaultTimeout: opts.DefaultTimeout,
		maxTimeout:     opts.MaxTimeout,
		log:            log,
	}
}

// NewFromConfig 使用文件帧来源和gozxing解码器创建扫描器
func NewFromConfig(cfg *config.Config, log *logger.Logger) *Scanner {
	return New(
		NewFileFrameSource(cfg.Scanner.FramePath),
		NewZXingDecoder(cfg.Scanner.TryHarder),
		Options{
			PollInterval:   cfg.Scanner.PollInterval,
			DefaultTimeout: cfg.Scanner.DefaultTimeout,
			MaxTimeout:     cfg.Scanner.MaxTimeout,
		},
		log,
	)
}

// ScanOnce 扫一次码
// 只接受本次扫码开始之后采集的帧：连续两次扫码不会返回上一次的条码，
// 采集进程停止后残留的旧帧也不会被识别。整个超时内都没有新帧时返回DeviceError
func (s *Scanner) ScanOnce(ctx context.Context, timeout time.Duration) (string, error) {
	timeout = s.effectiveTimeout(timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	sawFreshFrame := false

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		frame, err := s.source.NextFrame(ctx, started)
		switch {
		case err == nil:
			sawFreshFrame = true
			code, decodeErr := s.decoder.Decode(frame)
			if decodeErr == nil {
				return code, nil
			}
			if !errors.Is(decodeErr, errNoCode) {
				return "", apperrors.WrapWithCode(decodeErr, apperrors.ErrCodeDeviceError, "解码图像失败")
			}
		case errors.Is(err, errFrameNotReady):
			sawFreshFrame = true
			s.log.Debug(ctx, "帧未就绪，继续等待")
		case errors.Is(err, errFrameStale):
			s.log.Debug(ctx, "帧未更新，继续等待")
		case ctx.Err() != nil:
			return "", s.timedOut(ctx, sawFreshFrame)
		default:
			return "", apperrors.WrapWithCode(err, apperrors.ErrCodeDeviceError, "读取图像失败")
		}

		select {
		case <-ctx.Done():
			return "", s.timedOut(ctx, sawFreshFrame)
		case <-ticker.C:
		}
	}
}

// DecodeImage 识别单张图像
func (s *Scanner) DecodeImage(img image.Image) (string, error) {
	if img == nil {
		return "", scan.ErrNoneDetected
	}
	code, err := s.decoder.Decode(img)
	if err != nil {
		if errors.Is(err, errNoCode) {
			return "", scan.ErrNoneDetected
		}
		return "", apperrors.WrapWithCode(err, apperrors.ErrCodeDeviceError, "解码图像失败")
	}
	return code, nil
}

func (s *Scanner) effectiveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}
	if s.maxTimeout > 0 && timeout > s.maxTimeout {
		timeout = s.maxTimeout
	}
	return timeout
}

// timedOut 超时内一直没有新帧说明采集进程已停止，归为设备故障；
// 其余情况(有新帧但没识别出条码、调用方取消)归为未识别
func (s *Scanner) timedOut(ctx context.Context, sawFreshFrame bool) error {
	if !sawFreshFrame && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.WrapWithCode(errFrameStale, apperrors.ErrCodeDeviceError, "帧文件长时间未更新，采集进程可能已停止")
	}
	return noneDetected(ctx)
}

// noneDetected 超时和调用方取消都归为未识别
func noneDetected(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return scan.ErrNoneDetected.WithMessage("扫码已取消")
	}
	return scan.ErrNoneDetected
}
