package scanner

import (
	"errors"
	"image"
	"sync"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// errNoCode 图像中没有可识别的条码
var errNoCode = errors.New("no barcode in image")

// Decoder 条码解码器
type Decoder interface {
	// Decode 返回识别到的条码文本，没有条码时返回errNoCode
	Decode(img image.Image) (string, error)
}

// ZXingDecoder 基于gozxing的多格式解码器
// 图书条码多为EAN-13(ISBN)，馆藏/书架标签常用Code128、Code39或二维码
//
// gozxing的Reader内部有复用的缓冲区，不能并发调用，用互斥锁串行化
type ZXingDecoder struct {
	mu      sync.Mutex
	readers []gozxing.Reader
	hints   map[gozxing.DecodeHintType]interface{}
}

// NewZXingDecoder 创建解码器
// tryHarder开启后识别率更高，单帧耗时更长
func NewZXingDecoder(tryHarder bool) *ZXingDecoder {
	hints := map[gozxing.DecodeHintType]interface{}{}
	if tryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	return &ZXingDecoder{
		readers: []gozxing.Reader{
			oned.NewEAN13Reader(),
			oned.NewEAN8Reader(),
			oned.NewUPCAReader(),
			oned.NewCode128Reader(),
			oned.NewCode39Reader(),
			qrcode.NewQRCodeReader(),
		},
		hints: hints,
	}
}

// Decode 依次尝试各格式，返回第一个成功的结果
func (d *ZXingDecoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", errNoCode
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, reader := range d.readers {
		result, err := reader.Decode(bmp, d.hints)
		reader.Reset()
		if err != nil {
			continue
		}
		if text := result.GetText(); text != "" {
			return text, nil
		}
	}
	return "", errNoCode
}
