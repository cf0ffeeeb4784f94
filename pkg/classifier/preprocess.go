package classifier

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const InputSize = 224

// MaxPixels bounds the decoded size of an upload. Headers claiming more are
// rejected before any pixel buffer is allocated.
const MaxPixels = 40_000_000

// Preprocess decodes img, resizes it to InputSize x InputSize and returns
// RGB values scaled to [0,1] in NHWC order.
func Preprocess(img []byte) ([]float32, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrBadImage, cfg.Width, cfg.Height, MaxPixels)
	}
	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := make([]float32, 0, InputSize*InputSize*3)
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			o := dst.PixOffset(x, y)
			out = append(out,
				float32(dst.Pix[o])/255,
				float32(dst.Pix[o+1])/255,
				float32(dst.Pix[o+2])/255,
			)
		}
	}
	return out, nil
}
