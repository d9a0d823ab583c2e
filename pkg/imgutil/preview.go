package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	// DefaultScale はエディタのキャンバスで使う表示倍率です。
	DefaultScale = 8
	// MaxScale は拡大表示の上限倍率です。
	MaxScale = 32
)

// Upscale はピクセルアートがぼやけないよう最近傍補間で scale 倍に拡大します。
// alpha はそのまま保持されます。
func Upscale(img image.Image, scale int) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("image is nil")
	}
	if scale < 1 || scale > MaxScale {
		return nil, fmt.Errorf("scale %d out of range [1, %d]", scale, MaxScale)
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

// PreviewPNG は拡大した画像を PNG にエンコードします。
func PreviewPNG(img image.Image, scale int) ([]byte, error) {
	up, err := Upscale(img, scale)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, up); err != nil {
		return nil, fmt.Errorf("PNGエンコード失敗: %w", err)
	}
	return buf.Bytes(), nil
}
