package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// DefaultThumbnailQuality は JPEG サムネイルの既定の品質です。
const DefaultThumbnailQuality = 85

// CompressToJPEG は画像を背景色の上に合成して JPEG に圧縮します。
// JPEG は alpha を持たないため、透明な部分は bg の色になります。
func CompressToJPEG(img image.Image, bg color.Color, quality int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("image is nil")
	}
	b := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, b.Min, draw.Over)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("JPEGエンコード失敗: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail はスキンを scale 倍に拡大して JPEG サムネイルを作ります。
func Thumbnail(img image.Image, scale int, bg color.Color) ([]byte, error) {
	up, err := Upscale(img, scale)
	if err != nil {
		return nil, err
	}
	return CompressToJPEG(up, bg, DefaultThumbnailQuality)
}
