// Package texture は 64x64 RGBA のスキンテクスチャバッファを扱います。
package texture

import (
	"image"
	"image/color"
	"image/draw"
)

// Size はスキンテクスチャの一辺のピクセル数です。
const Size = 64

// Transparent は未使用領域の色です。
var Transparent = color.NRGBA{}

// Texture は常に 64x64 の RGBA ピクセルグリッドです。
// 未使用の領域は完全な透明（alpha=0）のまま保持されます。
type Texture struct {
	img *image.NRGBA
}

// New は完全に透明なテクスチャを返します。
func New() *Texture {
	return &Texture{img: image.NewNRGBA(image.Rect(0, 0, Size, Size))}
}

// FromImage は任意の image.Image を 64x64 のテクスチャに変換します。
// サイズが一致しない場合は ErrInvalidTexture を返します。
func FromImage(src image.Image) (*Texture, error) {
	b := src.Bounds()
	if b.Dx() != Size || b.Dy() != Size {
		return nil, invalidSize(b)
	}
	t := New()
	if n, ok := src.(*image.NRGBA); ok {
		// 非乗算 alpha をそのまま保持するため行単位でコピーする
		for y := 0; y < Size; y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(t.img.Pix[y*t.img.Stride:y*t.img.Stride+Size*4], n.Pix[off:off+Size*4])
		}
	} else {
		draw.Draw(t.img, t.img.Bounds(), src, b.Min, draw.Src)
	}
	t.clearHidden()
	return t, nil
}

// clearHidden は alpha 0 のピクセルに残った RGB を消し、透明をすべて Transparent に揃えます。
func (t *Texture) clearHidden() {
	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] == 0 {
			pix[i], pix[i+1], pix[i+2] = 0, 0, 0
		}
	}
}

// Bounds はテクスチャ全体の矩形を返します。
func (t *Texture) Bounds() image.Rectangle { return t.img.Bounds() }

// Image は内部のピクセルバッファを image.Image として返します。
func (t *Texture) Image() image.Image { return t.img }

// InBounds は座標がグリッド内かどうかを返します。
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// At は指定座標の色を返します。範囲外は透明です。
func (t *Texture) At(x, y int) color.NRGBA {
	if !InBounds(x, y) {
		return Transparent
	}
	return t.img.NRGBAAt(x, y)
}

// Set は指定座標に色を書き込みます。範囲外は無視されます。
func (t *Texture) Set(x, y int, c color.NRGBA) {
	if !InBounds(x, y) {
		return
	}
	t.img.SetNRGBA(x, y, c)
}

// Fill は矩形を単色で塗りつぶします。グリッド外の部分はクリップされます。
func (t *Texture) Fill(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(t.img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t.img.SetNRGBA(x, y, c)
		}
	}
}

// Clone はピクセルを複製した独立したテクスチャを返します。
func (t *Texture) Clone() *Texture {
	c := New()
	copy(c.img.Pix, t.img.Pix)
	return c
}

// Equal は全ピクセルが一致するかどうかを返します。
func (t *Texture) Equal(o *Texture) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.img.Pix) != len(o.img.Pix) {
		return false
	}
	for i := range t.img.Pix {
		if t.img.Pix[i] != o.img.Pix[i] {
			return false
		}
	}
	return true
}

// CountOpaque は不透明（alpha>0）なピクセル数を返します。
func (t *Texture) CountOpaque() int {
	n := 0
	for i := 3; i < len(t.img.Pix); i += 4 {
		if t.img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

// AlphaValues は使用されている alpha 値の集合を返します。
func (t *Texture) AlphaValues() map[uint8]int {
	seen := make(map[uint8]int)
	for i := 3; i < len(t.img.Pix); i += 4 {
		seen[t.img.Pix[i]]++
	}
	return seen
}
