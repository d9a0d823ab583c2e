package uv

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
)

// 面ごとの陰影係数。上から光が当たっているように見せます。
const (
	ShadeFront  = 1.0
	ShadeTop    = 0.95
	ShadeSide   = 0.9
	ShadeBack   = 0.85
	ShadeBottom = 0.85
)

// FaceShade は面に対応する陰影係数を返します。
func FaceShade(f Face) float64 {
	switch f {
	case Top:
		return ShadeTop
	case Right, Left:
		return ShadeSide
	case Back:
		return ShadeBack
	case Bottom:
		return ShadeBottom
	}
	return ShadeFront
}

// ParseHex は "#rrggbb"、"rrggbb"、"#rgb" 形式の色を不透明な色に変換します。
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, &domain.MalformedColorError{Value: s}
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, &domain.MalformedColorError{Value: s}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// MustHex は定数カラー用の ParseHex です。
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex は色を "#rrggbb" 形式で返します。
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Shade は各 RGB チャンネルに係数を掛けて暗くした色を返します（切り捨て）。
func Shade(c color.NRGBA, factor float64) color.NRGBA {
	return scale(c, factor)
}

// Highlight は係数 (>1) を掛けて明るくした色を返します。各チャンネルは 255 で頭打ちです。
func Highlight(c color.NRGBA, factor float64) color.NRGBA {
	return scale(c, factor)
}

func scale(c color.NRGBA, factor float64) color.NRGBA {
	ch := func(v uint8) uint8 {
		f := math.Floor(float64(v) * factor)
		if f > 255 {
			return 255
		}
		if f < 0 {
			return 0
		}
		return uint8(f)
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// FillRegion は矩形を単色で塗りつぶします。
func FillRegion(t *texture.Texture, r Rect, c color.NRGBA) {
	t.Fill(r.Image(), c)
}

// FillFaces は部位の指定レイヤーの全6面を、面ごとの陰影付きで塗りつぶします。
func FillFaces(t *texture.Texture, part Part, layer Layer, c color.NRGBA) {
	for _, f := range Faces {
		FillRegion(t, MustRegion(part, f, layer), Shade(c, FaceShade(f)))
	}
}
