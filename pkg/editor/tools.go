package editor

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/shouni/gemini-skin-kit/pkg/utils"
)

// Tool はエディタの描画ツールです。
type Tool string

const (
	ToolPencil     Tool = "pencil"
	ToolEraser     Tool = "eraser"
	ToolFill       Tool = "fill"
	ToolEyedropper Tool = "eyedropper"
)

// Tools は利用可能なツールの一覧です。
var Tools = []Tool{ToolPencil, ToolEraser, ToolFill, ToolEyedropper}

// ParseTool はツール名を Tool に変換します。近い名前があれば候補を示します。
func ParseTool(s string) (Tool, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	names := make([]string, 0, len(Tools))
	for _, t := range Tools {
		if string(t) == v {
			return t, nil
		}
		names = append(names, string(t))
	}
	if hint, ok := utils.Suggest(v, names); ok {
		return "", fmt.Errorf("%w: unknown tool %q (did you mean %q?)", domain.ErrInvalidRequest, s, hint)
	}
	return "", fmt.Errorf("%w: unknown tool %q (want one of %s)", domain.ErrInvalidRequest, s, strings.Join(names, ", "))
}

// Paint は (x, y) を左上とする size×size のブロックを塗ります。
// グリッド外のピクセルは黙って読み飛ばし、実際に塗ったピクセル数を返します。
func Paint(t *texture.Texture, x, y, size int, c color.NRGBA) int {
	if size < 1 {
		size = 1
	}
	n := 0
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			if !texture.InBounds(x+dx, y+dy) {
				continue
			}
			t.Set(x+dx, y+dy, c)
			n++
		}
	}
	return n
}

// Erase は Paint と同じブロックを完全な透明に戻します。
func Erase(t *texture.Texture, x, y, size int) int {
	return Paint(t, x, y, size, texture.Transparent)
}

// Pick はスポイトです。透明なピクセルやグリッド外では ok=false を返します。
func Pick(t *texture.Texture, x, y int) (c color.NRGBA, ok bool) {
	if !texture.InBounds(x, y) {
		return color.NRGBA{}, false
	}
	p := t.At(x, y)
	if p.A == 0 {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255}, true
}

type point struct{ x, y int }

// FloodFill は (x, y) と同じ色で 4 近傍に連結した領域を c で塗り替えます。
// 比較は常に開始時点の色に対して行い、各ピクセルは高々 1 回だけ塗られます。
// 開始色と c が完全に一致する場合やグリッド外の場合は何もせず false を返します。
func FloodFill(t *texture.Texture, x, y int, c color.NRGBA) bool {
	if !texture.InBounds(x, y) {
		return false
	}
	target := t.At(x, y)
	if target == c {
		return false
	}

	var visited [texture.Size * texture.Size]bool
	stack := []point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !texture.InBounds(p.x, p.y) {
			continue
		}
		idx := p.y*texture.Size + p.x
		if visited[idx] {
			continue
		}
		visited[idx] = true
		if t.At(p.x, p.y) != target {
			continue
		}
		t.Set(p.x, p.y, c)
		stack = append(stack, point{p.x + 1, p.y}, point{p.x - 1, p.y}, point{p.x, p.y + 1}, point{p.x, p.y - 1})
	}
	return true
}

// CanvasToPixel は拡大表示キャンバス上のポインタ位置を論理ピクセルに変換します。
// scale はキャンバスの 1 ピクセルあたりの表示倍率です。
func CanvasToPixel(cx, cy float64, scale int) (x, y int, ok bool) {
	if scale < 1 || cx < 0 || cy < 0 {
		return 0, 0, false
	}
	x = int(cx) / scale
	y = int(cy) / scale
	if !texture.InBounds(x, y) {
		return 0, 0, false
	}
	return x, y, true
}
