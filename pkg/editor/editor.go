package editor

import (
	"fmt"
	"image/color"

	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/shouni/gemini-skin-kit/pkg/uv"
)

const (
	// MinBrushSize と MaxBrushSize はブラシサイズの範囲です。
	MinBrushSize = 1
	MaxBrushSize = 8
)

// DefaultColor は新規エディタのアクティブカラーです。
var DefaultColor = uv.MustHex("#000000")

// Editor は 1 枚のテクスチャを編集します。書き手は常に 1 つである前提で、同期は行いません。
// 編集でピクセルが変わるたびに、テクスチャ全体の複製を onChange へ渡します。
type Editor struct {
	tex      *texture.Texture
	tool     Tool
	brush    int
	color    color.NRGBA
	onChange func(*texture.Texture)
}

// Option は Editor の設定を変更します。
type Option func(*Editor)

// WithOnChange は編集後に呼ばれるコールバックを設定します。
func WithOnChange(fn func(*texture.Texture)) Option {
	return func(e *Editor) { e.onChange = fn }
}

// New は tex を直接編集する Editor を作成します。tex が nil の場合は空のテクスチャを使います。
func New(tex *texture.Texture, opts ...Option) *Editor {
	if tex == nil {
		tex = texture.New()
	}
	e := &Editor{
		tex:   tex,
		tool:  ToolPencil,
		brush: MinBrushSize,
		color: DefaultColor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Tool() Tool         { return e.tool }
func (e *Editor) BrushSize() int     { return e.brush }
func (e *Editor) Color() color.NRGBA { return e.color }

// Texture は編集中のテクスチャの複製を返します。
func (e *Editor) Texture() *texture.Texture { return e.tex.Clone() }

// SetTool はツールを切り替えます。
func (e *Editor) SetTool(t Tool) error {
	if _, err := ParseTool(string(t)); err != nil {
		return err
	}
	e.tool = t
	return nil
}

// SetBrushSize はブラシサイズを設定します。
func (e *Editor) SetBrushSize(n int) error {
	if n < MinBrushSize || n > MaxBrushSize {
		return fmt.Errorf("brush size %d out of range [%d, %d]", n, MinBrushSize, MaxBrushSize)
	}
	e.brush = n
	return nil
}

// SetColor はアクティブカラーを設定します。常に不透明として扱います。
func (e *Editor) SetColor(c color.NRGBA) {
	c.A = 255
	e.color = c
}

// SetHexColor は 16 進表記でアクティブカラーを設定します。
func (e *Editor) SetHexColor(s string) error {
	c, err := uv.ParseHex(s)
	if err != nil {
		return err
	}
	e.SetColor(c)
	return nil
}

// Apply は現在のツールを論理ピクセル (x, y) に適用し、ピクセルが変わったかどうかを返します。
// スポイトはテクスチャを変更せず、アクティブカラーのみを更新します。
func (e *Editor) Apply(x, y int) bool {
	var changed bool
	switch e.tool {
	case ToolPencil:
		changed = e.paint(x, y, e.color)
	case ToolEraser:
		changed = e.paint(x, y, texture.Transparent)
	case ToolFill:
		changed = FloodFill(e.tex, x, y, e.color)
	case ToolEyedropper:
		if c, ok := Pick(e.tex, x, y); ok {
			e.color = c
		}
		return false
	}
	if changed {
		e.emit()
	}
	return changed
}

// ApplyCanvas はキャンバス座標で Apply を呼びます。キャンバス外は無視されます。
func (e *Editor) ApplyCanvas(cx, cy float64, scale int) bool {
	x, y, ok := CanvasToPixel(cx, cy, scale)
	if !ok {
		return false
	}
	return e.Apply(x, y)
}

func (e *Editor) paint(x, y int, c color.NRGBA) bool {
	before := e.tex.Clone()
	if Paint(e.tex, x, y, e.brush, c) == 0 {
		return false
	}
	return !before.Equal(e.tex)
}

func (e *Editor) emit() {
	if e.onChange != nil {
		e.onChange(e.tex.Clone())
	}
}
