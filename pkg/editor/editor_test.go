package editor

import (
	"image"
	"image/color"
	"testing"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func TestParseTool(t *testing.T) {
	for _, tool := range Tools {
		got, err := ParseTool(" " + string(tool) + " ")
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}

	_, err := ParseTool("pensil")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "pencil"`)

	_, err = ParseTool("hammer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want one of")
}

func TestPaint(t *testing.T) {
	t.Run("N×N ブロックを塗る", func(t *testing.T) {
		tex := texture.New()
		assert.Equal(t, 9, Paint(tex, 10, 10, 3, red))
		assert.Equal(t, 9, tex.CountOpaque())
		assert.Equal(t, red, tex.At(12, 12))
		assert.Equal(t, texture.Transparent, tex.At(13, 13))
	})

	t.Run("グリッド端では切り取られる", func(t *testing.T) {
		tex := texture.New()
		assert.Equal(t, 4, Paint(tex, 62, 62, 4, red))
		assert.Equal(t, 1, Paint(tex, -1, -1, 2, red))
		assert.Zero(t, Paint(tex, 64, 0, 3, red))
		assert.Equal(t, 5, tex.CountOpaque())
	})

	t.Run("消しゴムは alpha を 0 にする", func(t *testing.T) {
		tex := texture.New()
		tex.Fill(tex.Bounds(), red)
		Erase(tex, 0, 0, 2)
		assert.Equal(t, texture.Size*texture.Size-4, tex.CountOpaque())
		assert.Equal(t, uint8(0), tex.At(1, 1).A)
	})
}

func TestPick(t *testing.T) {
	tex := texture.New()
	tex.Set(3, 3, blue)

	c, ok := Pick(tex, 3, 3)
	assert.True(t, ok)
	assert.Equal(t, blue, c)

	_, ok = Pick(tex, 4, 4)
	assert.False(t, ok, "透明なピクセルは無視される")
	_, ok = Pick(tex, -1, 0)
	assert.False(t, ok)
}

func TestFloodFill(t *testing.T) {
	t.Run("連結成分だけを塗り替える", func(t *testing.T) {
		tex := texture.New()
		tex.Fill(image.Rect(0, 0, 10, 10), red)
		// 壁で分断された 2 つ目の赤領域
		tex.Fill(image.Rect(0, 5, 10, 6), blue)
		tex.Fill(image.Rect(20, 20, 22, 22), red)

		require.True(t, FloodFill(tex, 2, 2, green))

		for y := 0; y < texture.Size; y++ {
			for x := 0; x < texture.Size; x++ {
				got := tex.At(x, y)
				switch {
				case x < 10 && y < 5:
					assert.Equal(t, green, got, "(%d,%d)", x, y)
				case x < 10 && y == 5:
					assert.Equal(t, blue, got)
				case x < 10 && y < 10:
					assert.Equal(t, red, got)
				case x >= 20 && x < 22 && y >= 20 && y < 22:
					assert.Equal(t, red, got)
				default:
					assert.Equal(t, texture.Transparent, got)
				}
			}
		}
	})

	t.Run("対角は連結しない", func(t *testing.T) {
		tex := texture.New()
		tex.Set(0, 0, red)
		tex.Set(1, 1, red)
		FloodFill(tex, 0, 0, green)
		assert.Equal(t, green, tex.At(0, 0))
		assert.Equal(t, red, tex.At(1, 1))
	})

	t.Run("同じ色では何もしない", func(t *testing.T) {
		tex := texture.New()
		tex.Fill(image.Rect(0, 0, 30, 30), red)
		before := tex.Clone()
		assert.False(t, FloodFill(tex, 5, 5, red))
		assert.True(t, before.Equal(tex))
	})

	t.Run("透明な領域全体も塗れる", func(t *testing.T) {
		tex := texture.New()
		require.True(t, FloodFill(tex, 63, 63, blue))
		assert.Equal(t, texture.Size*texture.Size, tex.CountOpaque())
	})

	t.Run("取り込んだ画像の透明部分は隠れた色に関係なく一続き", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, texture.Size, texture.Size))
		for y := 0; y < texture.Size; y++ {
			// 左半分と右半分で alpha 0 のまま RGB だけが違う
			for x := texture.Size / 2; x < texture.Size; x++ {
				src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255})
			}
		}
		tex, err := texture.FromImage(src)
		require.NoError(t, err)

		require.True(t, FloodFill(tex, 0, 0, blue))
		assert.Equal(t, texture.Size*texture.Size, tex.CountOpaque())
		assert.Equal(t, blue, tex.At(texture.Size-1, texture.Size-1))
	})

	t.Run("グリッド外は何もしない", func(t *testing.T) {
		tex := texture.New()
		assert.False(t, FloodFill(tex, 64, 0, red))
		assert.False(t, FloodFill(tex, 0, -1, red))
		assert.Zero(t, tex.CountOpaque())
	})
}

func TestCanvasToPixel(t *testing.T) {
	tests := []struct {
		cx, cy float64
		scale  int
		x, y   int
		ok     bool
	}{
		{0, 0, 8, 0, 0, true},
		{7.9, 8, 8, 0, 1, true},
		{511.5, 511.5, 8, 63, 63, true},
		{512, 0, 8, 0, 0, false},
		{-0.5, 3, 8, 0, 0, false},
		{10, 10, 0, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := CanvasToPixel(tt.cx, tt.cy, tt.scale)
		assert.Equal(t, tt.ok, ok, "%v", tt)
		if tt.ok {
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		}
	}
}

func TestEditor(t *testing.T) {
	t.Run("編集ごとに全体の複製を通知する", func(t *testing.T) {
		var emitted []*texture.Texture
		e := New(nil, WithOnChange(func(tex *texture.Texture) { emitted = append(emitted, tex) }))
		e.SetColor(red)

		require.NoError(t, e.SetBrushSize(2))
		assert.True(t, e.Apply(0, 0))
		require.Len(t, emitted, 1)
		assert.Equal(t, 4, emitted[0].CountOpaque())

		// 同じ場所に同じ色は変化なし
		assert.False(t, e.Apply(0, 0))
		assert.Len(t, emitted, 1)

		// 通知されたテクスチャはエディタの内部状態と共有されない
		emitted[0].Set(10, 10, blue)
		assert.Equal(t, texture.Transparent, e.Texture().At(10, 10))
	})

	t.Run("スポイトはアクティブカラーだけを変える", func(t *testing.T) {
		tex := texture.New()
		tex.Set(5, 5, green)
		calls := 0
		e := New(tex, WithOnChange(func(*texture.Texture) { calls++ }))
		require.NoError(t, e.SetTool(ToolEyedropper))

		assert.False(t, e.Apply(5, 5))
		assert.Equal(t, green, e.Color())
		assert.False(t, e.Apply(6, 6))
		assert.Equal(t, green, e.Color(), "透明なピクセルでは変わらない")
		assert.Zero(t, calls)
	})

	t.Run("塗りつぶしと消しゴム", func(t *testing.T) {
		e := New(nil)
		require.NoError(t, e.SetTool(ToolFill))
		e.SetColor(blue)
		assert.True(t, e.Apply(0, 0))
		assert.Equal(t, texture.Size*texture.Size, e.Texture().CountOpaque())

		require.NoError(t, e.SetTool(ToolEraser))
		require.NoError(t, e.SetBrushSize(MaxBrushSize))
		assert.True(t, e.Apply(60, 60))
		assert.Equal(t, texture.Size*texture.Size-16, e.Texture().CountOpaque())
	})

	t.Run("不正な設定", func(t *testing.T) {
		e := New(nil)
		assert.Error(t, e.SetTool("brush"))
		assert.Error(t, e.SetBrushSize(0))
		assert.Error(t, e.SetBrushSize(MaxBrushSize+1))
		assert.ErrorIs(t, e.SetHexColor("#12"), domain.ErrMalformedColor)
		assert.Equal(t, ToolPencil, e.Tool())
		assert.Equal(t, MinBrushSize, e.BrushSize())
	})

	t.Run("キャンバス座標で適用する", func(t *testing.T) {
		e := New(nil)
		e.SetColor(red)
		assert.True(t, e.ApplyCanvas(100, 20, 10))
		assert.Equal(t, red, e.Texture().At(10, 2))
		assert.False(t, e.ApplyCanvas(1000, 20, 10))
	})
}

func TestEditor_ApplyOps(t *testing.T) {
	e := New(nil)
	n, err := e.ApplyOps([]Op{
		{Tool: "pencil", X: 1, Y: 1, Color: "#ff0000", Size: 2},
		{Tool: "eyedropper", X: 1, Y: 1},
		{Tool: "pencil", X: 10, Y: 10},
		{Tool: "fill", X: 40, Y: 40, Color: "00ff00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	tex := e.Texture()
	assert.Equal(t, red, tex.At(11, 11))
	assert.Equal(t, green, tex.At(40, 40))
	assert.Equal(t, red, tex.At(2, 2))

	_, err = e.ApplyOps([]Op{{Tool: "pencil", X: 0, Y: 0}, {Tool: "spray"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op 1")

	_, err = e.ApplyOps([]Op{{Tool: "pencil", Color: "nope"}})
	assert.ErrorIs(t, err, domain.ErrMalformedColor)
}
