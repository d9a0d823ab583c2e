package generator

import (
	"image/color"
	"time"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/shouni/gemini-skin-kit/pkg/uv"
)

// Synthesizer は UV テンプレートを使ってスキンテクスチャを描画します。
// 1 つの Synthesizer は 1 つの乱数源を持つため、並行して使う場合はリクエストごとに作成します。
type Synthesizer struct {
	rng RandomSource
}

// NewSynthesizer は乱数源を注入して Synthesizer を作成します。
// rng が nil の場合は現在時刻をシードにした乱数源を使います。
func NewSynthesizer(rng RandomSource) *Synthesizer {
	if rng == nil {
		rng = NewRandomSource(time.Now().UnixNano())
	}
	return &Synthesizer{rng: rng}
}

// FromKeywords はプロンプトのキーワードから手続き的にスキンを生成します。
func (s *Synthesizer) FromKeywords(prompt string) *texture.Texture {
	t := texture.New()
	s.paintKeywords(t, ExtractPalette(prompt), ExtractStyle(prompt))
	return t
}

// FromScheme はカラースキームを検証してからスキンを生成します。
func (s *Synthesizer) FromScheme(scheme *domain.ColorScheme) (*texture.Texture, error) {
	c, err := resolveScheme(scheme)
	if err != nil {
		return nil, err
	}
	t := texture.New()
	s.paintScheme(t, c)
	return t, nil
}

// PaintScheme は既存のバッファにカラースキームを描画します。
// 色の検証はピクセルに触れる前に行われ、失敗時はバッファを一切変更しません。
func (s *Synthesizer) PaintScheme(t *texture.Texture, scheme *domain.ColorScheme) error {
	c, err := resolveScheme(scheme)
	if err != nil {
		return err
	}
	s.paintScheme(t, c)
	return nil
}

// speckle はランダムな単ピクセル装飾の密度を表します。
// candidates 個の候補座標それぞれを probability の確率で採用します。
type speckle struct {
	candidates  int
	probability float64
}

// scatter は area 内に speckle の密度で色を散らし、実際に塗ったピクセル数を返します。
// 採否に関わらず候補ごとに同じ回数だけ乱数を消費します。
func (s *Synthesizer) scatter(t *texture.Texture, area uv.Rect, sp speckle, colors ...color.NRGBA) int {
	if area.W <= 0 || area.H <= 0 || len(colors) == 0 {
		return 0
	}
	n := 0
	for i := 0; i < sp.candidates; i++ {
		x := area.X + s.rng.Intn(area.W)
		y := area.Y + s.rng.Intn(area.H)
		if s.rng.Float64() >= sp.probability {
			continue
		}
		t.Set(x, y, colors[i%len(colors)])
		n++
	}
	return n
}

func fill(t *texture.Texture, r uv.Rect, c color.NRGBA) {
	uv.FillRegion(t, r, c)
}

// fillSides は 4 側面それぞれの部分矩形を面ごとの陰影付きで塗ります。
func fillSides(t *texture.Texture, part uv.Part, layer uv.Layer, c color.NRGBA, sub func(r uv.Rect) uv.Rect) {
	for _, f := range uv.SideFaces {
		fill(t, sub(uv.MustRegion(part, f, layer)), uv.Shade(c, uv.FaceShade(f)))
	}
}

// hairBand は頭部オーバーレイの各面で髪を描いてよい帯を返します。
// 顔が隠れないよう正面は上 2 行に制限します。
func hairBand(f uv.Face, r uv.Rect, sideRows int) uv.Rect {
	switch f {
	case uv.Front:
		return r.Rows(0, 2)
	case uv.Back:
		return r.Rows(0, 6)
	case uv.Right, uv.Left:
		return r.Rows(0, sideRows)
	}
	return r
}
