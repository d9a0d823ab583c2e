package generator

import (
	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/shouni/gemini-skin-kit/pkg/uv"
)

var (
	eyeColor     = uv.MustHex("#2c3e50")
	glassesColor = uv.MustHex("#34495e")
)

// 胴体正面の質感スペックル。常に 8 点を置きます。
var torsoSpeckle = speckle{candidates: 8, probability: 1}

// paintKeywords は描画順を固定した手続き生成です。後の描画が前の描画を上書きします。
func (s *Synthesizer) paintKeywords(t *texture.Texture, pal domain.Palette, style domain.Style) {
	skin := uv.MustHex(pal.Skin)
	primary := uv.MustHex(pal.Primary)
	secondary := uv.MustHex(pal.Secondary)
	accent := uv.MustHex(pal.Accent)

	// 頭部 6 面
	uv.FillFaces(t, uv.Head, uv.Base, skin)

	// 顔: 目 → 眼鏡 → 口 → ひげ
	face := uv.MustRegion(uv.Head, uv.Front, uv.Base)
	fill(t, face.Sub(2, 3, 1, 1), eyeColor)
	fill(t, face.Sub(5, 3, 1, 1), eyeColor)
	if style.HasGlasses {
		fill(t, face.Sub(1, 3, 3, 2), glassesColor)
		fill(t, face.Sub(4, 3, 3, 2), glassesColor)
	}
	fill(t, face.Sub(2, 5, 4, 1), uv.Shade(skin, 0.8))
	if style.HasBeard {
		fill(t, face.Sub(1, 6, 6, 2), secondary)
	}

	// 髪（オーバーレイ 6 面）
	for _, f := range uv.Faces {
		r := uv.MustRegion(uv.Head, f, uv.Overlay)
		fill(t, hairBand(f, r, 3), uv.Shade(secondary, uv.FaceShade(f)))
	}
	if style.HasHat {
		fill(t, uv.MustRegion(uv.Head, uv.Top, uv.Overlay), uv.Shade(accent, uv.ShadeTop))
		fillSides(t, uv.Head, uv.Overlay, accent, func(r uv.Rect) uv.Rect { return r.Row(2) })
	}

	// 胴体とスタイル別のアクセント
	uv.FillFaces(t, uv.Body, uv.Base, primary)
	torso := uv.MustRegion(uv.Body, uv.Front, uv.Base)
	switch style.Clothing {
	case domain.ClothingStreet:
		// パーカーの紐
		fill(t, torso.Sub(1, 1, 1, 3), accent)
		fill(t, torso.Sub(6, 1, 1, 3), accent)
	case domain.ClothingFormal:
		// ネクタイ
		fill(t, torso.Sub(3, 2, 2, 6), accent)
	}

	// 腕は primary、脚は secondary
	shoe := uv.Shade(secondary, 0.7)
	for _, arm := range []uv.Part{uv.RightArm, uv.LeftArm} {
		uv.FillFaces(t, arm, uv.Base, primary)
		fillSides(t, arm, uv.Base, skin, func(r uv.Rect) uv.Rect { return r.Row(11) })
		fill(t, uv.MustRegion(arm, uv.Bottom, uv.Base), uv.Shade(skin, uv.ShadeBottom))
	}
	for _, leg := range []uv.Part{uv.RightLeg, uv.LeftLeg} {
		uv.FillFaces(t, leg, uv.Base, secondary)
		fillSides(t, leg, uv.Base, shoe, func(r uv.Rect) uv.Rect { return r.Row(11) })
		fill(t, uv.MustRegion(leg, uv.Bottom, uv.Base), uv.Shade(shoe, uv.ShadeBottom))
	}

	// 固定の装飾: 襟、ベルト、靴の上端
	fill(t, torso.Row(0), accent)
	fill(t, torso.Row(7), accent)
	fill(t, uv.MustRegion(uv.RightLeg, uv.Front, uv.Base).Row(10), accent)
	fill(t, uv.MustRegion(uv.LeftLeg, uv.Front, uv.Base).Row(10), accent)

	s.scatter(t, torso.Sub(0, 1, 8, 10), torsoSpeckle, uv.Shade(primary, 0.95))
}
