package generator

import (
	"image/color"

	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/shouni/gemini-skin-kit/pkg/uv"
)

// 髪のスペックル密度。面ごとに独立した乱数パスで描きます。
var hairSpeckles = map[uv.Face]speckle{
	uv.Top:   {candidates: 12, probability: 0.5},
	uv.Front: {candidates: 3, probability: 0.3},
	uv.Right: {candidates: 6, probability: 0.4},
	uv.Left:  {candidates: 6, probability: 0.4},
	uv.Back:  {candidates: 10, probability: 0.5},
}

// 胴体の細部スペックル（正面・背面）
var detailSpeckle = speckle{candidates: 8, probability: 0.4}

const (
	schemeHairSideRows  = 3
	maxHatRows          = 3
	maxHeadAccessories  = 3
	hairHighlightFactor = 1.15
	hairShadowFactor    = 0.8
)

func or(c *color.NRGBA, fallback color.NRGBA) color.NRGBA {
	if c == nil {
		return fallback
	}
	return *c
}

// paintScheme は検証済みのスキームを描画します。
// 正面・右側に描いた要素は背面・左側にも対応する処理を行い、どの角度からも破綻しないようにします。
func (s *Synthesizer) paintScheme(t *texture.Texture, c *schemeColors) {
	s.paintHead(t, c)
	s.paintHair(t, c)
	s.paintTorso(t, c)
	paintArms(t, c)
	paintLegs(t, c)
}

func (s *Synthesizer) paintHead(t *texture.Texture, c *schemeColors) {
	uv.FillFaces(t, uv.Head, uv.Base, c.skin)

	front := uv.MustRegion(uv.Head, uv.Front, uv.Base)
	right := uv.MustRegion(uv.Head, uv.Right, uv.Base)
	left := uv.MustRegion(uv.Head, uv.Left, uv.Base)
	back := uv.MustRegion(uv.Head, uv.Back, uv.Base)

	// 地肌側の髪: 頭頂・後頭部・もみあげ・生え際
	fill(t, uv.MustRegion(uv.Head, uv.Top, uv.Base), uv.Shade(c.hair, uv.ShadeTop))
	fill(t, back.Rows(0, 7), uv.Shade(c.hair, uv.ShadeBack))
	fill(t, right.Rows(0, 3), uv.Shade(c.hair, uv.ShadeSide))
	fill(t, left.Rows(0, 3), uv.Shade(c.hair, uv.ShadeSide))
	fill(t, front.Row(0), c.hair)

	// 顔のパーツ
	if c.eyebrows != nil {
		fill(t, front.Sub(1, 2, 2, 1), *c.eyebrows)
		fill(t, front.Sub(5, 2, 2, 1), *c.eyebrows)
	}
	fill(t, front.Sub(1, 3, 2, 1), c.eyes)
	fill(t, front.Sub(5, 3, 2, 1), c.eyes)
	if c.eyeDetail != nil {
		fill(t, front.Sub(2, 3, 1, 1), *c.eyeDetail)
		fill(t, front.Sub(5, 3, 1, 1), *c.eyeDetail)
	}
	if c.nose != nil {
		fill(t, front.Sub(3, 4, 2, 1), *c.nose)
	}
	if c.blush != nil {
		fill(t, front.Sub(1, 4, 1, 1), *c.blush)
		fill(t, front.Sub(6, 4, 1, 1), *c.blush)
	}
	if c.mouth != nil {
		fill(t, front.Sub(2, 5, 4, 1), *c.mouth)
	}

	// アクセサリー: 眼鏡は目の後に描くため目を覆う
	if c.glasses != nil {
		fill(t, front.Sub(1, 3, 6, 1), *c.glasses)
		lens := uv.Highlight(*c.glasses, 1.4)
		fill(t, front.Sub(2, 3, 1, 1), lens)
		fill(t, front.Sub(5, 3, 1, 1), lens)
		fill(t, right.Sub(4, 3, 4, 1), uv.Shade(*c.glasses, uv.ShadeSide))
		fill(t, left.Sub(0, 3, 4, 1), uv.Shade(*c.glasses, uv.ShadeSide))
	}
	if c.beard != nil {
		fill(t, front.Sub(1, 6, 6, 2), *c.beard)
		fill(t, right.Sub(6, 4, 2, 4), uv.Shade(*c.beard, uv.ShadeSide))
		fill(t, left.Sub(0, 4, 2, 4), uv.Shade(*c.beard, uv.ShadeSide))
	}
	if c.earrings != nil {
		fill(t, right.Sub(3, 6, 1, 1), uv.Shade(*c.earrings, uv.ShadeSide))
		fill(t, left.Sub(4, 6, 1, 1), uv.Shade(*c.earrings, uv.ShadeSide))
	}
}

func (s *Synthesizer) paintHair(t *texture.Texture, c *schemeColors) {
	highlight := or(c.hairHighlight, uv.Highlight(c.hair, hairHighlightFactor))
	shadow := or(c.hairShadow, uv.Shade(c.hair, hairShadowFactor))

	for _, f := range uv.Faces {
		band := hairBand(f, uv.MustRegion(uv.Head, f, uv.Overlay), schemeHairSideRows)
		fill(t, band, uv.Shade(c.hair, uv.FaceShade(f)))
		if sp, ok := hairSpeckles[f]; ok {
			s.scatter(t, band, sp, uv.Shade(highlight, uv.FaceShade(f)), uv.Shade(shadow, uv.FaceShade(f)))
		}
	}

	// 髪飾りは左右対称に置く
	right := uv.MustRegion(uv.Head, uv.Right, uv.Overlay)
	left := uv.MustRegion(uv.Head, uv.Left, uv.Overlay)
	for i, acc := range c.headAccessories {
		if i >= maxHeadAccessories {
			break
		}
		fill(t, right.Sub(1+2*i, 1, 1, 2), uv.Shade(acc, uv.ShadeSide))
		fill(t, left.Sub(6-2*i, 1, 1, 2), uv.Shade(acc, uv.ShadeSide))
	}

	// 帽子も髪の帯の中に収め、帯の最下行をつばにする
	if c.hat != nil {
		fill(t, uv.MustRegion(uv.Head, uv.Top, uv.Overlay), uv.Shade(*c.hat, uv.ShadeTop))
		for _, f := range uv.SideFaces {
			band := hairBand(f, uv.MustRegion(uv.Head, f, uv.Overlay), schemeHairSideRows)
			rows := min(band.H, maxHatRows)
			shade := uv.FaceShade(f)
			fill(t, band.Rows(0, rows-1), uv.Shade(*c.hat, shade))
			fill(t, band.Row(rows-1), uv.Shade(*c.hat, shade*0.8))
		}
	}
}

func (s *Synthesizer) paintTorso(t *texture.Texture, c *schemeColors) {
	uv.FillFaces(t, uv.Body, uv.Base, c.bodyPrimary)
	front := uv.MustRegion(uv.Body, uv.Front, uv.Base)
	back := uv.MustRegion(uv.Body, uv.Back, uv.Base)
	backShade := func(col color.NRGBA) color.NRGBA { return uv.Shade(col, uv.ShadeBack) }

	if c.bodySecondary != nil {
		fillSides(t, uv.Body, uv.Base, *c.bodySecondary, func(r uv.Rect) uv.Rect { return r.Rows(10, 2) })
	}
	if c.pattern != nil {
		for _, y := range []int{3, 6, 9} {
			fillSides(t, uv.Body, uv.Base, *c.pattern, func(r uv.Rect) uv.Rect { return r.Row(y) })
		}
	}
	if c.bodyAccent != nil {
		// 正面のファスナーと背面の縫い目
		fill(t, front.Sub(3, 2, 1, 8), *c.bodyAccent)
		fill(t, back.Sub(4, 2, 1, 8), backShade(*c.bodyAccent))
	}
	if c.bodyPockets != nil {
		fill(t, front.Sub(1, 7, 2, 2), *c.bodyPockets)
		fill(t, front.Sub(5, 7, 2, 2), *c.bodyPockets)
		fill(t, back.Sub(1, 7, 2, 2), backShade(*c.bodyPockets))
		fill(t, back.Sub(5, 7, 2, 2), backShade(*c.bodyPockets))
	}
	if c.bodyBelt != nil {
		fillSides(t, uv.Body, uv.Base, *c.bodyBelt, func(r uv.Rect) uv.Rect { return r.Row(9) })
		fill(t, front.Sub(3, 9, 2, 1), uv.Highlight(*c.bodyBelt, 1.3))
	}
	if c.collar != nil {
		fillSides(t, uv.Body, uv.Base, *c.collar, func(r uv.Rect) uv.Rect { return r.Rows(0, 2) })
		fill(t, front.Sub(2, 2, 1, 1), *c.collar)
		fill(t, front.Sub(5, 2, 1, 1), *c.collar)
		// 首元の開き
		fill(t, front.Sub(3, 0, 2, 2), c.skin)
	}
	if c.necklace != nil {
		fill(t, front.Sub(2, 3, 4, 1), *c.necklace)
		fill(t, front.Sub(3, 4, 2, 1), uv.Highlight(*c.necklace, 1.2))
		fill(t, back.Sub(3, 2, 2, 1), backShade(*c.necklace))
	}
	if len(c.details) > 0 {
		s.scatter(t, front.Sub(0, 2, 8, 7), detailSpeckle, c.details...)
		shaded := make([]color.NRGBA, len(c.details))
		for i, d := range c.details {
			shaded[i] = backShade(d)
		}
		s.scatter(t, back.Sub(0, 2, 8, 7), detailSpeckle, shaded...)
	}
	if c.backpack != nil {
		bp := *c.backpack
		fill(t, back.Sub(1, 2, 6, 8), backShade(bp))
		fill(t, back.Sub(1, 2, 6, 1), backShade(uv.Highlight(bp, 1.15)))
		// 肩ひも
		fill(t, front.Sub(1, 0, 1, 9), uv.Shade(bp, 0.85))
		fill(t, front.Sub(6, 0, 1, 9), uv.Shade(bp, 0.85))
		top := uv.MustRegion(uv.Body, uv.Top, uv.Base)
		fill(t, top.Col(1), uv.Shade(bp, uv.ShadeTop))
		fill(t, top.Col(6), uv.Shade(bp, uv.ShadeTop))
		// 厚みはオーバーレイ側で表現する
		fill(t, uv.MustRegion(uv.Body, uv.Back, uv.Overlay).Sub(1, 3, 6, 6), backShade(bp))
	}
}

func paintArms(t *texture.Texture, c *schemeColors) {
	for _, arm := range []uv.Part{uv.RightArm, uv.LeftArm} {
		uv.FillFaces(t, arm, uv.Base, c.clothing)
		// 袖は 8 行目まで、その下は手首と手
		fillSides(t, arm, uv.Base, c.armSkin, func(r uv.Rect) uv.Rect { return r.Rows(8, 4) })
		fill(t, uv.MustRegion(arm, uv.Bottom, uv.Base), uv.Shade(c.armSkin, uv.ShadeBottom))

		if c.armDetail != nil {
			fillSides(t, arm, uv.Base, *c.armDetail, func(r uv.Rect) uv.Rect { return r.Row(3) })
		}
		if c.sleeveTrim != nil {
			fillSides(t, arm, uv.Base, *c.sleeveTrim, func(r uv.Rect) uv.Rect { return r.Row(7) })
		}
	}
	if c.watch != nil {
		fillSides(t, uv.LeftArm, uv.Base, *c.watch, func(r uv.Rect) uv.Rect { return r.Row(9) })
		fill(t, uv.MustRegion(uv.LeftArm, uv.Front, uv.Base).Sub(1, 9, 2, 1), uv.Highlight(*c.watch, 1.3))
	}
}

func paintLegs(t *texture.Texture, c *schemeColors) {
	legs := []struct {
		part  uv.Part
		outer uv.Face
	}{
		{uv.RightLeg, uv.Right},
		{uv.LeftLeg, uv.Left},
	}
	for _, leg := range legs {
		uv.FillFaces(t, leg.part, uv.Base, c.legPrimary)
		front := uv.MustRegion(leg.part, uv.Front, uv.Base)
		back := uv.MustRegion(leg.part, uv.Back, uv.Base)

		if c.legSecondary != nil {
			fill(t, uv.MustRegion(leg.part, leg.outer, uv.Base).Sub(1, 0, 2, 9), uv.Shade(*c.legSecondary, uv.ShadeSide))
		}
		if c.legBelt != nil {
			fillSides(t, leg.part, uv.Base, *c.legBelt, func(r uv.Rect) uv.Rect { return r.Row(0) })
		}
		if c.legPockets != nil {
			// 正面は外側、背面は中央寄り
			x := 0
			if leg.part == uv.LeftLeg {
				x = 2
			}
			fill(t, front.Sub(x, 1, 2, 2), *c.legPockets)
			fill(t, back.Sub(1, 2, 2, 2), uv.Shade(*c.legPockets, uv.ShadeBack))
		}
		if c.kneePads != nil {
			fill(t, uv.MustRegion(leg.part, uv.Front, uv.Overlay).Sub(0, 5, 4, 2), *c.kneePads)
			for _, f := range []uv.Face{uv.Right, uv.Left, uv.Back} {
				fill(t, uv.MustRegion(leg.part, f, uv.Overlay).Row(5), uv.Shade(*c.kneePads, uv.FaceShade(f)))
			}
		}
		if c.shoes != nil {
			paintShoe(t, leg.part, c)
		}
	}
}

// paintShoe は靴を 4 側面と底面に描き、紐と靴底を重ねます。
func paintShoe(t *texture.Texture, leg uv.Part, c *schemeColors) {
	shoes := *c.shoes
	fillSides(t, leg, uv.Base, shoes, func(r uv.Rect) uv.Rect { return r.Rows(9, 3) })
	fill(t, uv.MustRegion(leg, uv.Bottom, uv.Base), uv.Shade(shoes, uv.ShadeBottom))

	if c.laces != nil {
		fill(t, uv.MustRegion(leg, uv.Front, uv.Base).Sub(1, 9, 2, 1), *c.laces)
	}
	if c.sole != nil {
		fillSides(t, leg, uv.Base, *c.sole, func(r uv.Rect) uv.Rect { return r.Row(11) })
		fill(t, uv.MustRegion(leg, uv.Bottom, uv.Base), uv.Shade(*c.sole, uv.ShadeBottom))
	}
}
