// Package uv は 64x64 スキンテクスチャの公式 UV レイアウトを定義します。
//
// 各部位 (Part) × 面 (Face) × レイヤー (Layer) について左上座標とサイズを返し、
// すべての生成処理はここで定義された座標のみを経由して描画します。
package uv

import (
	"fmt"
	"image"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
)

// Part は人型メッシュの部位です。
type Part int

const (
	Head Part = iota
	Body
	RightArm
	LeftArm
	RightLeg
	LeftLeg
)

// Parts は全部位の一覧です。
var Parts = []Part{Head, Body, RightArm, LeftArm, RightLeg, LeftLeg}

func (p Part) String() string {
	switch p {
	case Head:
		return "head"
	case Body:
		return "body"
	case RightArm:
		return "right_arm"
	case LeftArm:
		return "left_arm"
	case RightLeg:
		return "right_leg"
	case LeftLeg:
		return "left_leg"
	}
	return fmt.Sprintf("part(%d)", int(p))
}

// Face は直方体の面です。
type Face int

const (
	Top Face = iota
	Bottom
	Right
	Front
	Left
	Back
)

// Faces は6面の一覧です。
var Faces = []Face{Top, Bottom, Right, Front, Left, Back}

// SideFaces は上下を除いた4側面です。
var SideFaces = []Face{Right, Front, Left, Back}

func (f Face) String() string {
	switch f {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Right:
		return "right"
	case Front:
		return "front"
	case Left:
		return "left"
	case Back:
		return "back"
	}
	return fmt.Sprintf("face(%d)", int(f))
}

// Layer はテクスチャのレイヤーです。Overlay はメッシュから少し浮かせて描画されます。
type Layer int

const (
	Base Layer = iota
	Overlay
)

func (l Layer) String() string {
	switch l {
	case Base:
		return "base"
	case Overlay:
		return "overlay"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// Rect はテクスチャ内の矩形です。
type Rect struct {
	X, Y, W, H int
}

// Image は image.Rectangle に変換します。
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Sub は面内の相対座標で部分矩形を返します。面の外にはみ出す部分は切り落とされます。
func (r Rect) Sub(dx, dy, w, h int) Rect {
	sub := image.Rect(r.X+dx, r.Y+dy, r.X+dx+w, r.Y+dy+h).Intersect(r.Image())
	return Rect{X: sub.Min.X, Y: sub.Min.Y, W: sub.Dx(), H: sub.Dy()}
}

// Row は面内の y 行目 (1px 高) を返します。
func (r Rect) Row(y int) Rect { return r.Sub(0, y, r.W, 1) }

// Rows は面内の y 行目から n 行分を返します。
func (r Rect) Rows(y, n int) Rect { return r.Sub(0, y, r.W, n) }

// Col は面内の x 列目 (1px 幅) を返します。
func (r Rect) Col(x int) Rect { return r.Sub(x, 0, 1, r.H) }

// Contains は座標が矩形内かどうかを返します。
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// box は直方体の展開図を表します。(x, y) は展開図の左上、w/h/d は幅・高さ・奥行きです。
type box struct {
	x, y    int
	w, h, d int
}

func (b box) face(f Face) (Rect, bool) {
	switch f {
	case Top:
		return Rect{b.x + b.d, b.y, b.w, b.d}, true
	case Bottom:
		return Rect{b.x + b.d + b.w, b.y, b.w, b.d}, true
	case Right:
		return Rect{b.x, b.y + b.d, b.d, b.h}, true
	case Front:
		return Rect{b.x + b.d, b.y + b.d, b.w, b.h}, true
	case Left:
		return Rect{b.x + b.d + b.w, b.y + b.d, b.d, b.h}, true
	case Back:
		return Rect{b.x + 2*b.d + b.w, b.y + b.d, b.w, b.h}, true
	}
	return Rect{}, false
}

type partLayer struct {
	part  Part
	layer Layer
}

// layout は公式スキン形式 (64x64) の展開図です。
// 左腕と左脚のオーバーレイは y+16 ではグリッド外になるため公式配置 (x±16) に従います。
var layout = map[partLayer]box{
	{Head, Base}:        {0, 0, 8, 8, 8},
	{Head, Overlay}:     {32, 0, 8, 8, 8},
	{Body, Base}:        {16, 16, 8, 12, 4},
	{Body, Overlay}:     {16, 32, 8, 12, 4},
	{RightArm, Base}:    {40, 16, 4, 12, 4},
	{RightArm, Overlay}: {40, 32, 4, 12, 4},
	{LeftArm, Base}:     {32, 48, 4, 12, 4},
	{LeftArm, Overlay}:  {48, 48, 4, 12, 4},
	{RightLeg, Base}:    {0, 16, 4, 12, 4},
	{RightLeg, Overlay}: {0, 32, 4, 12, 4},
	{LeftLeg, Base}:     {16, 48, 4, 12, 4},
	{LeftLeg, Overlay}:  {0, 48, 4, 12, 4},
}

// RegionFor は部位・面・レイヤーに対応する矩形を返します。
// 定義されていない組み合わせの場合は ErrInvalidRegion を返します。
func RegionFor(part Part, face Face, layer Layer) (Rect, error) {
	b, ok := layout[partLayer{part, layer}]
	if !ok {
		return Rect{}, fmt.Errorf("%w: %s/%s/%s", domain.ErrInvalidRegion, part, face, layer)
	}
	r, ok := b.face(face)
	if !ok {
		return Rect{}, fmt.Errorf("%w: %s/%s/%s", domain.ErrInvalidRegion, part, face, layer)
	}
	return r, nil
}

// MustRegion は RegionFor のパニック版です。固定の部位カタログからの呼び出し専用です。
func MustRegion(part Part, face Face, layer Layer) Rect {
	r, err := RegionFor(part, face, layer)
	if err != nil {
		panic(err)
	}
	return r
}
