package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/uv"
)

// ParseScheme はモデルが出力したテキストを検証済みのカラースキームに変換します。
// JSON として解釈できない、または必須フィールドが欠けている場合は SchemeParseError、
// 色の値が不正な場合は MalformedColorError を返します。
func ParseScheme(raw string) (*domain.ColorScheme, error) {
	body, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var scheme domain.ColorScheme
	if err := json.Unmarshal([]byte(body), &scheme); err != nil {
		return nil, &domain.SchemeParseError{Reason: "invalid json", Err: err}
	}
	if err := ValidateScheme(&scheme); err != nil {
		return nil, err
	}
	return &scheme, nil
}

// extractJSONObject はコードフェンスや前後の説明文を取り除き、最外の JSON オブジェクトを返します。
func extractJSONObject(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &domain.SchemeParseError{Reason: "empty response"}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", &domain.SchemeParseError{Reason: "no json object found"}
	}
	return s[start : end+1], nil
}

// ValidateScheme は必須フィールドの有無とすべての色の値を検証します。
func ValidateScheme(scheme *domain.ColorScheme) error {
	_, err := resolveScheme(scheme)
	return err
}

// schemeColors は検証済みのカラースキームです。任意フィールドは nil で欠落を表します。
type schemeColors struct {
	skin, hair, eyes                     color.NRGBA
	hairHighlight, hairShadow, eyeDetail *color.NRGBA
	eyebrows, mouth, nose, blush         *color.NRGBA
	headAccessories                      []color.NRGBA
	bodyPrimary                          color.NRGBA
	bodySecondary, bodyAccent, pattern   *color.NRGBA
	collar, bodyPockets, bodyBelt        *color.NRGBA
	details                              []color.NRGBA
	armSkin, clothing                    color.NRGBA
	armDetail, sleeveTrim, watch         *color.NRGBA
	legPrimary                           color.NRGBA
	legSecondary, shoes, laces, sole     *color.NRGBA
	kneePads, legPockets, legBelt        *color.NRGBA
	hat, glasses, beard                  *color.NRGBA
	backpack, necklace, earrings         *color.NRGBA
}

// colorParser は最初に見つかったエラーを保持しながら色を解釈します。
type colorParser struct {
	err error
}

func (p *colorParser) required(field, v string) color.NRGBA {
	if p.err != nil {
		return color.NRGBA{}
	}
	if strings.TrimSpace(v) == "" {
		p.err = &domain.SchemeParseError{Reason: "missing required field " + field}
		return color.NRGBA{}
	}
	return p.parse(field, v)
}

func (p *colorParser) optional(field, v string) *color.NRGBA {
	if p.err != nil || v == "" {
		return nil
	}
	c := p.parse(field, v)
	if p.err != nil {
		return nil
	}
	return &c
}

func (p *colorParser) list(field string, vs []string) []color.NRGBA {
	out := make([]color.NRGBA, 0, len(vs))
	for i, v := range vs {
		if p.err != nil {
			return nil
		}
		out = append(out, p.parse(fmt.Sprintf("%s[%d]", field, i), v))
	}
	return out
}

func (p *colorParser) parse(field, v string) color.NRGBA {
	c, err := uv.ParseHex(v)
	if err != nil {
		var mc *domain.MalformedColorError
		if errors.As(err, &mc) {
			mc.Field = field
		}
		p.err = err
	}
	return c
}

func resolveScheme(s *domain.ColorScheme) (*schemeColors, error) {
	if s == nil {
		return nil, &domain.SchemeParseError{Reason: "scheme is nil"}
	}
	p := &colorParser{}

	// 必須フィールドを先に確認し、欠落は形の不一致として扱う
	c := &schemeColors{
		skin:        p.required("head.skin", s.Head.Skin),
		hair:        p.required("head.hair", s.Head.Hair),
		eyes:        p.required("head.eyes", s.Head.Eyes),
		bodyPrimary: p.required("body.primary", s.Body.Primary),
		armSkin:     p.required("arms.skin", s.Arms.Skin),
		clothing:    p.required("arms.clothing", s.Arms.Clothing),
		legPrimary:  p.required("legs.primary", s.Legs.Primary),
	}

	c.hairHighlight = p.optional("head.hairHighlight", s.Head.HairHighlight)
	c.hairShadow = p.optional("head.hairShadow", s.Head.HairShadow)
	c.eyeDetail = p.optional("head.eyeDetail", s.Head.EyeDetail)
	c.eyebrows = p.optional("head.eyebrows", s.Head.Eyebrows)
	c.mouth = p.optional("head.mouth", s.Head.Mouth)
	c.nose = p.optional("head.nose", s.Head.Nose)
	c.blush = p.optional("head.blush", s.Head.Blush)
	c.headAccessories = p.list("head.accessories", s.Head.Accessories)

	c.bodySecondary = p.optional("body.secondary", s.Body.Secondary)
	c.bodyAccent = p.optional("body.accent", s.Body.Accent)
	c.pattern = p.optional("body.pattern", s.Body.Pattern)
	c.collar = p.optional("body.collar", s.Body.Collar)
	c.bodyPockets = p.optional("body.pockets", s.Body.Pockets)
	c.bodyBelt = p.optional("body.belt", s.Body.Belt)
	c.details = p.list("body.details", s.Body.Details)

	c.armDetail = p.optional("arms.detail", s.Arms.Detail)
	c.sleeveTrim = p.optional("arms.sleeveTrim", s.Arms.SleeveTrim)
	c.watch = p.optional("arms.watch", s.Arms.Watch)

	c.legSecondary = p.optional("legs.secondary", s.Legs.Secondary)
	c.shoes = p.optional("legs.shoes", s.Legs.Shoes)
	c.laces = p.optional("legs.shoeLaces", s.Legs.ShoeLaces)
	c.sole = p.optional("legs.shoeSole", s.Legs.ShoeSole)
	c.kneePads = p.optional("legs.kneePads", s.Legs.KneePads)
	c.legPockets = p.optional("legs.pockets", s.Legs.Pockets)
	c.legBelt = p.optional("legs.belt", s.Legs.Belt)

	if a := s.Accessories; a != nil {
		c.hat = p.optional("accessories.hat", a.Hat)
		c.glasses = p.optional("accessories.glasses", a.Glasses)
		c.beard = p.optional("accessories.beard", a.Beard)
		c.backpack = p.optional("accessories.backpack", a.Backpack)
		c.necklace = p.optional("accessories.necklace", a.Necklace)
		c.earrings = p.optional("accessories.earrings", a.Earrings)
	}

	if p.err != nil {
		return nil, p.err
	}
	return c, nil
}
