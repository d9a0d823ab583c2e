package generator

import (
	"strings"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"golang.org/x/text/cases"
)

// DefaultPalette はキーワードが一つも一致しない場合のパレットです。
var DefaultPalette = domain.Palette{
	Primary:   "#3498db",
	Secondary: "#2c3e50",
	Accent:    "#e74c3c",
	Skin:      "#f4a460",
}

// キーワードは英語と韓国語の2言語で同じ結果に対応します。
type colorRule struct {
	keywords []string
	primary  string
	accent   string
}

// 優先順位順。最初に一致した規則のみが適用されます。
var colorRules = []colorRule{
	{[]string{"red", "빨강"}, "#e74c3c", "#c0392b"},
	{[]string{"blue", "파랑"}, "#3498db", "#2980b9"},
	{[]string{"green", "초록"}, "#2ecc71", "#27ae60"},
	{[]string{"purple", "보라"}, "#9b59b6", "#8e44ad"},
	{[]string{"yellow", "노랑"}, "#f1c40f", "#f39c12"},
	{[]string{"black", "검정"}, "#2c3e50", "#34495e"},
	{[]string{"white", "하얀"}, "#ecf0f1", "#bdc3c7"},
}

var (
	streetKeywords = []string{"street", "스트릿"}
	formalKeywords = []string{"formal", "정장"}
	casualKeywords = []string{"casual", "캐주얼"}
	sportyKeywords = []string{"sport", "스포츠"}

	hatKeywords     = []string{"hat", "cap", "모자"}
	glassesKeywords = []string{"glasses", "안경"}
	beardKeywords   = []string{"beard", "수염"}
)

type clothingRule struct {
	keywords  []string
	secondary string
	primary   string // 空なら primary を変更しない
}

var clothingPaletteRules = []clothingRule{
	{keywords: streetKeywords, secondary: "#34495e"},
	{keywords: formalKeywords, secondary: "#2c3e50", primary: "#34495e"},
	{keywords: casualKeywords, secondary: "#7f8c8d"},
}

var clothingStyleRules = []struct {
	keywords []string
	clothing domain.Clothing
}{
	{streetKeywords, domain.ClothingStreet},
	{formalKeywords, domain.ClothingFormal},
	{sportyKeywords, domain.ClothingSporty},
}

func normalizePrompt(prompt string) string {
	return cases.Fold().String(prompt)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ExtractPalette はプロンプト中の色・服装キーワードから4色パレットを導きます。
// 大文字小文字は区別しません。
func ExtractPalette(prompt string) domain.Palette {
	p := normalizePrompt(prompt)
	pal := DefaultPalette

	for _, r := range colorRules {
		if containsAny(p, r.keywords) {
			pal.Primary = r.primary
			pal.Accent = r.accent
			break
		}
	}

	for _, r := range clothingPaletteRules {
		if containsAny(p, r.keywords) {
			pal.Secondary = r.secondary
			if r.primary != "" {
				pal.Primary = r.primary
			}
			break
		}
	}
	return pal
}

// ExtractStyle はプロンプトから帽子・眼鏡・ひげの有無と服装カテゴリを導きます。
// 服装は street, formal, sporty の順で最初に一致したもの、どれも無ければ casual です。
func ExtractStyle(prompt string) domain.Style {
	p := normalizePrompt(prompt)
	style := domain.Style{
		HasHat:     containsAny(p, hatKeywords),
		HasGlasses: containsAny(p, glassesKeywords),
		HasBeard:   containsAny(p, beardKeywords),
		Clothing:   domain.ClothingCasual,
	}

	for _, r := range clothingStyleRules {
		if containsAny(p, r.keywords) {
			style.Clothing = r.clothing
			break
		}
	}
	return style
}
