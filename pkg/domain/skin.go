package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shouni/gemini-skin-kit/pkg/utils"
)

// Mode はスキン生成の経路を表します。
type Mode string

const (
	// ModeDemo は常にキーワードからの手続き生成を行います。
	ModeDemo Mode = "demo"
	// ModeAI はカラースキームの取得を試み、失敗時は手続き生成へフォールバックします。
	ModeAI Mode = "ai"
)

// Modes は認識されるモードの一覧です。
var Modes = []Mode{ModeDemo, ModeAI}

// ParseMode は文字列を Mode に変換します。空文字は ModeDemo として扱います。
func ParseMode(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return ModeDemo, nil
	}
	names := make([]string, 0, len(Modes))
	for _, m := range Modes {
		if string(m) == v {
			return m, nil
		}
		names = append(names, string(m))
	}
	if hint, ok := utils.Suggest(v, names); ok {
		return "", fmt.Errorf("%w: unknown mode %q (did you mean %q?)", ErrInvalidRequest, s, hint)
	}
	return "", fmt.Errorf("%w: unknown mode %q (want one of %s)", ErrInvalidRequest, s, strings.Join(names, ", "))
}

// SkinSource は生成結果がどの経路で作られたかを表します。
type SkinSource string

const (
	SourceKeywords SkinSource = "keywords"
	SourceScheme   SkinSource = "scheme"
	SourceBlank    SkinSource = "blank"
)

// GenerationRequest は単一のスキン生成要求です。
// Seed を指定するとテクスチャのスペックル配置が再現可能になります。
type GenerationRequest struct {
	Prompt string `json:"prompt"`
	Mode   Mode   `json:"mode"`
	Seed   *int64 `json:"seed,omitempty"`
}

// Validate はプロンプトが空でないことを確認します。
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// SkinEntry は履歴に保存される生成済みスキンです。
// Texture は 64x64 RGBA の PNG バイト列です。
type SkinEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Texture   []byte    `json:"texture"`
	CreatedAt time.Time `json:"createdAt"`
	Prompt    string    `json:"prompt,omitempty"`
}

// HistoryItem は一覧表示用の軽量な履歴項目です。
type HistoryItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Thumbnail string    `json:"thumbnail"` // data URL
	CreatedAt time.Time `json:"createdAt"`
	Prompt    string    `json:"prompt,omitempty"`
}

const (
	maxNameLength   = 30
	defaultSkinName = "Custom Skin"
	// BlankSkinName は空のテンプレートに付ける名前です。
	BlankSkinName = "Blank Skin"
)

// SkinName はプロンプトから表示名を作ります。30文字を超える場合は切り詰めて "..." を付けます。
func SkinName(prompt string) string {
	p := strings.TrimSpace(prompt)
	if p == "" {
		return defaultSkinName
	}
	r := []rune(p)
	if len(r) > maxNameLength {
		return string(r[:maxNameLength]) + "..."
	}
	return p
}

// FileName はダウンロード用のファイル名を返します。空白はアンダースコアに置換されます。
func FileName(name string) string {
	f := strings.Join(strings.Fields(name), "_")
	if f == "" {
		f = "minecraft_skin"
	}
	return f + ".png"
}
