package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/generator"
)

// DefaultSchemeModel は既定のテキスト生成モデルです。
const DefaultSchemeModel = "gemini-2.5-flash"

// schemePromptTemplate はモデルにカラースキーム JSON のみを出力させるための指示です。
const schemePromptTemplate = `You are a Minecraft skin designer. Design a 64x64 pixel-art skin for this character:

%s

Respond with a single JSON object and nothing else. Every value is a hex color such as "#a1b2c3".
Omit any optional field whose feature the character does not have.
{
  "head": {"skin": "", "hair": "", "hairHighlight": "", "hairShadow": "", "eyes": "", "eyeDetail": "",
           "eyebrows": "", "mouth": "", "nose": "", "blush": "", "accessories": [""]},
  "body": {"primary": "", "secondary": "", "accent": "", "pattern": "", "collar": "", "pockets": "",
           "belt": "", "details": [""]},
  "arms": {"skin": "", "clothing": "", "detail": "", "sleeveTrim": "", "watch": ""},
  "legs": {"primary": "", "secondary": "", "shoes": "", "shoeLaces": "", "shoeSole": "", "kneePads": "",
           "pockets": "", "belt": ""},
  "accessories": {"hat": "", "glasses": "", "beard": "", "backpack": "", "necklace": "", "earrings": ""}
}
Required: head.skin, head.hair, head.eyes, body.primary, arms.skin, arms.clothing, legs.primary.`

// GeminiSchemeAdapter は Gemini にカラースキームを問い合わせる generator.SchemeSource の実装です。
type GeminiSchemeAdapter struct {
	model     TextModel
	modelName string
	cache     SchemeCacher
	cacheTTL  time.Duration
}

// NewGeminiSchemeAdapter は依存関係を注入してアダプターを生成します。cache は nil でも構いません。
func NewGeminiSchemeAdapter(model TextModel, modelName string, cache SchemeCacher, cacheTTL time.Duration) (*GeminiSchemeAdapter, error) {
	if model == nil {
		return nil, fmt.Errorf("model (TextModel) is required")
	}
	if modelName == "" {
		modelName = DefaultSchemeModel
	}
	return &GeminiSchemeAdapter{
		model:     model,
		modelName: modelName,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}, nil
}

// BuildSchemePrompt はキャラクター説明をモデルへの指示文に埋め込みます。
func BuildSchemePrompt(prompt string) string {
	return fmt.Sprintf(schemePromptTemplate, strings.TrimSpace(prompt))
}

// RequestColorScheme はプロンプトからカラースキームを 1 回だけ取得します。リトライは行いません。
// 通信エラーはラップして返し、モデル出力の形が不正な場合は SchemeParseError を返します。
func (a *GeminiSchemeAdapter) RequestColorScheme(ctx context.Context, prompt string) (*domain.ColorScheme, error) {
	key := cacheKey(a.modelName, prompt)
	if scheme, ok := a.cached(ctx, key); ok {
		return scheme, nil
	}

	slog.InfoContext(ctx, "Geminiにカラースキームをリクエストします", "model", a.modelName)
	resp, err := a.model.GenerateContent(ctx, a.modelName, BuildSchemePrompt(prompt))
	if err != nil {
		return nil, fmt.Errorf("Geminiカラースキーム生成エラー: %w", err)
	}

	text, err := ParseToText(resp)
	if err != nil {
		return nil, err
	}

	scheme, err := generator.ParseScheme(text)
	if err != nil {
		var pe *domain.SchemeParseError
		if errors.As(err, &pe) {
			slog.WarnContext(ctx, "モデル出力をカラースキームとして解釈できませんでした", "reason", pe.Reason)
		}
		return nil, err
	}

	if a.cache != nil {
		a.cache.Set(key, scheme, a.cacheTTL)
	}
	return scheme, nil
}

func (a *GeminiSchemeAdapter) cached(ctx context.Context, key string) (*domain.ColorScheme, bool) {
	if a.cache == nil {
		return nil, false
	}
	v, found := a.cache.Get(key)
	if !found {
		return nil, false
	}
	scheme, ok := v.(*domain.ColorScheme)
	if !ok {
		slog.WarnContext(ctx, "キャッシュデータが不正な型です", "key", key, "type", fmt.Sprintf("%T", v))
		return nil, false
	}
	return scheme, true
}

func cacheKey(model, prompt string) string {
	return model + "\x00" + strings.Join(strings.Fields(strings.ToLower(prompt)), " ")
}
