package generator

import (
	"math/rand"
	"time"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
)

const (
	// DefaultSchemeTimeout はカラースキーム取得の既定のタイムアウトです。
	DefaultSchemeTimeout = 30 * time.Second
)

// GenerationResult は 1 回の生成要求に対する結果です。
type GenerationResult struct {
	Texture        *texture.Texture
	Source         domain.SkinSource
	Scheme         *domain.ColorScheme // Source が scheme の場合のみ
	UsedSeed       int64
	FallbackReason string // 手続き生成へフォールバックした理由
}

// NewRandomSource はシード固定の乱数源を返します。
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// BlankTemplate は完全に透明な新規スキンを返します。
func BlankTemplate() *texture.Texture {
	return texture.New()
}
