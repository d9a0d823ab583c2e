package generator

import (
	"context"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
)

// SchemeSource はプロンプトからカラースキームを取得する外部コラボレーターです。
// 生成モデル等の通信を伴うため、ctx によるキャンセルとタイムアウトに従う必要があります。
type SchemeSource interface {
	RequestColorScheme(ctx context.Context, prompt string) (*domain.ColorScheme, error)
}

// RandomSource はスペックル配置に使う乱数源です。*rand.Rand がそのまま満たします。
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}
