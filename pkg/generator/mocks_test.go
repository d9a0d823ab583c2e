package generator

import (
	"context"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
)

// --- Mocks ---

type mockSchemeSource struct {
	requestFunc func(ctx context.Context, prompt string) (*domain.ColorScheme, error)
	calls       int
	lastPrompt  string
}

func (m *mockSchemeSource) RequestColorScheme(ctx context.Context, prompt string) (*domain.ColorScheme, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.requestFunc != nil {
		return m.requestFunc(ctx, prompt)
	}
	return testScheme(), nil
}

// fixedRandom は常に同じ値を返す乱数源です。
type fixedRandom struct {
	n int
	f float64
}

func (r *fixedRandom) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func (r *fixedRandom) Float64() float64 { return r.f }

// testScheme は必須フィールドのみを持つ最小のスキームを返します。
func testScheme() *domain.ColorScheme {
	return &domain.ColorScheme{
		Head: domain.HeadColors{Skin: "#f1c27d", Hair: "#4a3728", Eyes: "#1e90ff"},
		Body: domain.BodyColors{Primary: "#cc3333"},
		Arms: domain.ArmColors{Skin: "#f1c27d", Clothing: "#cc3333"},
		Legs: domain.LegColors{Primary: "#223355"},
	}
}

func int64Ptr(v int64) *int64 { return &v }
