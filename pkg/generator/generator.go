package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/utils"
)

// SkinGenerator は生成要求をモードに応じて手続き生成またはスキーム生成に振り分けます。
// スキーム取得に失敗した場合は必ず手続き生成へフォールバックし、呼び出し元にはテクスチャを返します。
type SkinGenerator struct {
	source  SchemeSource
	timeout time.Duration
	seedFn  func() int64
}

// Option は SkinGenerator の設定を変更します。
type Option func(*SkinGenerator)

// WithTimeout はスキーム取得のタイムアウトを設定します。0 以下は無視されます。
func WithTimeout(d time.Duration) Option {
	return func(g *SkinGenerator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithSeedFunc はシード未指定時に使うシードの生成関数を差し替えます。
func WithSeedFunc(fn func() int64) Option {
	return func(g *SkinGenerator) {
		if fn != nil {
			g.seedFn = fn
		}
	}
}

// NewSkinGenerator は SkinGenerator を初期化します。
// source が nil の場合、ai モードの要求も手続き生成で処理されます。
func NewSkinGenerator(source SchemeSource, opts ...Option) *SkinGenerator {
	g := &SkinGenerator{
		source:  source,
		timeout: DefaultSchemeTimeout,
		seedFn:  func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate は 1 件の生成要求を処理します。
// 返すエラーは入力の誤り（空のプロンプト、未知のモード）とコンテキストのキャンセルのみです。
func (g *SkinGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	mode, err := domain.ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}

	seed := utils.ResolveSeed(req.Seed, g.seedFn)
	synth := NewSynthesizer(NewRandomSource(seed))

	if mode == domain.ModeAI && g.source != nil {
		scheme, err := g.acquire(ctx, req.Prompt)
		if err == nil {
			tex, perr := synth.FromScheme(scheme)
			if perr == nil {
				return &GenerationResult{
					Texture:  tex,
					Source:   domain.SourceScheme,
					Scheme:   scheme,
					UsedSeed: seed,
				}, nil
			}
			err = perr
		}
		// 呼び出し元自身のキャンセルはフォールバックせずに返す
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("スキン生成が中断されました: %w", ctxErr)
		}
		slog.WarnContext(ctx, "カラースキームを利用できないため手続き生成にフォールバックします",
			"prompt", req.Prompt, "error", err)
		return &GenerationResult{
			Texture:        synth.FromKeywords(req.Prompt),
			Source:         domain.SourceKeywords,
			UsedSeed:       seed,
			FallbackReason: err.Error(),
		}, nil
	}

	return &GenerationResult{
		Texture:  synth.FromKeywords(req.Prompt),
		Source:   domain.SourceKeywords,
		UsedSeed: seed,
	}, nil
}

type schemeResult struct {
	scheme *domain.ColorScheme
	err    error
}

// acquire はタイムアウト付きでスキームを 1 回だけ取得します。
// ソースが ctx を無視して戻らない場合でも、タイムアウトで必ず結果が確定します。
func (g *SkinGenerator) acquire(ctx context.Context, prompt string) (*domain.ColorScheme, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ch := make(chan schemeResult, 1)
	go func() {
		scheme, err := g.source.RequestColorScheme(ctx, prompt)
		ch <- schemeResult{scheme: scheme, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrSchemeAcquisition, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, classify(r.err)
		}
		if r.scheme == nil {
			return nil, &domain.SchemeParseError{Reason: "empty color scheme"}
		}
		return r.scheme, nil
	}
}

// classify は形式の誤りと色の誤り以外を取得失敗として包みます。
func classify(err error) error {
	if errors.Is(err, domain.ErrSchemeParse) ||
		errors.Is(err, domain.ErrMalformedColor) ||
		errors.Is(err, domain.ErrSchemeAcquisition) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrSchemeAcquisition, err)
}
