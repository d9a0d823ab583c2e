// Package studio は生成・編集・履歴保存をまとめたユースケース層です。
// HTTP、MCP、CLI のいずれもこのパッケージを通してスキンを扱います。
package studio

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/editor"
	"github.com/shouni/gemini-skin-kit/pkg/generator"
	"github.com/shouni/gemini-skin-kit/pkg/history"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
)

// Generator は 1 件の生成要求を処理します。*generator.SkinGenerator が満たします。
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*generator.GenerationResult, error)
}

// TextureLoader は URI からスキンを読み込みます。*adapters.TextureLoader が満たします。
type TextureLoader interface {
	Load(ctx context.Context, uri string) (*texture.Texture, error)
}

// Skin は生成結果と保存済みエントリの組です。
type Skin struct {
	Entry          domain.SkinEntry
	Source         domain.SkinSource
	UsedSeed       int64
	FallbackReason string
}

// Studio は生成したスキンを履歴へ保存し、編集と書き出しを提供します。
type Studio struct {
	gen         Generator
	hist        *history.History
	loader      TextureLoader
	defaultMode domain.Mode
}

// Option は Studio の設定を変更します。
type Option func(*Studio)

// WithDefaultMode はモード未指定の要求に使うモードを設定します。
func WithDefaultMode(m domain.Mode) Option {
	return func(s *Studio) { s.defaultMode = m }
}

// WithLoader は URI からの取り込みに使うローダーを設定します。
func WithLoader(l TextureLoader) Option {
	return func(s *Studio) { s.loader = l }
}

// New は Studio を初期化します。
func New(gen Generator, hist *history.History, opts ...Option) (*Studio, error) {
	if gen == nil {
		return nil, fmt.Errorf("gen (Generator) is required")
	}
	if hist == nil {
		return nil, fmt.Errorf("hist (*history.History) is required")
	}
	s := &Studio{gen: gen, hist: hist, defaultMode: domain.ModeDemo}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// History は保存先の履歴を返します。
func (s *Studio) History() *history.History { return s.hist }

// Generate はスキンを生成して履歴の先頭に保存します。
func (s *Studio) Generate(ctx context.Context, req domain.GenerationRequest) (*Skin, error) {
	if req.Mode == "" {
		req.Mode = s.defaultMode
	}
	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	entry, err := s.save(ctx, domain.SkinName(req.Prompt), req.Prompt, res.Texture)
	if err != nil {
		return nil, err
	}
	return &Skin{
		Entry:          entry,
		Source:         res.Source,
		UsedSeed:       res.UsedSeed,
		FallbackReason: res.FallbackReason,
	}, nil
}

// CreateBlank は透明な新規スキンを保存します。
func (s *Studio) CreateBlank(ctx context.Context) (*Skin, error) {
	entry, err := s.save(ctx, domain.BlankSkinName, "", generator.BlankTemplate())
	if err != nil {
		return nil, err
	}
	return &Skin{Entry: entry, Source: domain.SourceBlank}, nil
}

// Import は既存のテクスチャを名前を付けて保存します。
func (s *Studio) Import(ctx context.Context, name string, tex *texture.Texture) (domain.SkinEntry, error) {
	if tex == nil {
		return domain.SkinEntry{}, fmt.Errorf("%w: texture is nil", domain.ErrInvalidTexture)
	}
	if name == "" {
		name = domain.SkinName("")
	}
	return s.save(ctx, name, "", tex)
}

// ImportURI はローダーで読み込んだスキンを保存します。
func (s *Studio) ImportURI(ctx context.Context, name, uri string) (domain.SkinEntry, error) {
	if s.loader == nil {
		return domain.SkinEntry{}, fmt.Errorf("%w: importing is not configured", domain.ErrInvalidRequest)
	}
	tex, err := s.loader.Load(ctx, uri)
	if err != nil {
		return domain.SkinEntry{}, err
	}
	return s.Import(ctx, name, tex)
}

// Texture は保存済みスキンのテクスチャを返します。
func (s *Studio) Texture(ctx context.Context, id string) (*texture.Texture, domain.SkinEntry, error) {
	entry, err := s.hist.Get(ctx, id)
	if err != nil {
		return nil, domain.SkinEntry{}, err
	}
	tex, err := texture.DecodePNG(entry.Texture)
	if err != nil {
		return nil, domain.SkinEntry{}, fmt.Errorf("保存済みスキン %s を読めません: %w", id, err)
	}
	return tex, entry, nil
}

// Edit は保存済みスキンに編集操作を適用し、同じ ID で保存し直します。
// 保存し直したエントリは履歴の先頭に移動します。
func (s *Studio) Edit(ctx context.Context, id string, ops []editor.Op) (domain.SkinEntry, int, error) {
	tex, entry, err := s.Texture(ctx, id)
	if err != nil {
		return domain.SkinEntry{}, 0, err
	}
	ed := editor.New(tex)
	changed, err := ed.ApplyOps(ops)
	if err != nil {
		return domain.SkinEntry{}, 0, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if changed == 0 {
		return entry, 0, nil
	}

	data, err := ed.Texture().EncodePNG()
	if err != nil {
		return domain.SkinEntry{}, 0, err
	}
	entry.Texture = data
	if err := s.hist.Save(ctx, entry); err != nil {
		return domain.SkinEntry{}, 0, err
	}
	return entry, changed, nil
}

func (s *Studio) save(ctx context.Context, name, prompt string, tex *texture.Texture) (domain.SkinEntry, error) {
	entry, err := s.hist.NewEntry(name, prompt, tex)
	if err != nil {
		return domain.SkinEntry{}, err
	}
	if err := s.hist.Save(ctx, entry); err != nil {
		return domain.SkinEntry{}, err
	}
	return entry, nil
}
