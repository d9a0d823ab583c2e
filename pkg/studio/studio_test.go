package studio

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/editor"
	"github.com/shouni/gemini-skin-kit/pkg/generator"
	"github.com/shouni/gemini-skin-kit/pkg/history"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockGenerator struct {
	generateFunc func(ctx context.Context, req domain.GenerationRequest) (*generator.GenerationResult, error)
	lastReq      domain.GenerationRequest
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*generator.GenerationResult, error) {
	m.lastReq = req
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	tex := texture.New()
	tex.Set(0, 0, color.NRGBA{R: 255, A: 255})
	return &generator.GenerationResult{Texture: tex, Source: domain.SourceKeywords, UsedSeed: 7}, nil
}

type mockLoader struct {
	tex *texture.Texture
	err error
	uri string
}

func (m *mockLoader) Load(ctx context.Context, uri string) (*texture.Texture, error) {
	m.uri = uri
	return m.tex, m.err
}

func newStudio(t *testing.T, gen Generator, opts ...Option) *Studio {
	t.Helper()
	h, err := history.New(history.NewMemoryStore())
	require.NoError(t, err)
	s, err := New(gen, h, opts...)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	h, _ := history.New(history.NewMemoryStore())
	_, err := New(nil, h)
	assert.Error(t, err)
	_, err = New(&mockGenerator{}, nil)
	assert.Error(t, err)
}

func TestStudio_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("生成結果を名前付きで履歴の先頭に保存する", func(t *testing.T) {
		gen := &mockGenerator{}
		s := newStudio(t, gen)

		skin, err := s.Generate(ctx, domain.GenerationRequest{Prompt: "a knight in shining armor with a red cape"})
		require.NoError(t, err)
		assert.Equal(t, "a knight in shining armor with...", skin.Entry.Name)
		assert.Equal(t, domain.SourceKeywords, skin.Source)
		assert.Equal(t, int64(7), skin.UsedSeed)
		assert.Equal(t, domain.ModeDemo, gen.lastReq.Mode)

		list, err := s.History().List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, skin.Entry.ID, list[0].ID)
		assert.Equal(t, "a knight in shining armor with a red cape", list[0].Prompt)
	})

	t.Run("モード未指定には既定のモードを使う", func(t *testing.T) {
		gen := &mockGenerator{}
		s := newStudio(t, gen, WithDefaultMode(domain.ModeAI))

		_, err := s.Generate(ctx, domain.GenerationRequest{Prompt: "wizard"})
		require.NoError(t, err)
		assert.Equal(t, domain.ModeAI, gen.lastReq.Mode)

		_, err = s.Generate(ctx, domain.GenerationRequest{Prompt: "wizard", Mode: domain.ModeDemo})
		require.NoError(t, err)
		assert.Equal(t, domain.ModeDemo, gen.lastReq.Mode)
	})

	t.Run("フォールバック理由を返す", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(ctx context.Context, req domain.GenerationRequest) (*generator.GenerationResult, error) {
			return &generator.GenerationResult{Texture: texture.New(), Source: domain.SourceKeywords, FallbackReason: "timeout"}, nil
		}}
		s := newStudio(t, gen)

		skin, err := s.Generate(ctx, domain.GenerationRequest{Prompt: "wizard", Mode: domain.ModeAI})
		require.NoError(t, err)
		assert.Equal(t, "timeout", skin.FallbackReason)
	})

	t.Run("生成エラーでは何も保存しない", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(ctx context.Context, req domain.GenerationRequest) (*generator.GenerationResult, error) {
			return nil, domain.ErrEmptyPrompt
		}}
		s := newStudio(t, gen)

		_, err := s.Generate(ctx, domain.GenerationRequest{Prompt: " "})
		assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
		list, _ := s.History().List(ctx)
		assert.Empty(t, list)
	})
}

func TestStudio_CreateBlank(t *testing.T) {
	ctx := context.Background()
	s := newStudio(t, &mockGenerator{})

	skin, err := s.CreateBlank(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BlankSkinName, skin.Entry.Name)
	assert.Equal(t, domain.SourceBlank, skin.Source)

	tex, _, err := s.Texture(ctx, skin.Entry.ID)
	require.NoError(t, err)
	assert.Zero(t, tex.CountOpaque())
}

func TestStudio_Edit(t *testing.T) {
	ctx := context.Background()
	red := color.NRGBA{R: 255, A: 255}

	t.Run("同じ ID のまま上書きして先頭へ移す", func(t *testing.T) {
		s := newStudio(t, &mockGenerator{})
		first, err := s.CreateBlank(ctx)
		require.NoError(t, err)
		_, err = s.CreateBlank(ctx)
		require.NoError(t, err)

		entry, changed, err := s.Edit(ctx, first.Entry.ID, []editor.Op{
			{Tool: string(editor.ToolPencil), X: 8, Y: 8, Color: "#ff0000", Size: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, changed)
		assert.Equal(t, first.Entry.ID, entry.ID)

		list, _ := s.History().List(ctx)
		require.Len(t, list, 2)
		assert.Equal(t, first.Entry.ID, list[0].ID)

		tex, _, err := s.Texture(ctx, first.Entry.ID)
		require.NoError(t, err)
		assert.Equal(t, red, tex.At(9, 9))
		assert.Equal(t, 4, tex.CountOpaque())
	})

	t.Run("変化が無ければ保存しない", func(t *testing.T) {
		s := newStudio(t, &mockGenerator{})
		first, _ := s.CreateBlank(ctx)
		second, _ := s.CreateBlank(ctx)

		_, changed, err := s.Edit(ctx, first.Entry.ID, []editor.Op{{Tool: string(editor.ToolEraser), X: 0, Y: 0, Size: 1}})
		require.NoError(t, err)
		assert.Zero(t, changed)

		list, _ := s.History().List(ctx)
		assert.Equal(t, second.Entry.ID, list[0].ID)
	})

	t.Run("不正な操作は ErrInvalidRequest", func(t *testing.T) {
		s := newStudio(t, &mockGenerator{})
		first, _ := s.CreateBlank(ctx)

		_, _, err := s.Edit(ctx, first.Entry.ID, []editor.Op{{Tool: "brush", X: 0, Y: 0}})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("存在しない ID は ErrNotFound", func(t *testing.T) {
		s := newStudio(t, &mockGenerator{})
		_, _, err := s.Edit(ctx, "missing", nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStudio_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("ローダー経由で保存する", func(t *testing.T) {
		tex := texture.New()
		tex.Set(1, 1, color.NRGBA{G: 255, A: 255})
		loader := &mockLoader{tex: tex}
		s := newStudio(t, &mockGenerator{}, WithLoader(loader))

		entry, err := s.ImportURI(ctx, "steve", "file:///tmp/steve.png")
		require.NoError(t, err)
		assert.Equal(t, "file:///tmp/steve.png", loader.uri)
		assert.Equal(t, "steve", entry.Name)

		got, _, err := s.Texture(ctx, entry.ID)
		require.NoError(t, err)
		assert.True(t, got.Equal(tex))
	})

	t.Run("名前が空なら既定名", func(t *testing.T) {
		s := newStudio(t, &mockGenerator{})
		entry, err := s.Import(ctx, "", texture.New())
		require.NoError(t, err)
		assert.Equal(t, domain.SkinName(""), entry.Name)
	})

	t.Run("ローダー未設定は ErrInvalidRequest", func(t *testing.T) {
		s := newStudio(t, &mockGenerator{})
		_, err := s.ImportURI(ctx, "", "file:///tmp/x.png")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("読み込みエラーをそのまま返す", func(t *testing.T) {
		loadErr := errors.New("boom")
		s := newStudio(t, &mockGenerator{}, WithLoader(&mockLoader{err: loadErr}))
		_, err := s.ImportURI(ctx, "", "file:///tmp/x.png")
		assert.ErrorIs(t, err, loadErr)
	})

	t.Run("nil テクスチャは ErrInvalidTexture", func(t *testing.T) {
		s := newStudio(t, &mockGenerator{})
		_, err := s.Import(ctx, "x", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTexture)
	})
}
