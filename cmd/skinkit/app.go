package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shouni/gemini-skin-kit/pkg/adapters"
	"github.com/shouni/gemini-skin-kit/pkg/config"
	"github.com/shouni/gemini-skin-kit/pkg/generator"
	"github.com/shouni/gemini-skin-kit/pkg/history"
	"github.com/shouni/gemini-skin-kit/pkg/server"
	"github.com/shouni/gemini-skin-kit/pkg/studio"
	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// app は設定から組み立てた依存関係一式です。
type app struct {
	cfg     *config.Config
	studio  *studio.Studio
	handler *server.Handler
	closers []io.Closer
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	path, err := historyPath(cfg, os.LookupEnv, os.UserConfigDir)
	if err != nil {
		return nil, err
	}
	var store history.Store = history.NewMemoryStore()
	if path != "" {
		s, err := history.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s)
		store = s
	}
	hist, err := history.New(store, history.WithMaxItems(cfg.History.MaxItems))
	if err != nil {
		a.Close()
		return nil, err
	}

	// APIキーが無ければ ai モードも手続き生成で処理する
	var source generator.SchemeSource
	if cfg.AIEnabled() {
		model, err := adapters.NewGenAIModel(ctx, cfg.Gemini.APIKey)
		if err != nil {
			a.Close()
			return nil, err
		}
		adapter, err := adapters.NewGeminiSchemeAdapter(model, cfg.Gemini.Model, adapters.NewMemoryCache(), cfg.Generation.SchemeCacheTTL)
		if err != nil {
			a.Close()
			return nil, err
		}
		source = adapter
	} else {
		slog.Debug("APIキーが未設定のため、カラースキームの取得は無効です")
	}
	gen := generator.NewSkinGenerator(source, generator.WithTimeout(cfg.Gemini.Timeout))

	loader, err := adapters.NewTextureLoader(adapters.LocalReader{}, httpkit.New(cfg.Gemini.Timeout))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.studio, err = studio.New(gen, hist,
		studio.WithDefaultMode(cfg.DefaultMode()),
		studio.WithLoader(loader),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.handler, err = server.NewHandler(a.studio, cfg.Server.PreviewScale)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// historyPath は履歴 DB のパスを決めます。設定にも SKINKIT_HISTORY_DB にも無ければ
// ユーザー設定ディレクトリの skinkit/history.db を使います。
// SKINKIT_HISTORY_DB が空で明示された場合のみメモリ上に保持します。
func historyPath(cfg *config.Config, lookup func(string) (string, bool), configDir func() (string, error)) (string, error) {
	if cfg.History.Path != "" {
		return cfg.History.Path, nil
	}
	if _, ok := lookup(config.EnvHistoryDB); ok {
		return "", nil
	}
	base, err := configDir()
	if err != nil {
		return "", fmt.Errorf("履歴の保存先を決められません (%s で指定してください): %w", config.EnvHistoryDB, err)
	}
	dir := filepath.Join(base, "skinkit")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("履歴ディレクトリの作成に失敗しました: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// Close は開いたストアを閉じます。
func (a *app) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = fmt.Errorf("close: %w", err)
		}
	}
	a.closers = nil
	return first
}
