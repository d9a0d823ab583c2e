// Package config はスキンキットの YAML 設定と環境変数による上書きを扱います。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"gopkg.in/yaml.v3"
)

// 環境変数による上書き
const (
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvModel     = "SKINKIT_MODEL"
	EnvHistoryDB = "SKINKIT_HISTORY_DB"
)

// Config はトップレベルの設定です。
type Config struct {
	Gemini     GeminiConfig     `yaml:"gemini"`
	Generation GenerationConfig `yaml:"generation"`
	History    HistoryConfig    `yaml:"history"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// GeminiConfig はカラースキーム取得に使うモデルの設定です。
// APIKey が空の場合、ai モードは手続き生成で処理されます。
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// GenerationConfig は生成の既定値です。
type GenerationConfig struct {
	DefaultMode    string        `yaml:"default_mode"` // demo | ai
	SchemeCacheTTL time.Duration `yaml:"scheme_cache_ttl"`
}

// HistoryConfig は履歴ストアの設定です。Path が空ならメモリ上に保持します。
type HistoryConfig struct {
	Path     string `yaml:"path"`
	MaxItems int    `yaml:"max_items"`
}

// ServerConfig は HTTP サーバーの設定です。
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	PreviewScale int    `yaml:"preview_scale"`
}

// LogConfig はログの設定です。
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Default は既定値のみの設定を返します。
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile は YAML 設定ファイルを読み込みます。path が空の場合は既定値を使います。
// どちらの場合も環境変数による上書きを適用してから検証します。
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("設定ファイルの解析に失敗しました (%s): %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.Gemini.APIKey = v
	}
	if v, ok := lookup(EnvModel); ok && v != "" {
		c.Gemini.Model = v
	}
	if v, ok := lookup(EnvHistoryDB); ok {
		c.History.Path = v
	}
}

func (c *Config) applyDefaults() {
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Timeout <= 0 {
		c.Gemini.Timeout = 30 * time.Second
	}
	if c.Generation.DefaultMode == "" {
		c.Generation.DefaultMode = string(domain.ModeDemo)
	}
	if c.Generation.SchemeCacheTTL <= 0 {
		c.Generation.SchemeCacheTTL = time.Hour
	}
	if c.History.MaxItems <= 0 {
		c.History.MaxItems = 50
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.PreviewScale <= 0 {
		c.Server.PreviewScale = 8
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate は値の組み合わせを検証します。
func (c *Config) Validate() error {
	if _, err := domain.ParseMode(c.Generation.DefaultMode); err != nil {
		return fmt.Errorf("generation.default_mode: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// DefaultMode は検証済みの既定モードを返します。
func (c *Config) DefaultMode() domain.Mode {
	m, err := domain.ParseMode(c.Generation.DefaultMode)
	if err != nil {
		return domain.ModeDemo
	}
	return m
}

// SlogLevel はログレベルを slog.Level に変換します。
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// AIEnabled は ai モードでモデルを呼び出せるかどうかを返します。
func (c *Config) AIEnabled() bool {
	return c.Gemini.APIKey != ""
}
