package adapters

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// maxTextureBytes は読み込むスキン画像の上限サイズです。64x64 の PNG には十分な大きさです。
const maxTextureBytes = 1 << 20

// TextureLoader は URL またはパスからスキンテクスチャを読み込みます。
// http(s) は SSRF 検証の後に httpClient で取得し、それ以外は reader で開きます。
type TextureLoader struct {
	reader     remoteio.InputReader
	httpClient httpkit.ClientInterface
}

// NewTextureLoader は依存関係を注入して TextureLoader を生成します。
func NewTextureLoader(reader remoteio.InputReader, httpClient httpkit.ClientInterface) (*TextureLoader, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader (remoteio.InputReader) is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient (httpkit.ClientInterface) is required")
	}
	return &TextureLoader{reader: reader, httpClient: httpClient}, nil
}

// Load は uri のデータを 64x64 のテクスチャとしてデコードします。
func (l *TextureLoader) Load(ctx context.Context, uri string) (*texture.Texture, error) {
	data, err := l.fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	if len(data) > maxTextureBytes {
		return nil, fmt.Errorf("スキン画像が大きすぎます (%d bytes): %s", len(data), uri)
	}
	tex, err := texture.DecodePNG(data)
	if err != nil {
		return nil, fmt.Errorf("スキン画像のデコードに失敗しました (%s): %w", uri, err)
	}
	return tex, nil
}

func (l *TextureLoader) fetch(ctx context.Context, uri string) ([]byte, error) {
	if isHTTP(uri) {
		if safe, err := isSafeURL(uri); !safe || err != nil {
			slog.WarnContext(ctx, "SSRFの可能性がある、または不正なURLをブロックしました", "url", uri, "error", err)
			return nil, fmt.Errorf("%w: 許可されていないURLです: %s: %w", domain.ErrInvalidRequest, uri, err)
		}
		data, err := l.httpClient.FetchBytes(ctx, uri)
		if err != nil {
			return nil, fmt.Errorf("スキン画像のダウンロードに失敗しました: %w", err)
		}
		return data, nil
	}

	rc, err := l.reader.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("スキン画像を開けませんでした: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxTextureBytes+1))
	if err != nil {
		return nil, fmt.Errorf("スキン画像の読み込みに失敗しました: %w", err)
	}
	return data, nil
}

func isHTTP(uri string) bool {
	u := strings.ToLower(uri)
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// LocalReader はローカルファイルシステムを remoteio.InputReader として扱います。
type LocalReader struct{}

// Open はファイルを開きます。"file://" 接頭辞は取り除かれます。
func (LocalReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(localPath(uri))
}

// List はディレクトリ直下の PNG ファイルのパスを名前順に fn へ渡します。
func (LocalReader) List(ctx context.Context, uri string, fn func(string) error) error {
	dir := localPath(uri)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		if err := fn(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func localPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
