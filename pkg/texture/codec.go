package texture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/shouni/gemini-skin-kit/pkg/domain"
)

// DataURLPrefix は埋め込み PNG の data URL 接頭辞です。
const DataURLPrefix = "data:image/png;base64,"

func invalidSize(b image.Rectangle) error {
	return fmt.Errorf("%w: want %dx%d, got %dx%d", domain.ErrInvalidTexture, Size, Size, b.Dx(), b.Dy())
}

// EncodePNG はテクスチャを可逆な PNG に変換します。alpha チャンネルは保持されます。
func (t *Texture) EncodePNG() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, t.img); err != nil {
		return nil, fmt.Errorf("PNGエンコード失敗: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePNG は画像データ（PNG, GIF, JPEG等）を 64x64 のテクスチャに変換します。
func DecodePNG(data []byte) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTexture, err)
	}
	return FromImage(img)
}

// DataURL はテクスチャを "data:image/png;base64,..." 形式で返します。
func (t *Texture) DataURL() (string, error) {
	data, err := t.EncodePNG()
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// ParseDataURL は埋め込み PNG の data URL をテクスチャに戻します。
func ParseDataURL(s string) (*Texture, error) {
	if !strings.HasPrefix(s, DataURLPrefix) {
		return nil, fmt.Errorf("%w: not a png data URL", domain.ErrInvalidTexture)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, DataURLPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTexture, err)
	}
	return DecodePNG(data)
}
