package adapters

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// TextModel はテキスト生成モデルとの通信を抽象化するインターフェースです。
// gemini.GenerativeModel の GenerateContent と同じシグネチャです。
type TextModel interface {
	GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error)
}

// SchemeCacher は取得済みカラースキームのキャッシュ操作を抽象化するインターフェースです。
type SchemeCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// ParseToText は Gemini のレスポンスから最初の候補のテキストを連結して返します。
func ParseToText(resp *gemini.Response) (string, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return "", fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}
	if sb.Len() > 0 {
		return sb.String(), nil
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return "", fmt.Errorf("テキスト生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}

	return "", fmt.Errorf("テキストデータが見つかりませんでした")
}

// isSafeURL は SSRF 対策として URL を検証します。
// 名前解決されたすべての IP アドレスに対してプライベート IP チェックを行います。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP

	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("名前解決失敗: %w", err)
		}
		ips = resolvedIPs
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません")
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
