package adapters

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenAIModel は google.golang.org/genai のクライアントを TextModel として使うための薄いラッパーです。
// 応答は JSON モードで要求します。
type GenAIModel struct {
	client *genai.Client
}

// NewGenAIModel は API キーを使って Gemini API バックエンドのクライアントを作成します。
func NewGenAIModel(ctx context.Context, apiKey string) (*GenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini APIキーが設定されていません")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return &GenAIModel{client: client}, nil
}

// GenerateContent はプロンプトを送信し、レスポンスを gemini.Response に包んで返します。
func (m *GenAIModel) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	resp, err := m.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}
