package adapters

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

// mockTextModel は TextModel のテスト用モックです。
type mockTextModel struct {
	generateFunc func(ctx context.Context, model, prompt string) (*gemini.Response, error)
	calls        int
	lastModel    string
	lastPrompt   string
}

func (m *mockTextModel) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	m.calls++
	m.lastModel = model
	m.lastPrompt = prompt
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, prompt)
	}
	return nil, nil
}

// textResponse は 1 候補・1 テキストパーツのレスポンスを作ります。
func textResponse(text string) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
				FinishReason: genai.FinishReasonStop,
			}},
		},
	}
}

// mockHTTPClient は httpkit.ClientInterface を実装します。
type mockHTTPClient struct {
	fetchFunc func(ctx context.Context, url string) ([]byte, error)
	calls     int
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) DoRequest(req *http.Request) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) FetchAndDecodeJSON(ctx context.Context, url string, v any) error {
	return nil
}

func (m *mockHTTPClient) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) PostRawBodyAndFetchBytes(ctx context.Context, url string, body []byte, contentType string) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) IsSafeURL(urlStr string) (bool, error) {
	return false, nil
}

func (m *mockHTTPClient) IsSecureServiceURL(serviceURL string) bool {
	return false
}

// mockReader は remoteio.InputReader をメモリ上のデータで実装します。
type mockReader struct {
	files map[string][]byte
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	data, ok := m.files[uri]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	for name := range m.files {
		if err := fn(name); err != nil {
			return err
		}
	}
	return nil
}

// mockCache は SchemeCacher を実装します。
type mockCache struct {
	data map[string]any
	ttl  time.Duration
}

func (m *mockCache) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	if m.data == nil {
		m.data = make(map[string]any)
	}
	m.data[key] = value
	m.ttl = d
}
