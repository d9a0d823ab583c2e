package adapters

import (
	"testing"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseToText(t *testing.T) {
	t.Run("複数のテキストパーツを連結する", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{{Text: `{"a":`}, nil, {Text: `1}`}}},
				}},
			},
		}
		text, err := ParseToText(resp)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, text)
	})

	t.Run("応答なし", func(t *testing.T) {
		for _, resp := range []*gemini.Response{nil, {}, {RawResponse: &genai.GenerateContentResponse{}}} {
			_, err := ParseToText(resp)
			assert.Error(t, err)
		}
	})

	t.Run("FinishReason が異常（SAFETY等）な場合", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			},
		}
		_, err := ParseToText(resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FinishReason")
	})

	t.Run("テキストが空", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
			},
		}
		_, err := ParseToText(resp)
		assert.Error(t, err)
	})
}

func TestIsSafeURL(t *testing.T) {
	tests := []struct {
		url  string
		safe bool
	}{
		{"http://93.184.216.34/skin.png", true},
		{"https://8.8.8.8/a.png", true},
		{"http://127.0.0.1/skin.png", false},
		{"http://10.0.0.5/skin.png", false},
		{"http://192.168.1.1/skin.png", false},
		{"http://169.254.169.254/latest/meta-data", false},
		{"http://[::1]/skin.png", false},
		{"http://0.0.0.0/skin.png", false},
		{"ftp://93.184.216.34/skin.png", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			safe, err := isSafeURL(tt.url)
			assert.Equal(t, tt.safe, safe)
			if !tt.safe {
				assert.Error(t, err)
			}
		})
	}
}
