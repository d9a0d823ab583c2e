package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Mode
		wantErr string
	}{
		{"demo", "demo", ModeDemo, ""},
		{"大文字と空白を許容する", "  AI ", ModeAI, ""},
		{"空文字はdemo", "", ModeDemo, ""},
		{"タイポには候補を提示する", "dmeo", "", `did you mean "demo"`},
		{"無関係な値は一覧を提示する", "photorealistic", "", "want one of demo, ai"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerationRequest_Validate(t *testing.T) {
	t.Run("空白のみのプロンプトは入力エラーなのだ", func(t *testing.T) {
		err := GenerationRequest{Prompt: " \t\n"}.Validate()
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	})

	t.Run("Seedがnilでも有効なリクエストなのだ", func(t *testing.T) {
		req := GenerationRequest{Prompt: "走るずんだもん", Mode: ModeAI}
		assert.NoError(t, req.Validate())
		assert.Nil(t, req.Seed)
	})
}

func TestSkinName(t *testing.T) {
	assert.Equal(t, "Custom Skin", SkinName("   "))
	assert.Equal(t, "red knight", SkinName(" red knight "))

	long := strings.Repeat("a", 31)
	assert.Equal(t, strings.Repeat("a", 30)+"...", SkinName(long))
	assert.Equal(t, strings.Repeat("a", 30), SkinName(strings.Repeat("a", 30)))

	// マルチバイト文字はルーン単位で数える
	korean := strings.Repeat("빨", 31)
	assert.Equal(t, strings.Repeat("빨", 30)+"...", SkinName(korean))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Red_hoodie_knight.png", FileName("Red  hoodie\tknight"))
	assert.Equal(t, "minecraft_skin.png", FileName(""))
}

func TestErrors(t *testing.T) {
	t.Run("MalformedColorErrorはErrMalformedColorとして判定できる", func(t *testing.T) {
		var err error = &MalformedColorError{Field: "body.primary", Value: "notacolor"}
		assert.ErrorIs(t, err, ErrMalformedColor)
		assert.Contains(t, err.Error(), "body.primary")

		var mc *MalformedColorError
		require.True(t, errors.As(err, &mc))
		assert.Equal(t, "notacolor", mc.Value)
	})

	t.Run("SchemeParseErrorは原因エラーも辿れる", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := &SchemeParseError{Reason: "invalid json", Err: cause}
		assert.ErrorIs(t, err, ErrSchemeParse)
		assert.ErrorIs(t, err, cause)
	})
}
