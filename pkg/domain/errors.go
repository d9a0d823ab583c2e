package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRegion は部位・面・レイヤーの組み合わせに対応する UV 領域が無いことを示します。
	ErrInvalidRegion = errors.New("invalid UV region")
	// ErrEmptyPrompt は空または空白のみのプロンプトです。
	ErrEmptyPrompt = errors.New("prompt must not be empty")
	// ErrMalformedColor は色の値が16進カラーとして解釈できないことを示します。
	ErrMalformedColor = errors.New("malformed color")
	// ErrSchemeParse はモデル出力がカラースキームの形として解釈できないことを示します。
	ErrSchemeParse = errors.New("color scheme parse error")
	// ErrSchemeAcquisition はカラースキームの取得（通信・タイムアウト等）に失敗したことを示します。
	ErrSchemeAcquisition = errors.New("color scheme acquisition failure")
	// ErrNotFound は履歴に該当するスキンが無いことを示します。
	ErrNotFound = errors.New("skin not found")
	// ErrInvalidTexture は 64x64 のスキン画像として扱えないデータです。
	ErrInvalidTexture = errors.New("invalid skin texture")
	// ErrInvalidRequest は未知のモードやツール等、呼び出し元の入力の誤りです。
	ErrInvalidRequest = errors.New("invalid request")
)

// MalformedColorError はどのフィールドのどの値が不正かを保持します。
type MalformedColorError struct {
	Field string
	Value string
}

func (e *MalformedColorError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed color %q", e.Value)
	}
	return fmt.Sprintf("malformed color %q in %s", e.Value, e.Field)
}

func (e *MalformedColorError) Unwrap() error { return ErrMalformedColor }

// SchemeParseError はカラースキームのパース失敗理由を保持します。
type SchemeParseError struct {
	Reason string
	Err    error
}

func (e *SchemeParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("color scheme parse error: %s: %v", e.Reason, e.Err)
	}
	return "color scheme parse error: " + e.Reason
}

func (e *SchemeParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSchemeParse, e.Err}
	}
	return []error{ErrSchemeParse}
}
