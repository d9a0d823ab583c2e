package history

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
)

const (
	// StorageKey は履歴を保存するキーです。
	StorageKey = "minecraft_skin_history"
	// DefaultMaxItems は保持する履歴の既定の上限です。
	DefaultMaxItems = 50
)

// History は生成したスキンを新しい順に保持する上限付きの履歴です。
// 全件を 1 つの JSON 配列として Store に保存し、上限は保存のたびに同期的に適用します。
type History struct {
	store    Store
	maxItems int
	now      func() time.Time

	mu sync.Mutex
}

// Option は History の設定を変更します。
type Option func(*History)

// WithMaxItems は保持件数の上限を設定します。1 未満は無視されます。
func WithMaxItems(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxItems = n
		}
	}
}

// WithClock は作成日時に使う時計を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// New は store を使う History を作成します。
func New(store Store, opts ...Option) (*History, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	h := &History{store: store, maxItems: DefaultMaxItems, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// NewEntry はテクスチャから新しい履歴エントリを作ります。ID は時刻順に並ぶ UUIDv7 です。
func (h *History) NewEntry(name, prompt string, tex *texture.Texture) (domain.SkinEntry, error) {
	data, err := tex.EncodePNG()
	if err != nil {
		return domain.SkinEntry{}, err
	}
	return domain.SkinEntry{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      name,
		Texture:   data,
		CreatedAt: h.now().UTC(),
		Prompt:    prompt,
	}, nil
}

// Save はエントリを先頭に追加します。同じ ID の既存エントリは置き換えられ、
// 上限を超えた古いエントリは捨てられます。
func (h *History) Save(ctx context.Context, entry domain.SkinEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		return err
	}
	next := make([]domain.SkinEntry, 0, len(entries)+1)
	next = append(next, entry)
	for _, e := range entries {
		if e.ID != entry.ID {
			next = append(next, e)
		}
	}
	if len(next) > h.maxItems {
		next = next[:h.maxItems]
	}
	return h.persist(ctx, next)
}

// List は全エントリを新しい順に返します。
func (h *History) List(ctx context.Context) ([]domain.SkinEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load(ctx)
}

// Items は一覧表示用の軽量な項目を返します。
func (h *History) Items(ctx context.Context) ([]domain.HistoryItem, error) {
	entries, err := h.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]domain.HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.HistoryItem{
			ID:        e.ID,
			Name:      e.Name,
			Thumbnail: texture.DataURLPrefix + base64.StdEncoding.EncodeToString(e.Texture),
			CreatedAt: e.CreatedAt,
			Prompt:    e.Prompt,
		})
	}
	return items, nil
}

// Get は ID に一致するエントリを返します。無ければ domain.ErrNotFound です。
func (h *History) Get(ctx context.Context, id string) (domain.SkinEntry, error) {
	entries, err := h.List(ctx)
	if err != nil {
		return domain.SkinEntry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.SkinEntry{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

// Delete は ID に一致するエントリを削除します。無ければ domain.ErrNotFound です。
func (h *History) Delete(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		return err
	}
	next := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(entries) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return h.persist(ctx, next)
}

// Clear は履歴をすべて削除します。
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("履歴の削除に失敗しました: %w", err)
	}
	return nil
}

// load は保存済みの履歴を読みます。壊れたデータは空の履歴として扱います。
func (h *History) load(ctx context.Context) ([]domain.SkinEntry, error) {
	raw, ok, err := h.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("履歴の読み込みに失敗しました: %w", err)
	}
	if !ok || len(raw) == 0 {
		return []domain.SkinEntry{}, nil
	}
	var entries []domain.SkinEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.WarnContext(ctx, "履歴データを解釈できないため空として扱います", "key", StorageKey, "error", err)
		return []domain.SkinEntry{}, nil
	}
	return entries, nil
}

func (h *History) persist(ctx context.Context, entries []domain.SkinEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("履歴のエンコードに失敗しました: %w", err)
	}
	if err := h.store.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("履歴の保存に失敗しました: %w", err)
	}
	return nil
}
