// Package server はスタジオを HTTP API と MCP ツールとして公開します。
package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/editor"
	"github.com/shouni/gemini-skin-kit/pkg/imgutil"
	"github.com/shouni/gemini-skin-kit/pkg/studio"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
)

// maxBodyBytes はリクエストボディの上限です。
const maxBodyBytes = 1 << 20

// thumbnailBackground は JPEG サムネイルで透明部分を埋める色です。
var thumbnailBackground = color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}

// Handler は HTTP と MCP の両方から使われるスタジオのフロントです。
type Handler struct {
	studio       *studio.Studio
	previewScale int
}

// NewHandler は Handler を初期化します。previewScale が範囲外なら既定値を使います。
func NewHandler(s *studio.Studio, previewScale int) (*Handler, error) {
	if s == nil {
		return nil, fmt.Errorf("studio is required")
	}
	if previewScale < 1 || previewScale > imgutil.MaxScale {
		previewScale = imgutil.DefaultScale
	}
	return &Handler{studio: s, previewScale: previewScale}, nil
}

// Router は共通ミドルウェア付きのルーターを返します。
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	h.RegisterHTTP(r)
	return r
}

// RegisterHTTP はスキン API のエンドポイントを登録します。
func (h *Handler) RegisterHTTP(r chi.Router) {
	r.Route("/api/skins", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleGenerate)
		r.Delete("/", h.handleClear)
		r.Post("/blank", h.handleBlank)
		r.Post("/import", h.handleImport)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Get("/skin.png", h.handleDownload)
			r.Get("/preview.png", h.handlePreview)
			r.Get("/thumbnail.jpg", h.handleThumbnail)
			r.Post("/edits", h.handleEdit)
		})
	})
}

// skinResponse は生成・編集結果の JSON 表現です。
type skinResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Prompt         string    `json:"prompt,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Texture        string    `json:"texture,omitempty"` // data URL
	Source         string    `json:"source,omitempty"`
	Seed           *int64    `json:"seed,omitempty"`
	FallbackReason string    `json:"fallbackReason,omitempty"`
	Changed        *int      `json:"changed,omitempty"`
}

func newSkinResponse(e domain.SkinEntry) skinResponse {
	return skinResponse{
		ID:        e.ID,
		Name:      e.Name,
		Prompt:    e.Prompt,
		CreatedAt: e.CreatedAt,
		Texture:   dataURL(e.Texture),
	}
}

func fromSkin(s *studio.Skin) skinResponse {
	resp := newSkinResponse(s.Entry)
	resp.Source = string(s.Source)
	resp.FallbackReason = s.FallbackReason
	if s.Source != domain.SourceBlank {
		seed := s.UsedSeed
		resp.Seed = &seed
	}
	return resp
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	skin, err := h.studio.Generate(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, fromSkin(skin))
}

func (h *Handler) handleBlank(w http.ResponseWriter, r *http.Request) {
	skin, err := h.studio.CreateBlank(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, fromSkin(skin))
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		URI     string `json:"uri"`
		DataURL string `json:"dataUrl"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var (
		entry domain.SkinEntry
		err   error
	)
	switch {
	case req.DataURL != "":
		var tex *texture.Texture
		tex, err = texture.ParseDataURL(req.DataURL)
		if err == nil {
			entry, err = h.studio.Import(r.Context(), req.Name, tex)
		}
	case req.URI != "":
		entry, err = h.studio.ImportURI(r.Context(), req.Name, req.URI)
	default:
		err = fmt.Errorf("%w: uri or dataUrl is required", domain.ErrInvalidRequest)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSkinResponse(entry))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.studio.History().Items(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.studio.History().Clear(r.Context()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.studio.History().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSkinResponse(entry))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.studio.History().Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	entry, err := h.studio.History().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.FileName(entry.Name)))
	writeBytes(w, "image/png", entry.Texture)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	scale := queryInt(r, "scale", h.previewScale)
	if scale < 1 || scale > imgutil.MaxScale {
		writeError(w, http.StatusBadRequest, fmt.Errorf("scale must be between 1 and %d", imgutil.MaxScale))
		return
	}
	tex, _, err := h.studio.Texture(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	data, err := imgutil.PreviewPNG(tex.Image(), scale)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeBytes(w, "image/png", data)
}

func (h *Handler) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	tex, _, err := h.studio.Texture(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	data, err := imgutil.Thumbnail(tex.Image(), 2, thumbnailBackground)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeBytes(w, "image/jpeg", data)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ops []editor.Op `json:"ops"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, changed, err := h.studio.Edit(r.Context(), chi.URLParam(r, "id"), req.Ops)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	resp := newSkinResponse(entry)
	resp.Changed = &changed
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// writeDomainError はドメインエラーを HTTP ステータスに対応付けます。
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "リクエストの処理に失敗しました",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, code, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrMalformedColor):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTexture):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func dataURL(png []byte) string {
	return texture.DataURLPrefix + base64.StdEncoding.EncodeToString(png)
}
