package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/editor"
	"github.com/shouni/gemini-skin-kit/pkg/imgutil"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
)

const version = "0.1.0"

func (a *app) cmdGenerate(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	mode := fs.String("mode", "", "生成モード (demo | ai)")
	seed := fs.Int64("seed", 0, "スペックル配置のシード")
	out := fs.String("o", "", "スキン PNG の出力先")
	preview := fs.String("preview", "", "拡大プレビュー PNG の出力先")
	scale := fs.Int("scale", imgutil.DefaultScale, "プレビューの倍率")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := domain.GenerationRequest{Prompt: strings.Join(fs.Args(), " ")}
	if *mode != "" {
		m, err := domain.ParseMode(*mode)
		if err != nil {
			return err
		}
		req.Mode = m
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			req.Seed = seed
		}
	})

	skin, err := a.studio.Generate(ctx, req)
	if err != nil {
		return err
	}
	if skin.FallbackReason != "" {
		slog.WarnContext(ctx, "カラースキームを取得できなかったため手続き生成しました", "reason", skin.FallbackReason)
	}
	fmt.Fprintf(stdout, "%s\t%s\tsource=%s seed=%d\n", skin.Entry.ID, skin.Entry.Name, skin.Source, skin.UsedSeed)
	return a.writeImages(skin.Entry, *out, *preview, *scale)
}

func (a *app) cmdBlank(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("blank", flag.ContinueOnError)
	out := fs.String("o", "", "スキン PNG の出力先")
	if err := fs.Parse(args); err != nil {
		return err
	}
	skin, err := a.studio.CreateBlank(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s\t%s\n", skin.Entry.ID, skin.Entry.Name)
	return a.writeImages(skin.Entry, *out, "", 0)
}

// cmdEdit は JSON 配列の編集操作を適用します。-ops に "@file" を渡すとファイルから読みます。
func (a *app) cmdEdit(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	id := fs.String("id", "", "編集するスキンの ID")
	opsArg := fs.String("ops", "", `編集操作の JSON 配列 (例: [{"tool":"pencil","x":8,"y":8,"color":"#ff0000"}])`)
	out := fs.String("o", "", "編集後のスキン PNG の出力先")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *opsArg == "" {
		return fmt.Errorf("%w: -id and -ops are required", domain.ErrInvalidRequest)
	}

	raw := []byte(*opsArg)
	if path, ok := strings.CutPrefix(*opsArg, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("編集操作ファイルの読み込みに失敗しました: %w", err)
		}
		raw = data
	}
	var ops []editor.Op
	if err := json.Unmarshal(raw, &ops); err != nil {
		return fmt.Errorf("%w: invalid ops: %w", domain.ErrInvalidRequest, err)
	}

	entry, changed, err := a.studio.Edit(ctx, *id, ops)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s\t%s\tchanged=%d\n", entry.ID, entry.Name, changed)
	return a.writeImages(entry, *out, "", 0)
}

func (a *app) cmdImport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	name := fs.String("name", "", "表示名")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: import takes exactly one path or URL", domain.ErrInvalidRequest)
	}
	entry, err := a.studio.ImportURI(ctx, *name, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s\t%s\n", entry.ID, entry.Name)
	return nil
}

func (a *app) cmdHistory(ctx context.Context, args []string, stdout io.Writer) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	hist := a.studio.History()

	switch sub {
	case "list":
		entries, err := hist.List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCREATED")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Name, e.CreatedAt.Local().Format(time.DateTime))
		}
		return tw.Flush()

	case "export":
		fs := flag.NewFlagSet("history export", flag.ContinueOnError)
		out := fs.String("o", "", "出力先 (省略時はスキン名から決める)")
		preview := fs.String("preview", "", "拡大プレビュー PNG の出力先")
		scale := fs.Int("scale", imgutil.DefaultScale, "プレビューの倍率")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("%w: export takes exactly one id", domain.ErrInvalidRequest)
		}
		entry, err := hist.Get(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		path := *out
		if path == "" {
			path = domain.FileName(entry.Name)
		}
		if err := a.writeImages(entry, path, *preview, *scale); err != nil {
			return err
		}
		fmt.Fprintln(stdout, path)
		return nil

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("%w: delete takes exactly one id", domain.ErrInvalidRequest)
		}
		return hist.Delete(ctx, args[0])

	case "clear":
		return hist.Clear(ctx)

	default:
		return fmt.Errorf("%w: unknown history command %q (want list, export, delete or clear)", domain.ErrInvalidRequest, sub)
	}
}

func (a *app) cmdServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.Server.Addr, "待ち受けアドレス")
	if err := fs.Parse(args); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           a.handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      a.cfg.Gemini.Timeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", *addr, "ai", a.cfg.AIEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func (a *app) cmdMCP(ctx context.Context) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "skinkit", Version: version}, nil)
	a.handler.RegisterMCP(srv)
	slog.Info("MCP server starting on stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// writeImages は PNG とプレビューを指定されたパスに書き出します。空のパスは書き出しません。
func (a *app) writeImages(entry domain.SkinEntry, out, preview string, scale int) error {
	if out != "" {
		if err := os.WriteFile(out, entry.Texture, 0o644); err != nil {
			return fmt.Errorf("スキンの書き出しに失敗しました: %w", err)
		}
	}
	if preview == "" {
		return nil
	}
	tex, err := texture.DecodePNG(entry.Texture)
	if err != nil {
		return err
	}
	data, err := imgutil.PreviewPNG(tex.Image(), scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(preview, data, 0o644); err != nil {
		return fmt.Errorf("プレビューの書き出しに失敗しました: %w", err)
	}
	return nil
}
