// Command skinkit はテキストから Minecraft スキンを生成・編集するツールです。
//
//	skinkit [-config path] <command> [flags]
//
// コマンド: generate, blank, edit, import, history, serve, mcp
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/gemini-skin-kit/pkg/config"
)

const usage = `usage: skinkit [-config path] <command> [flags]

commands:
  generate  プロンプトからスキンを生成して保存する
  blank     透明な新規スキンを作成する
  edit      保存済みスキンに編集操作を適用する
  import    PNG ファイルまたは URL からスキンを取り込む
  history   履歴の一覧・書き出し・削除 (list | export | delete | clear)
  serve     HTTP API を起動する
  mcp       標準入出力で MCP サーバーを起動する

履歴は history.path (または SKINKIT_HISTORY_DB) の SQLite に保存されます。
どちらも無い場合はユーザー設定ディレクトリの skinkit/history.db を使い、
SKINKIT_HISTORY_DB を空にするとプロセス内のメモリだけに保持します。
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		slog.Error("skinkit", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("skinkit", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	configPath := fs.String("config", os.Getenv("SKINKIT_CONFIG"), "YAML 設定ファイル")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}
	lvl, _ := cfg.SlogLevel()
	// stdout は MCP の通信路と結果の出力に使うため、ログは stderr に出す
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "generate":
		return a.cmdGenerate(ctx, rest, stdout)
	case "blank":
		return a.cmdBlank(ctx, rest, stdout)
	case "edit":
		return a.cmdEdit(ctx, rest, stdout)
	case "import":
		return a.cmdImport(ctx, rest, stdout)
	case "history":
		return a.cmdHistory(ctx, rest, stdout)
	case "serve":
		return a.cmdServe(ctx, rest)
	case "mcp":
		return a.cmdMCP(ctx)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
