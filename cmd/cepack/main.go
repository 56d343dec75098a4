package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/shiroemons/go-cepack/internal/cepack/app"
	"github.com/shiroemons/go-cepack/internal/cepack/config"
)

func main() {
	// コマンドライン引数の解析
	cfg := config.ParseFlags()

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrNoInputFile) {
			fmt.Println("usage: cepack <file>")
		} else {
			fmt.Printf("[-] %v\n", err)
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// アプリケーションの実行
	application := app.New(cfg)
	if err := application.Run(ctx); err != nil {
		fmt.Printf("[-] %v\n", err)
		stop()
		os.Exit(1)
	}
	fmt.Println("[+] success!")
}
