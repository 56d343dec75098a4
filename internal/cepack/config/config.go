// Package config はcepackコマンドの設定管理を行います
package config

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/shiroemons/go-cepack/internal/cepack/extractor"
)

const Version = "0.1.0"

// 先頭のファイル数フィールドのバイトオーダー
const (
	CountEndianLittle = "little"
	CountEndianNative = "native"
)

// Config はアプリケーションの設定を保持します
type Config struct {
	InputPath   string
	OutputDir   string
	CountEndian string
	HeaderSkip  int
	ListEntries bool
	DumpEntries bool
	DebugMode   bool
	DryRun      bool
	Force       bool
	ShowVersion bool
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := &Config{}

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] <file>\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "  -o string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput directory for the recovered .xml (default: current directory)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --count-endian string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tbyte order of the archive file count: little or native (default \"little\")")
		fmt.Fprintln(flag.CommandLine.Output(), "  --skip int")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tbytes to drop from the start of the decompressed trainer (default 4)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -l\tlist archive entries")
		fmt.Fprintln(flag.CommandLine.Output(), "  -x\textract every archive entry into the output directory")
		fmt.Fprintln(flag.CommandLine.Output(), "  --debug")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tenable debug output")
		fmt.Fprintln(flag.CommandLine.Output(), "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --dry-run")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tperform a dry run without writing output files")
		fmt.Fprintln(flag.CommandLine.Output(), "  -n\tperform a dry run without writing output files (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --force")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toverwrite existing output files")
		fmt.Fprintln(flag.CommandLine.Output(), "  -f\toverwrite existing output files (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --version")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow version information")
		fmt.Fprintln(flag.CommandLine.Output(), "  -v\tshow version information (shorthand)")
	}

	// 出力ディレクトリ
	flag.StringVar(&config.OutputDir, "o", "", "output directory for the recovered .xml")

	// アーカイブ形式
	flag.StringVar(&config.CountEndian, "count-endian", CountEndianLittle, "byte order of the archive file count: little or native")
	flag.IntVar(&config.HeaderSkip, "skip", extractor.DefaultHeaderSkip, "bytes to drop from the start of the decompressed trainer")

	// アーカイブの内容
	flag.BoolVar(&config.ListEntries, "l", false, "list archive entries")
	flag.BoolVar(&config.DumpEntries, "x", false, "extract every archive entry into the output directory")

	// デバッグモード
	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// ドライランモード
	flag.BoolVar(&config.DryRun, "dry-run", false, "perform a dry run without writing output files")
	flag.BoolVar(&config.DryRun, "n", false, "perform a dry run without writing output files (shorthand)")

	// 上書き
	flag.BoolVar(&config.Force, "force", false, "overwrite existing output files")
	flag.BoolVar(&config.Force, "f", false, "overwrite existing output files (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	config.InputPath = flag.Arg(0)

	return config
}

// Validate は設定値を検証します
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrNoInputFile
	}
	if _, err := c.CountOrder(); err != nil {
		return err
	}
	if c.HeaderSkip < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHeaderSkip, c.HeaderSkip)
	}
	return nil
}

// CountOrder は先頭のファイル数フィールドのバイトオーダーを返します
func (c *Config) CountOrder() (binary.ByteOrder, error) {
	switch c.CountEndian {
	case "", CountEndianLittle:
		return binary.LittleEndian, nil
	case CountEndianNative:
		return binary.NativeEndian, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCountEndian, c.CountEndian)
	}
}

// ExtractorOptions は展開処理の設定を返します
func (c *Config) ExtractorOptions() (extractor.Options, error) {
	opts := extractor.DefaultOptions()
	order, err := c.CountOrder()
	if err != nil {
		return opts, err
	}
	opts.CountOrder = order
	opts.HeaderSkip = c.HeaderSkip
	return opts, nil
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("cepack version %s\n", Version)
		os.Exit(0)
	}
}
