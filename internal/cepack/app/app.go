// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shiroemons/go-cepack/internal/cepack/config"
	cperrors "github.com/shiroemons/go-cepack/internal/cepack/errors"
	"github.com/shiroemons/go-cepack/internal/cepack/extractor"
	"github.com/shiroemons/go-cepack/internal/cepack/fileutil"
	"github.com/shiroemons/go-cepack/internal/cepack/interfaces"
	"github.com/shiroemons/go-cepack/pkg/peres"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config       *config.Config
	logger       interfaces.Logger
	opener       interfaces.ImageOpener
	decompressor interfaces.Decompressor
	fs           interfaces.FileSystem
	stdout       io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem   interfaces.FileSystem
	Opener       interfaces.ImageOpener
	Decompressor interfaces.Decompressor
	Logger       interfaces.Logger
	Stdout       io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	var logger interfaces.Logger = config.NewDebugLogger(cfg.DebugMode)
	if opts.Logger != nil {
		logger = opts.Logger
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	var opener interfaces.ImageOpener = PEOpener{}
	if opts.Opener != nil {
		opener = opts.Opener
	}

	var decompressor interfaces.Decompressor = extractor.FlateDecompressor{}
	if opts.Decompressor != nil {
		decompressor = opts.Decompressor
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &App{
		config:       cfg,
		logger:       logger,
		opener:       opener,
		decompressor: decompressor,
		fs:           fs,
		stdout:       stdout,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	opts, err := a.config.ExtractorOptions()
	if err != nil {
		return err
	}
	opts.OnState = a.report

	path := a.config.InputPath
	img, err := a.opener.Open(path)
	if err != nil {
		return openError(path, err)
	}
	defer img.Close()
	a.logResources(img)

	fmt.Fprintf(a.stdout, "[+] attempting to unpack \"%s\"\n", path)

	ext := extractor.NewExtractorWithDecompressor(a.logger, a.decompressor, opts)
	result, err := ext.Extract(img)
	if err != nil {
		return err
	}

	if a.config.ListEntries {
		a.listEntries(result)
	}
	if a.config.DumpEntries {
		if err := a.dumpEntries(result); err != nil {
			return err
		}
	}

	return a.writeDefinition(result)
}

// logResources はデバッグモードの場合にリソースの一覧を出力します
func (a *App) logResources(img interfaces.Image) {
	lister, ok := img.(interfaces.ResourceLister)
	if !ok || !a.config.DebugMode {
		return
	}
	if !lister.HasResources() {
		a.logger.Printf("リソースディレクトリがありません\n")
		return
	}
	resources, err := lister.Resources()
	if err != nil {
		a.logger.Printf("リソース一覧を取得できません: %v\n", err)
		return
	}
	for _, r := range resources {
		a.logger.WithField("type", r.Type).WithField("lang", r.Lang).WithField("size", r.Size).Printf("リソース %s\n", r.Name)
	}
}

// report は展開処理の途中経過を表示します
func (a *App) report(s extractor.State, r *extractor.Result) {
	switch s {
	case extractor.StatePayloadAssembled:
		fmt.Fprintf(a.stdout, "[+] found archive! length: 0x%X\n", len(r.Payload))
	case extractor.StateSignatureVerified:
		fmt.Fprintln(a.stdout, "[+] matched trainer signature!")
	}
}

// listEntries はアーカイブ内のファイル一覧を表示します
func (a *App) listEntries(result *extractor.Result) {
	if result.Archive == nil {
		fmt.Fprintln(a.stdout, "[*] direct trainer, no archive entries")
		return
	}
	fmt.Fprintf(a.stdout, "[*] %d archive entries\n", result.Archive.FileCount)
	for _, entry := range result.Archive.Entries {
		folder := entry.Folder
		if folder == "" {
			folder = "-"
		}
		fmt.Fprintf(a.stdout, "    %-32s %-16s %#10x\n", entry.Name, folder, len(entry.Data))
	}
}

// dumpEntries はアーカイブ内の全ファイルを出力先に書き出します
func (a *App) dumpEntries(result *extractor.Result) error {
	if result.Archive == nil {
		a.logger.Printf("アーカイブ形式ではないため書き出すファイルはありません\n")
		return nil
	}
	for _, entry := range result.Archive.Entries {
		outPath, err := fileutil.EntryPath(a.config.OutputDir, entry.Folder, entry.Name)
		if err != nil {
			return cperrors.New(cperrors.KindBadFilename, "dump", entry.Name, err)
		}
		fmt.Fprintf(a.stdout, "[+] extracting \"%s\"\n", outPath)
		if err := a.checkOverwrite("dump", outPath); err != nil {
			return err
		}
		if a.config.DryRun {
			continue
		}
		if err := fileutil.SaveFile(a.fs, outPath, entry.Data); err != nil {
			return cperrors.New(cperrors.KindIOError, "dump", outPath, err)
		}
	}
	return nil
}

// writeDefinition はトレーナー定義を <入力ファイル名>.xml に保存します
func (a *App) writeDefinition(result *extractor.Result) error {
	outPath, err := fileutil.OutputPath(a.config.OutputDir, a.config.InputPath)
	if err != nil {
		return cperrors.New(cperrors.KindBadFilename, "write", a.config.InputPath, err)
	}

	fmt.Fprintf(a.stdout, "[+] writing result to \"%s\"\n", outPath)
	if err := a.checkOverwrite("write", outPath); err != nil {
		return err
	}

	if a.config.DryRun {
		a.logger.WithField("size", len(result.Definition)).Printf("ドライランのため %s は書き込みません\n", outPath)
		return nil
	}
	if err := fileutil.SaveFile(a.fs, outPath, result.Definition); err != nil {
		return cperrors.New(cperrors.KindIOError, "write", outPath, err)
	}
	a.logger.Printf("データを %s に保存しました\n", outPath)
	return nil
}

// checkOverwrite は -f なしで既存のファイルを上書きしようとした場合にエラーを返します
func (a *App) checkOverwrite(op, path string) error {
	if a.config.Force || !a.fs.FileExists(path) {
		return nil
	}
	return cperrors.New(cperrors.KindIOError, op, path, fileutil.ErrOutputExists)
}

// openError は PE ファイルを開けなかった原因を種別付きのエラーに変換します
func openError(path string, err error) error {
	kind := cperrors.KindIOError
	if errors.Is(err, peres.ErrInvalidImage) {
		kind = cperrors.KindInvalidImage
	}
	return cperrors.New(kind, "open", path, err)
}
