// Package fileutil は出力ファイルのパス生成と書き込みを行います
package fileutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-cepack/internal/cepack/interfaces"
)

// OutputExt は取り出したトレーナー定義の拡張子
const OutputExt = ".xml"

// ファイルとディレクトリのパーミッション
const (
	FilePerm = 0644
	DirPerm  = 0755
)

// OutputFilename は入力ファイル名に .xml を付けた出力ファイル名を返します。
// 拡張子は残します (trainer.exe → trainer.exe.xml)。
func OutputFilename(inputPath string) (string, error) {
	if inputPath == "" {
		return "", fmt.Errorf("%w: 空のパス", ErrBadFilename)
	}
	base := filepath.Base(inputPath)
	switch base {
	case ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %q", ErrBadFilename, inputPath)
	}
	return base + OutputExt, nil
}

// OutputPath は出力先ディレクトリと入力パスから出力ファイルのパスを返します。
// outputDir が空の場合はカレントディレクトリに出力します。
func OutputPath(outputDir, inputPath string) (string, error) {
	name, err := OutputFilename(inputPath)
	if err != nil {
		return "", err
	}
	if outputDir == "" {
		return name, nil
	}
	return filepath.Join(outputDir, name), nil
}

// EntryPath はアーカイブのエントリを書き出すパスを返します。
// フォルダ名の区切りは \ と / のどちらも受け付け、出力先の外を指すパスは拒否します。
func EntryPath(outputDir, folder, name string) (string, error) {
	rel := filepath.Join(splitArchivePath(folder), splitArchivePath(name))
	if rel == "." || rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsafePath, folder, name)
	}
	if outputDir == "" {
		outputDir = "."
	}
	return filepath.Join(outputDir, rel), nil
}

func splitArchivePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return filepath.FromSlash(p)
}

// SaveFile は親ディレクトリを作成してから data を書き込みます
func SaveFile(fs interfaces.FileSystem, outputPath string, data []byte) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := fs.MkdirAll(dir, DirPerm); err != nil {
			return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
		}
	}
	if err := fs.WriteFile(outputPath, data, FilePerm); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	return nil
}
