// Package peres は PE 実行ファイルのリソースディレクトリからリソースを読み込むためのパッケージです。
//
// 基本的な使い方:
//
//	img, err := peres.Open("trainer.exe")
//	if err != nil {
//	    return err
//	}
//	defer img.Close()
//	data, err := img.FindResource(peres.RCData, peres.StringName("ARCHIVE"))
package peres

import (
	"debug/pe"
	"fmt"
	"io"
	"os"

	"github.com/tc-hib/winres"
)

// Image は PE ファイルとそのリソースを表します
type Image struct {
	resources *winres.ResourceSet // nil ならリソースディレクトリなし
	closer    io.Closer
}

// Open は PE ファイルを開きます
func Open(filename string) (*Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	img, err := NewImage(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	img.closer = f
	return img, nil
}

// NewImage はサイズ size の r から PE ファイルを読み込みます
func NewImage(r io.ReaderAt, size int64) (*Image, error) {
	file, err := pe.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	dir, err := resourceDataDirectory(file)
	if err != nil {
		return nil, err
	}
	img := &Image{}
	if dir.VirtualAddress == 0 || dir.Size == 0 {
		// リソースを持たない PE ファイル
		return img, nil
	}

	// ヘッダのサイズをそのまま信用すると読み込み前に巨大な確保が起きる
	if err := checkResourceSection(file, dir, size); err != nil {
		return nil, err
	}

	rs, err := winres.LoadFromEXE(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	img.resources = rs
	return img, nil
}

// Close は PE ファイルを閉じます
func (img *Image) Close() error {
	if img.closer != nil {
		err := img.closer.Close()
		img.closer = nil
		return err
	}
	return nil
}

// HasResources はリソースディレクトリを持つかどうかを返します
func (img *Image) HasResources() bool {
	return img.resources != nil
}

// resourceDataDirectory はオプションヘッダからリソースのデータディレクトリを取得します
func resourceDataDirectory(file *pe.File) (pe.DataDirectory, error) {
	switch oh := file.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if oh.NumberOfRvaAndSizes <= pe.IMAGE_DIRECTORY_ENTRY_RESOURCE {
			return pe.DataDirectory{}, nil
		}
		return oh.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_RESOURCE], nil
	case *pe.OptionalHeader64:
		if oh.NumberOfRvaAndSizes <= pe.IMAGE_DIRECTORY_ENTRY_RESOURCE {
			return pe.DataDirectory{}, nil
		}
		return oh.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_RESOURCE], nil
	default:
		return pe.DataDirectory{}, fmt.Errorf("%w: オプションヘッダがありません", ErrInvalidImage)
	}
}

// checkResourceSection はリソースディレクトリを含むセクションが実際のファイルに収まっているか確認します
func checkResourceSection(file *pe.File, dir pe.DataDirectory, size int64) error {
	s := sectionFor(file, dir.VirtualAddress)
	if s == nil {
		return fmt.Errorf("%w: リソースディレクトリ (RVA 0x%X) を含むセクションがありません", ErrInvalidImage, dir.VirtualAddress)
	}
	if size < 0 || uint64(s.Offset)+uint64(s.Size) > uint64(size) {
		return fmt.Errorf("%w: セクション %s (offset 0x%X, 0x%X バイト) がファイルサイズ 0x%X を超えています",
			ErrInvalidImage, s.Name, s.Offset, s.Size, size)
	}
	if uint64(dir.VirtualAddress-s.VirtualAddress)+uint64(dir.Size) > uint64(s.Size) {
		return fmt.Errorf("%w: リソースディレクトリ (0x%X バイト) がセクション %s の範囲外です",
			ErrInvalidImage, dir.Size, s.Name)
	}
	return nil
}

// sectionFor は RVA を含むセクションを返します
func sectionFor(file *pe.File, rva uint32) *pe.Section {
	for _, s := range file.Sections {
		span := max(s.VirtualSize, s.Size)
		if rva >= s.VirtualAddress && uint64(rva) < uint64(s.VirtualAddress)+uint64(span) {
			return s
		}
	}
	return nil
}
