// Package interfaces はcepackコマンドで使用するインターフェースを定義します
package interfaces

import (
	"io"

	"github.com/shiroemons/go-cepack/pkg/peres"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
}

// Image はリソースを検索できる PE ファイルのインターフェースです
type Image interface {
	io.Closer
	FindResource(typ, name peres.Name) ([]byte, error)
}

// ResourceLister はリソースを列挙できる PE ファイルのインターフェースです
type ResourceLister interface {
	Resources() ([]peres.ResourceInfo, error)
	HasResources() bool
}

// ImageOpener は PE ファイルを開くインターフェースです
type ImageOpener interface {
	Open(path string) (Image, error)
}

// Decompressor は raw deflate データを解凍するインターフェースです
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
	WithField(key string, value any) Logger
}
