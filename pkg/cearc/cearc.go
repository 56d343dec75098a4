// Package cearc はトレーナー実行ファイルに埋め込まれたアーカイブ（ARCHIVE リソース）を読み込むためのパッケージです。
//
// アーカイブ形式:
//
//	+-------+-----------------------------------------------+
//	| count |            raw deflate で圧縮された本体         |
//	+-------+-----------------------------------------------+
//	|  u32  | (len name)(len folder)(len data) × count       |
//	+-------+-----------------------------------------------+
//
// 本体の各フィールドは u32 リトルエンディアンの長さを先頭に持ちます。
// 先頭の count だけは生成側によってネイティブエンディアンで書かれるため、
// WithCountOrder で切り替えられます。
//
// 基本的な使い方:
//
//	archive, err := cearc.Parse(data)
//	if err != nil {
//	    return err
//	}
//	if entry, ok := archive.Find("CET_TRAINER.CETRAINER"); ok {
//	    // entry.Data を処理...
//	}
package cearc

import (
	"encoding/binary"

	"github.com/shiroemons/go-cepack/pkg/crypto"
)

// countSize は先頭のファイル数フィールドのサイズです
const countSize = 4

// Entry はアーカイブ内のエントリを表します
type Entry struct {
	Name   string
	Folder string
	Data   []byte
}

// Archive は解析済みのアーカイブを表します
type Archive struct {
	FileCount uint32
	Entries   []Entry
}

// Find は指定された名前を持つ最初のエントリを返します
func (a *Archive) Find(name string) (*Entry, bool) {
	for i := range a.Entries {
		if a.Entries[i].Name == name {
			return &a.Entries[i], true
		}
	}
	return nil, false
}

// Decompressor はアーカイブ本体の解凍処理です
type Decompressor func(data []byte) ([]byte, error)

// Compressor はアーカイブ本体の圧縮処理です
type Compressor func(data []byte) ([]byte, error)

type options struct {
	countOrder binary.ByteOrder
	decompress Decompressor
	compress   Compressor
}

// Option は Parse と Encode の動作を変更します
type Option func(*options)

// WithCountOrder は先頭のファイル数フィールドのバイトオーダーを指定します。
// 既定値は binary.LittleEndian です。
func WithCountOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.countOrder = order
		}
	}
}

// WithDecompressor は本体の解凍処理を差し替えます
func WithDecompressor(fn Decompressor) Option {
	return func(o *options) {
		if fn != nil {
			o.decompress = fn
		}
	}
}

// WithCompressor は本体の圧縮処理を差し替えます
func WithCompressor(fn Compressor) Option {
	return func(o *options) {
		if fn != nil {
			o.compress = fn
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		countOrder: binary.LittleEndian,
		decompress: crypto.Inflate,
		compress:   crypto.Deflate,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
