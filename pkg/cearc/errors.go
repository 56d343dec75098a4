package cearc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed はアーカイブの長さやエンコーディングが不正な場合のエラー
	ErrMalformed = errors.New("アーカイブが破損しています")

	// ErrDecompress はアーカイブ本体の解凍に失敗した場合のエラー
	ErrDecompress = errors.New("アーカイブ本体を解凍できませんでした")
)

// FieldError はエントリのフィールド読み込みに失敗した位置を表します
type FieldError struct {
	Index  int    // エントリ番号
	Field  string // フィールド名 (name, folder, data)
	Offset int    // 本体内のオフセット
	Err    error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *FieldError) Error() string {
	return fmt.Sprintf("エントリ %d の %s (offset 0x%X): %v", e.Index, e.Field, e.Offset, e.Err)
}

// Unwrap は元のエラーを返します
func (e *FieldError) Unwrap() error {
	return e.Err
}
