package config

import "errors"

var (
	// ErrNoInputFile は入力ファイルが指定されていない場合のエラー
	ErrNoInputFile = errors.New("ファイル名が指定されていません")

	// ErrInvalidCountEndian はバイトオーダーの指定が不正な場合のエラー
	ErrInvalidCountEndian = errors.New("count-endian には little か native を指定してください")

	// ErrInvalidHeaderSkip はスキップするバイト数が不正な場合のエラー
	ErrInvalidHeaderSkip = errors.New("skip には0以上の値を指定してください")
)
