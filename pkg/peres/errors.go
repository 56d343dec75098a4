package peres

import "errors"

var (
	// ErrResourceNotFound はリソースが見つからない場合のエラー
	ErrResourceNotFound = errors.New("リソースが見つかりません")

	// ErrInvalidImage は PE ファイルが不正な場合のエラー
	ErrInvalidImage = errors.New("PE ファイルが不正です")
)
