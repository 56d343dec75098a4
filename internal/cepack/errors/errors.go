// Package errors はトレーナー展開処理のエラー種別を提供します
package errors

import (
	"errors"
	"fmt"
)

// Kind はエラーの種別です
type Kind int

// エラー種別
const (
	KindUnknown          Kind = iota
	KindResourceNotFound      // 必要なリソースがない
	KindInvalidArchive        // アーカイブにトレーナーファイルがない
	KindMalformedArchive      // アーカイブの長さ・エンコーディングが不正
	KindZlibError             // 解凍に失敗
	KindBadMagic              // シグネチャ不一致
	KindInvalidImage          // PE ファイルが不正
	KindBadFilename           // 出力ファイル名を決められない
	KindIOError               // 入出力エラー
)

// 種別ごとのエラー。errors.Is で種別を判定できます。
var (
	ErrResourceNotFound = errors.New("リソースが見つかりません")
	ErrInvalidArchive   = errors.New("アーカイブが壊れています")
	ErrMalformedArchive = errors.New("アーカイブの形式が不正です")
	ErrZlibError        = errors.New("データを解凍できませんでした")
	ErrBadMagic         = errors.New("トレーナーのシグネチャ (\"CHEAT\") が一致しません。トレーナーが新しすぎるか古すぎる可能性があります")
	ErrInvalidImage     = errors.New("PE ファイルが不正です")
	ErrBadFilename      = errors.New("出力ファイル名が不正です")
	ErrIO               = errors.New("入出力エラー")
)

var kindErrors = map[Kind]error{
	KindResourceNotFound: ErrResourceNotFound,
	KindInvalidArchive:   ErrInvalidArchive,
	KindMalformedArchive: ErrMalformedArchive,
	KindZlibError:        ErrZlibError,
	KindBadMagic:         ErrBadMagic,
	KindInvalidImage:     ErrInvalidImage,
	KindBadFilename:      ErrBadFilename,
	KindIOError:          ErrIO,
}

// String は種別名を返します
func (k Kind) String() string {
	switch k {
	case KindResourceNotFound:
		return "ResourceNotFound"
	case KindInvalidArchive:
		return "InvalidArchive"
	case KindMalformedArchive:
		return "MalformedArchive"
	case KindZlibError:
		return "ZlibError"
	case KindBadMagic:
		return "BadMagic"
	case KindInvalidImage:
		return "InvalidImage"
	case KindBadFilename:
		return "BadFilename"
	case KindIOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Error は展開処理のエラー
type Error struct {
	Kind Kind   // エラー種別
	Op   string // 実行していた処理
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if sentinel, ok := kindErrors[e.Kind]; ok {
		return fmt.Sprintf("%s: %v", msg, sentinel)
	}
	return msg
}

// Unwrap は元のエラーを返します
func (e *Error) Unwrap() error {
	return e.Err
}

// Is は種別に対応するエラーと一致するか判定します
func (e *Error) Is(target error) bool {
	sentinel, ok := kindErrors[e.Kind]
	return ok && sentinel == target
}

// New は新しい Error を作成します
func New(kind Kind, op, path string, err error) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf は err に含まれる Error の種別を返します
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
