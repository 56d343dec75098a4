package fileutil

import "errors"

var (
	// ErrBadFilename は入力パスから出力ファイル名を作れない場合のエラー
	ErrBadFilename = errors.New("入力ファイル名から出力ファイル名を作成できません")

	// ErrCreateDirectory は出力先ディレクトリの作成に失敗した場合のエラー
	ErrCreateDirectory = errors.New("出力先ディレクトリの作成に失敗しました")

	// ErrWriteContent は内容の書き込みに失敗した場合のエラー
	ErrWriteContent = errors.New("内容の書き込みに失敗しました")

	// ErrOutputExists は出力先に既にファイルがある場合のエラー
	ErrOutputExists = errors.New("出力先のファイルが既に存在します (上書きするには -f を指定してください)")

	// ErrUnsafePath はアーカイブのエントリが出力先の外を指している場合のエラー
	ErrUnsafePath = errors.New("出力先ディレクトリの外を指すパスです")
)
