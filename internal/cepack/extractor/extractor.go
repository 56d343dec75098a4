// Package extractor はトレーナー実行ファイルからトレーナー定義を取り出します
package extractor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	cperrors "github.com/shiroemons/go-cepack/internal/cepack/errors"
	"github.com/shiroemons/go-cepack/internal/cepack/interfaces"
	"github.com/shiroemons/go-cepack/pkg/cearc"
	"github.com/shiroemons/go-cepack/pkg/crypto"
	"github.com/shiroemons/go-cepack/pkg/peres"
)

// トレーナー形式の定数
const (
	// ArchiveResource はトレーナー本体を格納する RCDATA リソース名
	ArchiveResource = "ARCHIVE"

	// DecompressorResource はアーカイブ形式の場合にだけ存在する RCDATA リソース名
	DecompressorResource = "DECOMPRESSOR"

	// TrainerMagic は難読化解除後のトレーナーの先頭5バイト
	TrainerMagic = "CHEAT"

	// TrainerFile はアーカイブ内のトレーナー定義のファイル名
	TrainerFile = "CET_TRAINER.CETRAINER"

	// DefaultHeaderSkip は解凍後に読み飛ばすバイト数。
	// 生成側が先頭に書く4バイトの用途は不明で、実物のトレーナーで確認した値。
	DefaultHeaderSkip = 4
)

// Mode はトレーナーの格納形式です
type Mode int

const (
	// ModeDirect は ARCHIVE リソースがそのままトレーナーである形式
	ModeDirect Mode = iota
	// ModeContainer は ARCHIVE リソースが複数ファイルのアーカイブである形式
	ModeContainer
)

// String は形式名を返します
func (m Mode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeContainer:
		return "container"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Options は展開処理の設定です
type Options struct {
	// CountOrder はアーカイブ先頭のファイル数のバイトオーダー
	CountOrder binary.ByteOrder
	// HeaderSkip は解凍後に読み飛ばすバイト数
	HeaderSkip int
	// TrainerFile はアーカイブ内で探すファイル名
	TrainerFile string
	// OnState は各段階に入るたびに途中経過の Result と共に呼ばれます
	OnState func(State, *Result)
}

// DefaultOptions は既定の設定を返します
func DefaultOptions() Options {
	return Options{
		CountOrder:  binary.LittleEndian,
		HeaderSkip:  DefaultHeaderSkip,
		TrainerFile: TrainerFile,
	}
}

// Result は展開結果です
type Result struct {
	Mode       Mode
	Archive    *cearc.Archive // ModeContainer の場合のみ
	Payload    []byte         // 難読化されたトレーナー
	Definition []byte         // 取り出したトレーナー定義
}

// FlateDecompressor は raw deflate の Decompressor 実装です
type FlateDecompressor struct{}

// Decompress はデータを解凍します
func (FlateDecompressor) Decompress(data []byte) ([]byte, error) {
	return crypto.Inflate(data)
}

// Extractor はトレーナー定義を取り出します
type Extractor struct {
	logger       interfaces.Logger
	decompressor interfaces.Decompressor
	opts         Options
}

// NewExtractor は新しいExtractorを作成します
func NewExtractor(logger interfaces.Logger, opts Options) *Extractor {
	return NewExtractorWithDecompressor(logger, FlateDecompressor{}, opts)
}

// NewExtractorWithDecompressor は新しいExtractorを解凍処理付きで作成します
func NewExtractorWithDecompressor(logger interfaces.Logger, decompressor interfaces.Decompressor, opts Options) *Extractor {
	defaults := DefaultOptions()
	if opts.CountOrder == nil {
		opts.CountOrder = defaults.CountOrder
	}
	if opts.TrainerFile == "" {
		opts.TrainerFile = defaults.TrainerFile
	}
	if opts.HeaderSkip < 0 {
		opts.HeaderSkip = 0
	}
	return &Extractor{
		logger:       logger,
		decompressor: decompressor,
		opts:         opts,
	}
}

// Extract は img からトレーナー定義を取り出します。
// 各段階は前の段階が完了してから実行され、失敗した段階で処理を中断します。
func (e *Extractor) Extract(img interfaces.Image) (*Result, error) {
	result := &Result{}
	e.enter(StateStart, result)

	archive, err := img.FindResource(peres.RCData, peres.StringName(ArchiveResource))
	if err != nil {
		return nil, resourceError(StateStart, ArchiveResource, err)
	}
	e.enter(StateResourceResolved, result)
	e.logger.WithField("size", len(archive)).Printf("%s リソースを見つけました\n", ArchiveResource)

	mode, err := e.selectMode(img)
	if err != nil {
		return nil, err
	}
	result.Mode = mode
	e.enter(StateModeSelected, result)
	e.logger.WithField("mode", mode).Printf("格納形式を判定しました\n")

	var selected []byte
	switch mode {
	case ModeContainer:
		parsed, entry, err := e.openContainer(archive)
		if err != nil {
			return nil, err
		}
		result.Archive = parsed
		selected = entry
	case ModeDirect:
		selected = archive
	}

	payload := make([]byte, len(selected))
	copy(payload, selected)
	result.Payload = payload
	e.enter(StatePayloadAssembled, result)

	data := make([]byte, len(payload))
	copy(data, payload)
	crypto.Deobfuscate(data)
	if !bytes.HasPrefix(data, []byte(TrainerMagic)) {
		return nil, cperrors.New(cperrors.KindBadMagic, StatePayloadAssembled.String(), "",
			fmt.Errorf("%w: 先頭 % X", cperrors.ErrBadMagic, data[:min(len(data), len(TrainerMagic))]))
	}
	e.enter(StateSignatureVerified, result)

	definition, err := e.decompressor.Decompress(data[len(TrainerMagic):])
	if err != nil {
		return nil, cperrors.New(cperrors.KindZlibError, StateSignatureVerified.String(), "", err)
	}
	if len(definition) < e.opts.HeaderSkip {
		return nil, cperrors.New(cperrors.KindZlibError, StateSignatureVerified.String(), "",
			fmt.Errorf("%w: 解凍後のデータ (%d バイト) がヘッダ (%d バイト) より短いです",
				cperrors.ErrZlibError, len(definition), e.opts.HeaderSkip))
	}
	result.Definition = definition[e.opts.HeaderSkip:]
	e.enter(StateDecompressed, result)
	e.logger.WithField("size", len(result.Definition)).Printf("トレーナー定義を解凍しました\n")

	e.enter(StateDone, result)
	return result, nil
}

// selectMode は DECOMPRESSOR リソースの有無で格納形式を判定します
func (e *Extractor) selectMode(img interfaces.Image) (Mode, error) {
	_, err := img.FindResource(peres.RCData, peres.StringName(DecompressorResource))
	switch {
	case err == nil:
		return ModeContainer, nil
	case errors.Is(err, peres.ErrResourceNotFound):
		return ModeDirect, nil
	default:
		return ModeDirect, cperrors.New(cperrors.KindInvalidImage, StateResourceResolved.String(), DecompressorResource, err)
	}
}

// openContainer はアーカイブを解析してトレーナーファイルを取り出します
func (e *Extractor) openContainer(archive []byte) (*cearc.Archive, []byte, error) {
	parsed, err := cearc.Parse(archive,
		cearc.WithCountOrder(e.opts.CountOrder),
		cearc.WithDecompressor(e.decompressor.Decompress),
	)
	if err != nil {
		kind := cperrors.KindMalformedArchive
		if errors.Is(err, cearc.ErrDecompress) {
			kind = cperrors.KindZlibError
		}
		return nil, nil, cperrors.New(kind, StateModeSelected.String(), ArchiveResource, err)
	}
	e.logger.WithField("files", parsed.FileCount).Printf("アーカイブを解析しました\n")

	entry, ok := parsed.Find(e.opts.TrainerFile)
	if !ok {
		return nil, nil, cperrors.New(cperrors.KindInvalidArchive, StateModeSelected.String(), e.opts.TrainerFile,
			fmt.Errorf("%w: %s がありません", cperrors.ErrInvalidArchive, e.opts.TrainerFile))
	}
	return parsed, entry.Data, nil
}

// enter は状態遷移を記録します
func (e *Extractor) enter(s State, r *Result) {
	e.logger.WithField("state", s).Printf("状態遷移\n")
	if e.opts.OnState != nil {
		e.opts.OnState(s, r)
	}
}

// resourceError はリソース検索のエラーを種別付きのエラーに変換します
func resourceError(state State, name string, err error) error {
	kind := cperrors.KindInvalidImage
	if errors.Is(err, peres.ErrResourceNotFound) {
		kind = cperrors.KindResourceNotFound
	}
	return cperrors.New(kind, state.String(), name, err)
}
