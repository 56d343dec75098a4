package cearc

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// フィールド名
const (
	fieldName   = "name"
	fieldFolder = "folder"
	fieldData   = "data"
)

// Parse はアーカイブを解析します。
// count 個のエントリを読み終える前にデータが尽きた場合は途中までの結果を返さずに失敗します。
func Parse(data []byte, opts ...Option) (*Archive, error) {
	o := newOptions(opts)

	if len(data) < countSize {
		return nil, fmt.Errorf("%w: ヘッダが短すぎます (%d バイト)", ErrMalformed, len(data))
	}
	count := o.countOrder.Uint32(data[:countSize])

	body, err := o.decompress(data[countSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}

	entries, err := ParseEntries(body, count)
	if err != nil {
		return nil, err
	}

	return &Archive{
		FileCount: count,
		Entries:   entries,
	}, nil
}

// ParseEntries は解凍済みの本体から count 個のエントリを読み込みます
func ParseEntries(body []byte, count uint32) ([]Entry, error) {
	r := &entryReader{buf: body}
	// count はファイル由来の値なので、本体サイズで確保量を制限する
	capacity := int(min(uint64(count), uint64(len(body)/12)))
	entries := make([]Entry, 0, capacity)

	for n := uint32(0); n < count; n++ {
		i := int(n)
		name, err := r.readString(i, fieldName)
		if err != nil {
			return nil, err
		}
		folder, err := r.readString(i, fieldFolder)
		if err != nil {
			return nil, err
		}
		raw, err := r.readField(i, fieldData)
		if err != nil {
			return nil, err
		}

		data := make([]byte, len(raw))
		copy(data, raw)
		entries = append(entries, Entry{
			Name:   name,
			Folder: folder,
			Data:   data,
		})
	}

	return entries, nil
}

// entryReader は本体を先頭から順に読み込みます
type entryReader struct {
	buf    []byte
	offset int
}

// readField は長さ付きフィールドを読み込みます
func (r *entryReader) readField(index int, field string) ([]byte, error) {
	start := r.offset
	if len(r.buf)-r.offset < 4 {
		return nil, &FieldError{Index: index, Field: field, Offset: start,
			Err: fmt.Errorf("%w: 長さフィールドが途切れています", ErrMalformed)}
	}
	size := uint64(binary.LittleEndian.Uint32(r.buf[r.offset:]))
	r.offset += 4

	if size > uint64(len(r.buf)-r.offset) {
		return nil, &FieldError{Index: index, Field: field, Offset: start,
			Err: fmt.Errorf("%w: 長さ %d が残り %d バイトを超えています", ErrMalformed, size, len(r.buf)-r.offset)}
	}
	data := r.buf[r.offset : r.offset+int(size)]
	r.offset += int(size)
	return data, nil
}

// readString は UTF-8 文字列フィールドを読み込みます
func (r *entryReader) readString(index int, field string) (string, error) {
	start := r.offset
	raw, err := r.readField(index, field)
	if err != nil {
		return "", err
	}
	if _, _, err := transform.Bytes(encoding.UTF8Validator, raw); err != nil {
		return "", &FieldError{Index: index, Field: field, Offset: start,
			Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	return string(raw), nil
}
