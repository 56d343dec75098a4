package cearc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Encode はエントリをアーカイブ形式に書き出します
func Encode(entries []Entry, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	if uint64(len(entries)) > math.MaxUint32 {
		return nil, fmt.Errorf("エントリ数が多すぎます: %d", len(entries))
	}

	var body bytes.Buffer
	for _, e := range entries {
		for _, field := range [][]byte{[]byte(e.Name), []byte(e.Folder), e.Data} {
			if uint64(len(field)) > math.MaxUint32 {
				return nil, fmt.Errorf("フィールドが大きすぎます: %s", e.Name)
			}
			var size [4]byte
			binary.LittleEndian.PutUint32(size[:], uint32(len(field)))
			body.Write(size[:])
			body.Write(field)
		}
	}

	compressed, err := o.compress(body.Bytes())
	if err != nil {
		return nil, err
	}

	out := make([]byte, countSize, countSize+len(compressed))
	o.countOrder.PutUint32(out, uint32(len(entries)))
	return append(out, compressed...), nil
}
