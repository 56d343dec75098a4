package mocks

import (
	"github.com/shiroemons/go-cepack/pkg/cearc"
	"github.com/shiroemons/go-cepack/pkg/crypto"
)

// TrainerHeader は生成側が解凍後データの先頭に書く4バイトの例
var TrainerHeader = []byte{0x10, 0x20, 0x30, 0x40}

// NewTrainerPayload は definition を生成側と同じ手順で難読化したトレーナーを返します
func NewTrainerPayload(definition []byte) []byte {
	return NewTrainerPayloadWithMagic("CHEAT", append(append([]byte{}, TrainerHeader...), definition...))
}

// NewTrainerPayloadWithMagic は任意のシグネチャと解凍後データでトレーナーを生成します
func NewTrainerPayloadWithMagic(magic string, plain []byte) []byte {
	compressed, err := crypto.Deflate(plain)
	if err != nil {
		panic(err)
	}
	data := append([]byte(magic), compressed...)
	crypto.Obfuscate(data)
	return data
}

// NewContainer は entries をアーカイブ形式に変換します
func NewContainer(entries ...cearc.Entry) []byte {
	data, err := cearc.Encode(entries)
	if err != nil {
		panic(err)
	}
	return data
}
