// Package crypto はトレーナーファイルで使用される難読化・圧縮アルゴリズムを提供します。
//
// 主な機能:
//   - Deobfuscate: トレーナーデータの3段階難読化の解除
//   - Obfuscate: Deobfuscate の逆変換（生成側の処理）
//   - Inflate: raw deflate データの解凍
//   - RollingXOR: 1バイトずつ増加するキーでの XOR
package crypto

// TrainerKey はローリング XOR の初期キーです
const TrainerKey byte = 0xCE

// Deobfuscate はトレーナーデータの難読化をその場で解除します。
// 3つのパスは前のパスの結果に依存するため、順序を入れ替えてはいけません。
// 長さ2未満のデータでは拡散パスは何もしません。
func Deobfuscate(data []byte) {
	// 前方拡散: 更新済みの data[i-2] を使う
	for i := 2; i < len(data); i++ {
		data[i] ^= data[i-2]
	}

	// 後方拡散: 更新済みの data[i+1] を使う
	for i := len(data) - 2; i >= 0; i-- {
		data[i] ^= data[i+1]
	}

	RollingXOR(data, TrainerKey)
}

// Obfuscate は Deobfuscate の逆変換をその場で行います
func Obfuscate(data []byte) {
	RollingXOR(data, TrainerKey)

	// 後方拡散の逆: data[i+1] がまだ変換前のうちに処理する
	for i := 0; i+1 < len(data); i++ {
		data[i] ^= data[i+1]
	}

	// 前方拡散の逆: data[i-2] がまだ変換前のうちに処理する
	for i := len(data) - 1; i >= 2; i-- {
		data[i] ^= data[i-2]
	}
}
