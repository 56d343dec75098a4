package crypto

// RollingXOR は各バイトを XOR した後にキーを1増やします。
// キーは 0xFF の次に 0x00 へ戻ります。
func RollingXOR(data []byte, key byte) {
	for i := range data {
		data[i] ^= key
		key++
	}
}
