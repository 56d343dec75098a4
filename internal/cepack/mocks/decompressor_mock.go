package mocks

import "github.com/shiroemons/go-cepack/pkg/crypto"

// MockDecompressor はDecompressorインターフェースのモック実装です。
// Output も Error も設定されていない場合は実際に解凍します。
type MockDecompressor struct {
	Output    []byte
	Error     error
	CallCount int
	Inputs    [][]byte
}

// Decompress はモック実装です
func (m *MockDecompressor) Decompress(data []byte) ([]byte, error) {
	m.CallCount++
	m.Inputs = append(m.Inputs, data)
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Output != nil {
		return m.Output, nil
	}
	return crypto.Inflate(data)
}
