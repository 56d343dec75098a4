// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiroemons/go-cepack/internal/cepack/interfaces"
	"github.com/shiroemons/go-cepack/pkg/peres"
)

var (
	// ErrMockOpenFailed はオープン失敗エラー
	ErrMockOpenFailed = errors.New("mock: failed to open image")
	// ErrMockCorrupt はリソースディレクトリ破損エラー
	ErrMockCorrupt = fmt.Errorf("mock: %w", peres.ErrInvalidImage)
)

// MockImage はImageインターフェースのモック実装
type MockImage struct {
	Resources  map[string][]byte // リソース名 (大文字) → 内容
	Errors     map[string]error  // リソース名 (大文字) → 返すエラー
	Lookups    []string
	Closed     bool
	CloseError error
}

// NewMockImage は新しいMockImageを作成
func NewMockImage(resources map[string][]byte) *MockImage {
	normalized := make(map[string][]byte, len(resources))
	for name, data := range resources {
		normalized[strings.ToUpper(name)] = data
	}
	return &MockImage{
		Resources: normalized,
		Errors:    make(map[string]error),
	}
}

// FindResource はモック実装
func (m *MockImage) FindResource(typ, name peres.Name) ([]byte, error) {
	key := strings.ToUpper(name.String())
	m.Lookups = append(m.Lookups, key)
	if err, ok := m.Errors[key]; ok {
		return nil, err
	}
	if !typ.Match(peres.RCData) {
		return nil, fmt.Errorf("%w: %s/%s", peres.ErrResourceNotFound, typ, name)
	}
	data, ok := m.Resources[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", peres.ErrResourceNotFound, typ, name)
	}
	return data, nil
}

// Close はモック実装
func (m *MockImage) Close() error {
	m.Closed = true
	return m.CloseError
}

// MockImageOpener はImageOpenerインターフェースのモック実装
type MockImageOpener struct {
	Image  interfaces.Image
	Error  error
	Opened []string
}

// Open はモック実装
func (m *MockImageOpener) Open(path string) (interfaces.Image, error) {
	m.Opened = append(m.Opened, path)
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Image == nil {
		return nil, ErrMockOpenFailed
	}
	return m.Image, nil
}

// MockListingImage はリソースの列挙もできる Image のモック実装
type MockListingImage struct {
	Image       *MockImage
	Infos       []peres.ResourceInfo
	NoDirectory bool
	ListError   error
}

// FindResource はモック実装
func (m *MockListingImage) FindResource(typ, name peres.Name) ([]byte, error) {
	return m.Image.FindResource(typ, name)
}

// Close はモック実装
func (m *MockListingImage) Close() error {
	return m.Image.Close()
}

// Resources はモック実装
func (m *MockListingImage) Resources() ([]peres.ResourceInfo, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Infos, nil
}

// HasResources はモック実装
func (m *MockListingImage) HasResources() bool {
	return !m.NoDirectory
}
