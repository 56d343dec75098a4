package app

import (
	"github.com/shiroemons/go-cepack/internal/cepack/interfaces"
	"github.com/shiroemons/go-cepack/pkg/peres"
)

// PEOpener はディスク上の PE ファイルを開く ImageOpener 実装です
type PEOpener struct{}

// Open は path の PE ファイルを開きます
func (PEOpener) Open(path string) (interfaces.Image, error) {
	img, err := peres.Open(path)
	if err != nil {
		return nil, err
	}
	return img, nil
}
