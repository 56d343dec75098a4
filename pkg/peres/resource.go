package peres

import (
	"fmt"

	"github.com/tc-hib/winres"
)

// ResourceInfo はリソースディレクトリ内のデータエントリの情報です
type ResourceInfo struct {
	Type Name
	Name Name
	Lang Name
	Size uint32
}

// FindResource は typ, name のリソースの内容を返します。
// 言語が複数ある場合は言語 ID が最も小さいものを返します。
func (img *Image) FindResource(typ, name Name) ([]byte, error) {
	if img.resources == nil {
		return nil, fmt.Errorf("%w: %s/%s (リソースディレクトリがありません)", ErrResourceNotFound, typ, name)
	}

	var (
		data      []byte
		found     bool
		typeFound bool
	)
	// Walk はタイプ・名前・言語の順に並べた順序で辿る
	img.resources.Walk(func(typeID, resID winres.Identifier, _ uint16, d []byte) bool {
		if !nameOf(typeID).Match(typ) {
			return true
		}
		typeFound = true
		if !nameOf(resID).Match(name) {
			return true
		}
		data = make([]byte, len(d))
		copy(data, d)
		found = true
		return false
	})

	if !typeFound {
		return nil, fmt.Errorf("%w: タイプ %s", ErrResourceNotFound, typ)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s/%s", ErrResourceNotFound, typ, name)
	}
	return data, nil
}

// Resources はリソースディレクトリ内の全てのデータエントリを列挙します
func (img *Image) Resources() ([]ResourceInfo, error) {
	if img.resources == nil {
		return nil, nil
	}

	var infos []ResourceInfo
	img.resources.Walk(func(typeID, resID winres.Identifier, langID uint16, d []byte) bool {
		infos = append(infos, ResourceInfo{
			Type: nameOf(typeID),
			Name: nameOf(resID),
			Lang: ID(langID),
			Size: uint32(len(d)),
		})
		return true
	})
	return infos, nil
}

// nameOf は winres の識別子を Name に変換します
func nameOf(id winres.Identifier) Name {
	switch v := id.(type) {
	case winres.ID:
		return ID(uint16(v))
	case winres.Name:
		return Name{str: string(v)}
	default:
		return Name{}
	}
}
