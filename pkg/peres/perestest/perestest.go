// Package perestest はテスト用に RCDATA リソースを持つ最小限の PE ファイルを生成します
package perestest

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"

	"github.com/shiroemons/go-cepack/pkg/peres"
)

const (
	// ResourceFileOffset は .rsrc セクションのファイル内オフセットです
	ResourceFileOffset = 0x200

	// ResourceRVA は .rsrc セクションの RVA です
	ResourceRVA = 0x1000

	// SectionHeaderOffset は BuildImage が生成する PE32 ファイルの .rsrc セクションヘッダの位置です
	SectionHeaderOffset = peHeaderOffset + 4 + 20 + 224

	// SizeOfRawDataOffset は .rsrc セクションヘッダの SizeOfRawData フィールドの位置です
	SizeOfRawDataOffset = SectionHeaderOffset + 16

	peHeaderOffset = 0x40
	fileAlignment  = 0x200
	sectionAlign   = 0x1000
)

// Resource は生成する PE ファイルに含めるリソースです
type Resource struct {
	Type peres.Name
	Name peres.Name
	Lang uint16
	Data []byte
}

// RCData は RCDATA タイプのリソースを返します
func RCData(name string, data []byte) Resource {
	return Resource{Type: peres.RCData, Name: peres.StringName(name), Data: data}
}

// BuildImage は PE32 ファイルを生成します。resources が空の場合はリソースディレクトリを持ちません。
func BuildImage(resources ...Resource) ([]byte, error) {
	return build(resources, false)
}

// BuildImage64 は PE32+ ファイルを生成します
func BuildImage64(resources ...Resource) ([]byte, error) {
	return build(resources, true)
}

// MustBuildImage は BuildImage と同じですが、失敗した場合はパニックします
func MustBuildImage(resources ...Resource) []byte {
	data, err := BuildImage(resources...)
	if err != nil {
		panic(err)
	}
	return data
}

type nameGroup struct {
	name      peres.Name
	resources []Resource
	dirOff    uint32
	strOff    uint32
	leafOff   []uint32
	blobOff   []uint32
}

type typeGroup struct {
	name   peres.Name
	names  []*nameGroup
	dirOff uint32
	strOff uint32
}

func build(resources []Resource, is64 bool) ([]byte, error) {
	var rsrc []byte
	if len(resources) > 0 {
		var err error
		rsrc, err = buildResourceSection(resources)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer

	// DOS ヘッダ
	dos := make([]byte, peHeaderOffset)
	dos[0], dos[1] = 'M', 'Z'
	binary.LittleEndian.PutUint32(dos[0x3c:], peHeaderOffset)
	buf.Write(dos)
	buf.WriteString("PE\x00\x00")

	numSections := uint16(0)
	if rsrc != nil {
		numSections = 1
	}
	rawSize := alignUp(uint32(len(rsrc)), fileAlignment)
	imageSize := alignUp(ResourceRVA+uint32(len(rsrc)), sectionAlign)

	fh := pe.FileHeader{
		Machine:          pe.IMAGE_FILE_MACHINE_I386,
		NumberOfSections: numSections,
		Characteristics:  pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_32BIT_MACHINE,
	}
	var dir pe.DataDirectory
	if rsrc != nil {
		dir = pe.DataDirectory{VirtualAddress: ResourceRVA, Size: uint32(len(rsrc))}
	}

	var oh any
	if is64 {
		fh.Machine = pe.IMAGE_FILE_MACHINE_AMD64
		fh.Characteristics = pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_LARGE_ADDRESS_AWARE
		oh64 := &pe.OptionalHeader64{
			Magic:                 0x20b,
			ImageBase:             0x140000000,
			SectionAlignment:      sectionAlign,
			FileAlignment:         fileAlignment,
			MajorSubsystemVersion: 6,
			SizeOfImage:           imageSize,
			SizeOfHeaders:         ResourceFileOffset,
			Subsystem:             pe.IMAGE_SUBSYSTEM_WINDOWS_GUI,
			NumberOfRvaAndSizes:   16,
		}
		oh64.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_RESOURCE] = dir
		oh = oh64
	} else {
		oh32 := &pe.OptionalHeader32{
			Magic:                 0x10b,
			ImageBase:             0x400000,
			SectionAlignment:      sectionAlign,
			FileAlignment:         fileAlignment,
			MajorSubsystemVersion: 4,
			SizeOfImage:           imageSize,
			SizeOfHeaders:         ResourceFileOffset,
			Subsystem:             pe.IMAGE_SUBSYSTEM_WINDOWS_GUI,
			NumberOfRvaAndSizes:   16,
		}
		oh32.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_RESOURCE] = dir
		oh = oh32
	}
	fh.SizeOfOptionalHeader = uint16(binary.Size(oh))

	if err := binary.Write(&buf, binary.LittleEndian, fh); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, oh); err != nil {
		return nil, err
	}

	if rsrc != nil {
		sh := pe.SectionHeader32{
			VirtualSize:      uint32(len(rsrc)),
			VirtualAddress:   ResourceRVA,
			SizeOfRawData:    rawSize,
			PointerToRawData: ResourceFileOffset,
			Characteristics:  0x40000040, // INITIALIZED_DATA | MEM_READ
		}
		copy(sh.Name[:], ".rsrc")
		if err := binary.Write(&buf, binary.LittleEndian, sh); err != nil {
			return nil, err
		}
	}

	if buf.Len() > ResourceFileOffset {
		return nil, fmt.Errorf("ヘッダが大きすぎます: %d バイト", buf.Len())
	}
	out := make([]byte, ResourceFileOffset+rawSize)
	copy(out, buf.Bytes())
	copy(out[ResourceFileOffset:], rsrc)
	return out, nil
}

// buildResourceSection はリソースディレクトリとデータを含む .rsrc セクションを生成します
func buildResourceSection(resources []Resource) ([]byte, error) {
	types := group(resources)

	// ディレクトリ → データエントリ → 名前文字列 → データの順に配置する
	off := dirSize(len(types))
	for _, t := range types {
		t.dirOff = off
		off += dirSize(len(t.names))
	}
	for _, t := range types {
		for _, n := range t.names {
			n.dirOff = off
			off += dirSize(len(n.resources))
		}
	}
	for _, t := range types {
		for _, n := range t.names {
			for range n.resources {
				n.leafOff = append(n.leafOff, off)
				off += 16
			}
		}
	}

	type blob struct {
		off  uint32
		data []byte
	}
	var names []blob
	place := func(name peres.Name) (uint32, error) {
		if name.IsID() {
			return 0, nil
		}
		s, err := name.EncodeUTF16()
		if err != nil {
			return 0, err
		}
		pos := off
		names = append(names, blob{off: pos, data: s})
		off = alignUp(off+uint32(len(s)), 2)
		return pos, nil
	}
	for _, t := range types {
		var err error
		if t.strOff, err = place(t.name); err != nil {
			return nil, err
		}
		for _, n := range t.names {
			if n.strOff, err = place(n.name); err != nil {
				return nil, err
			}
		}
	}

	off = alignUp(off, 8)
	for _, t := range types {
		for _, n := range t.names {
			for _, r := range n.resources {
				n.blobOff = append(n.blobOff, off)
				off = alignUp(off+uint32(len(r.Data)), 8)
			}
		}
	}

	out := make([]byte, off)

	writeDirectory(out[0:], func(i int) (peres.Name, uint32, uint32) {
		return types[i].name, types[i].strOff, types[i].dirOff | 0x80000000
	}, len(types))

	for _, t := range types {
		writeDirectory(out[t.dirOff:], func(i int) (peres.Name, uint32, uint32) {
			n := t.names[i]
			return n.name, n.strOff, n.dirOff | 0x80000000
		}, len(t.names))

		for _, n := range t.names {
			writeDirectory(out[n.dirOff:], func(i int) (peres.Name, uint32, uint32) {
				return peres.ID(n.resources[i].Lang), 0, n.leafOff[i]
			}, len(n.resources))

			for i, r := range n.resources {
				leaf := out[n.leafOff[i]:]
				binary.LittleEndian.PutUint32(leaf[0:], ResourceRVA+n.blobOff[i])
				binary.LittleEndian.PutUint32(leaf[4:], uint32(len(r.Data)))
				copy(out[n.blobOff[i]:], r.Data)
			}
		}
	}

	for _, b := range names {
		copy(out[b.off:], b.data)
	}

	return out, nil
}

// writeDirectory はディレクトリヘッダとエントリを書き込みます。文字列のエントリを先に並べます。
func writeDirectory(out []byte, entry func(int) (peres.Name, uint32, uint32), count int) {
	order := make([]int, 0, count)
	named := 0
	for i := 0; i < count; i++ {
		if name, _, _ := entry(i); !name.IsID() {
			order = append(order, i)
			named++
		}
	}
	for i := 0; i < count; i++ {
		if name, _, _ := entry(i); name.IsID() {
			order = append(order, i)
		}
	}

	binary.LittleEndian.PutUint16(out[12:], uint16(named))
	binary.LittleEndian.PutUint16(out[14:], uint16(count-named))
	for pos, i := range order {
		name, strOff, data := entry(i)
		e := out[16+pos*8:]
		if name.IsID() {
			binary.LittleEndian.PutUint32(e, uint32(name.ID()))
		} else {
			binary.LittleEndian.PutUint32(e, strOff|0x80000000)
		}
		binary.LittleEndian.PutUint32(e[4:], data)
	}
}

// group はリソースをタイプと名前でまとめます
func group(resources []Resource) []*typeGroup {
	var types []*typeGroup
	for _, r := range resources {
		var t *typeGroup
		for _, candidate := range types {
			if candidate.name.Match(r.Type) {
				t = candidate
				break
			}
		}
		if t == nil {
			t = &typeGroup{name: r.Type}
			types = append(types, t)
		}

		var n *nameGroup
		for _, candidate := range t.names {
			if candidate.name.Match(r.Name) {
				n = candidate
				break
			}
		}
		if n == nil {
			n = &nameGroup{name: r.Name}
			t.names = append(t.names, n)
		}
		n.resources = append(n.resources, r)
	}
	return types
}

func dirSize(entries int) uint32 {
	return uint32(16 + entries*8)
}

func alignUp(v, align uint32) uint32 {
	return (v + align - 1) &^ (align - 1)
}
