package peres

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// RTRCData はリソースタイプ RCDATA（生データ）の ID です
const RTRCData uint16 = 10

// RCData は RCDATA タイプを表す Name です
var RCData = ID(RTRCData)

// utf16le はリソース名の文字列エンコーディング（BOM なし UTF-16LE）
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Name はリソースディレクトリのキー（数値 ID または文字列）です
type Name struct {
	id   uint16
	str  string
	isID bool
}

// ID は数値 ID の Name を返します
func ID(id uint16) Name {
	return Name{id: id, isID: true}
}

// StringName は文字列の Name を返します。
// "#10" のように # で始まる10進数は数値 ID として扱います。
func StringName(s string) Name {
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		if id, err := strconv.ParseUint(rest, 10, 16); err == nil {
			return ID(uint16(id))
		}
	}
	return Name{str: s}
}

// EncodeUTF16 は文字列の Name を長さ付き UTF-16LE に変換します
func (n Name) EncodeUTF16() ([]byte, error) {
	if n.isID {
		return nil, fmt.Errorf("数値 ID は文字列に変換できません: %s", n)
	}
	s, err := utf16le.NewEncoder().Bytes([]byte(n.str))
	if err != nil {
		return nil, err
	}
	if len(s)/2 > 0xFFFF {
		return nil, fmt.Errorf("名前が長すぎます: %d 文字", len(s)/2)
	}
	out := make([]byte, 2, 2+len(s))
	binary.LittleEndian.PutUint16(out, uint16(len(s)/2))
	return append(out, s...), nil
}

// IsID は数値 ID かどうかを返します
func (n Name) IsID() bool {
	return n.isID
}

// ID は数値 ID を返します。文字列の場合は0です。
func (n Name) ID() uint16 {
	return n.id
}

// String は表示用の文字列を返します
func (n Name) String() string {
	if n.isID {
		return "#" + strconv.Itoa(int(n.id))
	}
	return n.str
}

// Match はリソースディレクトリのキーが一致するか判定します。
// 文字列は大文字小文字を区別しません。
func (n Name) Match(other Name) bool {
	if n.isID != other.isID {
		return false
	}
	if n.isID {
		return n.id == other.id
	}
	return strings.EqualFold(n.str, other.str)
}
