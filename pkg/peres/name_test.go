package peres

import (
	"testing"
)

func TestStringName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		isID   bool
		id     uint16
		output string
	}{
		{name: "ASCII", input: "ARCHIVE", output: "ARCHIVE"},
		{name: "数値ID", input: "#10", isID: true, id: 10, output: "#10"},
		{name: "範囲外の数値", input: "#70000", output: "#70000"},
		{name: "数値でない", input: "#abc", output: "#abc"},
		{name: "空文字列", input: "", output: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := StringName(tt.input)
			if n.IsID() != tt.isID {
				t.Errorf("IsID() = %v, want %v", n.IsID(), tt.isID)
			}
			if n.ID() != tt.id {
				t.Errorf("ID() = %d, want %d", n.ID(), tt.id)
			}
			if n.String() != tt.output {
				t.Errorf("String() = %q, want %q", n.String(), tt.output)
			}
		})
	}
}

func TestName_Match(t *testing.T) {
	tests := []struct {
		name string
		a, b Name
		want bool
	}{
		{name: "同じ文字列", a: StringName("ARCHIVE"), b: StringName("ARCHIVE"), want: true},
		{name: "大文字小文字違い", a: StringName("archive"), b: StringName("ARCHIVE"), want: true},
		{name: "異なる文字列", a: StringName("ARCHIVE"), b: StringName("DECOMPRESSOR"), want: false},
		{name: "同じID", a: ID(10), b: RCData, want: true},
		{name: "異なるID", a: ID(10), b: ID(3), want: false},
		{name: "IDと文字列", a: ID(10), b: StringName("10"), want: false},
		{name: "#表記とID", a: StringName("#10"), b: ID(10), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Match(tt.b); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestName_EncodeUTF16(t *testing.T) {
	// "ARCHIVE" を長さ付き UTF-16LE で表現したもの
	want := []byte{7, 0, 'A', 0, 'R', 0, 'C', 0, 'H', 0, 'I', 0, 'V', 0, 'E', 0}
	encoded, err := StringName("ARCHIVE").EncodeUTF16()
	if err != nil {
		t.Fatalf("EncodeUTF16() error = %v", err)
	}
	if string(encoded) != string(want) {
		t.Errorf("EncodeUTF16() = % X, want % X", encoded, want)
	}

	// サロゲートペアは2コード単位として数える
	encoded, err = StringName("😀").EncodeUTF16()
	if err != nil {
		t.Fatalf("EncodeUTF16() error = %v", err)
	}
	if len(encoded) != 6 || encoded[0] != 2 {
		t.Errorf("EncodeUTF16(😀) = % X", encoded)
	}
}

func TestName_EncodeUTF16_ID(t *testing.T) {
	if _, err := ID(10).EncodeUTF16(); err == nil {
		t.Error("数値 ID の EncodeUTF16() はエラーを返すべき")
	}
}
