package fileutil

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shiroemons/go-cepack/internal/cepack/mocks"
)

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"trainer.exe", "trainer.exe.xml", false},
		{"/games/foo/Trainer.EXE", "Trainer.EXE.xml", false},
		{"relative/path/game", "game.xml", false},
		{"dir/", "dir.xml", false},
		{"", "", true},
		{".", "", true},
		{"..", "", true},
		{"/", "", true},
	}

	for _, test := range tests {
		result, err := OutputFilename(test.input)
		if test.wantErr {
			if !errors.Is(err, ErrBadFilename) {
				t.Errorf("OutputFilename(%q) error = %v; want ErrBadFilename", test.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("OutputFilename(%q) error = %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("OutputFilename(%q) = %q; want %q", test.input, result, test.expected)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		outputDir string
		input     string
		expected  string
	}{
		{"出力先なし", "", "/games/trainer.exe", "trainer.exe.xml"},
		{"出力先あり", "out", "/games/trainer.exe", filepath.Join("out", "trainer.exe.xml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath(tt.outputDir, tt.input)
			if err != nil {
				t.Fatalf("OutputPath() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("OutputPath() = %q, want %q", got, tt.expected)
			}
		})
	}

	if _, err := OutputPath("out", "/"); !errors.Is(err, ErrBadFilename) {
		t.Errorf("OutputPath(\"out\", \"/\") error = %v; want ErrBadFilename", err)
	}
}

func TestEntryPath(t *testing.T) {
	tests := []struct {
		name      string
		outputDir string
		folder    string
		entry     string
		expected  string
		wantErr   bool
	}{
		{"フォルダなし", "out", "", "lua53-32.dll", filepath.Join("out", "lua53-32.dll"), false},
		{"フォルダあり", "out", "drivers", "dbk32.sys", filepath.Join("out", "drivers", "dbk32.sys"), false},
		{"バックスラッシュ区切り", "out", `a\b`, "c.txt", filepath.Join("out", "a", "b", "c.txt"), false},
		{"出力先なし", "", "", "x.bin", "x.bin", false},
		{"親ディレクトリを指す", "out", "..", "evil.dll", "", true},
		{"絶対パス", "out", "", "/etc/passwd", "", true},
		{"空の名前", "out", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EntryPath(tt.outputDir, tt.folder, tt.entry)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsafePath) {
					t.Errorf("EntryPath() error = %v, want ErrUnsafePath", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("EntryPath() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("EntryPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSaveFile(t *testing.T) {
	errDisk := errors.New("disk full")

	tests := []struct {
		name      string
		path      string
		fsError   error
		wantDir   string
		wantError error
	}{
		{name: "カレントディレクトリ", path: "trainer.exe.xml"},
		{name: "サブディレクトリ", path: filepath.Join("out", "trainer.exe.xml"), wantDir: "out"},
		{name: "ディレクトリ作成失敗", path: filepath.Join("out", "a.xml"), fsError: errDisk, wantError: ErrCreateDirectory},
		{name: "書き込み失敗", path: "a.xml", fsError: errDisk, wantError: ErrWriteContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			fs.Error = tt.fsError

			err := SaveFile(fs, tt.path, []byte("<CheatTable/>"))
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("SaveFile() error = %v, want %v", err, tt.wantError)
				}
				if !errors.Is(err, errDisk) {
					t.Errorf("SaveFile() error = %v, 原因のエラーが含まれていません", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SaveFile() error = %v", err)
			}
			if string(fs.Files[tt.path]) != "<CheatTable/>" {
				t.Errorf("書き込まれた内容 = %q", fs.Files[tt.path])
			}
			if tt.wantDir != "" && !fs.Dirs[tt.wantDir] {
				t.Errorf("ディレクトリ %q が作成されていません", tt.wantDir)
			}
		})
	}
}
