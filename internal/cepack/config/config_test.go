package config

import (
	"bytes"
	"encoding/binary"
	"errors"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/shiroemons/go-cepack/internal/cepack/extractor"
)

func TestParseFlags(t *testing.T) {
	// フラグをリセット
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	// テスト用の引数を設定
	os.Args = []string{"cmd", "-o", "/tmp", "-count-endian", "native", "-skip", "8", "-l", "-x", "-d", "-n", "-f", "trainer.exe"}

	cfg := ParseFlags()

	if cfg.InputPath != "trainer.exe" {
		t.Errorf("Expected InputPath 'trainer.exe', got '%s'", cfg.InputPath)
	}
	if cfg.OutputDir != "/tmp" {
		t.Errorf("Expected OutputDir '/tmp', got '%s'", cfg.OutputDir)
	}
	if cfg.CountEndian != CountEndianNative {
		t.Errorf("Expected CountEndian 'native', got '%s'", cfg.CountEndian)
	}
	if cfg.HeaderSkip != 8 {
		t.Errorf("Expected HeaderSkip 8, got %d", cfg.HeaderSkip)
	}
	if !cfg.ListEntries || !cfg.DumpEntries {
		t.Error("Expected ListEntries and DumpEntries to be true")
	}
	if !cfg.DebugMode {
		t.Error("Expected DebugMode to be true")
	}
	if !cfg.DryRun {
		t.Error("Expected DryRun to be true")
	}
	if !cfg.Force {
		t.Error("Expected Force to be true")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{"cmd", "--debug", "--dry-run", "--force", "trainer.exe"}

	cfg := ParseFlags()

	if cfg.CountEndian != CountEndianLittle {
		t.Errorf("Expected CountEndian 'little', got '%s'", cfg.CountEndian)
	}
	if cfg.HeaderSkip != extractor.DefaultHeaderSkip {
		t.Errorf("Expected HeaderSkip %d, got %d", extractor.DefaultHeaderSkip, cfg.HeaderSkip)
	}
	if cfg.OutputDir != "" {
		t.Errorf("Expected empty OutputDir, got '%s'", cfg.OutputDir)
	}
	if !cfg.DebugMode || !cfg.DryRun || !cfg.Force {
		t.Error("Expected long flags to set DebugMode, DryRun and Force")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "正常", config: Config{InputPath: "a.exe", CountEndian: CountEndianLittle, HeaderSkip: 4}},
		{name: "バイトオーダー省略", config: Config{InputPath: "a.exe"}},
		{name: "入力ファイルなし", config: Config{}, wantErr: ErrNoInputFile},
		{name: "不正なバイトオーダー", config: Config{InputPath: "a.exe", CountEndian: "big"}, wantErr: ErrInvalidCountEndian},
		{name: "負のスキップ", config: Config{InputPath: "a.exe", HeaderSkip: -1}, wantErr: ErrInvalidHeaderSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ExtractorOptions(t *testing.T) {
	cfg := &Config{InputPath: "a.exe", CountEndian: CountEndianNative, HeaderSkip: 0}

	opts, err := cfg.ExtractorOptions()
	if err != nil {
		t.Fatalf("ExtractorOptions() error = %v", err)
	}
	if opts.CountOrder != binary.NativeEndian {
		t.Errorf("CountOrder = %v, want NativeEndian", opts.CountOrder)
	}
	if opts.HeaderSkip != 0 {
		t.Errorf("HeaderSkip = %d, want 0", opts.HeaderSkip)
	}
	if opts.TrainerFile != extractor.TrainerFile {
		t.Errorf("TrainerFile = %q, want %q", opts.TrainerFile, extractor.TrainerFile)
	}

	cfg.CountEndian = "middle"
	if _, err := cfg.ExtractorOptions(); !errors.Is(err, ErrInvalidCountEndian) {
		t.Errorf("ExtractorOptions() error = %v, want ErrInvalidCountEndian", err)
	}
}

func TestDebugLogger(t *testing.T) {
	var buf bytes.Buffer

	// デバッグモード有効
	logger := NewDebugLoggerWithWriter(true, &buf)
	logger.Printf("test message %d\n", 123)
	logger.WithField("state", "Done").Printf("状態遷移\n")

	output := buf.String()
	if !strings.Contains(output, "test message 123") {
		t.Errorf("Expected debug output to contain 'test message 123', got '%s'", output)
	}
	if !strings.Contains(output, "状態遷移") || !strings.Contains(output, "Done") {
		t.Errorf("Expected field output, got '%s'", output)
	}

	// デバッグモード無効
	buf.Reset()
	logger = NewDebugLoggerWithWriter(false, &buf)
	logger.Printf("should not appear\n")
	logger.WithField("k", "v").Printf("should not appear either\n")

	if buf.Len() != 0 {
		t.Errorf("Debug output should not appear when debug mode is disabled, got '%s'", buf.String())
	}
}
