package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"

	"github.com/shiroemons/go-cepack/internal/cepack/interfaces"
)

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
	log     log.Interface
}

// NewDebugLogger は標準エラー出力に書き込むDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return NewDebugLoggerWithWriter(enabled, os.Stderr)
}

// NewDebugLoggerWithWriter は w に書き込むDebugLoggerを作成します
func NewDebugLoggerWithWriter(enabled bool, w io.Writer) *DebugLogger {
	logger := &log.Logger{
		Handler: discard.New(),
		Level:   log.DebugLevel,
	}
	if enabled {
		logger.Handler = cli.New(w)
	}
	return &DebugLogger{enabled: enabled, log: logger}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		d.log.Debug(strings.TrimSuffix(fmt.Sprintf(format, a...), "\n"))
	}
}

// WithField はフィールドを付けたロガーを返します
func (d *DebugLogger) WithField(key string, value any) interfaces.Logger {
	return &DebugLogger{enabled: d.enabled, log: d.log.WithField(key, value)}
}
