package mocks

import (
	"fmt"
	"strings"

	"github.com/shiroemons/go-cepack/internal/cepack/interfaces"
)

// MockLogger はLoggerインターフェースのモック実装です
type MockLogger struct {
	Messages *[]string
	fields   string
}

// NewMockLogger は新しいMockLoggerを作成します
func NewMockLogger() *MockLogger {
	return &MockLogger{Messages: &[]string{}}
}

// Printf はメッセージを記録します
func (l *MockLogger) Printf(format string, a ...any) {
	msg := strings.TrimSuffix(fmt.Sprintf(format, a...), "\n")
	*l.Messages = append(*l.Messages, l.fields+msg)
}

// WithField はフィールドを付けたロガーを返します
func (l *MockLogger) WithField(key string, value any) interfaces.Logger {
	return &MockLogger{Messages: l.Messages, fields: fmt.Sprintf("%s%s=%v ", l.fields, key, value)}
}

// Contains は substr を含むメッセージがあるか判定します
func (l *MockLogger) Contains(substr string) bool {
	for _, msg := range *l.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
