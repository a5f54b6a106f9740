package badgerfx

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger routes badger output to zap. Badger reports routine compaction
// and replay progress at info level, so info is logged at infoLevel.
type zapLogger struct {
	sugar     *zap.SugaredLogger
	infoLevel zapcore.Level
}

func newLogger(l *zap.Logger, infoLevel zapcore.Level) *zapLogger {
	return &zapLogger{
		sugar:     l.WithOptions(zap.AddCallerSkip(1)).Sugar(),
		infoLevel: infoLevel,
	}
}

func (l *zapLogger) log(level zapcore.Level, format string, a []any) {
	l.sugar.Logf(level, strings.TrimRight(format, "\n"), a...)
}

// Debugf implements badger.Logger.
func (l *zapLogger) Debugf(format string, a ...any) {
	l.log(zapcore.DebugLevel, format, a)
}

// Errorf implements badger.Logger.
func (l *zapLogger) Errorf(format string, a ...any) {
	l.log(zapcore.ErrorLevel, format, a)
}

// Infof implements badger.Logger.
func (l *zapLogger) Infof(format string, a ...any) {
	l.log(l.infoLevel, format, a)
}

// Warningf implements badger.Logger.
func (l *zapLogger) Warningf(format string, a ...any) {
	l.log(zapcore.WarnLevel, format, a)
}

var _ badger.Logger = (*zapLogger)(nil)
