package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZap returns a *zap.Logger whose entries are routed through logger, so
// zap-consuming components share the harness log sink and level filter.
func NewZap(logger *Logger) *zap.Logger {
	return zap.New(&zapCore{logger: logger})
}

// zapCore implements zapcore.Core on top of Logger.
type zapCore struct {
	logger *Logger
	fields []zapcore.Field
}

func (c *zapCore) Enabled(level zapcore.Level) bool {
	return c.logger.shouldLog(fromZapLevel(level))
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &zapCore{logger: c.logger, fields: merged}
}

func (c *zapCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *zapCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	switch fromZapLevel(entry.Level) {
	case DebugLevel:
		c.logger.Debug(entry.Message, enc.Fields)
	case WarnLevel:
		c.logger.Warn(entry.Message, enc.Fields)
	case ErrorLevel:
		c.logger.Error(entry.Message, enc.Fields)
	case FatalLevel:
		c.logger.Fatal(entry.Message, enc.Fields)
	default:
		c.logger.Info(entry.Message, enc.Fields)
	}
	return nil
}

func (c *zapCore) Sync() error { return nil }

func fromZapLevel(level zapcore.Level) LogLevel {
	switch level {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.WarnLevel:
		return WarnLevel
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel:
		return ErrorLevel
	case zapcore.FatalLevel:
		return FatalLevel
	default:
		return InfoLevel
	}
}
