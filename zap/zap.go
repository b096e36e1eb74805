package zap

import (
	logpkg "github.com/Punky2280/cartita-mcdaniels-sub003/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the zap implementation of the log.Logger interface.
type Logger struct {
	sugar       *zap.SugaredLogger
	atomicLevel zap.AtomicLevel
}

// Compile-time assertion: *Logger implements log.Logger.
var _ logpkg.Logger = (*Logger)(nil)

// NewLogger creates a production JSON logger at the given level.
func NewLogger(level logpkg.LogLevel) (*Logger, error) {
	atomicLevel := zap.NewAtomicLevelAt(logLevelToZap(level))

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &Logger{sugar: logger.Sugar(), atomicLevel: atomicLevel}, nil
}

// NewFromZap wraps an existing zap logger. Useful when the embedding service
// already owns a configured zap instance.
func NewFromZap(logger *zap.Logger) *Logger {
	return &Logger{sugar: logger.Sugar(), atomicLevel: zap.NewAtomicLevel()}
}

func (l *Logger) must() *zap.SugaredLogger {
	if l == nil || l.sugar == nil {
		return zap.NewNop().Sugar()
	}

	return l.sugar
}

// SetLevel changes the logger level at runtime.
func (l *Logger) SetLevel(level logpkg.LogLevel) {
	if l == nil {
		return
	}

	l.atomicLevel.SetLevel(logLevelToZap(level))
}

// Info implements log.Logger.
func (l *Logger) Info(args ...any) {
	l.must().Info(sanitizeArgs(args)...)
}

// Infof implements log.Logger.
func (l *Logger) Infof(format string, args ...any) {
	l.must().Infof(sanitizeFormat(format), sanitizeArgs(args)...)
}

// Error implements log.Logger.
func (l *Logger) Error(args ...any) {
	l.must().Error(sanitizeArgs(args)...)
}

// Errorf implements log.Logger.
func (l *Logger) Errorf(format string, args ...any) {
	l.must().Errorf(sanitizeFormat(format), sanitizeArgs(args)...)
}

// Warn implements log.Logger.
func (l *Logger) Warn(args ...any) {
	l.must().Warn(sanitizeArgs(args)...)
}

// Warnf implements log.Logger.
func (l *Logger) Warnf(format string, args ...any) {
	l.must().Warnf(sanitizeFormat(format), sanitizeArgs(args)...)
}

// Debug implements log.Logger.
func (l *Logger) Debug(args ...any) {
	l.must().Debug(sanitizeArgs(args)...)
}

// Debugf implements log.Logger.
func (l *Logger) Debugf(format string, args ...any) {
	l.must().Debugf(sanitizeFormat(format), sanitizeArgs(args)...)
}

// WithFields returns a child logger with additional key/value fields.
//
//nolint:ireturn
func (l *Logger) WithFields(fields ...any) logpkg.Logger {
	child := &Logger{sugar: l.must().With(sanitizeArgs(fields)...), atomicLevel: zap.NewAtomicLevel()}
	if l != nil {
		child.atomicLevel = l.atomicLevel
	}

	return child
}

// Sync flushes buffered logs.
func (l *Logger) Sync() error {
	return l.must().Sync()
}

func logLevelToZap(level logpkg.LogLevel) zapcore.Level {
	switch level {
	case logpkg.DebugLevel:
		return zapcore.DebugLevel
	case logpkg.InfoLevel:
		return zapcore.InfoLevel
	case logpkg.WarnLevel:
		return zapcore.WarnLevel
	case logpkg.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
