// Package logging provides a wrapper around zap for structured logging
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a wrapper around zap.Logger providing a simplified API
type Logger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// Fields is a type alias for key-value pairs
type Fields map[string]interface{}

// LogLevel represents the log severity level
type LogLevel string

// Available log levels
const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// ParseLevel converts a level name to a LogLevel, defaulting to info for
// unknown names.
func ParseLevel(name string) LogLevel {
	switch LogLevel(name) {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return LogLevel(name)
	default:
		return InfoLevel
	}
}

// Config represents the logging configuration
type Config struct {
	Level         LogLevel
	Development   bool
	OutputPaths   []string
	InitialFields Fields
}

// DefaultConfig returns a default configuration for the logger. Output goes
// to stderr: stdout is reserved for protocol frames when the adapter runs on
// the pipe transport.
func DefaultConfig() Config {
	return Config{
		Level:       InfoLevel,
		Development: false,
		OutputPaths: []string{"stderr"},
	}
}

// DevelopmentConfig returns a development configuration for the logger
func DevelopmentConfig() Config {
	return Config{
		Level:       DebugLevel,
		Development: true,
		OutputPaths: []string{"stderr"},
	}
}

// ProductionConfig returns a production configuration for the logger
func ProductionConfig() Config {
	return Config{
		Level:       InfoLevel,
		Development: false,
		OutputPaths: []string{"stderr"},
	}
}

// New creates a new logger with the given configuration
func New(config Config) (*Logger, error) {
	var level zapcore.Level
	switch config.Level {
	case DebugLevel:
		level = zapcore.DebugLevel
	case InfoLevel:
		level = zapcore.InfoLevel
	case WarnLevel:
		level = zapcore.WarnLevel
	case ErrorLevel:
		level = zapcore.ErrorLevel
	case FatalLevel:
		level = zapcore.FatalLevel
	default:
		level = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       config.Development,
		DisableCaller:     !config.Development,
		DisableStacktrace: !config.Development,
		Encoding:          "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      config.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	if config.InitialFields != nil {
		zapConfig.InitialFields = make(map[string]interface{})
		for k, v := range config.InitialFields {
			zapConfig.InitialFields[k] = v
		}
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		logger: zapLogger,
		sugar:  zapLogger.Sugar(),
	}, nil
}

// NewDevelopment creates a new development logger
func NewDevelopment() (*Logger, error) {
	return New(DevelopmentConfig())
}

// NewProduction creates a new production logger
func NewProduction() (*Logger, error) {
	return New(ProductionConfig())
}

// NewNop returns a logger that discards everything. Useful in tests.
func NewNop() *Logger {
	zapLogger := zap.NewNop()
	return &Logger{
		logger: zapLogger,
		sugar:  zapLogger.Sugar(),
	}
}

// With returns a logger with the given fields
func (l *Logger) With(fields Fields) *Logger {
	if len(fields) == 0 {
		return l
	}

	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	newLogger := l.logger.With(zapFields...)
	return &Logger{
		logger: newLogger,
		sugar:  newLogger.Sugar(),
	}
}

// Debug logs a message at debug level with optional fields
func (l *Logger) Debug(msg string, fields ...Fields) {
	if len(fields) > 0 {
		l.With(fields[0]).logger.Debug(msg)
	} else {
		l.logger.Debug(msg)
	}
}

// Info logs a message at info level with optional fields
func (l *Logger) Info(msg string, fields ...Fields) {
	if len(fields) > 0 {
		l.With(fields[0]).logger.Info(msg)
	} else {
		l.logger.Info(msg)
	}
}

// Warn logs a message at warn level with optional fields
func (l *Logger) Warn(msg string, fields ...Fields) {
	if len(fields) > 0 {
		l.With(fields[0]).logger.Warn(msg)
	} else {
		l.logger.Warn(msg)
	}
}

// Error logs a message at error level with optional fields
func (l *Logger) Error(msg string, fields ...Fields) {
	if len(fields) > 0 {
		l.With(fields[0]).logger.Error(msg)
	} else {
		l.logger.Error(msg)
	}
}

// Fatal logs a message at fatal level with optional fields and then calls os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...Fields) {
	if len(fields) > 0 {
		l.With(fields[0]).logger.Fatal(msg)
	} else {
		l.logger.Fatal(msg)
	}
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warnf logs a formatted message at warn level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Fatalf logs a formatted message at fatal level and then calls os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.sugar.Fatalf(format, args...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// defaultLogger backs Default until SetDefault replaces it
var defaultLogger, _ = NewProduction()

// Default returns the default logger
func Default() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
