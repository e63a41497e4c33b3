package logger

import (
	"context"
	"os"
	"strings"

	"github.com/prasetyowira/qrgen/constant"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LoggerInfo contains structured logging information
type LoggerInfo struct {
	ContextFunction string
	Error           *CustomError
	Data            map[string]interface{}
}

// CustomError represents a structured error for logging
type CustomError struct {
	Code    string
	Message string
	Type    string
}

// Initialize sets up the logger. level accepts zap level names
// ("debug", "info", "warn", "error"); an unknown level falls back to
// debug in development and info in production.
func Initialize(level string, isProduction bool) {
	logLevel := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	if isProduction {
		logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	if parsed, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil {
		logLevel.SetLevel(parsed)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        constant.LogTimeKey,
		LevelKey:       constant.LogLevelKey,
		NameKey:        constant.LogNameKey,
		CallerKey:      constant.LogCallerKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     constant.LogMessageKey,
		StacktraceKey:  constant.LogStacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	config := zap.Config{
		Level:            logLevel,
		Development:      !isProduction,
		Encoding:         constant.LogEncodingConsole,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{constant.LogOutputStderr},
		ErrorOutputPaths: []string{constant.LogOutputStderr},
	}
	if isProduction {
		config.Encoding = constant.LogEncodingJSON
		config.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}

	built, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger = built
}

// SetLogger replaces the package logger, mainly so tests can observe output.
// It returns the previous logger.
func SetLogger(l *zap.Logger) *zap.Logger {
	prev := logger
	logger = l
	return prev
}

// Close ensures logger syncs before shutdown
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// createFields creates zap fields with proper structure
func createFields(ctx context.Context, info LoggerInfo) []zap.Field {
	fields := []zap.Field{}

	if requestID := getString(ctx, constant.RequestIDKey); requestID != "" {
		fields = append(fields, zap.String(constant.LogRequestIDKey, requestID))
	}
	if sessionID := getString(ctx, constant.SessionIDKey); sessionID != "" {
		fields = append(fields, zap.String(constant.LogSessionIDKey, sessionID))
	}

	if info.ContextFunction != "" {
		fields = append(fields, zap.String(constant.LogFunctionKey, info.ContextFunction))
	}

	if info.Error != nil {
		fields = append(fields,
			zap.String(constant.LogErrorCodeKey, info.Error.Code),
			zap.String(constant.LogErrorTypeKey, info.Error.Type),
			zap.String(constant.LogErrorMessageKey, info.Error.Message),
		)
	}

	for k, v := range info.Data {
		fields = append(fields, zap.Any(k, v))
	}

	return fields
}

// Debug logs a debug message
func Debug(msg string, info LoggerInfo) {
	if logger == nil {
		return
	}
	logger.Debug(msg, createFields(nil, info)...)
}

// Info logs an info message
func Info(msg string, info LoggerInfo) {
	if logger == nil {
		return
	}
	logger.Info(msg, createFields(nil, info)...)
}

// Warn logs a warning message
func Warn(msg string, info LoggerInfo) {
	if logger == nil {
		return
	}
	logger.Warn(msg, createFields(nil, info)...)
}

// Error logs an error message
func Error(msg string, info LoggerInfo) {
	if logger == nil {
		return
	}
	logger.Error(msg, createFields(nil, info)...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, info LoggerInfo) {
	if logger == nil {
		os.Exit(1)
	}
	logger.Fatal(msg, createFields(nil, info)...)
}

// CtxDebug logs a debug message with context
func CtxDebug(ctx context.Context, msg string, info LoggerInfo) {
	if logger == nil {
		return
	}
	logger.Debug(msg, createFields(ctx, info)...)
}

// CtxInfo logs an info message with context
func CtxInfo(ctx context.Context, msg string, info LoggerInfo) {
	if logger == nil {
		return
	}
	logger.Info(msg, createFields(ctx, info)...)
}

// CtxWarn logs a warning message with context
func CtxWarn(ctx context.Context, msg string, info LoggerInfo) {
	if logger == nil {
		return
	}
	logger.Warn(msg, createFields(ctx, info)...)
}

// CtxError logs an error message with context
func CtxError(ctx context.Context, msg string, info LoggerInfo) {
	if logger == nil {
		return
	}
	logger.Error(msg, createFields(ctx, info)...)
}

// NewRequestContext creates a new context for work not tied to a request
func NewRequestContext() context.Context {
	return context.Background()
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, constant.RequestIDKey, requestID)
}

// WithSessionID adds a UI session ID to the context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, constant.SessionIDKey, sessionID)
}

// RequestID returns the request ID carried by ctx, if any
func RequestID(ctx context.Context) string {
	return getString(ctx, constant.RequestIDKey)
}

func getString(ctx context.Context, key interface{}) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
