package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger writes JSON records at or above level to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{logger: zl}
}

// FromZerolog wraps an already configured zerolog.Logger.
func FromZerolog(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: zl}
}

func (z *ZerologLogger) Debug(msg string, fields ...any) {
	emit(z.logger.Debug(), msg, fields)
}

func (z *ZerologLogger) Info(msg string, fields ...any) {
	emit(z.logger.Info(), msg, fields)
}

func (z *ZerologLogger) Warn(msg string, fields ...any) {
	emit(z.logger.Warn(), msg, fields)
}

// Error attaches a leading error under ErrAttrKey. Typed errors that
// implement zerolog.LogObjectMarshaler are also rendered as a nested object.
func (z *ZerologLogger) Error(msg string, fields ...any) {
	err, rest := splitError(fields)
	e := z.logger.Error()
	if err != nil {
		e = e.AnErr(ErrAttrKey, err)
		var detail zerolog.LogObjectMarshaler
		if errors.As(err, &detail) {
			e = e.Object(ErrDetailAttrKey, detail)
		}
	}
	emit(e, msg, rest)
}

func (z *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{logger: z.logger.With().Fields(fields).Logger()}
}

func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	lvl := toZerologLevel(level)
	return lvl >= z.logger.GetLevel() && lvl >= zerolog.GlobalLevel()
}

// emit is a no-op for disabled levels: zerolog returns a nil *Event then.
func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

var (
	providerMu    sync.RWMutex
	defaultLogger Logger = NewZerologLogger(os.Stderr, LevelWarn)
	currentLogger        = defaultLogger
)

// GetLogger returns the process-wide logger. Models capture it at
// construction time unless WithLogger is used.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return currentLogger
}

// SetLogger replaces the process-wide logger. Passing nil restores the
// default zerolog logger (stderr, warn level).
func SetLogger(l Logger) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if l == nil {
		l = defaultLogger
	}
	currentLogger = l
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

func init() {
	// library warnings (errors.Warn) go through the structured logger
	errors.SetZerologWarnFunc(func(w error) {
		GetLoggerWithName("warnings").Warn(w.Error(), WarningAttrKey, w)
	})
}
