package logger

import (
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger es la interfaz que usan los módulos; los campos van como map para
// no acoplar los paquetes de dominio a zap.
type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto os.Stdout.
	Output io.Writer
}

type zapLogger struct {
	z *zap.Logger
}

func New(opts Options) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	var enc zapcore.Encoder
	if opts.Format == FormatJSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), opts.Level.zap())
	z := zap.New(core)
	if app := strings.TrimSpace(opts.App); app != "" {
		z = z.With(zap.String("app", app))
	}
	return &zapLogger{z: z}
}

// Nop descarta todo; default de los servicios y de los tests.
func Nop() Logger {
	return &zapLogger{z: zap.NewNop()}
}

// Zap expone el *zap.Logger subyacente (middleware, cobra).
func Zap(l Logger) *zap.Logger {
	if zl, ok := l.(*zapLogger); ok {
		return zl.z
	}
	return zap.NewNop()
}

func (l *zapLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &zapLogger{z: l.z.With(toFields(fields)...)}
}

func (l *zapLogger) Debug(msg string, fields map[string]any) { l.z.Debug(msg, toFields(fields)...) }
func (l *zapLogger) Info(msg string, fields map[string]any)  { l.z.Info(msg, toFields(fields)...) }
func (l *zapLogger) Warn(msg string, fields map[string]any)  { l.z.Warn(msg, toFields(fields)...) }
func (l *zapLogger) Error(msg string, fields map[string]any) { l.z.Error(msg, toFields(fields)...) }

func toFields(m map[string]any) []zap.Field {
	if len(m) == 0 {
		return nil
	}
	// keys ordenadas para salida estable (útil en tests/logs)
	keys := make([]string, 0, len(m))
	for k := range m {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := m[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, m[k]))
	}
	return out
}
