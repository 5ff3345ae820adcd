package logger

import (
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

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

// ParseLevel acepta debug|info|warn|error; cualquier otra cosa => info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Logger es la interfaz que usan handlers, middleware y adapters.
// Los campos viajan como map para no acoplar a la librería de logging.
type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  string
	Format Format
	App    string

	// Output por defecto: stdout.
	Output io.Writer

	// Handler permite inyectar un handler de apex (p.ej. memory en tests).
	// Si viene, ignora Format/Output.
	Handler log.Handler
}

type apexLogger struct {
	entry *log.Entry
}

func New(opts Options) Logger {
	h := opts.Handler
	if h == nil {
		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		switch opts.Format {
		case FormatJSON:
			h = json.New(out)
		default:
			h = text.New(out)
		}
	}

	base := &log.Logger{
		Handler: h,
		Level:   ParseLevel(opts.Level),
	}

	fields := log.Fields{}
	if app := strings.TrimSpace(opts.App); app != "" {
		fields["app"] = app
	}

	return &apexLogger{entry: base.WithFields(fields)}
}

// Nop descarta todo. Útil como default cuando no inyectan logger.
func Nop() Logger {
	return New(Options{Handler: log.HandlerFunc(func(*log.Entry) error { return nil })})
}

func (l *apexLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &apexLogger{entry: l.entry.WithFields(toFields(fields))}
}

func (l *apexLogger) Debug(msg string, fields map[string]any) {
	l.entry.WithFields(toFields(fields)).Debug(msg)
}

func (l *apexLogger) Info(msg string, fields map[string]any) {
	l.entry.WithFields(toFields(fields)).Info(msg)
}

func (l *apexLogger) Warn(msg string, fields map[string]any) {
	l.entry.WithFields(toFields(fields)).Warn(msg)
}

func (l *apexLogger) Error(msg string, fields map[string]any) {
	l.entry.WithFields(toFields(fields)).Error(msg)
}

func toFields(m map[string]any) log.Fields {
	out := log.Fields{}
	for k, v := range m {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
