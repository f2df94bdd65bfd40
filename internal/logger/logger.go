// Package logger provides structured logging for cinemactl: colored
// key=value lines on a terminal, plain lines when piped, JSON in production.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

const (
	// Format types for logging.
	formatJSON   = "json"
	formatPretty = "pretty"
)

// ANSI color codes.
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorGray    = "\033[37m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
)

// Logger wraps slog.Logger with additional functionality.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Writer      io.Writer // Defaults to stderr; stdout carries command output
	Format      string
	Environment string
	Level       slog.Level
	AddSource   bool
	NoColor     bool // Forced on when Writer is a file that is not a terminal
}

// New creates a new logger with the given configuration.
func New(cfg Config) *Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}

	if cfg.Format == "" {
		if cfg.Environment == "production" {
			cfg.Format = formatJSON
		} else {
			cfg.Format = formatPretty
		}
	}

	if f, ok := cfg.Writer.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		cfg.NoColor = true
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == formatJSON {
		handler = slog.NewJSONHandler(cfg.Writer, opts)
	} else {
		ph := NewPrettyHandler(cfg.Writer, opts)
		if cfg.NoColor {
			ph.palette = palette{}
		}
		handler = ph
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// ParseLevel converts a string to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// palette holds the escape sequences a PrettyHandler writes. The zero value
// writes none.
type palette struct {
	reset, dim, bold, attrs           string
	debug, info, warn, error, unknown string
}

var colors = palette{
	reset:   colorReset,
	dim:     colorDim,
	bold:    colorBold,
	attrs:   colorCyan,
	debug:   colorMagenta,
	info:    colorGreen,
	warn:    colorYellow,
	error:   colorRed,
	unknown: colorGray,
}

// PrettyHandler is a slog.Handler that writes one human-readable line per
// record: time, level, message, then key=value attributes. Grouped keys are
// written as group.key.
type PrettyHandler struct {
	opts    *slog.HandlerOptions
	writer  io.Writer
	palette palette
	attrs   []slog.Attr // already qualified with their groups
	groups  []string
}

// NewPrettyHandler creates a new colored pretty handler.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{
		opts:    opts,
		writer:  w,
		palette: colors,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes the log record.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	p := h.palette
	buf := make([]byte, 0, 1024)

	buf = append(buf, p.dim...)
	buf = append(buf, r.Time.Format("15:04:05")...)
	buf = append(buf, p.reset...)
	buf = append(buf, ' ')

	levelStr, levelColor := p.level(r.Level)
	buf = append(buf, levelColor...)
	buf = append(buf, levelStr...)
	buf = append(buf, p.reset...)
	buf = append(buf, ' ')

	if h.opts.AddSource && r.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := fs.Next()
		buf = append(buf, p.dim...)
		buf = append(buf, filepath.Base(f.File)...)
		buf = append(buf, ':')
		buf = append(buf, strconv.Itoa(f.Line)...)
		buf = append(buf, p.reset...)
		buf = append(buf, ' ')
	}

	buf = append(buf, p.bold...)
	buf = append(buf, r.Message...)
	buf = append(buf, p.reset...)

	attrs := slices.Clone(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendQualified(attrs, h.groups, a)
		return true
	})

	if len(attrs) > 0 {
		buf = append(buf, ' ')
		buf = append(buf, p.attrs...)
		for i, attr := range attrs {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = append(buf, attr.Key...)
			buf = append(buf, '=')
			buf = append(buf, formatValue(attr.Value)...)
		}
		buf = append(buf, p.reset...)
	}

	buf = append(buf, '\n')
	_, err := h.writer.Write(buf)
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		clone.attrs = appendQualified(clone.attrs, h.groups, a)
	}
	return &clone
}

// WithGroup returns a new handler with the given group.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clone(h.groups), name)
	return &clone
}

// appendQualified flattens a, prefixing keys with the open groups.
func appendQualified(attrs []slog.Attr, groups []string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return attrs
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(slices.Clone(groups), a.Key)
		}
		for _, ga := range a.Value.Group() {
			attrs = appendQualified(attrs, inner, ga)
		}
		return attrs
	}
	if len(groups) > 0 {
		a.Key = strings.Join(groups, ".") + "." + a.Key
	}
	return append(attrs, a)
}

// level returns the level label and its color.
func (p palette) level(level slog.Level) (levelStr, levelColor string) {
	switch level {
	case slog.LevelDebug:
		return "DBG", p.debug
	case slog.LevelInfo:
		return "INF", p.info
	case slog.LevelWarn:
		return "WRN", p.warn
	case slog.LevelError:
		return "ERR", p.error
	default:
		return level.String(), p.unknown
	}
}

// formatValue formats a slog.Value for pretty printing. Strings containing
// spaces are quoted.
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		return v.String()
	}
}

// Helper methods for common logging patterns.

// WithError adds an error attribute to the logger, plus its code for
// domain errors.
func (l *Logger) WithError(err error) *Logger {
	args := []any{slog.String("error", err.Error())}
	var de *domainerrors.Error
	if domainerrors.As(err, &de) {
		args = append(args, slog.String("code", string(de.Code)))
	}
	return &Logger{
		Logger: l.With(args...),
	}
}

// WithField adds a single field to the logger.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{
		Logger: l.With(slog.Any(key, value)),
	}
}

// WithFields adds multiple fields to the logger in key order.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	args := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return &Logger{
		Logger: l.With(args...),
	}
}

// Fatal logs a fatal error and exits with the error's exit code.
func (l *Logger) Fatal(msg string, err error) {
	l.WithError(err).Error(msg)
	os.Exit(domainerrors.CodeOf(err).ExitCode())
}
