package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures a logrus-backed Logger.
type Options struct {
	Level  string    // debug, info, warn(ing), error; anything else means info
	Format string    // "json" or "text"
	Output io.Writer // stderr when nil
}

// LogrusAdapter implements Logger on top of a logrus entry. Derived loggers
// share the underlying logrus.Logger.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// New builds a Logger from options.
func New(opts Options) Logger {
	logger := logrus.New()
	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	}

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		level = logrus.InfoLevel
		defer logger.Warnf("Unknown log level %q, falling back to info", opts.Level)
	}
	logger.SetLevel(level)
	logger.SetFormatter(formatterFor(opts.Format))

	return NewLogrusAdapterFromLogger(logger)
}

// NewLogrusAdapter is New writing to stderr.
func NewLogrusAdapter(level, format string) Logger {
	return New(Options{Level: level, Format: format})
}

// NewDefault returns an info-level text logger, used by components built
// without one.
func NewDefault() Logger {
	return New(Options{Level: "info", Format: "text"})
}

// NewLogrusAdapterFromLogger wraps an existing logrus.Logger; nil gets a fresh one.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{logger: logger, entry: logrus.NewEntry(logger)}
}

func formatterFor(format string) logrus.Formatter {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func (l *LogrusAdapter) log(level logrus.Level, msg string, fields []Field) {
	entry := l.entry
	if len(fields) > 0 {
		entry = entry.WithFields(convertFields(fields))
	}
	entry.Log(level, msg)
}

func (l *LogrusAdapter) derive(entry *logrus.Entry) Logger {
	return &LogrusAdapter{logger: l.logger, entry: entry}
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) { l.log(logrus.DebugLevel, msg, fields) }
func (l *LogrusAdapter) Info(msg string, fields ...Field)  { l.log(logrus.InfoLevel, msg, fields) }
func (l *LogrusAdapter) Warn(msg string, fields ...Field)  { l.log(logrus.WarnLevel, msg, fields) }
func (l *LogrusAdapter) Error(msg string, fields ...Field) { l.log(logrus.ErrorLevel, msg, fields) }

func (l *LogrusAdapter) WithError(err error) Logger {
	return l.derive(l.entry.WithError(err))
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return l.derive(l.entry.WithField(key, value))
}

func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return l.derive(l.entry.WithFields(convertFields(fields)))
}

func convertFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, field := range fields {
		out[field.Key] = field.Value
	}
	return out
}
