package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger writes leveled, printf style messages tagged with the component
// that produced them.
type Logger struct {
	entry *logrus.Entry
}

var (
	defaultLogger *Logger
	once          sync.Once
)

func New(w io.Writer, component string, level logrus.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	entry := logrus.NewEntry(l)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return &Logger{entry: entry}
}

// ParseLevel reads LOG_LEVEL style names, falling back to info.
func ParseLevel(s string) (logrus.Level, bool) {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel, false
	}
	return level, true
}

// Get returns the process wide logger, configured from LOG_LEVEL.
func Get() *Logger {
	once.Do(func() {
		level, _ := ParseLevel(os.Getenv("LOG_LEVEL"))
		defaultLogger = New(os.Stderr, "keyplayer", level)
	})
	return defaultLogger
}

// Discard is a logger that writes nothing, handy in tests.
func Discard() *Logger {
	return New(io.Discard, "", logrus.PanicLevel)
}

// With returns a logger that adds key=value to every message.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) SetLevel(level logrus.Level) {
	l.entry.Logger.SetLevel(level)
}

func (l *Logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

func (l *Logger) Debug(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...any) { l.entry.Errorf(format, args...) }
