package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type basicLogger struct {
	*logrus.Logger
}

// Level is the log level of logger (wrapper for logrus)
type Level logrus.Level

// Formatter is the formatter of logger (wrapper for logrus)
type Formatter logrus.Formatter

var Logger *basicLogger

func init() {
	Logger = &basicLogger{logrus.New()}
	Logger.Out = os.Stdout
	Logger.Level = logrus.InfoLevel
	Logger.Formatter = &logrus.TextFormatter{
		DisableColors: false,
		FullTimestamp: true,
	}
}

// SetOutput sets the logger output.
func SetOutput(out io.Writer) {
	Logger.Out = out
}

// SetFormatter sets the logger formatter.
func SetFormatter(formatter Formatter) {
	Logger.Formatter = logrus.Formatter(formatter)
}

// SetLevel sets the logger level.
func SetLevel(level Level) {
	Logger.Level = logrus.Level(level)
}

var (
	PanicLevel = Level(logrus.PanicLevel)
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

func WithError(err error) *logrus.Entry { return Logger.WithError(err) }

func WithField(key string, value any) *logrus.Entry { return Logger.WithField(key, value) }

func Debugf(format string, args ...any) { Logger.Debugf(format, args...) }

func Infof(format string, args ...any) { Logger.Infof(format, args...) }

func Warnf(format string, args ...any) { Logger.Warnf(format, args...) }

func Errorf(format string, args ...any) { Logger.Errorf(format, args...) }

func Fatalf(format string, args ...any) { Logger.Fatalf(format, args...) }
