package log

import "github.com/sirupsen/logrus"

// Logger is the process-wide logrus instance. Packages log through the
// helpers below so the formatter and level are configured exactly once.
var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.Formatter = &logrus.TextFormatter{
		DisableLevelTruncation: true,
		PadLevelText:           true,
		TimestampFormat:        "2006/01/02 15:04:05",
		FullTimestamp:          true,
	}
}

// Level aliases logrus levels so callers can pass one through without
// importing logrus directly.
type Level = logrus.Level

const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
)

// SetDebug switches the global level between info and debug.
func SetDebug(debug bool) {
	if debug {
		Logger.SetLevel(logrus.DebugLevel)
	} else {
		Logger.SetLevel(logrus.InfoLevel)
	}
}

func Debugf(fmt string, args ...any) {
	Logger.Debugf(fmt, args...)
}

func Infof(fmt string, args ...any) {
	Logger.Infof(fmt, args...)
}

func Info(args ...any) {
	Logger.Infoln(args...)
}

func Warnf(fmt string, args ...any) {
	Logger.Warnf(fmt, args...)
}

func Errorf(fmt string, args ...any) {
	Logger.Errorf(fmt, args...)
}

func Error(args ...any) {
	Logger.Errorln(args...)
}

func Fatal(args ...any) {
	Logger.Fatalln(args...)
}

func Log(level Level, args ...any) {
	Logger.Logln(level, args...)
}
