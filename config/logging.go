package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = logrus.New()

// InitLogger initializes the logging setup using Logrus. Output goes to a
// rotating file when LOG_FILE is set and to stderr otherwise.
func InitLogger() {
	if LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(LogFile), 0o755); err != nil {
			Log.WithError(err).Warn("cannot create log directory, logging to stderr")
		} else {
			Log.Out = &lumberjack.Logger{
				Filename:   LogFile,
				MaxSize:    10,   // Megabytes before log is rotated
				MaxBackups: 3,    // Number of old logs to keep
				MaxAge:     28,   // Maximum number of days to retain old log files
				Compress:   true, // Compress backups
			}
		}
	} else {
		Log.Out = os.Stderr
	}

	Log.SetLevel(parseLevel(LogLevel))
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.Debug("logger initialised")
}

func parseLevel(s string) logrus.Level {
	switch s {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
