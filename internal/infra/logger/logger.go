// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"comms_governance/internal/infra/config"
)

// Log is the process-wide logger, configured by Init.
var Log = logrus.New()

// Init configures Log from cfg, writing to stdout.
func Init(cfg *config.AppConfig) {
	Configure(Log, cfg, os.Stdout)
}

// Configure applies output, format and level to l. An unknown level leaves l at info
// and is reported on l itself.
func Configure(l *logrus.Logger, cfg *config.AppConfig, out io.Writer) {
	l.SetOutput(out)
	l.SetFormatter(formatterFor(cfg.Environment))

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		l.WithField("log_level", cfg.LogLevel).Warn("Unknown log level, using info")
		return
	}
	l.SetLevel(level)
	l.WithFields(logrus.Fields{"level": level.String(), "environment": cfg.Environment}).Debug("Logger configured")
}

func formatterFor(environment string) logrus.Formatter {
	switch strings.ToLower(environment) {
	case "production", "staging":
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		}
	default:
		return &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		}
	}
}

// Component returns an entry of Log tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
