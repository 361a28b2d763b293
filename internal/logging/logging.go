package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger tagged with the service name. Output is
// human-readable text by default; set LOG_FORMAT=json for shipped logs and
// LOG_LEVEL to adjust verbosity.
func NewLogger(service string) *logrus.Entry {
	logger := logrus.New()
	if os.Getenv("LOG_FORMAT") == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logger.SetLevel(level())
	return logger.WithField("service", service)
}

func level() logrus.Level {
	switch os.Getenv("LOG_LEVEL") {
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
