package client

import (
	"os"
	"storefront-backoffice/internal/config"
	"strings"

	"github.com/sirupsen/logrus"
)

func NewLogger(cfg config.Log) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		logger.Warnf("invalid LOG_LEVEL %q, using %s", cfg.Level, level)
	}
	logger.SetLevel(level)

	return logger
}
