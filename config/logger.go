package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the service logger: JSON to stdout at info level. The
// instance is passed to whoever needs it instead of living in a global.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	return log
}
