// config/logger.go
package config

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// InitLogger picks the formatter and level for the environment. A non-empty
// level overrides the environment default.
func InitLogger(environment, level string) {
	if environment == EnvProduction {
		Logger.SetFormatter(&logrus.JSONFormatter{})
		Logger.SetLevel(logrus.InfoLevel)
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		Logger.SetLevel(logrus.DebugLevel)
	}

	if level == "" {
		return
	}
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		Logger.Warnf("Ignoring invalid LOG_LEVEL %q: %v", level, err)
		return
	}
	Logger.SetLevel(parsed)
}
